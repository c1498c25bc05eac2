// Package rules holds validation rules that need the database.
package rules

import (
	"context"
)

// CategoryLookup returns the category ids linked to a genre, soft-deleted
// categories included.
type CategoryLookup interface {
	CategoryIDsForGenre(ctx context.Context, genreID string) ([]string, error)
}

// GenresHasCategoriesRule checks that every genre shares at least one
// category with the categories bound at construction.
type GenresHasCategoriesRule struct {
	lookup       CategoryLookup
	categoriesID []string
	genresID     []string
}

func NewGenresHasCategoriesRule(lookup CategoryLookup, categoriesID []string) *GenresHasCategoriesRule {
	return &GenresHasCategoriesRule{
		lookup:       lookup,
		categoriesID: unique(categoriesID),
	}
}

// Passes fails closed: one genre without a shared category fails the call.
func (r *GenresHasCategoriesRule) Passes(ctx context.Context, genresID []string) (bool, error) {
	r.genresID = unique(genresID)
	if len(r.genresID) == 0 || len(r.categoriesID) == 0 {
		return false, nil
	}

	bound := make(map[string]bool, len(r.categoriesID))
	for _, id := range r.categoriesID {
		bound[id] = true
	}

	for _, genreID := range r.genresID {
		rows, err := r.lookup.CategoryIDsForGenre(ctx, genreID)
		if err != nil {
			return false, err
		}
		if !intersects(rows, bound) {
			return false, nil
		}
	}
	return true, nil
}

func (r *GenresHasCategoriesRule) Message() string {
	return "A genre ID must be related at least a category ID."
}

func intersects(ids []string, set map[string]bool) bool {
	for _, id := range ids {
		if set[id] {
			return true
		}
	}
	return false
}

func unique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
