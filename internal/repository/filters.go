package repository

import (
	"strconv"
	"strings"

	"video-catalog/internal/models"

	"gorm.io/gorm"
)

func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// splitIDs parses a comma separated id list, dropping blanks.
func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

func applyIsActive(db *gorm.DB, q ListQuery) *gorm.DB {
	raw := q.Param("is_active")
	if raw == "" {
		return db
	}
	if active, err := strconv.ParseBool(raw); err == nil {
		db = db.Where("is_active = ?", active)
	}
	return db
}

type CategoryFilter struct{}

func (CategoryFilter) Sortable() []string {
	return []string{"name", "is_active", "created_at"}
}

func (CategoryFilter) Apply(db *gorm.DB, q ListQuery) *gorm.DB {
	if q.Search != "" {
		db = db.Where("LOWER(name) LIKE ?", likePattern(q.Search))
	}
	return applyIsActive(db, q)
}

type CastMemberFilter struct{}

func (CastMemberFilter) Sortable() []string {
	return []string{"name", "type", "created_at"}
}

func (CastMemberFilter) Apply(db *gorm.DB, q ListQuery) *gorm.DB {
	if q.Search != "" {
		db = db.Where("LOWER(name) LIKE ?", likePattern(q.Search))
	}
	if raw := q.Param("type"); raw != "" {
		// Unknown types are ignored rather than matching nothing.
		if t, err := strconv.Atoi(raw); err == nil && models.CastMemberType(t).Valid() {
			db = db.Where("type = ?", t)
		}
	}
	return db
}

type GenreFilter struct{}

func (GenreFilter) Sortable() []string {
	return []string{"name", "is_active", "created_at"}
}

func (GenreFilter) Apply(db *gorm.DB, q ListQuery) *gorm.DB {
	if q.Search != "" {
		db = db.Where("LOWER(name) LIKE ?", likePattern(q.Search))
	}
	if ids := splitIDs(q.Param("categories")); len(ids) > 0 {
		db = db.Where("id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Table(CategoryGenre.Table).
			Select(CategoryGenre.OwnerColumn).
			Where(CategoryGenre.RelatedColumn+" IN ?", ids))
	}
	return applyIsActive(db, q)
}

type VideoFilter struct{}

func (VideoFilter) Sortable() []string {
	return []string{"title", "year_launched", "rating", "duration", "opened", "created_at"}
}

func (VideoFilter) Apply(db *gorm.DB, q ListQuery) *gorm.DB {
	if q.Search != "" {
		db = db.Where("LOWER(title) LIKE ?", likePattern(q.Search))
	}
	if rating := q.Param("rating"); rating != "" && models.ValidRating(rating) {
		db = db.Where("rating = ?", rating)
	}
	for param, pivot := range map[string]Pivot{"categories": CategoryVideo, "genres": GenreVideo} {
		if ids := splitIDs(q.Param(param)); len(ids) > 0 {
			db = db.Where("id IN (?)", db.Session(&gorm.Session{NewDB: true}).
				Table(pivot.Table).
				Select(pivot.OwnerColumn).
				Where(pivot.RelatedColumn+" IN ?", ids))
		}
	}
	return db
}
