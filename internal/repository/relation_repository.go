package repository

import (
	"context"
	"fmt"
	"time"

	"video-catalog/internal/database"

	"gorm.io/gorm"
)

// Pivot describes a many-to-many junction table.
type Pivot struct {
	Table         string
	OwnerColumn   string
	RelatedColumn string
}

var (
	CategoryGenre = Pivot{Table: "category_genre", OwnerColumn: "genre_id", RelatedColumn: "category_id"}
	CategoryVideo = Pivot{Table: "category_video", OwnerColumn: "video_id", RelatedColumn: "category_id"}
	GenreVideo    = Pivot{Table: "genre_video", OwnerColumn: "video_id", RelatedColumn: "genre_id"}
)

type RelationRepository interface {
	// Sync makes ids the complete related set of ownerID.
	Sync(ctx context.Context, p Pivot, ownerID string, ids []string) error
	RelatedIDs(ctx context.Context, p Pivot, ownerID string) ([]string, error)
	CategoryIDsForGenre(ctx context.Context, genreID string) ([]string, error)
	WithTx(tx *gorm.DB) RelationRepository
}

type relationRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewRelationRepository(db *database.Database) RelationRepository {
	return &relationRepository{
		db:      db.DB,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *relationRepository) WithTx(tx *gorm.DB) RelationRepository {
	return &relationRepository{
		db:      tx,
		timeout: r.timeout,
	}
}

func (r *relationRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *relationRepository) Sync(ctx context.Context, p Pivot, ownerID string, ids []string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	db := r.db.WithContext(ctx)
	ids = dedupe(ids)

	detach := "DELETE FROM " + p.Table + " WHERE " + p.OwnerColumn + " = ?"
	args := []interface{}{ownerID}
	if len(ids) > 0 {
		detach += " AND " + p.RelatedColumn + " NOT IN ?"
		args = append(args, ids)
	}
	if err := db.Exec(detach, args...).Error; err != nil {
		return fmt.Errorf("detach %s: %w", p.Table, err)
	}

	var current []string
	if err := db.Table(p.Table).Where(p.OwnerColumn+" = ?", ownerID).Pluck(p.RelatedColumn, &current).Error; err != nil {
		return fmt.Errorf("read %s: %w", p.Table, err)
	}
	attached := make(map[string]bool, len(current))
	for _, id := range current {
		attached[id] = true
	}

	for _, id := range ids {
		if attached[id] {
			continue
		}
		err := db.Exec(
			"INSERT INTO "+p.Table+" ("+p.OwnerColumn+", "+p.RelatedColumn+") VALUES (?, ?)",
			ownerID, id,
		).Error
		if err != nil {
			return fmt.Errorf("attach %s %s: %w", p.Table, id, err)
		}
	}
	return nil
}

func (r *relationRepository) RelatedIDs(ctx context.Context, p Pivot, ownerID string) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var ids []string
	err := r.db.WithContext(ctx).Table(p.Table).
		Where(p.OwnerColumn+" = ?", ownerID).
		Order(p.RelatedColumn).
		Pluck(p.RelatedColumn, &ids).Error
	return ids, err
}

func (r *relationRepository) CategoryIDsForGenre(ctx context.Context, genreID string) ([]string, error) {
	return r.RelatedIDs(ctx, CategoryGenre, genreID)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
