package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"video-catalog/internal/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

const (
	defaultSortColumn = "created_at"
	defaultSortDir    = "desc"
)

// ListQuery carries the listing parameters accepted by every index endpoint.
type ListQuery struct {
	Search  string
	Page    int
	PerPage int
	Sort    string
	Dir     string
	All     bool
	// Params holds entity specific filters such as "type" or "categories".
	Params map[string]string
}

func (q ListQuery) Param(name string) string {
	if q.Params == nil {
		return ""
	}
	return q.Params[name]
}

// Filter narrows a listing for one entity and declares its sortable columns.
type Filter interface {
	Sortable() []string
	Apply(db *gorm.DB, q ListQuery) *gorm.DB
}

type CrudRepository[M any] interface {
	List(ctx context.Context, q ListQuery, f Filter) ([]M, int64, error)
	FindByID(ctx context.Context, id string) (*M, error)
	FindTrashed(ctx context.Context, id string) (*M, error)
	Create(ctx context.Context, m *M) error
	Save(ctx context.Context, m *M) error
	Delete(ctx context.Context, m *M) error
	Restore(ctx context.Context, m *M) error
	ForceDelete(ctx context.Context, m *M) error
	Revert(ctx context.Context, m *M) error
	CountExisting(ctx context.Context, ids []string) (int64, error)
	WithTx(tx *gorm.DB) CrudRepository[M]
}

type crudRepository[M any] struct {
	db       *gorm.DB
	timeout  time.Duration
	preloads []string
}

// NewCrudRepository builds a repository for model M. Preloaded relations are
// loaded with-trashed.
func NewCrudRepository[M any](db *database.Database, preloads ...string) CrudRepository[M] {
	return &crudRepository[M]{
		db:       db.DB,
		timeout:  db.GetQueryTimeout(),
		preloads: preloads,
	}
}

func (r *crudRepository[M]) WithTx(tx *gorm.DB) CrudRepository[M] {
	return &crudRepository[M]{
		db:       tx,
		timeout:  r.timeout,
		preloads: r.preloads,
	}
}

func (r *crudRepository[M]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *crudRepository[M]) withPreloads(query *gorm.DB) *gorm.DB {
	for _, name := range r.preloads {
		query = query.Preload(name, func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		})
	}
	return query
}

func (r *crudRepository[M]) List(ctx context.Context, q ListQuery, f Filter) ([]M, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var items []M
	var total int64

	query := r.db.WithContext(ctx).Model(new(M))
	if f != nil {
		query = f.Apply(query, q)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, dir := sortOrder(q, f)
	query = r.withPreloads(query).Order(column + " " + dir)

	if !q.All {
		offset := (q.Page - 1) * q.PerPage
		query = query.Offset(offset).Limit(q.PerPage)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// sortOrder falls back to created_at desc when the column is not sortable.
func sortOrder(q ListQuery, f Filter) (string, string) {
	if q.Sort == "" || f == nil {
		return defaultSortColumn, defaultSortDir
	}

	for _, column := range f.Sortable() {
		if column == q.Sort {
			dir := "desc"
			if strings.EqualFold(q.Dir, "asc") {
				dir = "asc"
			}
			return column, dir
		}
	}
	return defaultSortColumn, defaultSortDir
}

func (r *crudRepository[M]) FindByID(ctx context.Context, id string) (*M, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var m M
	err := r.withPreloads(r.db.WithContext(ctx)).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *crudRepository[M]) FindTrashed(ctx context.Context, id string) (*M, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var m M
	err := r.db.WithContext(ctx).Unscoped().
		Where("id = ? AND deleted_at IS NOT NULL", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *crudRepository[M]) Create(ctx context.Context, m *M) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
}

func (r *crudRepository[M]) Save(ctx context.Context, m *M) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error
}

// Delete soft-deletes m.
func (r *crudRepository[M]) Delete(ctx context.Context, m *M) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Delete(m).Error
}

func (r *crudRepository[M]) Restore(ctx context.Context, m *M) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Unscoped().Model(m).Update("deleted_at", nil).Error
}

// ForceDelete removes m for good, bypassing soft delete.
func (r *crudRepository[M]) ForceDelete(ctx context.Context, m *M) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Unscoped().Delete(m).Error
}

// Revert writes every column of m back as is, updated_at included.
func (r *crudRepository[M]) Revert(ctx context.Context, m *M) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Unscoped().Model(m).
		Select("*").Omit(clause.Associations).
		UpdateColumns(m).Error
}

// CountExisting counts non-deleted rows among ids.
func (r *crudRepository[M]) CountExisting(ctx context.Context, ids []string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := r.db.WithContext(ctx).Model(new(M)).Where("id IN ?", ids).Count(&count).Error
	return count, err
}
