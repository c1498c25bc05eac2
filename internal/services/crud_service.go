package services

import (
	"context"
	"fmt"

	"video-catalog/internal/config"
	"video-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

// Entity is what an entity type supplies to the generic CRUD service.
type Entity[M any, In any] interface {
	New() *M
	Filter() repository.Filter
	RulesStore(ctx context.Context, in *In) error
	RulesUpdate(ctx context.Context, m *M, in *In) error
	Fill(m *M, in *In)
}

type CrudService[M any, In any] interface {
	List(ctx context.Context, q repository.ListQuery) ([]M, int64, error)
	Get(ctx context.Context, id string) (*M, error)
	Create(ctx context.Context, in *In) (*M, error)
	Update(ctx context.Context, id string, in *In) (*M, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*M, error)
	// Paginate clamps the paging fields of q to the configured limits.
	Paginate(q repository.ListQuery) repository.ListQuery
}

// BasicCrud implements CrudService for entities without relations or files.
type BasicCrud[M any, In any] struct {
	repo       repository.CrudRepository[M]
	entity     Entity[M, In]
	pagination config.PaginationConfig
	logger     *logrus.Logger
}

func NewBasicCrud[M any, In any](repo repository.CrudRepository[M], entity Entity[M, In], pagination config.PaginationConfig, logger *logrus.Logger) *BasicCrud[M, In] {
	return &BasicCrud[M, In]{
		repo:       repo,
		entity:     entity,
		pagination: pagination,
		logger:     logger,
	}
}

func (s *BasicCrud[M, In]) Paginate(q repository.ListQuery) repository.ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = s.pagination.PerPage
	}
	if q.PerPage > s.pagination.MaxPerPage {
		q.PerPage = s.pagination.MaxPerPage
	}
	return q
}

func (s *BasicCrud[M, In]) List(ctx context.Context, q repository.ListQuery) ([]M, int64, error) {
	items, total, err := s.repo.List(ctx, s.Paginate(q), s.entity.Filter())
	if err != nil {
		return nil, 0, fmt.Errorf("list: %w", err)
	}
	return items, total, nil
}

func (s *BasicCrud[M, In]) Get(ctx context.Context, id string) (*M, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BasicCrud[M, In]) Create(ctx context.Context, in *In) (*M, error) {
	if err := s.entity.RulesStore(ctx, in); err != nil {
		return nil, err
	}

	m := s.entity.New()
	s.entity.Fill(m, in)
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	return m, nil
}

func (s *BasicCrud[M, In]) Update(ctx context.Context, id string, in *In) (*M, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.entity.RulesUpdate(ctx, m, in); err != nil {
		return nil, err
	}

	s.entity.Fill(m, in)
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("update %s: %w", id, err)
	}
	return m, nil
}

func (s *BasicCrud[M, In]) Delete(ctx context.Context, id string) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, m); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

func (s *BasicCrud[M, In]) Restore(ctx context.Context, id string) (*M, error) {
	m, err := s.repo.FindTrashed(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Restore(ctx, m); err != nil {
		return nil, fmt.Errorf("restore %s: %w", id, err)
	}
	return s.repo.FindByID(ctx, id)
}
