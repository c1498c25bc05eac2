package services

import (
	"context"
	"fmt"

	"video-catalog/internal/config"
	"video-catalog/internal/database"
	"video-catalog/internal/models"
	"video-catalog/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GenreInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	IsActive *bool  `json:"is_active"`
	// CategoriesID is nil when the field was not sent.
	CategoriesID []string `json:"categories_id" validate:"omitempty,dive,required"`
}

type genreEntity struct {
	categories repository.CrudRepository[models.Category]
}

func (genreEntity) New() *models.Genre {
	return &models.Genre{IsActive: true}
}

func (genreEntity) Filter() repository.Filter {
	return repository.GenreFilter{}
}

func (e genreEntity) RulesStore(ctx context.Context, in *GenreInput) error {
	verr, err := validateStruct(ctx, in)
	if err != nil {
		return err
	}
	requireRelation(verr, "categories_id", in.CategoriesID)
	if err := checkExists(ctx, verr, e.categories, "categories_id", in.CategoriesID); err != nil {
		return err
	}
	return verr.OrNil()
}

func (e genreEntity) RulesUpdate(ctx context.Context, _ *models.Genre, in *GenreInput) error {
	verr, err := validateStruct(ctx, in)
	if err != nil {
		return err
	}
	if err := checkExists(ctx, verr, e.categories, "categories_id", in.CategoriesID); err != nil {
		return err
	}
	return verr.OrNil()
}

func (genreEntity) Fill(m *models.Genre, in *GenreInput) {
	m.Name = in.Name
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
}

// GenreService writes a genre and its category membership in one transaction.
type GenreService struct {
	*BasicCrud[models.Genre, GenreInput]
	db        *database.Database
	relations repository.RelationRepository
}

func NewGenreService(
	db *database.Database,
	repo repository.CrudRepository[models.Genre],
	categories repository.CrudRepository[models.Category],
	relations repository.RelationRepository,
	pagination config.PaginationConfig,
	logger *logrus.Logger,
) *GenreService {
	return &GenreService{
		BasicCrud: NewBasicCrud[models.Genre, GenreInput](repo, genreEntity{categories: categories}, pagination, logger),
		db:        db,
		relations: relations,
	}
}

func (s *GenreService) Create(ctx context.Context, in *GenreInput) (*models.Genre, error) {
	if err := s.entity.RulesStore(ctx, in); err != nil {
		return nil, err
	}

	genre := s.entity.New()
	s.entity.Fill(genre, in)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, genre); err != nil {
			return fmt.Errorf("create genre: %w", err)
		}
		return s.handleRelations(ctx, tx, genre.ID, in)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithField("genre_id", genre.ID).Debug("Genre created")
	return s.repo.FindByID(ctx, genre.ID)
}

func (s *GenreService) Update(ctx context.Context, id string, in *GenreInput) (*models.Genre, error) {
	genre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.entity.RulesUpdate(ctx, genre, in); err != nil {
		return nil, err
	}

	s.entity.Fill(genre, in)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, genre); err != nil {
			return fmt.Errorf("update genre %s: %w", id, err)
		}
		return s.handleRelations(ctx, tx, genre.ID, in)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

// handleRelations leaves categories untouched when the field was not sent.
func (s *GenreService) handleRelations(ctx context.Context, tx *gorm.DB, genreID string, in *GenreInput) error {
	if in.CategoriesID == nil {
		return nil
	}
	return s.relations.WithTx(tx).Sync(ctx, repository.CategoryGenre, genreID, in.CategoriesID)
}
