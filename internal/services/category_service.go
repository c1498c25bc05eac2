package services

import (
	"context"

	"video-catalog/internal/config"
	"video-catalog/internal/models"
	"video-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

type CategoryInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type categoryEntity struct{}

func (categoryEntity) New() *models.Category {
	return &models.Category{IsActive: true}
}

func (categoryEntity) Filter() repository.Filter {
	return repository.CategoryFilter{}
}

func (categoryEntity) RulesStore(ctx context.Context, in *CategoryInput) error {
	verr, err := validateStruct(ctx, in)
	if err != nil {
		return err
	}
	return verr.OrNil()
}

func (e categoryEntity) RulesUpdate(ctx context.Context, _ *models.Category, in *CategoryInput) error {
	return e.RulesStore(ctx, in)
}

func (categoryEntity) Fill(m *models.Category, in *CategoryInput) {
	m.Name = in.Name
	if in.Description != nil {
		if *in.Description == "" {
			m.Description = nil
		} else {
			m.Description = in.Description
		}
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
}

func NewCategoryService(repo repository.CrudRepository[models.Category], pagination config.PaginationConfig, logger *logrus.Logger) CrudService[models.Category, CategoryInput] {
	return NewBasicCrud[models.Category, CategoryInput](repo, categoryEntity{}, pagination, logger)
}
