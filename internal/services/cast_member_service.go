package services

import (
	"context"

	"video-catalog/internal/config"
	"video-catalog/internal/models"
	"video-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

type CastMemberInput struct {
	Name string `json:"name" validate:"required,max=255"`
	Type int    `json:"type" validate:"required,cast_member_type" enums:"1,2"`
}

type castMemberEntity struct{}

func (castMemberEntity) New() *models.CastMember {
	return &models.CastMember{}
}

func (castMemberEntity) Filter() repository.Filter {
	return repository.CastMemberFilter{}
}

func (castMemberEntity) RulesStore(ctx context.Context, in *CastMemberInput) error {
	verr, err := validateStruct(ctx, in)
	if err != nil {
		return err
	}
	return verr.OrNil()
}

func (e castMemberEntity) RulesUpdate(ctx context.Context, _ *models.CastMember, in *CastMemberInput) error {
	return e.RulesStore(ctx, in)
}

func (castMemberEntity) Fill(m *models.CastMember, in *CastMemberInput) {
	m.Name = in.Name
	m.Type = models.CastMemberType(in.Type)
}

func NewCastMemberService(repo repository.CrudRepository[models.CastMember], pagination config.PaginationConfig, logger *logrus.Logger) CrudService[models.CastMember, CastMemberInput] {
	return NewBasicCrud[models.CastMember, CastMemberInput](repo, castMemberEntity{}, pagination, logger)
}
