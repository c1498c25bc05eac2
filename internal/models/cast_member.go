package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CastMemberType int

const (
	CastMemberTypeDirector CastMemberType = 1
	CastMemberTypeActor    CastMemberType = 2
)

var CastMemberTypes = []CastMemberType{CastMemberTypeDirector, CastMemberTypeActor}

func (t CastMemberType) Valid() bool {
	for _, v := range CastMemberTypes {
		if v == t {
			return true
		}
	}
	return false
}

type CastMember struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Name      string         `gorm:"not null;size:255;index" json:"name"`
	Type      CastMemberType `gorm:"not null;index" json:"type"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (CastMember) TableName() string {
	return "cast_members"
}

func (m *CastMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
