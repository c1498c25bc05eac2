package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var RatingList = []string{"L", "10", "14", "16", "18"}

// Upload limits in KiB.
const (
	ThumbMaxSize   = 1024 * 5
	BannerMaxSize  = 1024 * 10
	TrailerMaxSize = 1024 * 1024 * 1
	VideoMaxSize   = 1024 * 1024 * 50
)

const (
	FieldThumbFile   = "thumb_file"
	FieldBannerFile  = "banner_file"
	FieldTrailerFile = "trailer_file"
	FieldVideoFile   = "video_file"
)

var VideoFileFields = []string{FieldThumbFile, FieldBannerFile, FieldTrailerFile, FieldVideoFile}

type Video struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	Title        string         `gorm:"not null;size:255;index" json:"title"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	YearLaunched int            `gorm:"not null;index" json:"year_launched"`
	Opened       bool           `gorm:"not null" json:"opened"`
	Rating       string         `gorm:"not null;size:3" json:"rating"`
	Duration     int            `gorm:"not null" json:"duration"`
	ThumbFile    *string        `json:"thumb_file"`
	BannerFile   *string        `json:"banner_file"`
	TrailerFile  *string        `json:"trailer_file"`
	VideoFile    *string        `json:"video_file"`
	Categories   []Category     `gorm:"many2many:category_video;" json:"categories,omitempty"`
	Genres       []Genre        `gorm:"many2many:genre_video;" json:"genres,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// UploadDir is the directory holding the video's files in the blob store.
func (v *Video) UploadDir() string {
	return v.ID
}

func (v *Video) fileSlot(field string) **string {
	switch field {
	case FieldThumbFile:
		return &v.ThumbFile
	case FieldBannerFile:
		return &v.BannerFile
	case FieldTrailerFile:
		return &v.TrailerFile
	case FieldVideoFile:
		return &v.VideoFile
	}
	return nil
}

// FileName returns the stored name in a file slot, or "" when empty.
func (v *Video) FileName(field string) string {
	slot := v.fileSlot(field)
	if slot == nil || *slot == nil {
		return ""
	}
	return **slot
}

func (v *Video) SetFileName(field, name string) {
	slot := v.fileSlot(field)
	if slot == nil {
		return
	}
	if name == "" {
		*slot = nil
		return
	}
	*slot = &name
}

// FileNames maps every non-empty file slot to its stored name.
func (v *Video) FileNames() map[string]string {
	names := make(map[string]string, len(VideoFileFields))
	for _, field := range VideoFileFields {
		if name := v.FileName(field); name != "" {
			names[field] = name
		}
	}
	return names
}

func ValidRating(rating string) bool {
	for _, r := range RatingList {
		if r == rating {
			return true
		}
	}
	return false
}
