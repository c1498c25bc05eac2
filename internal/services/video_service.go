package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"video-catalog/internal/config"
	"video-catalog/internal/database"
	"video-catalog/internal/models"
	"video-catalog/internal/repository"
	"video-catalog/internal/rules"
	"video-catalog/internal/storage"
	"video-catalog/internal/uploads"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type VideoInput struct {
	Title        string `json:"title" validate:"required,max=255"`
	Description  string `json:"description" validate:"required"`
	YearLaunched int    `json:"year_launched" validate:"required,year"`
	Opened       *bool  `json:"opened"`
	Rating       string `json:"rating" validate:"required,rating" enums:"L,10,14,16,18"`
	Duration     int    `json:"duration" validate:"required,min=1"`
	// Relation fields are nil when not sent; an empty slice clears the relation.
	CategoriesID []string `json:"categories_id" validate:"omitempty,dive,required"`
	GenresID     []string `json:"genres_id" validate:"omitempty,dive,required"`
	// Files holds uploads keyed by file field; multipart only.
	Files map[string]*uploads.File `json:"-"`
}

type fileRule struct {
	maxKB int64
	image bool
	mimes []string
}

var videoFileRules = map[string]fileRule{
	models.FieldThumbFile:   {maxKB: models.ThumbMaxSize, image: true},
	models.FieldBannerFile:  {maxKB: models.BannerMaxSize, image: true},
	models.FieldTrailerFile: {maxKB: models.TrailerMaxSize, mimes: []string{"video/mp4"}},
	models.FieldVideoFile:   {maxKB: models.VideoMaxSize, mimes: []string{"video/mp4"}},
}

type videoEntity struct {
	categories repository.CrudRepository[models.Category]
	genres     repository.CrudRepository[models.Genre]
	relations  repository.RelationRepository
}

func (videoEntity) New() *models.Video {
	return &models.Video{ID: uuid.NewString()}
}

func (videoEntity) Filter() repository.Filter {
	return repository.VideoFilter{}
}

func (e videoEntity) RulesStore(ctx context.Context, in *VideoInput) error {
	return e.rules(ctx, in, true)
}

func (e videoEntity) RulesUpdate(ctx context.Context, _ *models.Video, in *VideoInput) error {
	return e.rules(ctx, in, false)
}

func (e videoEntity) rules(ctx context.Context, in *VideoInput, creating bool) error {
	verr, err := validateStruct(ctx, in)
	if err != nil {
		return err
	}
	if creating {
		requireRelation(verr, "categories_id", in.CategoriesID)
		requireRelation(verr, "genres_id", in.GenresID)
	}
	if err := checkExists(ctx, verr, e.categories, "categories_id", in.CategoriesID); err != nil {
		return err
	}
	if err := checkExists(ctx, verr, e.genres, "genres_id", in.GenresID); err != nil {
		return err
	}

	if in.CategoriesID != nil && in.GenresID != nil && !verr.Has("genres_id") {
		rule := rules.NewGenresHasCategoriesRule(e.relations, in.CategoriesID)
		ok, err := rule.Passes(ctx, in.GenresID)
		if err != nil {
			return fmt.Errorf("check genres categories: %w", err)
		}
		if !ok {
			verr.Add("genres_id", rule.Message())
		}
	}

	validateFiles(verr, in.Files)
	return verr.OrNil()
}

func validateFiles(verr *ValidationError, files map[string]*uploads.File) {
	for field, f := range files {
		rule, ok := videoFileRules[field]
		if !ok || f == nil {
			continue
		}
		attr := attrName(field)
		switch {
		case rule.image && !f.IsImage():
			verr.Add(field, fmt.Sprintf("The %s must be an image.", attr))
		case len(rule.mimes) > 0 && !f.HasMimeType(rule.mimes...):
			verr.Add(field, fmt.Sprintf("The %s must be a file of type: %s.", attr, rule.mimes[0]))
		}
		if f.SizeKB() > rule.maxKB {
			verr.Add(field, fmt.Sprintf("The %s may not be greater than %d kilobytes.", attr, rule.maxKB))
		}
	}
}

func (videoEntity) Fill(m *models.Video, in *VideoInput) {
	m.Title = in.Title
	m.Description = in.Description
	m.YearLaunched = in.YearLaunched
	m.Rating = in.Rating
	m.Duration = in.Duration
	if in.Opened != nil {
		m.Opened = *in.Opened
	}
}

// VideoService writes a video, its relations and its files as one unit.
// Files are staged while the transaction is open and only promoted to the
// video's directory after commit.
type VideoService struct {
	*BasicCrud[models.Video, VideoInput]
	db            *database.Database
	relations     repository.RelationRepository
	store         storage.Store
	presignExpiry time.Duration
}

func NewVideoService(
	db *database.Database,
	repo repository.CrudRepository[models.Video],
	categories repository.CrudRepository[models.Category],
	genres repository.CrudRepository[models.Genre],
	relations repository.RelationRepository,
	store storage.Store,
	cfg *config.Config,
	logger *logrus.Logger,
) *VideoService {
	entity := videoEntity{
		categories: categories,
		genres:     genres,
		relations:  relations,
	}
	return &VideoService{
		BasicCrud:     NewBasicCrud[models.Video, VideoInput](repo, entity, cfg.Pagination, logger),
		db:            db,
		relations:     relations,
		store:         store,
		presignExpiry: cfg.Storage.PresignExpiry,
	}
}

func (s *VideoService) Create(ctx context.Context, in *VideoInput) (*models.Video, error) {
	if err := s.entity.RulesStore(ctx, in); err != nil {
		return nil, err
	}

	video := s.entity.New()
	s.entity.Fill(video, in)
	files := assignFiles(video, in.Files)
	att := uploads.New(s.store, video, s.logger)

	var staged *uploads.Staged
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, video); err != nil {
			return fmt.Errorf("create video: %w", err)
		}
		if err := s.handleRelations(ctx, tx, video.ID, in); err != nil {
			return err
		}
		var err error
		staged, err = stage(ctx, att, files)
		return err
	})
	if err != nil {
		if staged != nil {
			staged.Purge(ctx)
		}
		return nil, err
	}

	if err := s.promote(ctx, video, staged); err != nil {
		s.discardCreated(ctx, video, staged)
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"video_id": video.ID,
		"files":    len(files),
	}).Info("Video created")

	return s.repo.FindByID(ctx, video.ID)
}

func (s *VideoService) Update(ctx context.Context, id string, in *VideoInput) (*models.Video, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.entity.RulesUpdate(ctx, video, in); err != nil {
		return nil, err
	}

	previous := snapshotVideo(video, in)
	current := video.FileNames()
	payload := filePayload(in.Files)
	files := uploads.ExtractFiles(payload)
	old := uploads.Superseded(current, payload)

	s.entity.Fill(video, in)
	for field, name := range payload {
		video.SetFileName(field, name.(string))
	}
	att := uploads.New(s.store, video, s.logger)

	var staged *uploads.Staged
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, video); err != nil {
			return fmt.Errorf("update video %s: %w", id, err)
		}
		if err := s.handleRelations(ctx, tx, video.ID, in); err != nil {
			return err
		}
		var err error
		staged, err = stage(ctx, att, files)
		return err
	})
	if err != nil {
		if staged != nil {
			staged.Purge(ctx)
		}
		return nil, err
	}

	if err := s.promote(ctx, video, staged); err != nil {
		s.revertUpdate(ctx, previous, staged)
		return nil, err
	}

	if len(files) > 0 {
		if err := att.DeleteOldFiles(ctx, old); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"video_id": video.ID,
				"files":    old,
			}).Warn("Failed to delete replaced video files")
		}
	}

	return s.repo.FindByID(ctx, id)
}

// PresignFile returns a time limited download URL for one of the video's files.
func (s *VideoService) PresignFile(ctx context.Context, id, field string) (string, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if _, ok := videoFileRules[field]; !ok {
		verr := NewValidationError()
		verr.Add("field", "The selected field is invalid.")
		return "", verr
	}

	name := video.FileName(field)
	if name == "" {
		return "", ErrNotFound
	}

	att := uploads.New(s.store, video, s.logger)
	url, err := s.store.PresignedURL(ctx, att.RelativePath(name), s.presignExpiry)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return url, nil
}

func (s *VideoService) PresignExpiry() time.Duration {
	return s.presignExpiry
}

// FileURL is the public URL of a stored file, or "" when the slot is empty.
func (s *VideoService) FileURL(video *models.Video, field string) string {
	return uploads.New(s.store, video, nil).URL(video.FileName(field))
}

func (s *VideoService) handleRelations(ctx context.Context, tx *gorm.DB, videoID string, in *VideoInput) error {
	relations := s.relations.WithTx(tx)
	if in.CategoriesID != nil {
		if err := relations.Sync(ctx, repository.CategoryVideo, videoID, in.CategoriesID); err != nil {
			return err
		}
	}
	if in.GenresID != nil {
		if err := relations.Sync(ctx, repository.GenreVideo, videoID, in.GenresID); err != nil {
			return err
		}
	}
	return nil
}

func (s *VideoService) promote(ctx context.Context, video *models.Video, staged *uploads.Staged) error {
	if staged == nil {
		return nil
	}
	if err := staged.Promote(ctx); err != nil {
		staged.Purge(ctx)
		s.logger.WithError(err).WithField("video_id", video.ID).Error("Failed to promote staged video files")
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

// videoSnapshot is the state an update has to restore when its files cannot
// be promoted after commit.
type videoSnapshot struct {
	video      models.Video
	categories []string
	genres     []string
}

// snapshotVideo copies video before in is applied. Relation IDs are kept only
// for the relations in is about to sync.
func snapshotVideo(video *models.Video, in *VideoInput) *videoSnapshot {
	snap := &videoSnapshot{video: *video}
	if in.CategoriesID != nil {
		snap.categories = make([]string, 0, len(video.Categories))
		for _, c := range video.Categories {
			snap.categories = append(snap.categories, c.ID)
		}
	}
	if in.GenresID != nil {
		snap.genres = make([]string, 0, len(video.Genres))
		for _, g := range video.Genres {
			snap.genres = append(snap.genres, g.ID)
		}
	}
	return snap
}

// discardCreated removes a committed video whose files never reached the store.
func (s *VideoService) discardCreated(ctx context.Context, video *models.Video, staged *uploads.Staged) {
	s.dropPromoted(ctx, video, staged, nil)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		relations := s.relations.WithTx(tx)
		if err := relations.Sync(ctx, repository.CategoryVideo, video.ID, []string{}); err != nil {
			return err
		}
		if err := relations.Sync(ctx, repository.GenreVideo, video.ID, []string{}); err != nil {
			return err
		}
		return s.repo.WithTx(tx).ForceDelete(ctx, video)
	})
	if err != nil {
		s.logger.WithError(err).WithField("video_id", video.ID).Error("Failed to discard video after storage failure")
	}
}

// revertUpdate writes the pre-update fields, file names and relations back.
// The previous files were never touched.
func (s *VideoService) revertUpdate(ctx context.Context, snap *videoSnapshot, staged *uploads.Staged) {
	video := &snap.video
	s.dropPromoted(ctx, video, staged, video.FileNames())

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Revert(ctx, video); err != nil {
			return err
		}
		relations := s.relations.WithTx(tx)
		if snap.categories != nil {
			if err := relations.Sync(ctx, repository.CategoryVideo, video.ID, snap.categories); err != nil {
				return err
			}
		}
		if snap.genres != nil {
			if err := relations.Sync(ctx, repository.GenreVideo, video.ID, snap.genres); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.WithError(err).WithField("video_id", video.ID).Error("Failed to revert video after storage failure")
	}
}

// dropPromoted deletes files promoted before the failure, except names the
// restored record still points at.
func (s *VideoService) dropPromoted(ctx context.Context, video *models.Video, staged *uploads.Staged, keep map[string]string) {
	if staged == nil {
		return
	}
	inUse := make(map[string]bool, len(keep))
	for _, name := range keep {
		inUse[name] = true
	}

	att := uploads.New(s.store, video, s.logger)
	for _, f := range staged.Promoted() {
		if inUse[f.HashName()] {
			continue
		}
		if err := att.DeleteFile(ctx, f); err != nil {
			s.logger.WithError(err).WithField("video_id", video.ID).Warn("Failed to remove promoted video file")
		}
	}
}

func stage(ctx context.Context, att *uploads.Attachments, files []*uploads.File) (*uploads.Staged, error) {
	if len(files) == 0 {
		return nil, nil
	}
	staged, err := att.Stage(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return staged, nil
}

func filePayload(files map[string]*uploads.File) map[string]any {
	payload := make(map[string]any, len(files))
	for field, f := range files {
		if _, ok := videoFileRules[field]; ok && f != nil {
			payload[field] = f
		}
	}
	return payload
}

// assignFiles swaps pending files for their stored names on video.
func assignFiles(video *models.Video, files map[string]*uploads.File) []*uploads.File {
	payload := filePayload(files)
	extracted := uploads.ExtractFiles(payload)
	for field, name := range payload {
		video.SetFileName(field, name.(string))
	}
	return extracted
}
