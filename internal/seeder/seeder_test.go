package seeder

import (
	"context"
	"testing"
	"time"

	"video-catalog/internal/config"
	"video-catalog/internal/models"
	"video-catalog/internal/repository"
	"video-catalog/internal/services"
	"video-catalog/internal/storage"
	"video-catalog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	logger, hook := testutil.NewLogger()
	store := storage.NewMemoryStore("")
	cfg := &config.Config{
		Storage:    config.StorageConfig{PresignExpiry: time.Minute},
		Pagination: config.PaginationConfig{PerPage: 15, MaxPerPage: 100},
	}

	categoryRepo := repository.NewCrudRepository[models.Category](db)
	genreRepo := repository.NewCrudRepository[models.Genre](db, "Categories")
	videoRepo := repository.NewCrudRepository[models.Video](db, "Categories", "Genres")
	relations := repository.NewRelationRepository(db)

	s := New(
		services.NewCategoryService(categoryRepo, cfg.Pagination, logger),
		services.NewCastMemberService(repository.NewCrudRepository[models.CastMember](db), cfg.Pagination, logger),
		services.NewGenreService(db, genreRepo, categoryRepo, relations, cfg.Pagination, logger),
		services.NewVideoService(db, videoRepo, categoryRepo, genreRepo, relations, store, cfg, logger),
		logger,
	)

	opts := Options{Categories: 4, Genres: 5, CastMembers: 3, Videos: 6, WithFiles: true, Seed: 42}
	res, err := s.Run(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, &Result{Categories: 4, Genres: 5, CastMembers: 3, Videos: 6}, res)

	videos, total, err := videoRepo.List(ctx, repository.ListQuery{All: true}, repository.VideoFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	for _, v := range videos {
		assert.NotEmpty(t, v.Categories)
		assert.NotEmpty(t, v.Genres)
		assert.Len(t, v.FileNames(), 4)
	}
	// identical sample content is stored once per video per extension
	assert.Len(t, store.Keys(), 6*2)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Catalog seeded", hook.LastEntry().Message)
}

func TestSample(t *testing.T) {
	assert.Empty(t, sample(nil, nil, 3))
	assert.Equal(t, []string{}, sample(nil, []string{}, 3))
}
