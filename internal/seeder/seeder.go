// Package seeder fills an empty catalog with sample data through the same
// services the API uses.
package seeder

import (
	"context"
	"fmt"
	"math/rand"

	"video-catalog/internal/models"
	"video-catalog/internal/services"
	"video-catalog/internal/uploads"

	"github.com/sirupsen/logrus"
)

type Options struct {
	Categories  int
	Genres      int
	CastMembers int
	Videos      int
	// WithFiles attaches small sample images and videos to every video.
	WithFiles bool
	Seed      int64
}

func DefaultOptions() Options {
	return Options{
		Categories:  10,
		Genres:      15,
		CastMembers: 20,
		Videos:      30,
		WithFiles:   true,
		Seed:        1,
	}
}

type Seeder struct {
	categories  services.CrudService[models.Category, services.CategoryInput]
	castMembers services.CrudService[models.CastMember, services.CastMemberInput]
	genres      services.CrudService[models.Genre, services.GenreInput]
	videos      services.CrudService[models.Video, services.VideoInput]
	logger      *logrus.Logger
}

func New(
	categories services.CrudService[models.Category, services.CategoryInput],
	castMembers services.CrudService[models.CastMember, services.CastMemberInput],
	genres services.CrudService[models.Genre, services.GenreInput],
	videos services.CrudService[models.Video, services.VideoInput],
	logger *logrus.Logger,
) *Seeder {
	return &Seeder{
		categories:  categories,
		castMembers: castMembers,
		genres:      genres,
		videos:      videos,
		logger:      logger,
	}
}

// Result counts the records created by Run.
type Result struct {
	Categories  int
	Genres      int
	CastMembers int
	Videos      int
}

func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	rnd := rand.New(rand.NewSource(opts.Seed))
	res := &Result{}

	var categoryIDs []string
	for i := 0; i < opts.Categories; i++ {
		c, err := s.categories.Create(ctx, &services.CategoryInput{Name: pick(rnd, categoryNames, i)})
		if err != nil {
			return res, fmt.Errorf("seed category: %w", err)
		}
		categoryIDs = append(categoryIDs, c.ID)
		res.Categories++
	}

	if len(categoryIDs) == 0 {
		s.logger.Warn("No categories seeded, skipping genres and videos")
		opts.Genres, opts.Videos = 0, 0
	}

	genreCategories := make(map[string][]string)
	var genreIDs []string
	for i := 0; i < opts.Genres; i++ {
		ids := sample(rnd, categoryIDs, 3)
		g, err := s.genres.Create(ctx, &services.GenreInput{
			Name:         pick(rnd, genreNames, i),
			CategoriesID: ids,
		})
		if err != nil {
			return res, fmt.Errorf("seed genre: %w", err)
		}
		genreIDs = append(genreIDs, g.ID)
		genreCategories[g.ID] = ids
		res.Genres++
	}

	for i := 0; i < opts.CastMembers; i++ {
		_, err := s.castMembers.Create(ctx, &services.CastMemberInput{
			Name: fmt.Sprintf("%s %s", pick(rnd, firstNames, rnd.Intn(len(firstNames))), pick(rnd, lastNames, rnd.Intn(len(lastNames)))),
			Type: int(models.CastMemberTypes[rnd.Intn(len(models.CastMemberTypes))]),
		})
		if err != nil {
			return res, fmt.Errorf("seed cast member: %w", err)
		}
		res.CastMembers++
	}

	if len(genreIDs) == 0 {
		opts.Videos = 0
	}
	for i := 0; i < opts.Videos; i++ {
		in := s.videoInput(rnd, i, genreIDs, genreCategories, opts.WithFiles)
		if _, err := s.videos.Create(ctx, in); err != nil {
			return res, fmt.Errorf("seed video: %w", err)
		}
		res.Videos++
	}

	s.logger.WithFields(logrus.Fields{
		"categories":   res.Categories,
		"genres":       res.Genres,
		"cast_members": res.CastMembers,
		"videos":       res.Videos,
	}).Info("Catalog seeded")

	return res, nil
}

// videoInput picks genres first and takes the union of their categories so
// every genre shares a category with the video.
func (s *Seeder) videoInput(rnd *rand.Rand, i int, genreIDs []string, genreCategories map[string][]string, withFiles bool) *services.VideoInput {
	genres := sample(rnd, genreIDs, 3)
	seen := make(map[string]bool)
	categories := []string{}
	for _, g := range genres {
		for _, c := range genreCategories[g] {
			if !seen[c] {
				seen[c] = true
				categories = append(categories, c)
			}
		}
	}

	opened := rnd.Intn(2) == 1
	in := &services.VideoInput{
		Title:        fmt.Sprintf("%s %d", pick(rnd, titleWords, rnd.Intn(len(titleWords))), i+1),
		Description:  "Sample video seeded for development.",
		YearLaunched: 1970 + rnd.Intn(55),
		Opened:       &opened,
		Rating:       models.RatingList[rnd.Intn(len(models.RatingList))],
		Duration:     60 + rnd.Intn(120),
		CategoriesID: categories,
		GenresID:     genres,
	}

	if withFiles {
		in.Files = map[string]*uploads.File{
			models.FieldThumbFile:   uploads.FromBytes("thumb.png", SamplePNG),
			models.FieldBannerFile:  uploads.FromBytes("banner.png", SamplePNG),
			models.FieldTrailerFile: uploads.FromBytes("trailer.mp4", SampleMP4),
			models.FieldVideoFile:   uploads.FromBytes("video.mp4", SampleMP4),
		}
	}
	return in
}

// sample returns up to n distinct ids, at least one when ids is not empty.
func sample(rnd *rand.Rand, ids []string, n int) []string {
	if len(ids) == 0 {
		return []string{}
	}
	k := 1 + rnd.Intn(n)
	if k > len(ids) {
		k = len(ids)
	}
	out := make([]string, 0, k)
	for _, idx := range rnd.Perm(len(ids))[:k] {
		out = append(out, ids[idx])
	}
	return out
}

func pick(rnd *rand.Rand, names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%s %d", names[rnd.Intn(len(names))], i)
}
