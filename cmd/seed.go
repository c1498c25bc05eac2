package main

import (
	"context"

	"video-catalog/internal/models"
	"video-catalog/internal/repository"
	"video-catalog/internal/seeder"
	"video-catalog/internal/services"

	"github.com/spf13/cobra"
)

var seedOpts = seeder.DefaultOptions()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the catalog with sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBootstrap()
		if err != nil {
			return err
		}
		defer b.close()

		if err := b.db.AutoMigrate(); err != nil {
			return err
		}

		store, err := b.newStore()
		if err != nil {
			return err
		}

		db, cfg, log := b.db, b.cfg, b.log
		categoryRepo := repository.NewCrudRepository[models.Category](db)
		genreRepo := repository.NewCrudRepository[models.Genre](db, "Categories")
		videoRepo := repository.NewCrudRepository[models.Video](db, "Categories", "Genres")
		relationRepo := repository.NewRelationRepository(db)

		s := seeder.New(
			services.NewCategoryService(categoryRepo, cfg.Pagination, log),
			services.NewCastMemberService(repository.NewCrudRepository[models.CastMember](db), cfg.Pagination, log),
			services.NewGenreService(db, genreRepo, categoryRepo, relationRepo, cfg.Pagination, log),
			services.NewVideoService(db, videoRepo, categoryRepo, genreRepo, relationRepo, store, cfg, log),
			log,
		)

		_, err = s.Run(context.Background(), seedOpts)
		return err
	},
}

func init() {
	f := seedCmd.Flags()
	f.IntVar(&seedOpts.Categories, "categories", seedOpts.Categories, "number of categories")
	f.IntVar(&seedOpts.Genres, "genres", seedOpts.Genres, "number of genres")
	f.IntVar(&seedOpts.CastMembers, "cast-members", seedOpts.CastMembers, "number of cast members")
	f.IntVar(&seedOpts.Videos, "videos", seedOpts.Videos, "number of videos")
	f.BoolVar(&seedOpts.WithFiles, "with-files", seedOpts.WithFiles, "attach sample files to videos")
	f.Int64Var(&seedOpts.Seed, "seed", seedOpts.Seed, "random seed")
}
