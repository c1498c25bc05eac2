package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "video-catalog/docs"
	"video-catalog/internal/database"
	"video-catalog/internal/handlers"
	"video-catalog/internal/models"
	"video-catalog/internal/repository"
	"video-catalog/internal/routes"
	"video-catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "run database migrations before serving")
}

func runServe() error {
	b, err := newBootstrap()
	if err != nil {
		return err
	}
	defer b.close()

	cfg, log, db := b.cfg, b.log, b.db

	if autoMigrate {
		if err := db.AutoMigrate(); err != nil {
			return err
		}
	}

	store, err := b.newStore()
	if err != nil {
		return err
	}

	categoryRepo := repository.NewCrudRepository[models.Category](db)
	castMemberRepo := repository.NewCrudRepository[models.CastMember](db)
	genreRepo := repository.NewCrudRepository[models.Genre](db, "Categories")
	videoRepo := repository.NewCrudRepository[models.Video](db, "Categories", "Genres")
	relationRepo := repository.NewRelationRepository(db)

	categoryService := services.NewCategoryService(categoryRepo, cfg.Pagination, log)
	castMemberService := services.NewCastMemberService(castMemberRepo, cfg.Pagination, log)
	genreService := services.NewGenreService(db, genreRepo, categoryRepo, relationRepo, cfg.Pagination, log)
	videoService := services.NewVideoService(db, videoRepo, categoryRepo, genreRepo, relationRepo, store, cfg, log)

	app := fiber.New(fiber.Config{
		AppName:               "Video Catalog API",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		BodyLimit:             cfg.Server.BodyLimit,
		StreamRequestBody:     cfg.Server.StreamBody,
		DisableStartupMessage: false,
		ErrorHandler:          customErrorHandler(log),
	})

	setupMiddleware(app)

	app.Get("/health", healthCheckHandler(db))

	// Swagger documentation
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	routes.Setup(app, routes.Handlers{
		Categories:  handlers.NewCategoryHandler(categoryService, log),
		CastMembers: handlers.NewCastMemberHandler(castMemberService, log),
		Genres:      handlers.NewGenreHandler(genreService, log),
		Videos:      handlers.NewVideoHandler(videoService, log),
		PresignVideoFile: handlers.NewVideoFileHandler(videoService, log).GetPresignedURL,
	})

	// Graceful shutdown
	go gracefulShutdown(app, log)

	log.Infof("Video Catalog API starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Errorf("Failed to start HTTP server: %v", err)
		return err
	}
	return nil
}

func setupMiddleware(app *fiber.App) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Logger middleware
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS, PATCH",
		AllowCredentials: false,
		MaxAge:           86400, // 24 hours
	}))
}

func healthCheckHandler(db *database.Database) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "healthy"
		if err := db.HealthCheck(); err != nil {
			dbStatus = "unhealthy"
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "video-catalog",
			"version":   "1.0.0",
			"database":  dbStatus,
			"driver":    db.Driver(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func customErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": code,
		}).Error("Request error")

		return c.Status(code).JSON(fiber.Map{
			"status":  "error",
			"code":    code,
			"message": err.Error(),
		})
	}
}

func gracefulShutdown(app *fiber.App, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}

	log.Info("Server shutdown complete")
}
