package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"video-catalog/internal/config"
	"video-catalog/internal/database"
	"video-catalog/internal/storage"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// @title Video Catalog API
// @version 1.0
// @description Admin API for the video catalog: categories, genres, cast members and videos with file uploads
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8010
// @BasePath /api/v1
// @schemes http https

var rootCmd = &cobra.Command{
	Use:   "video-catalog",
	Short: "Video catalog admin API",
	Long: `video-catalog serves the admin REST API for categories, genres, cast
members and videos, and stores uploaded video files in an S3 compatible bucket.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	cobra.OnInitialize(loadEnvFile)
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap holds what every command needs.
type bootstrap struct {
	cfg *config.Config
	log *logrus.Logger
	db  *database.Database
}

func newBootstrap() (*bootstrap, error) {
	cfg := config.Load()
	log := setupLogger()

	if err := cfg.Validate(); err != nil {
		log.Warnf("Configuration validation warning: %v", err)
	}

	db, err := database.Connect(cfg.Database, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &bootstrap{cfg: cfg, log: log, db: db}, nil
}

func (b *bootstrap) close() {
	if err := b.db.Close(); err != nil {
		b.log.Errorf("Error closing database connection: %v", err)
	}
}

func (b *bootstrap) newStore() (storage.Store, error) {
	switch b.cfg.Storage.Driver {
	case "memory":
		b.log.Warn("Using in-memory file storage, uploads are lost on restart")
		return storage.NewMemoryStore(b.cfg.Storage.PublicURL), nil
	default:
		store, err := storage.NewMinIOStore(&b.cfg.Storage, b.log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MinIO storage: %w", err)
		}
		return store, nil
	}
}

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if os.Getenv("GO_ENV") == "dev" || os.Getenv("GO_ENV") == "development" {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

func loadEnvFile() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})
	log.SetOutput(os.Stdout)

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "dev"
	}

	execDir, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not get working directory: %v", err)
		return
	}

	envFile := filepath.Join(execDir, "envs", ".env."+env)
	if err := godotenv.Load(envFile); err != nil {
		log.Warnf("Could not load environment file %s: %v", envFile, err)

		defaultEnvFile := filepath.Join(execDir, "envs", ".env")
		if err := godotenv.Load(defaultEnvFile); err != nil {
			log.Warnf("Could not load default environment file: %v", err)
		} else {
			log.Infof("Environment loaded from default file %s", defaultEnvFile)
		}
	} else {
		log.Infof("Environment loaded from file %s", envFile)
	}
}
