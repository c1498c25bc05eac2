// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"video-catalog/internal/config"
	"video-catalog/internal/database"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// NewDatabase opens a migrated in-memory SQLite database with foreign keys on.
func NewDatabase(t testing.TB) *database.Database {
	t.Helper()

	db, err := database.Connect(config.DatabaseConfig{
		Driver:          "sqlite",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		QueryTimeout:    5 * time.Second,
	}, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// NewLogger returns a logger that discards output and records entries.
func NewLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}
