package database

import (
	"testing"
	"time"

	"video-catalog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:          "sqlite",
		MaxOpenConns:    1, // SQLite in-memory requires single connection
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		QueryTimeout:    5 * time.Second,
	}
}

func TestConnect_SQLite(t *testing.T) {
	db, err := Connect(sqliteConfig(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.HealthCheck())
	assert.Equal(t, "sqlite", db.Driver())
	assert.Equal(t, 5*time.Second, db.GetQueryTimeout())
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	cfg := sqliteConfig()
	cfg.Driver = "oracle"

	db, err := Connect(cfg, "whatever")
	assert.Nil(t, db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestAutoMigrate_CreatesJunctionTables(t *testing.T) {
	db, err := Connect(sqliteConfig(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.AutoMigrate())

	for _, table := range []string{"categories", "genres", "cast_members", "videos", "category_genre", "category_video", "genre_video"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestJunctionTables_EnforceForeignKeys(t *testing.T) {
	db, err := Connect(sqliteConfig(), ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.AutoMigrate())

	err = db.Table("category_genre").Create(map[string]interface{}{
		"genre_id":    "missing-genre",
		"category_id": "missing-category",
	}).Error
	assert.Error(t, err)
}
