package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8010", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 15, cfg.Pagination.PerPage)
	assert.Equal(t, 100, cfg.Pagination.MaxPerPage)
	assert.Equal(t, 15*time.Minute, cfg.Storage.PresignExpiry)
	assert.True(t, cfg.Server.StreamBody)
	assert.True(t, cfg.Storage.PublicRead)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_QUERY_TIMEOUT", "3s")
	t.Setenv("PAGINATION_PER_PAGE", "25")
	t.Setenv("AWS_USE_SSL", "true")
	t.Setenv("PAGINATION_MAX_PER_PAGE", "not-a-number")
	t.Setenv("SERVER_STREAM_BODY", "false")
	t.Setenv("AWS_PUBLIC_READ", "false")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 25, cfg.Pagination.PerPage)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, 100, cfg.Pagination.MaxPerPage)
	assert.False(t, cfg.Server.StreamBody)
	assert.False(t, cfg.Storage.PublicRead)
}

func TestGetDSN(t *testing.T) {
	cfg := Load()
	cfg.Database.Host = "db"
	cfg.Database.User = "app"
	cfg.Database.Password = "secret"
	cfg.Database.DBName = "catalog"

	cfg.Database.Driver = "postgres"
	assert.Contains(t, cfg.GetDSN(), "host=db")
	assert.Contains(t, cfg.GetDSN(), "dbname=catalog")

	cfg.Database.Driver = "mysql"
	assert.Equal(t, "app:secret@tcp(db:5432)/catalog?charset=utf8mb4&parseTime=True&loc=UTC", cfg.GetDSN())

	cfg.Database.Driver = "sqlite"
	assert.Equal(t, "catalog.db", cfg.GetDSN())

	cfg.Database.DSN = ":memory:"
	assert.Equal(t, ":memory:", cfg.GetDSN())
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.Storage.Driver = "memory"
	require.NoError(t, cfg.Validate())

	cfg.Database.Driver = "oracle"
	assert.Error(t, cfg.Validate())

	cfg.Database.Driver = "postgres"
	cfg.Storage.Driver = "minio"
	cfg.Storage.AccessKeyID = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AWS_ACCESS_KEY_ID")

	cfg.Storage.AccessKeyID = "key"
	cfg.Storage.SecretAccessKey = "secret"
	assert.NoError(t, cfg.Validate())

	cfg.Pagination.PerPage = 0
	assert.Error(t, cfg.Validate())
}
