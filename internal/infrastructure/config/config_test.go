package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "autoparts", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, int64(10<<20), cfg.HTTP.MaxBodySize)
	assert.Equal(t, float64(168), cfg.JWT.Expiration.Hours())
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("AUTOPARTS_APP_PORT", "9000")
	t.Setenv("AUTOPARTS_DATABASE_HOST", "db.internal")
	t.Setenv("AUTOPARTS_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
}

func TestValidateProduction(t *testing.T) {
	t.Setenv("AUTOPARTS_APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")

	t.Setenv("AUTOPARTS_JWT_SECRET", "prod-secret")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.password")

	t.Setenv("AUTOPARTS_DATABASE_PASSWORD", "pw")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestValidateStorageBackend(t *testing.T) {
	t.Setenv("AUTOPARTS_STORAGE_BACKEND", "ftp")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("AUTOPARTS_STORAGE_BACKEND", "s3")
	_, err = Load()
	require.Error(t, err) // bucket missing

	t.Setenv("AUTOPARTS_STORAGE_BUCKET", "autoparts-images")
	_, err = Load()
	assert.NoError(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "pw", DBName: "autoparts", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=autoparts sslmode=disable",
		cfg.DSN())
}
