package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/mod?sslmode=disable")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, DefaultFlagThreshold, cfg.FlagThreshold)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, int64(60), cfg.RateLimitLimit)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, "postgres://u:p@db:5432/mod?sslmode=disable", cfg.DatabaseURL)
}

func TestFromEnv_ThresholdClampedToOne(t *testing.T) {
	t.Setenv("MODERATION_FLAG_THRESHOLD", "0")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.FlagThreshold)

	t.Setenv("MODERATION_FLAG_THRESHOLD", "many")
	_, err = fromEnv()
	assert.Error(t, err)
}

func TestFromEnv_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com")

	_, err := fromEnv()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://admin.example.com , ,https://app.example.com")
	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://admin.example.com", "https://app.example.com"}, cfg.AllowedOrigins)

	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	_, err = fromEnv()
	assert.Error(t, err)
}

func TestGetDatabaseURL_FromParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRESQL_HOST", "pg")
	t.Setenv("POSTGRESQL_USER", "mod")
	t.Setenv("POSTGRESQL_PASSWORD", "p@ss")
	t.Setenv("POSTGRESQL_DBNAME", "moderation")

	assert.Equal(t, "postgres://mod:p%40ss@pg:5432/moderation?sslmode=disable", getDatabaseURL())
}
