package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("IDENTITY_MODE", IdentityModeLocal)
	t.Setenv("IDENTITY_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "taskforge-backend", cfg.AppName)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, "gemini-1.5-flash", cfg.Generator.Model)
	assert.Equal(t, time.Hour, cfg.Redis.CacheTTL)
	assert.True(t, cfg.Migrations.Enabled)
	assert.Equal(t, "*", cfg.CORS.AllowedOrigin)
	assert.Contains(t, cfg.Database.URL, "postgres://")
}

func TestLoadIdentityValidation(t *testing.T) {
	t.Setenv("IDENTITY_MODE", IdentityModeRemote)
	t.Setenv("IDENTITY_VERIFY_URL", "")
	t.Setenv("IDENTITY_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IDENTITY_VERIFY_URL")

	t.Setenv("IDENTITY_MODE", IdentityModeLocal)
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IDENTITY_SECRET")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("IDENTITY_MODE", IdentityModeLocal)
	t.Setenv("IDENTITY_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app?sslmode=require")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "10")
	t.Setenv("GENERATION_CACHE_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "postgres://u:p@db:5432/app?sslmode=require", cfg.Database.URL)
	assert.Equal(t, 10*time.Second, cfg.Context.RequestTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, "https://app.example.com", cfg.CORS.AllowedOrigin)
}
