package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("AI_RATE_PER_MINUTE", "")

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 10, cfg.LLM.RatePerMinute)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("AI_RATE_PER_MINUTE", "3")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 3, cfg.LLM.RatePerMinute)
	assert.Equal(t, []byte("s3cret"), cfg.Auth.JWTSecret)
}

func TestLoadCORSOrigins(t *testing.T) {
	t.Run("Defaults To Frontend", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", "")
		t.Setenv("FRONTEND_URL", "https://maps.example.com")

		cfg := Load()
		assert.Equal(t, "https://maps.example.com", cfg.CORSOrigins)
		assert.Equal(t, "https://maps.example.com", cfg.Auth.FrontendURL)
	})

	t.Run("Explicit Origins Win", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", "https://a.example.com,https://b.example.com")
		t.Setenv("FRONTEND_URL", "https://maps.example.com")

		cfg := Load()
		assert.Equal(t, "https://a.example.com,https://b.example.com", cfg.CORSOrigins)
	})

	t.Run("Unset", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", "")
		t.Setenv("FRONTEND_URL", "")

		cfg := Load()
		assert.Equal(t, "http://localhost:3001", cfg.CORSOrigins)
	})
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("AUTO_MIGRATE", "maybe")
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("AI_RATE_PER_MINUTE", "ten")

	cfg := Load()
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 10, cfg.LLM.RatePerMinute)
}

func TestOpenDB(t *testing.T) {
	t.Run("SQLite", func(t *testing.T) {
		db, err := OpenDB(DatabaseConfig{Driver: "sqlite", URL: filepath.Join(t.TempDir(), "t.db"), LogLevel: "silent"})
		require.NoError(t, err)
		require.NoError(t, Migrate(db))
		assert.NoError(t, CloseDB(db))
	})

	t.Run("Unknown Driver", func(t *testing.T) {
		_, err := OpenDB(DatabaseConfig{Driver: "oracle"})
		assert.Error(t, err)
	})
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, gormLogLevel("silent"))
	assert.Equal(t, logger.Info, gormLogLevel("info"))
	assert.Equal(t, logger.Warn, gormLogLevel(""))
}
