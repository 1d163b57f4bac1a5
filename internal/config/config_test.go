package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.NotNil(t, cfg)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "sqlite", cfg.StoreBackend)
	assert.Equal(t, "inventory", cfg.InventoryCollection)
	assert.Equal(t, "groq", cfg.RecipeBackend)
	assert.Equal(t, "openai", cfg.ClassifierBackend)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DB_PATH", "/custom/db.sqlite")
	t.Setenv("RECIPE_BACKEND", "claude")
	t.Setenv("CLAUDE_API_KEY", "sk-test123")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/db.sqlite", cfg.DBPath)
	assert.Equal(t, "claude", cfg.RecipeBackend)
	assert.Equal(t, "sk-test123", cfg.ClaudeAPIKey)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GROQ_API_KEY=gsk-from-file\nLOG_LEVEL=debug\n"), 0600))
	t.Setenv("ENV_FILE", path)
	// An explicit environment value beats the file.
	t.Setenv("LOG_LEVEL", "warn")
	t.Cleanup(func() { _ = os.Unsetenv("GROQ_API_KEY") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gsk-from-file", cfg.GroqAPIKey)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SESSION_TTL", "forever")

	_, err := Load()
	assert.Error(t, err)
}
