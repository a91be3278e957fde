package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
	assert.Empty(t, cfg.UI.TemplatesPath)
	assert.True(t, cfg.Session.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Session.Lifetime)
	assert.Empty(t, cfg.CSRF.Secret)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.False(t, cfg.Overdue.Enabled)
	assert.Equal(t, "0 8 * * *", cfg.Overdue.Schedule)
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/catalog.db")
	t.Setenv("OVERDUE_CHECK_ENABLED", "true")
	t.Setenv("TASK_RETRY_DELAY", "30s")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/catalog.db", cfg.Database.Path)
	assert.True(t, cfg.Overdue.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Tasks.RetryDelay)
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("values reach the config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\n"), 0o600))
		t.Setenv("LOG_LEVEL", "")
		os.Unsetenv("LOG_LEVEL")

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "debug", NewConfig().Log.Level)
	})
}
