package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "movie-quiz", cfg.App.Name)
	assert.Equal(t, StoreSQLite, cfg.Statistics.Store)
	assert.Equal(t, SourceIMDb, cfg.Movies.Source)
	assert.Equal(t, "1s", cfg.Quiz.FeedbackDelay)
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  port: "9090"
redis:
  addr: "localhost:6379"
statistics:
  store: redis
movies:
  source: static
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))
	t.Setenv("QUIZ_SERVER_PORT", "7070")
	t.Setenv("QUIZ_TELEGRAM_TOKEN", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, StoreRedis, cfg.Statistics.Store)
	assert.Equal(t, SourceStatic, cfg.Movies.Source)
	assert.Equal(t, "secret", cfg.Telegram.Token)
	// untouched keys keep their defaults
	assert.Equal(t, "movie-quiz.db", cfg.SQLite.Path)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [oops"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestTTLDuration(t *testing.T) {
	assert.Equal(t, time.Minute, TTLDuration("", time.Minute))
	assert.Equal(t, 2*time.Second, TTLDuration("2s", time.Minute))
	assert.Equal(t, time.Minute, TTLDuration("soon", time.Minute))
}
