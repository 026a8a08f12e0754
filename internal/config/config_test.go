package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STUDYLOG_CONFIG_PATH", "")
	t.Setenv("STUDYLOG_DB_PATH", "")
	t.Setenv("STUDYLOG_LOG_LEVEL", "")
	t.Setenv("STUDYLOG_TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "studylog.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "Local", cfg.Stats.Timezone)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db:
  path: /var/lib/studylog/data.db
log:
  level: debug
stats:
  timezone: Europe/Berlin
`), 0o644))

	t.Setenv("STUDYLOG_CONFIG_PATH", path)
	t.Setenv("STUDYLOG_DB_PATH", "")
	t.Setenv("STUDYLOG_LOG_LEVEL", "")
	t.Setenv("STUDYLOG_TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/var/lib/studylog/data.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "Europe/Berlin", cfg.Stats.Timezone)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db:
  path: from-file.db
`), 0o644))

	t.Setenv("STUDYLOG_CONFIG_PATH", path)
	t.Setenv("STUDYLOG_DB_PATH", "from-env.db")
	t.Setenv("STUDYLOG_LOG_LEVEL", "warn")
	t.Setenv("STUDYLOG_TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-env.db", cfg.DB.Path)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingFileFails(t *testing.T) {
	t.Setenv("STUDYLOG_CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	require.Error(t, err)
}
