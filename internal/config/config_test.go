package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "stdio", cfg.Server.Transport)
	require.Equal(t, "mindmirror.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, time.Minute, cfg.Reminder.Interval)
	require.Equal(t, ".", cfg.Export.Dir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MINDMIRROR_TRANSPORT", "http")
	t.Setenv("MINDMIRROR_SERVER_PORT", "9090")
	t.Setenv("MINDMIRROR_DB_PATH", "/tmp/test.db")
	t.Setenv("MINDMIRROR_REMINDER_INTERVAL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http", cfg.Server.Transport)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "/tmp/test.db", cfg.DB.Path)
	require.Equal(t, 30*time.Second, cfg.Reminder.Interval)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  path: from-file.db\nlog:\n  level: debug\n"), 0o644))
	t.Setenv("MINDMIRROR_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-file.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  path: from-file.db\n"), 0o644))
	t.Setenv("MINDMIRROR_CONFIG_PATH", path)
	t.Setenv("MINDMIRROR_DB_PATH", "from-env.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-env.db", cfg.DB.Path)
}

func TestLoad_InvalidTransport(t *testing.T) {
	t.Setenv("MINDMIRROR_TRANSPORT", "carrier-pigeon")
	_, err := Load()
	require.Error(t, err)
}
