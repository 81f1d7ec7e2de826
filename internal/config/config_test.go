package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFailsWithoutDatabase(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	_, err := Load()
	require.ErrorIs(t, err, ErrMySQLNotConfigured)
}

func TestLoadDefaultsWithEnvDatabase(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("MYSQL_DB", "fittrack_test")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "fittrack", cfg.App.Name)
	require.Equal(t, 8080, cfg.App.Port)
	require.Equal(t, "fitness.activity.events", cfg.RabbitMQ.ActivityEventQueue)
	require.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
	require.Contains(t, cfg.MySQLDSN(), "tcp(127.0.0.1:3306)/fittrack_test")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("MYSQL_DB", "fittrack_test")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("REDIS_ACTIVITY_TTL_SECONDS", "120")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.App.Port)
	require.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	require.Equal(t, 120, cfg.Redis.ActivityTTLSeconds)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[app]
port = 9999

[mysql]
db = "from_file"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9999, cfg.App.Port)
	require.Equal(t, "from_file", cfg.MySQL.DB)
	// Untouched sections keep their defaults.
	require.Equal(t, "0.0.0.0", cfg.App.Host)
}
