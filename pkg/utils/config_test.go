package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cataloghub.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CATALOGHUB_CONFIG", "")
	t.Setenv("CATALOGHUB_DB_PATH", "/tmp/x.db")

	cfg, path, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", path)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, ":9090", cfg.GRPC.Addr)
	assert.Equal(t, ":7070", cfg.Feed.Addr)
	assert.Equal(t, ":7071", cfg.Notify.Addr)
	assert.Equal(t, "/tmp/x.db", cfg.Database.Path)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTDuration())
	assert.False(t, cfg.Auth.Disabled)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /var/lib/cataloghub/catalog.db
http:
  addr: ":8181"
auth:
  jwt_issuer: files
  jwt_ttl_hours: 2
log:
  level: debug
  development: true
`)
	t.Setenv("CATALOGHUB_CONFIG", path)
	t.Setenv("CATALOGHUB_HTTP_ADDR", ":9999")
	t.Setenv("CATALOGHUB_JWT_TTL_HOURS", "6")
	t.Setenv("CATALOGHUB_AUTH_DISABLED", "true")

	cfg, used, err := Load()
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "/var/lib/cataloghub/catalog.db", cfg.Database.Path)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, ":9090", cfg.GRPC.Addr, "untouched keys keep defaults")
	assert.Equal(t, "files", cfg.Auth.JWTIssuer)
	assert.Equal(t, "dev-secret-change-me", cfg.Auth.JWTSecret)
	assert.Equal(t, 6*time.Hour, cfg.Auth.JWTDuration())
	assert.True(t, cfg.Auth.Disabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoadErrors(t *testing.T) {
	t.Run("explicit file missing", func(t *testing.T) {
		t.Setenv("CATALOGHUB_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
		_, _, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		t.Setenv("CATALOGHUB_CONFIG", writeConfig(t, "http: [unclosed"))
		_, _, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad ttl", func(t *testing.T) {
		t.Setenv("CATALOGHUB_CONFIG", writeConfig(t, "{}"))
		t.Setenv("CATALOGHUB_JWT_TTL_HOURS", "soon")
		_, _, err := Load()
		assert.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(LogConfig{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1)) // debug
	assert.True(t, log.Core().Enabled(1))   // warn

	_, err = NewLogger(LogConfig{Level: "chatty"})
	assert.Error(t, err)
}
