package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "config.yml", `
feed: feeds/shanghai.hcl
log:
  format: text
  level: debug
server:
  port: 9090
  allowed_origins: ["http://localhost:3000"]
  shutdown_timeout: 2s
snapshot:
  ttl: 30s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	want := &Config{
		Feed: "feeds/shanghai.hcl",
		Log:  LogConfig{Format: "text", Level: "debug"},
		Server: ServerConfig{
			Port:            9090,
			AllowedOrigins:  []string{"http://localhost:3000"},
			ShutdownTimeout: 2 * time.Second,
		},
		Snapshot: SnapshotConfig{TTL: 30 * time.Second},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, "config.yml", "server:\n  port: 9000\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "config.yml", "feed: a.hcl\nserver:\n  port: 9000\n")
	t.Setenv(EnvFeed, "b.yaml")
	t.Setenv(EnvPort, "7000")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvAllowedOrigins, "http://a.example, ,http://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "b.yaml", cfg.Feed)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", EnvLogFormat+"=text\n")
	// godotenv sets the variable for the whole process.
	t.Cleanup(func() { os.Unsetenv(EnvLogFormat) })

	cfg, err := Load("", envFile, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad yaml", "server: [port"},
		{"bad level", "log:\n  level: loud\n"},
		{"bad format", "log:\n  format: xml\n"},
		{"port out of range", "server:\n  port: 70000\n"},
		{"empty origin", "server:\n  allowed_origins: [\"\"]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yml", tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BadPortEnv(t *testing.T) {
	t.Setenv(EnvPort, "eighty")
	_, err := Load("")
	assert.ErrorContains(t, err, EnvPort)
}
