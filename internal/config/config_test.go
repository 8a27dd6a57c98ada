package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ESTAT_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Zero(t, cfg.Pipeline.Workers)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server:\n  port: 9000\nlogging:\n  level: debug\n"), 0644))

	t.Setenv("ESTAT_CONFIG_FILE", file)
	t.Setenv("ESTAT_SERVER_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port, "environment wins over file")
	assert.Equal(t, "debug", cfg.Logging.Level, "file value survives when env is unset")
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("ESTAT_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ESTAT_SERVER_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestNewPaths(t *testing.T) {
	base := t.TempDir()
	paths, err := NewPaths(base, PathsConfig{DataDir: "data", ReportsDir: "reports", LogsDir: "logs"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "data"), paths.DataDir)
	assert.Equal(t, filepath.Join(base, "reports", "long.csv"), paths.GetReportPath("long.csv"))

	require.NoError(t, paths.EnsureDirs())
	for _, dir := range []string{paths.DataDir, paths.ReportsDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestNewPathsAbsoluteOverride(t *testing.T) {
	abs := t.TempDir()
	paths, err := NewPaths(t.TempDir(), PathsConfig{DataDir: abs, ReportsDir: "reports", LogsDir: "logs"})
	require.NoError(t, err)
	assert.Equal(t, abs, paths.DataDir)
}
