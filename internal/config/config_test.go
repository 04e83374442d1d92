package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/climb"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

// isolate runs the test from an empty directory so no velo.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnvVar, "")
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 128, cfg.Terrain.GridResolution)
	assert.Equal(t, climb.DefaultParams(), cfg.Climb())
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "custom.yaml", `
log:
  level: debug
  format: console
server:
  port: 8080
  cache_ttl: 90s
terrain:
  grid_resolution: 64
  width_m: 3000
data_dir: /srv/passes
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.Server.CacheTTL)
	assert.Equal(t, 64, cfg.Terrain.GridResolution)
	assert.Equal(t, 3000.0, cfg.Terrain.WidthM)
	assert.Equal(t, "/srv/passes", cfg.DataDir)

	// untouched keys keep their defaults
	assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	assert.Equal(t, 6.0, cfg.Road.WidthM)
}

func TestLoadDefaultFileInWorkingDir(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, DefaultConfigFile, "server:\n  port: 4000\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestConfigPathEnvVar(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "elsewhere.yaml", "environment:\n  treeline_m: 2100\n")
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2100.0, cfg.Environment.TreelineM)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "custom.yaml", "server:\n  port: 8080\n")
	t.Setenv("VELO_SERVER__PORT", "9090")
	t.Setenv("VELO_TERRAIN__GRID_RESOLUTION", "48")
	t.Setenv("VELO_ANALYSIS__STEEP_THRESHOLD", "9.5")
	t.Setenv("VELO_SERVER__RATE_WINDOW", "30s")
	t.Setenv("VELO_DATA_DIR", "/data")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 48, cfg.Terrain.GridResolution)
	assert.Equal(t, 9.5, cfg.Analysis.SteepThreshold)
	assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
	assert.Equal(t, "/data", cfg.DataDir)
}

func TestLoadInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("VELO_TERRAIN__GRID_RESOLUTION", "1")

	_, err := Load("")
	require.Error(t, err)

	var fe *validation.FieldErrors
	require.True(t, errors.As(err, &fe), "got %v", err)
	assert.Equal(t, "Config.Terrain.GridResolution", fe.Errors[0].Field)
}

func TestLoadInvalidLogFormat(t *testing.T) {
	isolate(t)
	t.Setenv("VELO_LOG__FORMAT", "xml")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load("/nonexistent/velo.yaml")
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"VELO_SERVER__PORT":             "server.port",
		"VELO_TERRAIN__GRID_RESOLUTION": "terrain.grid_resolution",
		"VELO_DATA_DIR":                 "data_dir",
		"VELO_CONFIG":                   "",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLogging(t *testing.T) {
	cfg := Default()
	cfg.Log = LogConfig{Level: "warn", Format: "console", Caller: true}
	lc := cfg.Logging()
	assert.Equal(t, "warn", lc.Level)
	assert.Equal(t, "console", lc.Format)
	assert.True(t, lc.Caller)
}
