package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/pass"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

const passesDir = "../../examples/passes"

// run executes the CLI with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("VELO_CONFIG", "")
	t.Setenv("VELO_TERRAIN__GRID_RESOLUTION", "16")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeText(t *testing.T) {
	out, err := run(t, "analyze", filepath.Join(passesDir, "galibier.yaml"))
	require.NoError(t, err)

	assert.Contains(t, out, "Col du Galibier (galibier)")
	assert.Contains(t, out, "UCI category:      1")
	assert.Contains(t, out, "Difficulty score:")
	assert.Contains(t, out, "Steepest segment:  km ")
	assert.Contains(t, out, "Facile")
}

func TestAnalyzeJSON(t *testing.T) {
	out, err := run(t, "analyze", "--json", filepath.Join(passesDir, "alpe-dhuez.yaml"))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Contains(t, body, "difficultyScore")
	assert.Contains(t, body, "segmentsByDifficulty")
}

func TestVisualize(t *testing.T) {
	out, err := run(t, "visualize", filepath.Join(passesDir, "alpe-dhuez.yaml"))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "alpe-dhuez", body["passId"])
}

func TestScene(t *testing.T) {
	out, err := run(t, "scene", "--mode", "night", filepath.Join(passesDir, "galibier.yaml"))
	require.NoError(t, err)

	var body struct {
		Metadata struct {
			PassID string `json:"passId"`
			Mode   string `json:"mode"`
		} `json:"metadata"`
		Terrain struct {
			Resolution int `json:"resolution"`
		} `json:"terrain"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "galibier", body.Metadata.PassID)
	assert.Equal(t, "night", body.Metadata.Mode)
	assert.Equal(t, 16, body.Terrain.Resolution)
}

func TestSceneResolutionFlag(t *testing.T) {
	out, err := run(t, "scene", "-r", "8", filepath.Join(passesDir, "galibier.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, `"resolution": 8`)
}

func TestSceneMissingGeodata(t *testing.T) {
	_, err := run(t, "scene", filepath.Join(passesDir, "ventoux.yml"))
	assert.True(t, errors.Is(err, validation.ErrMissingGeodata), "got %v", err)
}

func TestSceneBadMode(t *testing.T) {
	_, err := run(t, "scene", "--mode", "dusk", filepath.Join(passesDir, "galibier.yaml"))
	assert.Error(t, err)
}

func TestChart(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "galibier.html")
	out, err := run(t, "chart", "-o", dest, filepath.Join(passesDir, "galibier.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+dest)

	html, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(html), "echarts")
	assert.Contains(t, string(html), "Col du Galibier")
}

func TestValidateDir(t *testing.T) {
	out, err := run(t, "validate", passesDir)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "Result: VALID"))
	assert.Contains(t, out, "== Mont Ventoux (Bédoin) (ventoux-bedoin)")
}

func TestValidateInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id: broken\nname: Broken\nelevation_profile:\n  - [0, 1000]\n"), 0o644))

	out, err := run(t, "validate", path)
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "Result: INVALID")
	assert.Contains(t, out, "ERRORS (")
}

func TestEnrich(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "alpe.yaml")
	_, err := run(t, "enrich", "-o", dest, filepath.Join(passesDir, "alpe-dhuez.yaml"))
	require.NoError(t, err)

	p, err := pass.Load(dest)
	require.NoError(t, err)
	assert.Len(t, p.Coordinates3D, len(p.Coordinates))
	assert.Len(t, p.ElevationProfile, 15)
	assert.InDelta(t, 720, p.Coordinates3D[0][2], 1e-9)
}

func TestBadConfigFails(t *testing.T) {
	_, err := run(t, "--config", "/nonexistent/velo.yaml", "analyze", filepath.Join(passesDir, "galibier.yaml"))
	assert.Error(t, err)
}
