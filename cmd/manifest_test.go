package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManifest_ExpandsWithDefaults(t *testing.T) {
	path := writeManifest(t, `
defaults:
  difficulty: "4.2"
  theme: shopping
questions:
  - model: ADDITION
    count: 3
  - model: MULTIPLICATION
    format: MULTI_STEP
    theme: cooking
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)

	requests, err := m.Requests()
	require.NoError(t, err)
	require.Len(t, requests, 4)

	assert.Equal(t, "ADDITION", requests[0].ModelID)
	assert.Equal(t, "4.2", requests[0].DifficultyLevel)
	assert.Equal(t, "shopping", string(requests[0].ScenarioTheme))
	assert.Equal(t, requests[0], requests[2], "count expands to identical requests")

	last := requests[3]
	assert.Equal(t, "MULTIPLICATION", last.ModelID)
	assert.Equal(t, "MULTI_STEP", string(last.FormatPreference))
	assert.Equal(t, "cooking", string(last.ScenarioTheme), "entry theme overrides default")
	assert.Equal(t, "4.2", last.DifficultyLevel, "difficulty inherited from defaults")
}

func TestLoadManifest_RejectsEmpty(t *testing.T) {
	path := writeManifest(t, `defaults: {difficulty: "3.1"}`)

	_, err := LoadManifest(path)
	require.Error(t, err)
}

func TestManifestRequests_RejectsMissingModel(t *testing.T) {
	path := writeManifest(t, `
questions:
  - difficulty: "2.1"
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)

	_, err = m.Requests()
	require.ErrorContains(t, err, "model is required")
}

func TestManifestRequests_RejectsBadThemeAndFormat(t *testing.T) {
	badTheme := writeManifest(t, `
questions:
  - model: ADDITION
    theme: volcanoes
`)
	m, err := LoadManifest(badTheme)
	require.NoError(t, err)
	_, err = m.Requests()
	assert.ErrorContains(t, err, "invalid theme")

	badFormat := writeManifest(t, `
questions:
  - model: ADDITION
    format: RIDDLE
`)
	m, err = LoadManifest(badFormat)
	require.NoError(t, err)
	_, err = m.Requests()
	assert.ErrorContains(t, err, "invalid format")
}

func TestManifestRequests_LowercaseInputsNormalized(t *testing.T) {
	path := writeManifest(t, `
questions:
  - model: addition
    format: comparison
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)

	requests, err := m.Requests()
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "ADDITION", requests[0].ModelID)
	assert.Equal(t, "COMPARISON", string(requests[0].FormatPreference))
}
