package cmd

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/orchestrator"
)

// Manifest describes a bulk generation run. Each entry expands to Count
// requests; unset entry fields inherit from Defaults.
type Manifest struct {
	Defaults ManifestEntry   `yaml:"defaults"`
	Entries  []ManifestEntry `yaml:"questions"`
}

// ManifestEntry is one line of a bulk manifest.
type ManifestEntry struct {
	Model      string `yaml:"model"`
	Difficulty string `yaml:"difficulty"`
	Year       int    `yaml:"year"`
	Format     string `yaml:"format"`
	Theme      string `yaml:"theme"`
	Focus      string `yaml:"focus"`
	Count      int    `yaml:"count"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Entries) == 0 {
		return nil, fmt.Errorf("manifest %s has no questions", path)
	}
	return &m, nil
}

// Requests expands the manifest into the flat request list for a batch run.
func (m *Manifest) Requests() ([]orchestrator.Request, error) {
	var out []orchestrator.Request

	for i, entry := range m.Entries {
		merged := entry.withDefaults(m.Defaults)

		if merged.Model == "" {
			return nil, fmt.Errorf("questions[%d]: model is required", i)
		}

		theme, err := parseTheme(merged.Theme)
		if err != nil {
			return nil, fmt.Errorf("questions[%d]: %w", i, err)
		}

		var pref format.Format
		if merged.Format != "" {
			pref = format.Format(strings.ToUpper(merged.Format))
			if !pref.IsValid() {
				return nil, fmt.Errorf("questions[%d]: invalid format %q", i, merged.Format)
			}
		}

		count := merged.Count
		if count <= 0 {
			count = 1
		}

		req := orchestrator.Request{
			ModelID:          strings.ToUpper(merged.Model),
			DifficultyLevel:  merged.Difficulty,
			YearLevel:        merged.Year,
			FormatPreference: pref,
			ScenarioTheme:    theme,
			PedagogicalFocus: merged.Focus,
		}
		for n := 0; n < count; n++ {
			out = append(out, req)
		}
	}
	return out, nil
}

// withDefaults fills unset fields from the manifest defaults.
func (e ManifestEntry) withDefaults(d ManifestEntry) ManifestEntry {
	if e.Model == "" {
		e.Model = d.Model
	}
	if e.Difficulty == "" {
		e.Difficulty = d.Difficulty
	}
	if e.Year == 0 {
		e.Year = d.Year
	}
	if e.Format == "" {
		e.Format = d.Format
	}
	if e.Theme == "" {
		e.Theme = d.Theme
	}
	if e.Focus == "" {
		e.Focus = d.Focus
	}
	if e.Count == 0 {
		e.Count = d.Count
	}
	return e
}
