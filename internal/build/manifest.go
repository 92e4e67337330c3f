package build

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestFilename is the asset manifest written into the output directory.
const ManifestFilename = "manifest.yaml"

// Manifest describes everything a batch run generated, for consumption by
// the gallery, the deploy step, and downstream tooling.
type Manifest struct {
	GeneratedAt time.Time `yaml:"generatedAt"`
	Palette     string    `yaml:"palette"`
	Assets      []Asset   `yaml:"assets"`
}

// Asset is one generated placeholder and its derived files.
type Asset struct {
	Name     string   `yaml:"name"`
	Style    string   `yaml:"style"`
	Variant  string   `yaml:"variant,omitempty"`
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	Files    []string `yaml:"files"`
	Variants []string `yaml:"variants,omitempty"`
	Animated string   `yaml:"animated,omitempty"`
}

// WriteManifest marshals m to manifest.yaml inside dir.
func WriteManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFilename), data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// ReadManifest loads manifest.yaml from dir.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFilename))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
