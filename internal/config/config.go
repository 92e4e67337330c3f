// Package config handles loading, validating, and managing the generator
// configuration for placekit.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// GenConfig is the top-level configuration for a placekit project.
type GenConfig struct {
	Output   string         `yaml:"output"   mapstructure:"output"`
	Palette  string         `yaml:"palette"  mapstructure:"palette"`
	Styles   []string       `yaml:"styles"   mapstructure:"styles"`
	Sizes    []Size         `yaml:"sizes"    mapstructure:"sizes"`
	Formats  []string       `yaml:"formats"  mapstructure:"formats"`
	Quality  int            `yaml:"quality"  mapstructure:"quality"`
	Text     TextConfig     `yaml:"text"     mapstructure:"text"`
	Glitch   GlitchConfig   `yaml:"glitch"   mapstructure:"glitch"`
	Variants VariantsConfig `yaml:"variants" mapstructure:"variants"`
	Gallery  GalleryConfig  `yaml:"gallery"  mapstructure:"gallery"`
	Server   ServerConfig   `yaml:"server"   mapstructure:"server"`
	Deploy   DeployConfig   `yaml:"deploy"   mapstructure:"deploy"`
}

// Size is one target canvas size in the batch matrix.
type Size struct {
	Width  int    `yaml:"width"  mapstructure:"width"`
	Height int    `yaml:"height" mapstructure:"height"`
	Name   string `yaml:"name"   mapstructure:"name"`
}

// TextConfig controls the text banner synthesizer.
type TextConfig struct {
	Template string `yaml:"template" mapstructure:"template"` // batch label template, fmt verbs %dx%d
	FontPath string `yaml:"fontPath" mapstructure:"fontPath"`
}

// GlitchConfig controls the glitch synthesizer.
type GlitchConfig struct {
	Seed    int64 `yaml:"seed"    mapstructure:"seed"` // 0 means time-seeded
	Animate bool  `yaml:"animate" mapstructure:"animate"`
	Frames  int   `yaml:"frames"  mapstructure:"frames"`
}

// VariantsConfig controls responsive downscaled variants of generated assets.
type VariantsConfig struct {
	Enabled bool     `yaml:"enabled" mapstructure:"enabled"`
	Quality int      `yaml:"quality" mapstructure:"quality"`
	Sizes   []int    `yaml:"sizes"   mapstructure:"sizes"`
	Formats []string `yaml:"formats" mapstructure:"formats"`
}

// GalleryConfig controls the contact-sheet page written alongside the assets.
type GalleryConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Title   string `yaml:"title"   mapstructure:"title"`
	Intro   string `yaml:"intro"   mapstructure:"intro"` // Markdown
}

// ServerConfig controls the local preview server.
type ServerConfig struct {
	Port       int    `yaml:"port"       mapstructure:"port"`
	Host       string `yaml:"host"       mapstructure:"host"`
	LiveReload bool   `yaml:"livereload" mapstructure:"livereload"`
}

// DeployConfig holds deployment target configuration.
type DeployConfig struct {
	S3         S3Config         `yaml:"s3"         mapstructure:"s3"`
	CloudFront CloudFrontConfig `yaml:"cloudfront" mapstructure:"cloudfront"`
}

// S3Config holds AWS S3 deployment settings.
type S3Config struct {
	Bucket string `yaml:"bucket" mapstructure:"bucket"`
	Region string `yaml:"region" mapstructure:"region"`
	Prefix string `yaml:"prefix" mapstructure:"prefix"`
}

// CloudFrontConfig holds AWS CloudFront invalidation settings.
type CloudFrontConfig struct {
	DistributionID  string   `yaml:"distributionId"  mapstructure:"distributionId"`
	InvalidatePaths []string `yaml:"invalidatePaths" mapstructure:"invalidatePaths"`
}

// Default returns a GenConfig populated with sensible default values. The
// default sizes match the card, large, extra-large, and hero slots of the
// site.
func Default() *GenConfig {
	return &GenConfig{
		Output:  "assets",
		Palette: "cyberpunk",
		Sizes: []Size{
			{Width: 280, Height: 200, Name: "card"},
			{Width: 400, Height: 300, Name: "large"},
			{Width: 600, Height: 400, Name: "xlarge"},
			{Width: 1200, Height: 800, Name: "hero"},
		},
		Formats: []string{"png"},
		Quality: 90,
		Text: TextConfig{
			Template: "%d×%d",
			FontPath: "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		},
		Glitch: GlitchConfig{
			Frames: 8,
		},
		Variants: VariantsConfig{
			Quality: 75,
			Sizes:   []int{320, 640, 960},
			Formats: []string{"webp"},
		},
		Gallery: GalleryConfig{
			Enabled: true,
			Title:   "Placeholder assets",
		},
		Server: ServerConfig{
			Port:       8080,
			Host:       "localhost",
			LiveReload: true,
		},
	}
}

// Load reads a configuration file from configPath (YAML or TOML) and returns
// a GenConfig with defaults applied first and file values overlaid on top.
func Load(configPath string) (*GenConfig, error) {
	cfg := Default()

	v := viper.New()

	// Determine format from extension.
	ext := strings.TrimPrefix(filepath.Ext(configPath), ".")
	switch ext {
	case "yaml", "yml":
		v.SetConfigType("yaml")
	case "toml":
		v.SetConfigType("toml")
	default:
		// Default to yaml if unrecognised.
		v.SetConfigType("yaml")
	}

	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the GenConfig for common errors. It returns a descriptive
// error if:
//   - Output is empty
//   - no target sizes are configured, or any size is non-positive
//   - Quality is outside [1,100]
//   - Glitch.Frames is non-positive
func (c *GenConfig) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("config: output directory is required")
	}

	if len(c.Sizes) == 0 {
		return fmt.Errorf("config: at least one target size is required")
	}
	for i, s := range c.Sizes {
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("config: size %d has non-positive dimensions %dx%d", i, s.Width, s.Height)
		}
	}

	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("config: quality must be in [1,100] (got %d)", c.Quality)
	}

	if c.Glitch.Frames < 1 {
		return fmt.Errorf("config: glitch.frames must be positive (got %d)", c.Glitch.Frames)
	}

	return nil
}

// WithOverrides applies CLI flag overrides to the config. Known keys are
// mapped to their corresponding struct fields. The modified config is
// returned for convenient chaining.
func (c *GenConfig) WithOverrides(overrides map[string]any) *GenConfig {
	for key, val := range overrides {
		switch key {
		case "output":
			if s, ok := val.(string); ok {
				c.Output = s
			}
		case "palette":
			if s, ok := val.(string); ok {
				c.Palette = s
			}
		case "seed":
			if n, ok := val.(int64); ok {
				c.Glitch.Seed = n
			}
		case "port":
			if n, ok := val.(int); ok {
				c.Server.Port = n
			}
		case "host":
			if s, ok := val.(string); ok {
				c.Server.Host = s
			}
		case "livereload":
			if b, ok := val.(bool); ok {
				c.Server.LiveReload = b
			}
		}
	}
	return c
}
