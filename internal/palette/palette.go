// Package palette defines the fixed color scheme placeholder assets are
// rendered in, along with loading of user palettes from YAML or TOML files.
package palette

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Palette is the set of named colors every synthesizer draws from. A Palette
// is constructed once and never mutated afterwards.
type Palette struct {
	BG        color.RGBA // page background
	BGElev    color.RGBA // elevated background (cards, panels)
	Accent    color.RGBA // primary accent
	Accent2   color.RGBA // secondary accent
	FG        color.RGBA // foreground
	TextMuted color.RGBA // muted text
	Border    color.RGBA // border tint
}

// Default returns the built-in cyberpunk palette matching the site's color
// scheme.
func Default() Palette {
	return Palette{
		BG:        color.RGBA{0x0b, 0x0d, 0x10, 0xff},
		BGElev:    color.RGBA{0x0f, 0x13, 0x18, 0xff},
		Accent:    color.RGBA{0x00, 0xe5, 0xff, 0xff}, // cyan
		Accent2:   color.RGBA{0xff, 0x2b, 0xd6, 0xff}, // magenta
		FG:        color.RGBA{0xe7, 0xf7, 0xff, 0xff},
		TextMuted: color.RGBA{0x94, 0xa3, 0xb8, 0xff},
		Border:    color.RGBA{0x9d, 0xff, 0xef, 0x38}, // rgba(157,255,239,0.22)
	}
}

// builtins maps palette names accepted in configuration to their values.
var builtins = map[string]Palette{
	"cyberpunk": Default(),
}

// Builtin returns the named built-in palette.
func Builtin(name string) (Palette, error) {
	p, ok := builtins[strings.ToLower(name)]
	if !ok {
		return Palette{}, fmt.Errorf("unknown palette %q", name)
	}
	return p, nil
}

// BuiltinNames returns the names of all built-in palettes.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	return names
}

// file is the on-disk palette representation. Every field is an optional hex
// color string; unset fields keep their default value.
type file struct {
	BG        string `yaml:"bg"        toml:"bg"`
	BGElev    string `yaml:"bgElev"    toml:"bgElev"`
	Accent    string `yaml:"accent"    toml:"accent"`
	Accent2   string `yaml:"accent2"   toml:"accent2"`
	FG        string `yaml:"fg"        toml:"fg"`
	TextMuted string `yaml:"textMuted" toml:"textMuted"`
	Border    string `yaml:"border"    toml:"border"`
}

// LoadFile reads a palette from a YAML or TOML file, determined by the file
// extension. Missing fields fall back to the default palette.
func LoadFile(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Palette{}, fmt.Errorf("reading palette file: %w", err)
	}

	var pf file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &pf); err != nil {
			return Palette{}, fmt.Errorf("parsing TOML palette %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return Palette{}, fmt.Errorf("parsing YAML palette %s: %w", path, err)
		}
	default:
		return Palette{}, fmt.Errorf("unsupported palette format %q (want .yaml, .yml, or .toml)", ext)
	}

	p := Default()
	for _, f := range []struct {
		hex string
		dst *color.RGBA
	}{
		{pf.BG, &p.BG},
		{pf.BGElev, &p.BGElev},
		{pf.Accent, &p.Accent},
		{pf.Accent2, &p.Accent2},
		{pf.FG, &p.FG},
		{pf.TextMuted, &p.TextMuted},
		{pf.Border, &p.Border},
	} {
		if f.hex == "" {
			continue
		}
		c, err := ParseHex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("palette %s: %w", path, err)
		}
		*f.dst = c
	}
	return p, nil
}

// Resolve maps a palette config value to a Palette. A value containing a path
// separator or a known file extension is loaded as a file; anything else is
// looked up as a built-in name. An empty value yields the default palette.
func Resolve(value string) (Palette, error) {
	if value == "" {
		return Default(), nil
	}
	ext := strings.ToLower(filepath.Ext(value))
	if strings.ContainsRune(value, os.PathSeparator) || ext == ".yaml" || ext == ".yml" || ext == ".toml" {
		return LoadFile(value)
	}
	return Builtin(value)
}

// ParseHex parses "#rrggbb" or "#rrggbbaa" into an RGBA color. The leading
// "#" is optional.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected 6 or 8 hex digits", s)
	}

	var ch [4]uint8
	ch[3] = 0xff
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{ch[0], ch[1], ch[2], ch[3]}, nil
}

// FormatHex renders c as a "#rrggbb" string, ignoring alpha.
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
