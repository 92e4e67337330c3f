package build

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aellingwood/placekit/internal/palette"
	"github.com/aellingwood/placekit/internal/synth"
)

// renderCacheVersion is bumped when the cache key derivation changes.
const renderCacheVersion = "1"

// RenderCache skips re-synthesizing assets whose parameters, palette, and
// encoding settings are unchanged since the previous run and whose output
// files still exist. Nondeterministic jobs (unseeded glitch) are never
// cached. All methods are safe for concurrent use.
type RenderCache struct {
	mu       sync.Mutex
	path     string
	manifest renderCacheManifest
}

type renderCacheManifest struct {
	Version string            `json:"version"`
	Entries map[string]string `json:"entries"` // output filename -> params hash
}

// NewRenderCache loads the render cache manifest at path, starting fresh
// when the file is missing, corrupt, or from a different version.
func NewRenderCache(path string) (*RenderCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	c := &RenderCache{
		path: path,
		manifest: renderCacheManifest{
			Version: renderCacheVersion,
			Entries: make(map[string]string),
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading render cache: %w", err)
	}

	var m renderCacheManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return c, nil
	}
	if m.Version != renderCacheVersion || m.Entries == nil {
		return c, nil
	}
	c.manifest = m
	return c, nil
}

// Key derives the cache key for one render job. seed is the effective glitch
// seed; it only contributes for the glitch style.
func (c *RenderCache) Key(p synth.Params, pal palette.Palette, format string, quality int, seed int64) string {
	h := sha256.New()
	fmt.Fprintf(h, "%dx%d|%s|%s|%s|%s|%d", p.Width, p.Height, p.Style, p.Variant, p.Text, format, quality)
	fmt.Fprintf(h, "|%+v", pal)
	if p.Style == synth.StyleGlitch {
		fmt.Fprintf(h, "|seed=%d", seed)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Fresh reports whether the output file can be kept as-is: its recorded key
// matches and the file still exists at outPath.
func (c *RenderCache) Fresh(filename, key, outPath string) bool {
	c.mu.Lock()
	recorded, ok := c.manifest.Entries[filename]
	c.mu.Unlock()
	if !ok || recorded != key {
		return false
	}
	_, err := os.Stat(outPath)
	return err == nil
}

// Record stores the key for an output file.
func (c *RenderCache) Record(filename, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.manifest.Entries[filename] = key
}

// Save persists the manifest to disk.
func (c *RenderCache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.MarshalIndent(c.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding render cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing render cache: %w", err)
	}
	return nil
}
