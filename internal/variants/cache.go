package variants

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// cacheVersion is bumped when the cache format changes.
const cacheVersion = "1"

// Cache records which variants were generated for which source hashes so a
// rebuild can skip unchanged assets. All methods are safe for concurrent
// use.
type Cache struct {
	mu       sync.Mutex
	path     string
	manifest cacheManifest
}

type cacheManifest struct {
	Version string                 `json:"version"`
	Entries map[string]*cacheEntry `json:"entries"` // keyed by source path
}

type cacheEntry struct {
	ContentHash string    `json:"contentHash"`
	Sizes       []int     `json:"sizes"`
	Formats     []string  `json:"formats"`
	Quality     int       `json:"quality"`
	Variants    []Variant `json:"variants"`
}

// NewCache loads the cache manifest at path, starting fresh when the file is
// missing, corrupt, or from a different cache version.
func NewCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	c := &Cache{
		path: path,
		manifest: cacheManifest{
			Version: cacheVersion,
			Entries: make(map[string]*cacheEntry),
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading cache manifest: %w", err)
	}

	var m cacheManifest
	if err := json.Unmarshal(data, &m); err != nil {
		// Corrupt manifest — start fresh.
		return c, nil
	}
	if m.Version != cacheVersion || m.Entries == nil {
		return c, nil
	}
	c.manifest = m
	return c, nil
}

// Lookup returns the cached variants for srcPath when the hash and
// processing parameters all match.
func (c *Cache) Lookup(srcPath, contentHash string, sizes []int, formats []string, quality int) ([]Variant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.manifest.Entries[srcPath]
	if !ok {
		return nil, false
	}
	if entry.ContentHash != contentHash || entry.Quality != quality {
		return nil, false
	}
	if !intSliceEqual(entry.Sizes, sizes) || !stringSliceEqual(entry.Formats, formats) {
		return nil, false
	}
	return entry.Variants, true
}

// Store records the variants generated for srcPath.
func (c *Cache) Store(srcPath, contentHash string, sizes []int, formats []string, quality int, vs []Variant) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.manifest.Entries[srcPath] = &cacheEntry{
		ContentHash: contentHash,
		Sizes:       sizes,
		Formats:     formats,
		Quality:     quality,
		Variants:    vs,
	}
	return nil
}

// Save persists the manifest to disk.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.MarshalIndent(c.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache manifest: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing cache manifest: %w", err)
	}
	return nil
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
