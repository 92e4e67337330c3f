// Package variants generates responsive downscaled copies of the generated
// placeholder assets (resized and format-converted) with a content-hash
// build cache so unchanged assets are not re-processed across runs.
package variants

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/aellingwood/placekit/internal/config"
	"github.com/aellingwood/placekit/internal/encode"
)

// Variant describes a single generated variant file.
type Variant struct {
	Width    int
	Height   int
	Format   string
	Filename string
}

// Generator produces resized variants of source assets according to the
// variants configuration.
type Generator struct {
	cfg   config.VariantsConfig
	cache *Cache
}

// NewGenerator creates a Generator. The build cache manifest lives at
// {projectRoot}/.placekit/variantcache.json; if it cannot be initialised the
// generator runs uncached.
func NewGenerator(cfg config.VariantsConfig, projectRoot string) *Generator {
	cache, err := NewCache(filepath.Join(projectRoot, ".placekit", "variantcache.json"))
	if err != nil {
		cache = nil
	}
	return &Generator{cfg: cfg, cache: cache}
}

// Process generates variants of the asset at srcPath, writing them next to
// the source. File naming: {stem}-{width}w.{ext} (e.g.
// placeholder-280x200-glitch-320w.webp). Sizes wider than the source are
// silently skipped; no upscaling.
func (g *Generator) Process(srcPath string) ([]Variant, error) {
	src, err := imaging.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("opening asset %s: %w", srcPath, err)
	}
	srcWidth := src.Bounds().Dx()

	var sizes []int
	for _, s := range g.cfg.Sizes {
		if s <= srcWidth {
			sizes = append(sizes, s)
		}
	}
	if len(sizes) == 0 || len(g.cfg.Formats) == 0 {
		return nil, nil
	}

	hash := ""
	if g.cache != nil {
		if h, err := hashFile(srcPath); err == nil {
			hash = h
			if cached, ok := g.cache.Lookup(srcPath, hash, sizes, g.cfg.Formats, g.cfg.Quality); ok {
				if variantsExist(filepath.Dir(srcPath), cached) {
					return cached, nil
				}
			}
		}
	}

	stem := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	dir := filepath.Dir(srcPath)

	var out []Variant
	for _, size := range sizes {
		resized := imaging.Resize(src, size, 0, imaging.Lanczos)
		height := resized.Bounds().Dy()

		for _, format := range g.cfg.Formats {
			ext, err := encode.Extension(format)
			if err != nil {
				return nil, err
			}
			filename := fmt.Sprintf("%s-%dw.%s", stem, size, ext)
			if err := encode.Image(resized, filepath.Join(dir, filename), format, g.cfg.Quality); err != nil {
				return nil, fmt.Errorf("encoding variant %s: %w", filename, err)
			}
			out = append(out, Variant{
				Width:    size,
				Height:   height,
				Format:   format,
				Filename: filename,
			})
		}
	}

	if g.cache != nil && hash != "" {
		_ = g.cache.Store(srcPath, hash, sizes, g.cfg.Formats, g.cfg.Quality, out)
	}
	return out, nil
}

// ProcessAll generates variants for every path, parallelised across a
// bounded pool of runtime.NumCPU() workers. The returned map is keyed by
// source path.
func (g *Generator) ProcessAll(paths []string) (map[string][]Variant, error) {
	results := make(map[string][]Variant, len(paths))

	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, p := range paths {
		wg.Add(1)
		sem <- struct{}{} // acquire
		go func(p string) {
			defer wg.Done()
			defer func() { <-sem }() // release

			vs, err := g.Process(p)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			if len(vs) > 0 {
				results[p] = vs
			}
		}(p)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// Flush persists the cache manifest.
func (g *Generator) Flush() error {
	if g.cache == nil {
		return nil
	}
	return g.cache.Save()
}

// variantsExist reports whether every cached variant file is still on disk.
func variantsExist(dir string, vs []Variant) bool {
	for _, v := range vs {
		if _, err := os.Stat(filepath.Join(dir, v.Filename)); err != nil {
			return false
		}
	}
	return true
}

// hashFile computes the SHA-256 hash of a file and returns it as a hex
// string.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
