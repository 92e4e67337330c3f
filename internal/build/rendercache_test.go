package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aellingwood/placekit/internal/palette"
	"github.com/aellingwood/placekit/internal/synth"
)

func testCache(t *testing.T) (*RenderCache, string) {
	t.Helper()
	dir := t.TempDir()
	c, err := NewRenderCache(filepath.Join(dir, ".placekit", "rendercache.json"))
	if err != nil {
		t.Fatalf("NewRenderCache: %v", err)
	}
	return c, dir
}

func TestRenderCache_FreshRequiresFileOnDisk(t *testing.T) {
	c, dir := testCache(t)
	pal := palette.Default()
	params := synth.Params{Width: 100, Height: 80, Style: synth.StyleGradient, Variant: "diagonal"}

	key := c.Key(params, pal, "png", 90, 0)
	outPath := filepath.Join(dir, "asset.png")

	c.Record("asset.png", key)
	if c.Fresh("asset.png", key, outPath) {
		t.Error("Fresh = true before output file exists")
	}

	if err := os.WriteFile(outPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !c.Fresh("asset.png", key, outPath) {
		t.Error("Fresh = false with matching key and existing file")
	}
}

func TestRenderCache_KeyChangesWithParams(t *testing.T) {
	c, _ := testCache(t)
	pal := palette.Default()
	base := synth.Params{Width: 100, Height: 80, Style: synth.StyleGradient, Variant: "diagonal"}

	baseKey := c.Key(base, pal, "png", 90, 0)

	wider := base
	wider.Width = 200
	if c.Key(wider, pal, "png", 90, 0) == baseKey {
		t.Error("key unchanged after width change")
	}
	if c.Key(base, pal, "webp", 90, 0) == baseKey {
		t.Error("key unchanged after format change")
	}
	if c.Key(base, pal, "png", 50, 0) == baseKey {
		t.Error("key unchanged after quality change")
	}

	altered := pal
	altered.Accent.R = 1
	if c.Key(base, altered, "png", 90, 0) == baseKey {
		t.Error("key unchanged after palette change")
	}
}

func TestRenderCache_SeedOnlyAffectsGlitch(t *testing.T) {
	c, _ := testCache(t)
	pal := palette.Default()

	gradient := synth.Params{Width: 100, Height: 80, Style: synth.StyleGradient, Variant: "diagonal"}
	if c.Key(gradient, pal, "png", 90, 1) != c.Key(gradient, pal, "png", 90, 2) {
		t.Error("gradient key varies with seed")
	}

	glitch := synth.Params{Width: 100, Height: 80, Style: synth.StyleGlitch}
	if c.Key(glitch, pal, "png", 90, 1) == c.Key(glitch, pal, "png", 90, 2) {
		t.Error("glitch key does not vary with seed")
	}
}

func TestRenderCache_PersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rendercache.json")

	c1, err := NewRenderCache(path)
	if err != nil {
		t.Fatalf("NewRenderCache: %v", err)
	}
	c1.Record("a.png", "key-a")
	if err := c1.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	outPath := filepath.Join(dir, "a.png")
	if err := os.WriteFile(outPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	c2, err := NewRenderCache(path)
	if err != nil {
		t.Fatalf("NewRenderCache reload: %v", err)
	}
	if !c2.Fresh("a.png", "key-a", outPath) {
		t.Error("entry lost across reload")
	}
}

func TestRenderCache_CorruptManifestStartsFresh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rendercache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := NewRenderCache(path)
	if err != nil {
		t.Fatalf("NewRenderCache: %v", err)
	}
	if len(c.manifest.Entries) != 0 {
		t.Errorf("expected empty cache from corrupt manifest, got %d entries", len(c.manifest.Entries))
	}
}
