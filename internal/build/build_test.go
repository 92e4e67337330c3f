package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aellingwood/placekit/internal/config"
	"github.com/aellingwood/placekit/internal/synth"
)

// ============================================================================
// Helpers
// ============================================================================

func testConfig() *config.GenConfig {
	cfg := config.Default()
	cfg.Sizes = []config.Size{{Width: 80, Height: 60, Name: "test"}}
	cfg.Glitch.Seed = 42
	cfg.Variants.Enabled = false
	cfg.Gallery.Enabled = false
	return cfg
}

func newTestBuilder(t *testing.T, cfg *config.GenConfig) *Builder {
	t.Helper()
	root := t.TempDir()
	b, err := NewBuilder(cfg, Options{ProjectRoot: root})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	return b
}

// ============================================================================
// Pipeline
// ============================================================================

func TestBuild_AllStyles(t *testing.T) {
	b := newTestBuilder(t, testConfig())

	result, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// 4 gradient + 4 geometric + glitch + text + qr per size.
	if result.AssetsRendered != 11 {
		t.Errorf("AssetsRendered = %d, want 11", result.AssetsRendered)
	}
	if result.FilesWritten != 11 {
		t.Errorf("FilesWritten = %d, want 11", result.FilesWritten)
	}

	for _, name := range result.Files {
		path := filepath.Join(b.OutputDir(), name)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("asset %s not written: %v", name, err)
		}
	}

	manifest, err := ReadManifest(b.OutputDir())
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if len(manifest.Assets) != 11 {
		t.Errorf("manifest has %d assets, want 11", len(manifest.Assets))
	}
	if manifest.Palette != "cyberpunk" {
		t.Errorf("manifest palette = %q, want %q", manifest.Palette, "cyberpunk")
	}
}

func TestBuild_StyleFilter(t *testing.T) {
	cfg := testConfig()
	cfg.Styles = []string{synth.StyleGradient}
	b := newTestBuilder(t, cfg)

	result, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.AssetsRendered != 4 {
		t.Errorf("AssetsRendered = %d, want 4", result.AssetsRendered)
	}

	manifest, err := ReadManifest(b.OutputDir())
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	for _, a := range manifest.Assets {
		if a.Style != synth.StyleGradient {
			t.Errorf("asset %s has style %q, want gradient", a.Name, a.Style)
		}
	}
}

func TestBuild_MultipleFormats(t *testing.T) {
	cfg := testConfig()
	cfg.Styles = []string{synth.StyleText}
	cfg.Formats = []string{"png", "jpeg", "webp"}
	b := newTestBuilder(t, cfg)

	result, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.FilesWritten != 3 {
		t.Errorf("FilesWritten = %d, want 3", result.FilesWritten)
	}

	for _, name := range []string{
		"placeholder-80x60-text.png",
		"placeholder-80x60-text.jpg",
		"placeholder-80x60-text.webp",
	} {
		if _, err := os.Stat(filepath.Join(b.OutputDir(), name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func TestBuild_SeededRunsUseCache(t *testing.T) {
	cfg := testConfig()
	root := t.TempDir()

	b1, err := NewBuilder(cfg, Options{ProjectRoot: root})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	first, err := b1.Build()
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if first.Skipped != 0 {
		t.Errorf("first run Skipped = %d, want 0", first.Skipped)
	}

	b2, err := NewBuilder(cfg, Options{ProjectRoot: root})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	second, err := b2.Build()
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if second.FilesWritten != 0 {
		t.Errorf("second run FilesWritten = %d, want 0", second.FilesWritten)
	}
	if second.Skipped != first.FilesWritten {
		t.Errorf("second run Skipped = %d, want %d", second.Skipped, first.FilesWritten)
	}
}

func TestBuild_UnseededGlitchIsNeverCached(t *testing.T) {
	cfg := testConfig()
	cfg.Styles = []string{synth.StyleGlitch}
	cfg.Glitch.Seed = 0
	root := t.TempDir()

	for run := 0; run < 2; run++ {
		b, err := NewBuilder(cfg, Options{ProjectRoot: root})
		if err != nil {
			t.Fatalf("NewBuilder: %v", err)
		}
		result, err := b.Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if result.Skipped != 0 {
			t.Errorf("run %d: Skipped = %d, want 0", run, result.Skipped)
		}
		if result.FilesWritten != 1 {
			t.Errorf("run %d: FilesWritten = %d, want 1", run, result.FilesWritten)
		}
	}
}

func TestBuild_CacheInvalidatesOnQualityChange(t *testing.T) {
	cfg := testConfig()
	cfg.Styles = []string{synth.StyleGradient}
	root := t.TempDir()

	b1, err := NewBuilder(cfg, Options{ProjectRoot: root})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if _, err := b1.Build(); err != nil {
		t.Fatalf("first Build: %v", err)
	}

	cfg.Quality = 50
	b2, err := NewBuilder(cfg, Options{ProjectRoot: root})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	second, err := b2.Build()
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if second.Skipped != 0 {
		t.Errorf("Skipped = %d after quality change, want 0", second.Skipped)
	}
}

func TestBuild_AnimatedGlitch(t *testing.T) {
	cfg := testConfig()
	cfg.Styles = []string{synth.StyleGlitch}
	cfg.Glitch.Animate = true
	cfg.Glitch.Frames = 3
	b := newTestBuilder(t, cfg)

	result, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// One static file plus the animation.
	if result.FilesWritten != 2 {
		t.Errorf("FilesWritten = %d, want 2", result.FilesWritten)
	}

	animPath := filepath.Join(b.OutputDir(), "placeholder-80x60-glitch-anim.png")
	if _, err := os.Stat(animPath); err != nil {
		t.Errorf("animation not written: %v", err)
	}

	manifest, err := ReadManifest(b.OutputDir())
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if got := manifest.Assets[0].Animated; got != "placeholder-80x60-glitch-anim.png" {
		t.Errorf("manifest animated = %q, want glitch animation filename", got)
	}
}

func TestBuild_Variants(t *testing.T) {
	cfg := testConfig()
	cfg.Styles = []string{synth.StyleGradient}
	cfg.Sizes = []config.Size{{Width: 400, Height: 300, Name: "large"}}
	cfg.Variants.Enabled = true
	cfg.Variants.Sizes = []int{100, 200}
	cfg.Variants.Formats = []string{"png"}
	b := newTestBuilder(t, cfg)

	result, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// 4 gradient assets, two variant widths each.
	if result.VariantsWritten != 8 {
		t.Errorf("VariantsWritten = %d, want 8", result.VariantsWritten)
	}

	manifest, err := ReadManifest(b.OutputDir())
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	for _, a := range manifest.Assets {
		if len(a.Variants) != 2 {
			t.Errorf("asset %s has %d variants, want 2", a.Name, len(a.Variants))
		}
	}

	if _, err := os.Stat(filepath.Join(b.OutputDir(), "placeholder-400x300-gradient-diagonal-100w.png")); err != nil {
		t.Errorf("expected variant file to exist: %v", err)
	}
}

func TestBuild_UnknownPalette(t *testing.T) {
	cfg := testConfig()
	cfg.Palette = "vaporwave"
	if _, err := NewBuilder(cfg, Options{ProjectRoot: t.TempDir()}); err == nil {
		t.Fatal("expected error for unknown palette, got nil")
	}
}

// ============================================================================
// Job expansion
// ============================================================================

func TestJobs_Naming(t *testing.T) {
	b := newTestBuilder(t, testConfig())

	names := make(map[string]bool)
	for _, j := range b.jobs() {
		names[j.name] = true
	}

	for _, want := range []string{
		"placeholder-80x60-gradient-diagonal",
		"placeholder-80x60-gradient-radial",
		"placeholder-80x60-geometric-waves",
		"placeholder-80x60-glitch",
		"placeholder-80x60-text",
		"placeholder-80x60-qr",
	} {
		if !names[want] {
			t.Errorf("expected job named %q", want)
		}
	}
}

func TestJobs_TextLabelUsesTemplate(t *testing.T) {
	cfg := testConfig()
	cfg.Styles = []string{synth.StyleText}
	cfg.Text.Template = "%d by %d"
	b := newTestBuilder(t, cfg)

	jobs := b.jobs()
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(jobs))
	}
	if jobs[0].params.Text != "80 by 60" {
		t.Errorf("text label = %q, want %q", jobs[0].params.Text, "80 by 60")
	}
}
