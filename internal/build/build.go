// Package build orchestrates the placeholder generation pipeline: it
// expands the configured style and size matrix into render jobs, synthesizes
// and encodes each asset, maintains the render cache, generates responsive
// variants, and writes the asset manifest.
package build

import (
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/aellingwood/placekit/internal/config"
	"github.com/aellingwood/placekit/internal/encode"
	"github.com/aellingwood/placekit/internal/palette"
	"github.com/aellingwood/placekit/internal/synth"
	"github.com/aellingwood/placekit/internal/variants"
)

// animDelay is the per-frame delay of animated glitch clips, in 1/100ths of
// a second.
const animDelay = 6

// Options controls the behaviour of the build pipeline.
type Options struct {
	ProjectRoot string
	OutputDir   string // resolved from config when empty
	Verbose     bool
}

// Result contains statistics about the completed build.
type Result struct {
	AssetsRendered  int
	FilesWritten    int
	Skipped         int
	VariantsWritten int
	Duration        time.Duration
	Files           []string // filenames of all written asset files
}

// Builder coordinates the full placeholder generation pipeline.
type Builder struct {
	cfg   *config.GenConfig
	opts  Options
	pal   palette.Palette
	fonts *synth.FontSet
}

// NewBuilder creates a Builder, resolving the configured palette and loading
// the font set once for the whole run.
func NewBuilder(cfg *config.GenConfig, opts Options) (*Builder, error) {
	pal, err := palette.Resolve(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("resolving palette: %w", err)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = filepath.Join(opts.ProjectRoot, cfg.Output)
	}
	return &Builder{
		cfg:   cfg,
		opts:  opts,
		pal:   pal,
		fonts: synth.LoadFonts(cfg.Text.FontPath),
	}, nil
}

// Palette returns the resolved palette the build renders with.
func (b *Builder) Palette() palette.Palette { return b.pal }

// OutputDir returns the resolved output directory.
func (b *Builder) OutputDir() string { return b.opts.OutputDir }

// job is one asset to synthesize.
type job struct {
	params  synth.Params
	name    string // base filename without extension
	animate bool
}

// jobs expands the configured sizes against the enabled styles. Gradient and
// geometric styles produce one job per variant; glitch, text and qr produce
// one job per size.
func (b *Builder) jobs() []job {
	enabled := make(map[string]bool)
	if len(b.cfg.Styles) == 0 {
		for _, s := range synth.Styles() {
			enabled[s] = true
		}
	} else {
		for _, s := range b.cfg.Styles {
			enabled[s] = true
		}
	}

	var jobs []job
	for _, size := range b.cfg.Sizes {
		w, h := size.Width, size.Height
		base := fmt.Sprintf("placeholder-%dx%d", w, h)

		for _, style := range []string{synth.StyleGradient, synth.StyleGeometric} {
			if !enabled[style] {
				continue
			}
			for _, variant := range synth.Variants(style) {
				jobs = append(jobs, job{
					params: synth.Params{Width: w, Height: h, Style: style, Variant: variant},
					name:   fmt.Sprintf("%s-%s-%s", base, style, variant),
				})
			}
		}
		if enabled[synth.StyleGlitch] {
			jobs = append(jobs, job{
				params:  synth.Params{Width: w, Height: h, Style: synth.StyleGlitch},
				name:    base + "-glitch",
				animate: b.cfg.Glitch.Animate,
			})
		}
		if enabled[synth.StyleText] {
			jobs = append(jobs, job{
				params: synth.Params{
					Width: w, Height: h,
					Style: synth.StyleText,
					Text:  fmt.Sprintf(b.cfg.Text.Template, w, h),
				},
				name: base + "-text",
			})
		}
		if enabled[synth.StyleQR] {
			jobs = append(jobs, job{
				params: synth.Params{
					Width: w, Height: h,
					Style: synth.StyleQR,
					Text:  base,
				},
				name: base + "-qr",
			})
		}
	}
	return jobs
}

// generateVariants runs the responsive variant generator over the first
// encoded file of every asset and attaches the resulting filenames.
func (b *Builder) generateVariants(assets []Asset, result *Result) error {
	gen := variants.NewGenerator(b.cfg.Variants, b.opts.ProjectRoot)

	srcIndex := make(map[string]int, len(assets))
	var paths []string
	for i, a := range assets {
		if len(a.Files) == 0 {
			continue
		}
		// Prefer the PNG encoding as the resize source.
		src := a.Files[0]
		for _, f := range a.Files {
			if strings.HasSuffix(f, ".png") {
				src = f
				break
			}
		}
		p := filepath.Join(b.opts.OutputDir, src)
		srcIndex[p] = i
		paths = append(paths, p)
	}

	generated, err := gen.ProcessAll(paths)
	if err != nil {
		return fmt.Errorf("generating variants: %w", err)
	}
	for p, vs := range generated {
		i := srcIndex[p]
		for _, v := range vs {
			assets[i].Variants = append(assets[i].Variants, v.Filename)
			result.Files = append(result.Files, v.Filename)
		}
		result.VariantsWritten += len(vs)
	}
	if err := gen.Flush(); err != nil && b.opts.Verbose {
		fmt.Fprintf(os.Stderr, "warning: saving variant cache: %v\n", err)
	}
	return nil
}

// Build executes the full pipeline and returns a Result summarizing what was
// generated. The steps are:
//  1. Create the output directory
//  2. Expand the style/size matrix into render jobs
//  3. Render and encode jobs across a bounded worker pool,
//     skipping jobs the render cache proves unchanged
//  4. Generate responsive variants (if enabled)
//  5. Write the asset manifest
func (b *Builder) Build() (*Result, error) {
	start := time.Now()
	result := &Result{}

	if err := os.MkdirAll(b.opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	cache, err := NewRenderCache(filepath.Join(b.opts.ProjectRoot, ".placekit", "rendercache.json"))
	if err != nil {
		// Run uncached rather than failing the build.
		cache = nil
	}

	// The effective seed makes a whole batch reproducible when configured;
	// each job mixes in its index so glitch assets still differ from each
	// other.
	seed := b.cfg.Glitch.Seed
	deterministic := seed != 0
	if !deterministic {
		seed = time.Now().UnixNano()
	}

	jobs := b.jobs()
	assets := make([]Asset, len(jobs))

	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, j := range jobs {
		wg.Add(1)
		sem <- struct{}{} // acquire
		go func(i int, j job) {
			defer wg.Done()
			defer func() { <-sem }() // release

			asset, written, skipped, err := b.runJob(j, cache, seed+int64(i), deterministic)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			assets[i] = asset
			result.FilesWritten += written
			result.Skipped += skipped
		}(i, j)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	result.AssetsRendered = len(assets)

	for _, a := range assets {
		result.Files = append(result.Files, a.Files...)
		if a.Animated != "" {
			result.Files = append(result.Files, a.Animated)
		}
	}

	if b.cfg.Variants.Enabled {
		if err := b.generateVariants(assets, result); err != nil {
			return nil, err
		}
	}

	manifest := &Manifest{
		GeneratedAt: start.UTC(),
		Palette:     b.cfg.Palette,
		Assets:      assets,
	}
	if err := WriteManifest(b.opts.OutputDir, manifest); err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Save(); err != nil && b.opts.Verbose {
			fmt.Fprintf(os.Stderr, "warning: saving render cache: %v\n", err)
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// runJob renders one job and encodes it in every configured format.
func (b *Builder) runJob(j job, cache *RenderCache, jobSeed int64, deterministic bool) (Asset, int, int, error) {
	asset := Asset{
		Name:    j.name,
		Style:   j.params.Style,
		Variant: j.params.Variant,
		Width:   j.params.Width,
		Height:  j.params.Height,
	}

	// Unseeded glitch output is intentionally unreproducible, so the cache
	// can never prove it unchanged.
	cacheable := cache != nil && (deterministic || j.params.Style != synth.StyleGlitch)

	renderer := synth.NewRenderer(synth.Options{
		Palette: &b.pal,
		Fonts:   b.fonts,
		Rand:    rand.New(rand.NewSource(jobSeed)),
	})

	written, skipped := 0, 0
	var img *image.RGBA

	for _, format := range b.cfg.Formats {
		ext, err := encode.Extension(format)
		if err != nil {
			return Asset{}, 0, 0, err
		}
		filename := j.name + "." + ext
		outPath := filepath.Join(b.opts.OutputDir, filename)

		var key string
		if cacheable {
			key = cache.Key(j.params, b.pal, format, b.cfg.Quality, jobSeed)
			if cache.Fresh(filename, key, outPath) {
				asset.Files = append(asset.Files, filename)
				skipped++
				continue
			}
		}

		if img == nil {
			img, err = renderer.Render(j.params)
			if err != nil {
				return Asset{}, 0, 0, fmt.Errorf("rendering %s: %w", j.name, err)
			}
		}

		if err := encode.Image(img, outPath, format, b.cfg.Quality); err != nil {
			return Asset{}, 0, 0, err
		}
		asset.Files = append(asset.Files, filename)
		written++
		if cacheable {
			cache.Record(filename, key)
		}
	}

	if j.animate {
		filename := j.name + "-anim.png"
		frames, err := renderer.RenderFrames(j.params, b.cfg.Glitch.Frames)
		if err != nil {
			return Asset{}, 0, 0, fmt.Errorf("rendering %s: %w", filename, err)
		}
		if err := encode.Animation(frames, filepath.Join(b.opts.OutputDir, filename), animDelay); err != nil {
			return Asset{}, 0, 0, err
		}
		asset.Animated = filename
		written++
	}

	return asset, written, skipped, nil
}
