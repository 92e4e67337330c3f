// Package synth implements the procedural placeholder image synthesizers:
// gradients, geometric patterns, glitch art, text banners, and QR cards.
// Every synthesis call is a pure function of its parameters and the palette,
// except for the glitch style which draws from an injectable random source.
package synth

import (
	"errors"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/aellingwood/placekit/internal/palette"
)

// Style names accepted by Render.
const (
	StyleGradient  = "gradient"
	StyleGeometric = "geometric"
	StyleGlitch    = "glitch"
	StyleText      = "text"
	StyleQR        = "qr"
)

// Misuse errors returned by Render. Both signal bad parameters, not a
// runtime fault.
var (
	ErrUnknownStyle   = errors.New("unknown style")
	ErrUnknownVariant = errors.New("unknown variant")
)

// Params describes a single asset to synthesize.
type Params struct {
	Width   int
	Height  int
	Style   string // gradient, geometric, glitch, text, qr
	Variant string // gradient/geometric variant tag
	Text    string // text and qr styles; defaults to "PLACEHOLDER"
}

// Options configures a Renderer. Zero-value fields get defaults: the built-in
// palette, fonts loaded from the default path, and a time-seeded random
// source.
type Options struct {
	Palette *palette.Palette
	Fonts   *FontSet
	Rand    *rand.Rand
}

// Renderer synthesizes placeholder canvases. A Renderer is cheap to create
// and safe to reuse across calls; each call allocates its own canvas.
type Renderer struct {
	pal   palette.Palette
	fonts *FontSet
	rng   *rand.Rand
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts Options) *Renderer {
	pal := palette.Default()
	if opts.Palette != nil {
		pal = *opts.Palette
	}
	fonts := opts.Fonts
	if fonts == nil {
		fonts = LoadFonts(DefaultFontPath)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Renderer{pal: pal, fonts: fonts, rng: rng}
}

// Palette returns the palette the renderer draws with.
func (r *Renderer) Palette() palette.Palette { return r.pal }

// Render synthesizes a single canvas from p. Width and Height must be
// positive; style and variant tags must be known.
func (r *Renderer) Render(p Params) (*image.RGBA, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d: dimensions must be positive", p.Width, p.Height)
	}

	switch p.Style {
	case StyleGradient:
		return r.gradient(p.Width, p.Height, p.Variant)
	case StyleGeometric:
		return r.geometric(p.Width, p.Height, p.Variant)
	case StyleGlitch:
		return r.glitch(p.Width, p.Height), nil
	case StyleText:
		return r.text(p.Width, p.Height, labelOrDefault(p)), nil
	case StyleQR:
		return r.qrCard(p.Width, p.Height, labelOrDefault(p))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, p.Style)
	}
}

// RenderFrames synthesizes n frames for an animated asset. Only the glitch
// style is animatable; each frame re-rolls the random rectangles.
func (r *Renderer) RenderFrames(p Params, n int) ([]image.Image, error) {
	if p.Style != StyleGlitch {
		return nil, fmt.Errorf("style %q is not animatable", p.Style)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d: dimensions must be positive", p.Width, p.Height)
	}
	frames := make([]image.Image, n)
	for i := range frames {
		frames[i] = r.glitch(p.Width, p.Height)
	}
	return frames, nil
}

// labelOrDefault returns the text to render for text/qr styles. The variant
// slot doubles as the literal string when Text is unset, mirroring how
// callers pass the label through the generic variant parameter.
func labelOrDefault(p Params) string {
	if p.Text != "" {
		return p.Text
	}
	if p.Variant != "" {
		return p.Variant
	}
	return "PLACEHOLDER"
}

// Styles returns all style tags in a stable order.
func Styles() []string {
	return []string{StyleGradient, StyleGeometric, StyleGlitch, StyleText, StyleQR}
}

// Variants returns the variant tags for a style, or nil for styles without
// variants.
func Variants(style string) []string {
	switch style {
	case StyleGradient:
		return []string{"diagonal", "radial", "vertical", "horizontal"}
	case StyleGeometric:
		return []string{"grid", "lines", "circles", "waves"}
	}
	return nil
}
