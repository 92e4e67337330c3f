package synth

import (
	"image"
	"image/color"
)

// Glitch layout constants.
const (
	glitchMinRects  = 5
	glitchMaxRects  = 15
	glitchRectAlpha = 60
	scanlineStep    = 3
	scanlineAlpha   = 10
)

// glitch paints randomly placed translucent rectangles in alternating
// accents, then a faint horizontal scanline overlay. Output depends on the
// renderer's random source; seed it for reproducible results.
func (r *Renderer) glitch(w, h int) *image.RGBA {
	img := newCanvas(w, h, r.pal.BG)

	// Anchors stay at least a minimum rect away from the right/bottom edge
	// where the canvas allows it.
	maxX := max(w-50, 0)
	maxY := max(h-20, 0)

	n := glitchMinRects + r.rng.Intn(glitchMaxRects-glitchMinRects+1)
	for i := 0; i < n; i++ {
		x1 := r.rng.Intn(maxX + 1)
		y1 := r.rng.Intn(maxY + 1)
		x2 := x1 + 30 + r.rng.Intn(71)
		y2 := y1 + 10 + r.rng.Intn(31)

		c := r.pal.Accent
		if r.rng.Float64() <= 0.5 {
			c = r.pal.Accent2
		}
		blendRect(img, image.Rect(x1, y1, x2, y2), withAlpha(c, glitchRectAlpha))
	}

	scanline := color.RGBA{255, 255, 255, scanlineAlpha}
	for y := 0; y < h; y += scanlineStep {
		for x := 0; x < w; x++ {
			blendPixel(img, x, y, scanline)
		}
	}

	return img
}
