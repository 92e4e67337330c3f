package synth

import (
	"fmt"
	"image"
)

// Fixed layout constants for the geometric patterns.
const (
	gridCellSize  = 40
	lineSpacing   = 20
	circleSize    = 30
	waveBaseDrop  = 20
	waveMaxAlpha  = 100
)

// geometric paints one of the four geometric pattern variants: translucent
// shapes composited over the background.
func (r *Renderer) geometric(w, h int, variant string) (*image.RGBA, error) {
	img := newCanvas(w, h, r.pal.BG)

	switch variant {
	case "grid":
		// Checkerboard of semi-transparent cells.
		for x := 0; x < w; x += gridCellSize {
			for y := 0; y < h; y += gridCellSize {
				c := withAlpha(r.pal.Accent, 30)
				if (x/gridCellSize+y/gridCellSize)%2 != 0 {
					c = withAlpha(r.pal.Accent2, 20)
				}
				blendRect(img, image.Rect(x, y, x+gridCellSize, y+gridCellSize), c)
			}
		}

	case "lines":
		// Two sets of 2px diagonal lines sweeping the full w+h span.
		c1 := withAlpha(r.pal.Accent, 40)
		c2 := withAlpha(r.pal.Accent2, 30)
		for i := 0; i < w+h; i += lineSpacing {
			// (i,0) down-left to (i-h,h).
			for y := 0; y < h; y++ {
				x := i - y
				blendPixel(img, x, y, c1)
				blendPixel(img, x+1, y, c1)
			}
			// (0,i) down-right to (w,i-w).
			for x := 0; x < w; x++ {
				y := i - x
				blendPixel(img, x, y, c2)
				blendPixel(img, x, y+1, c2)
			}
		}

	case "circles":
		// Grid of filled circles alternating accents by position.
		rad := circleSize / 2
		for x := 0; x < w; x += circleSize * 2 {
			for y := 0; y < h; y += circleSize * 2 {
				base := r.pal.Accent2
				if (x+y)%(circleSize*4) == 0 {
					base = r.pal.Accent
				}
				blendCircle(img, x+rad, y+rad, rad, withAlpha(base, 50))
			}
		}

	case "waves":
		// Per-column strokes: top offset grows with x, alpha fades to zero
		// toward the right edge.
		for x := 0; x < w; x++ {
			fx := float64(x) / float64(w)
			top := int(waveBaseDrop * (1 + 0.5*fx))
			alpha := uint8(int(waveMaxAlpha * (1 - fx)))
			c := withAlpha(r.pal.Accent, alpha)
			for y := top; y < h; y++ {
				blendPixel(img, x, y, c)
			}
		}

	default:
		return nil, fmt.Errorf("%w: geometric %q", ErrUnknownVariant, variant)
	}

	return img, nil
}
