package synth

import (
	"fmt"
	"image"
	"math"
)

// gradient paints one of the four gradient variants. All variants blend the
// background toward an accent with a per-channel linear interpolation.
func (r *Renderer) gradient(w, h int, variant string) (*image.RGBA, error) {
	img := newCanvas(w, h, r.pal.BG)
	bg := r.pal.BG

	switch variant {
	case "diagonal":
		// Top-left to bottom-right, capped at half intensity in the far
		// corner.
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				ratio := float64(x+y) / float64(w+h)
				img.SetRGBA(x, y, lerp(bg, r.pal.Accent, ratio*0.5))
			}
		}

	case "radial":
		// Concentric bands alternating between the two accents, most
		// saturated at the center.
		cx, cy := w/2, h/2
		maxDist := math.Hypot(float64(w)/2, float64(h)/2)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dist := math.Hypot(float64(x-cx), float64(y-cy))
				ratio := math.Min(dist/maxDist, 1.0)

				base := r.pal.Accent
				if int(ratio*10)%2 != 0 {
					base = r.pal.Accent2
				}
				img.SetRGBA(x, y, lerp(bg, base, 1-ratio))
			}
		}

	case "vertical":
		for y := 0; y < h; y++ {
			row := lerp(bg, r.pal.Accent, float64(y)/float64(h))
			for x := 0; x < w; x++ {
				img.SetRGBA(x, y, row)
			}
		}

	case "horizontal":
		for x := 0; x < w; x++ {
			col := lerp(bg, r.pal.Accent2, float64(x)/float64(w))
			for y := 0; y < h; y++ {
				img.SetRGBA(x, y, col)
			}
		}

	default:
		return nil, fmt.Errorf("%w: gradient %q", ErrUnknownVariant, variant)
	}

	return img, nil
}
