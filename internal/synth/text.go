package synth

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// textBorderWidth is the frame painted at the canvas edge of text banners.
const textBorderWidth = 2

// text paints the string centered on the background in the primary accent,
// framed by a 2px secondary-accent border.
func (r *Renderer) text(w, h int, label string) *image.RGBA {
	img := newCanvas(w, h, r.pal.BG)

	face := r.fonts.FaceForHeight(h)
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.pal.Accent),
		Face: face,
	}

	// Center the ink bounding box, not the advance, so descenders and
	// bearings don't skew the placement.
	bounds, _ := font.BoundString(face, label)
	tw := (bounds.Max.X - bounds.Min.X).Ceil()
	th := (bounds.Max.Y - bounds.Min.Y).Ceil()

	drawer.Dot = fixed.Point26_6{
		X: fixed.I((w-tw)/2) - bounds.Min.X,
		Y: fixed.I((h-th)/2) - bounds.Min.Y,
	}
	drawer.DrawString(label)

	drawBorder(img, r.pal.Accent2, textBorderWidth)
	return img
}
