package synth

import (
	"image"
	"image/color"
	"image/draw"
)

// newCanvas allocates a width x height canvas pre-filled with the background
// color.
func newCanvas(w, h int, bg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	return img
}

// lerpChannel linearly interpolates one 8-bit channel from a toward b by
// ratio, truncating the result to an integer value.
func lerpChannel(a, b uint8, ratio float64) uint8 {
	return uint8(int(float64(a) + (float64(b)-float64(a))*ratio))
}

// lerp blends from toward to by ratio in [0,1], per channel. The result is
// always opaque.
func lerp(from, to color.RGBA, ratio float64) color.RGBA {
	return color.RGBA{
		R: lerpChannel(from.R, to.R, ratio),
		G: lerpChannel(from.G, to.G, ratio),
		B: lerpChannel(from.B, to.B, ratio),
		A: 0xff,
	}
}

// withAlpha returns c with its alpha channel replaced.
func withAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

// blendPixel composites the translucent color c over the opaque pixel at
// (x, y). Out-of-bounds coordinates are ignored.
func blendPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{x, y}).In(img.Bounds()) {
		return
	}
	base := img.RGBAAt(x, y)
	a := uint32(c.A)
	over := func(b, f uint8) uint8 {
		return uint8((uint32(f)*a + uint32(b)*(255-a) + 127) / 255)
	}
	img.SetRGBA(x, y, color.RGBA{
		R: over(base.R, c.R),
		G: over(base.G, c.G),
		B: over(base.B, c.B),
		A: 0xff,
	})
}

// blendRect composites c over every pixel of rect, clipped to the canvas.
func blendRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			blendPixel(img, x, y, c)
		}
	}
}

// blendCircle composites a filled circle of radius rad centered at (cx, cy).
func blendCircle(img *image.RGBA, cx, cy, rad int, c color.RGBA) {
	for y := cy - rad; y <= cy+rad; y++ {
		for x := cx - rad; x <= cx+rad; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= rad*rad {
				blendPixel(img, x, y, c)
			}
		}
	}
}

// fillRect overwrites rect with the opaque color c, clipped to the canvas.
func fillRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	rect = rect.Intersect(img.Bounds())
	draw.Draw(img, rect, &image.Uniform{c}, image.Point{}, draw.Src)
}

// drawBorder paints an opaque frame of the given thickness inset at the
// canvas edge.
func drawBorder(img *image.RGBA, c color.RGBA, thickness int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	fillRect(img, image.Rect(0, 0, w, thickness), c)           // top
	fillRect(img, image.Rect(0, h-thickness, w, h), c)         // bottom
	fillRect(img, image.Rect(0, 0, thickness, h), c)           // left
	fillRect(img, image.Rect(w-thickness, 0, w, h), c)         // right
}
