package synth

import (
	"fmt"
	"image"
	"image/draw"

	qrcode "github.com/skip2/go-qrcode"
)

// qrCard paints a QR code of the label centered on the background, framed
// like a text banner. The code encodes the label verbatim so a scanned
// placeholder identifies the asset slot it stands in for.
func (r *Renderer) qrCard(w, h int, label string) (*image.RGBA, error) {
	img := newCanvas(w, h, r.pal.BG)

	q, err := qrcode.New(label, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encoding qr label %q: %w", label, err)
	}
	q.DisableBorder = true
	q.ForegroundColor = r.pal.Accent
	q.BackgroundColor = r.pal.BG

	side := min(w, h) * 3 / 5
	if side < 21 {
		side = min(w, h) // tiny canvas: let the code fill it
	}
	code := q.Image(side)

	offset := image.Pt((w-code.Bounds().Dx())/2, (h-code.Bounds().Dy())/2)
	draw.Draw(img, code.Bounds().Add(offset), code, code.Bounds().Min, draw.Over)

	drawBorder(img, r.pal.Accent2, textBorderWidth)
	return img, nil
}
