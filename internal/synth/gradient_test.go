package synth

import (
	"image/color"
	"testing"
)

func TestGradient_DiagonalCorners(t *testing.T) {
	r := newTestRenderer(t)
	const w, h = 280, 200

	img, err := r.Render(Params{Width: w, Height: h, Style: StyleGradient, Variant: "diagonal"})
	if err != nil {
		t.Fatal(err)
	}

	pal := r.Palette()
	if got := img.RGBAAt(0, 0); got != pal.BG {
		t.Errorf("origin = %v, want background %v", got, pal.BG)
	}

	// Far corner: ratio (w-1+h-1)/(w+h), scaled by 0.5.
	ratio := float64(w-1+h-1) / float64(w+h) * 0.5
	want := expectLerp(pal.BG, pal.Accent, ratio)
	if got := img.RGBAAt(w-1, h-1); got != want {
		t.Errorf("far corner = %v, want %v", got, want)
	}
}

func TestGradient_VerticalRows(t *testing.T) {
	r := newTestRenderer(t)
	const w, h = 280, 200

	img, err := r.Render(Params{Width: w, Height: h, Style: StyleGradient, Variant: "vertical"})
	if err != nil {
		t.Fatal(err)
	}

	pal := r.Palette()
	if got := img.RGBAAt(140, 0); got != pal.BG {
		t.Errorf("row 0 = %v, want background", got)
	}

	// Final row blends at (h-1)/h — the boundary is exclusive, never 1.0.
	want := expectLerp(pal.BG, pal.Accent, float64(h-1)/float64(h))
	for _, x := range []int{0, 140, w - 1} {
		if got := img.RGBAAt(x, h-1); got != want {
			t.Errorf("row %d, col %d = %v, want %v", h-1, x, got, want)
		}
	}

	// Rows are uniform.
	if a, b := img.RGBAAt(0, 77), img.RGBAAt(w-1, 77); a != b {
		t.Errorf("row 77 not uniform: %v vs %v", a, b)
	}
}

func TestGradient_HorizontalColumns(t *testing.T) {
	r := newTestRenderer(t)
	const w, h = 120, 80

	img, err := r.Render(Params{Width: w, Height: h, Style: StyleGradient, Variant: "horizontal"})
	if err != nil {
		t.Fatal(err)
	}

	pal := r.Palette()
	if got := img.RGBAAt(0, 40); got != pal.BG {
		t.Errorf("column 0 = %v, want background", got)
	}

	want := expectLerp(pal.BG, pal.Accent2, float64(w-1)/float64(w))
	if got := img.RGBAAt(w-1, 0); got != want {
		t.Errorf("last column = %v, want %v", got, want)
	}

	if a, b := img.RGBAAt(33, 0), img.RGBAAt(33, h-1); a != b {
		t.Errorf("column 33 not uniform: %v vs %v", a, b)
	}
}

func TestGradient_RadialCenter(t *testing.T) {
	r := newTestRenderer(t)
	const w, h = 100, 60

	img, err := r.Render(Params{Width: w, Height: h, Style: StyleGradient, Variant: "radial"})
	if err != nil {
		t.Fatal(err)
	}

	// Center has distance 0, lands in the first band, and blends at full
	// strength toward the primary accent.
	pal := r.Palette()
	if got := img.RGBAAt(w/2, h/2); got != pal.Accent {
		t.Errorf("center = %v, want accent %v", got, pal.Accent)
	}

	// Every pixel is opaque.
	for _, p := range [][2]int{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}} {
		if a := img.RGBAAt(p[0], p[1]).A; a != 0xff {
			t.Errorf("pixel %v alpha = %d, want 255", p, a)
		}
	}
}

func TestGradient_RadialBandsAlternate(t *testing.T) {
	r := newTestRenderer(t)
	const w, h = 200, 200

	img, err := r.Render(Params{Width: w, Height: h, Style: StyleGradient, Variant: "radial"})
	if err != nil {
		t.Fatal(err)
	}

	// Two horizontally adjacent bands differ in base accent; since the
	// palette accents differ in every channel the painted colors must too.
	var prev color.RGBA
	changed := false
	for x := w / 2; x < w; x++ {
		c := img.RGBAAt(x, h/2)
		if x > w/2 && c != prev {
			changed = true
			break
		}
		prev = c
	}
	if !changed {
		t.Error("radial gradient is uniform along the center row")
	}
}
