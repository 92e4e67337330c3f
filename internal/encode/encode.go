// Package encode writes synthesized canvases to disk in the supported
// output formats: PNG, JPEG, WebP, and animated PNG for glitch clips.
package encode

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/webp"
	"github.com/setanarut/apng"
)

// Extension returns the file extension (without dot) for a format name.
func Extension(format string) (string, error) {
	switch format {
	case "png":
		return "png", nil
	case "jpeg", "jpg":
		return "jpg", nil
	case "webp":
		return "webp", nil
	default:
		return "", fmt.Errorf("unsupported format %q (want png, jpeg, or webp)", format)
	}
}

// Image writes img to outPath in the specified format.
func Image(img image.Image, outPath, format string, quality int) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}

	switch format {
	case "webp":
		opts := webp.Options{Quality: quality}
		err = webp.Encode(f, img, opts)
	case "jpeg", "jpg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	case "png":
		err = png.Encode(f, img)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return f.Close()
}

// Animation writes frames as an animated PNG. delay is the per-frame delay
// in 1/100ths of a second.
func Animation(frames []image.Image, outPath string, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	apng.Save(outPath, frames, uint16(delay))
	return nil
}
