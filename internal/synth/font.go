package synth

import (
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// DefaultFontPath is the preferred on-disk face for text banners.
const DefaultFontPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"

// textScale is the banner font size as a fraction of the canvas height.
const textScale = 0.15

// FontSet holds the font capability for text banners: a preferred TrueType
// face loaded from disk, the embedded Go Bold face, and the built-in bitmap
// face as a last resort. Faces are derived per size and cached; all methods
// are safe for concurrent use.
type FontSet struct {
	preferred *truetype.Font
	embedded  *opentype.Font

	mu    sync.Mutex
	faces map[int]font.Face
}

// LoadFonts loads the font set, preferring the TrueType file at path. Load
// failures are absorbed silently: the set falls back to the embedded Go Bold
// face, and to the built-in bitmap face if even that cannot be parsed.
func LoadFonts(path string) *FontSet {
	fs := &FontSet{faces: make(map[int]font.Face)}

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if tt, err := truetype.Parse(data); err == nil {
				fs.preferred = tt
			}
		}
	}

	if ot, err := opentype.Parse(gobold.TTF); err == nil {
		fs.embedded = ot
	}

	return fs
}

// Face returns a rendering face at the given point size.
func (fs *FontSet) Face(size int) font.Face {
	if size < 1 {
		size = 1
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if face, ok := fs.faces[size]; ok {
		return face
	}

	face := fs.newFace(size)
	fs.faces[size] = face
	return face
}

// FaceForHeight returns the face sized proportionally to the canvas height.
func (fs *FontSet) FaceForHeight(h int) font.Face {
	return fs.Face(int(float64(h) * textScale))
}

// newFace derives a face at size from the best available font.
func (fs *FontSet) newFace(size int) font.Face {
	if fs.preferred != nil {
		return truetype.NewFace(fs.preferred, &truetype.Options{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	if fs.embedded != nil {
		face, err := opentype.NewFace(fs.embedded, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}
