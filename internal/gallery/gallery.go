// Package gallery renders a static HTML contact sheet for a generated asset
// set, so a batch can be reviewed in a browser at a glance.
package gallery

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"github.com/aellingwood/placekit/internal/build"
	"github.com/aellingwood/placekit/internal/config"
	"github.com/aellingwood/placekit/internal/palette"
)

// IndexFilename is the name of the gallery page written into the output
// directory.
const IndexFilename = "index.html"

// Writer renders the gallery page.
type Writer struct {
	cfg  config.GalleryConfig
	md   goldmark.Markdown
	tmpl *template.Template
}

// New creates a gallery Writer. The intro text is rendered as Markdown with
// GFM extensions.
func New(cfg config.GalleryConfig) (*Writer, error) {
	tmpl, err := template.New("gallery").Parse(galleryTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing gallery template: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			ghtml.WithUnsafe(),
		),
	)

	return &Writer{cfg: cfg, md: md, tmpl: tmpl}, nil
}

type swatch struct {
	Name string
	Hex  string
}

type assetView struct {
	Name     string
	Src      string
	Style    string
	Variant  string
	Width    int
	Height   int
	Animated string
	Variants []string
}

type group struct {
	Label  string
	Assets []assetView
}

type pageData struct {
	Title       string
	Intro       template.HTML
	PaletteName string
	GeneratedAt string
	Swatches    []swatch
	Groups      []group
}

// Write renders the gallery page for manifest into outputDir. Image sources
// are relative filenames, so the page works from the filesystem and from any
// static server rooted at outputDir.
func (w *Writer) Write(outputDir string, manifest *build.Manifest) error {
	intro, err := w.renderIntro()
	if err != nil {
		return err
	}

	pal, err := palette.Resolve(manifest.Palette)
	if err != nil {
		pal = palette.Default()
	}

	data := pageData{
		Title:       w.cfg.Title,
		Intro:       intro,
		PaletteName: manifest.Palette,
		GeneratedAt: manifest.GeneratedAt.Format("2006-01-02 15:04 MST"),
		Swatches: []swatch{
			{"bg", palette.FormatHex(pal.BG)},
			{"bg-elev", palette.FormatHex(pal.BGElev)},
			{"accent", palette.FormatHex(pal.Accent)},
			{"accent-2", palette.FormatHex(pal.Accent2)},
			{"fg", palette.FormatHex(pal.FG)},
			{"text-muted", palette.FormatHex(pal.TextMuted)},
			{"border", palette.FormatHex(pal.Border)},
		},
		Groups: groupBySize(manifest.Assets),
	}

	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing gallery template: %w", err)
	}
	outPath := filepath.Join(outputDir, IndexFilename)
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing gallery page: %w", err)
	}
	return nil
}

// renderIntro converts the configured intro Markdown to HTML. When the
// configured value names an existing file it is read from disk, otherwise it
// is treated as inline Markdown.
func (w *Writer) renderIntro() (template.HTML, error) {
	source := w.cfg.Intro
	if source == "" {
		return "", nil
	}
	if strings.HasSuffix(source, ".md") {
		if data, err := os.ReadFile(source); err == nil {
			source = string(data)
		}
	}

	var buf bytes.Buffer
	if err := w.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering gallery intro: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// groupBySize sorts assets into one section per canvas size, largest first.
func groupBySize(assets []build.Asset) []group {
	byLabel := make(map[string][]assetView)
	area := make(map[string]int)

	for _, a := range assets {
		if len(a.Files) == 0 {
			continue
		}
		v := assetView{
			Name:     a.Name,
			Src:      a.Files[0],
			Style:    a.Style,
			Variant:  a.Variant,
			Width:    a.Width,
			Height:   a.Height,
			Animated: a.Animated,
			Variants: a.Variants,
		}
		label := fmt.Sprintf("%d × %d", a.Width, a.Height)
		byLabel[label] = append(byLabel[label], v)
		area[label] = a.Width * a.Height
	}

	groups := make([]group, 0, len(byLabel))
	for label, assets := range byLabel {
		sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
		groups = append(groups, group{Label: label, Assets: assets})
	}
	sort.Slice(groups, func(i, j int) bool { return area[groups[i].Label] > area[groups[j].Label] })
	return groups
}
