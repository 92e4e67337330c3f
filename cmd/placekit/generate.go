package main

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aellingwood/placekit/internal/build"
	"github.com/aellingwood/placekit/internal/encode"
	"github.com/aellingwood/placekit/internal/palette"
	"github.com/aellingwood/placekit/internal/synth"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single placeholder image",
	Long:  "Generate one placeholder asset with the given style, size, and variant.",
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		style, _ := cmd.Flags().GetString("style")
		variant, _ := cmd.Flags().GetString("variant")
		text, _ := cmd.Flags().GetString("text")
		seed, _ := cmd.Flags().GetInt64("seed")
		format, _ := cmd.Flags().GetString("format")
		quality, _ := cmd.Flags().GetInt("quality")
		output, _ := cmd.Flags().GetString("output")
		filename, _ := cmd.Flags().GetString("filename")
		paletteName, _ := cmd.Flags().GetString("palette")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		pal, err := palette.Resolve(paletteName)
		if err != nil {
			return err
		}

		// Styles with variants default to their first variant.
		if variant == "" {
			if variants := synth.Variants(style); len(variants) > 0 {
				variant = variants[0]
			}
		}

		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		renderer := synth.NewRenderer(synth.Options{
			Palette: &pal,
			Fonts:   synth.LoadFonts(cfg.Text.FontPath),
			Rand:    rand.New(rand.NewSource(seed)),
		})

		img, err := renderer.Render(synth.Params{
			Width:   width,
			Height:  height,
			Style:   style,
			Variant: variant,
			Text:    text,
		})
		if err != nil {
			return err
		}

		ext, err := encode.Extension(format)
		if err != nil {
			return err
		}
		if filename == "" {
			filename = fmt.Sprintf("placeholder-%dx%d-%s", width, height, style)
			if variant != "" {
				filename += "-" + variant
			}
			if slug := build.Slugify(text); slug != "" {
				filename += "-" + slug
			}
			filename += "." + ext
		}

		outPath := filepath.Join(output, filename)
		if err := encode.Image(img, outPath, format, quality); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("generated"), outPath)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntP("width", "W", 280, "image width in pixels")
	generateCmd.Flags().IntP("height", "H", 200, "image height in pixels")
	generateCmd.Flags().StringP("style", "s", "gradient", "render style (gradient, geometric, glitch, text, qr)")
	generateCmd.Flags().String("variant", "", "style variant (defaults to the style's first variant)")
	generateCmd.Flags().StringP("text", "t", "", "label for text and qr styles")
	generateCmd.Flags().Int64("seed", 0, "glitch random seed (0 = time-based)")
	generateCmd.Flags().StringP("format", "f", "png", "output format (png, jpeg, webp)")
	generateCmd.Flags().Int("quality", 90, "jpeg/webp encode quality")
	generateCmd.Flags().StringP("output", "o", ".", "output directory")
	generateCmd.Flags().String("filename", "", "output filename (defaults to a descriptive name)")
	generateCmd.Flags().StringP("palette", "p", "cyberpunk", "palette name or palette file path")

	rootCmd.AddCommand(generateCmd)
}
