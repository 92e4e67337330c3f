package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aellingwood/placekit/internal/palette"
	"github.com/aellingwood/placekit/internal/synth"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List styles, palettes, or configured sizes",
}

var listStylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List render styles and their variants",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headingStyle.Render("Styles"))
		for _, style := range synth.Styles() {
			variants := synth.Variants(style)
			if len(variants) == 0 {
				fmt.Fprintf(out, "  %s\n", accentStyle.Render(style))
				continue
			}
			fmt.Fprintf(out, "  %s  %s\n",
				accentStyle.Render(style),
				mutedStyle.Render(strings.Join(variants, ", ")))
		}
		return nil
	},
}

var listPalettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "List built-in palettes",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headingStyle.Render("Palettes"))
		for _, name := range palette.BuiltinNames() {
			pal, err := palette.Builtin(name)
			if err != nil {
				return err
			}
			var blocks []string
			for _, c := range []string{
				palette.FormatHex(pal.BG),
				palette.FormatHex(pal.BGElev),
				palette.FormatHex(pal.Accent),
				palette.FormatHex(pal.Accent2),
				palette.FormatHex(pal.FG),
			} {
				blocks = append(blocks, swatchStyle(c).Render("  "))
			}
			fmt.Fprintf(out, "  %s  %s\n", accentStyle.Render(name), strings.Join(blocks, ""))
		}
		return nil
	},
}

var listSizesCmd = &cobra.Command{
	Use:   "sizes",
	Short: "List configured target sizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headingStyle.Render("Sizes"))
		for _, s := range cfg.Sizes {
			label := s.Name
			if label == "" {
				label = "-"
			}
			fmt.Fprintf(out, "  %s  %s\n",
				accentStyle.Render(fmt.Sprintf("%dx%d", s.Width, s.Height)),
				mutedStyle.Render(label))
		}
		return nil
	},
}

func init() {
	listCmd.AddCommand(listStylesCmd)
	listCmd.AddCommand(listPalettesCmd)
	listCmd.AddCommand(listSizesCmd)
	rootCmd.AddCommand(listCmd)
}
