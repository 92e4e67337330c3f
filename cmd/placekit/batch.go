package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aellingwood/placekit/internal/build"
	"github.com/aellingwood/placekit/internal/config"
	"github.com/aellingwood/placekit/internal/gallery"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate the full asset set",
	Long:  "Generate every configured style and size combination, plus variants, the manifest, and the gallery page.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		overrides := map[string]any{}
		if cmd.Flags().Changed("output") {
			output, _ := cmd.Flags().GetString("output")
			overrides["output"] = output
		}
		if cmd.Flags().Changed("palette") {
			pal, _ := cmd.Flags().GetString("palette")
			overrides["palette"] = pal
		}
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetInt64("seed")
			overrides["seed"] = seed
		}
		cfg = cfg.WithOverrides(overrides)

		verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
		projectRoot, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determining project root: %w", err)
		}

		result, err := runBatch(cfg, build.Options{ProjectRoot: projectRoot, Verbose: verbose})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %d assets (%d files written, %d cached, %d variants) in %s\n",
			successStyle.Render("generated"),
			result.AssetsRendered,
			result.FilesWritten,
			result.Skipped,
			result.VariantsWritten,
			result.Duration.Round(time.Millisecond),
		)
		return nil
	},
}

// runBatch runs the build pipeline and, when enabled, writes the gallery
// page for the resulting manifest.
func runBatch(cfg *config.GenConfig, opts build.Options) (*build.Result, error) {
	builder, err := build.NewBuilder(cfg, opts)
	if err != nil {
		return nil, err
	}
	result, err := builder.Build()
	if err != nil {
		return nil, err
	}

	if cfg.Gallery.Enabled {
		manifest, err := build.ReadManifest(builder.OutputDir())
		if err != nil {
			return nil, err
		}
		w, err := gallery.New(cfg.Gallery)
		if err != nil {
			return nil, err
		}
		if err := w.Write(builder.OutputDir(), manifest); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func init() {
	batchCmd.Flags().StringP("output", "o", "", "override the output directory")
	batchCmd.Flags().StringP("palette", "p", "", "override the palette name or file")
	batchCmd.Flags().Int64("seed", 0, "override the glitch seed")

	rootCmd.AddCommand(batchCmd)
}
