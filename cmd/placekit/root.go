package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/aellingwood/placekit/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "placekit",
	Short: "A procedural placeholder image generator",
	Long:  "Placekit synthesizes placeholder rasters (gradients, geometric patterns, glitch art, text banners, QR cards) in a fixed cyberpunk palette.",
}

func init() {
	rootCmd.PersistentFlags().String("config", "placekit.yaml", "path to config file")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the config file named by the persistent --config flag.
// A missing file is not an error: defaults apply so the tool works without a
// project config.
func loadConfig(cmd *cobra.Command) (*config.GenConfig, error) {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(configPath)
}
