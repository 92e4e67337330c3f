package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aellingwood/placekit/internal/config"
)

// samplePalette documents every overridable color; values are the defaults.
const samplePalette = `# Placekit palette. Omitted colors keep their defaults.
bg: "#0b0d10"
bgElev: "#0f1318"
accent: "#00e5ff"
accent2: "#ff2bd6"
fg: "#e7f7ff"
textMuted: "#94a3b8"
border: "#9dffef38"
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter config in the current directory",
	Long:  "Write a placekit.yaml with the default configuration and a sample palette file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Root().PersistentFlags().GetString("config")
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists", configPath)
		}

		data, err := yaml.Marshal(config.Default())
		if err != nil {
			return fmt.Errorf("encoding default config: %w", err)
		}
		if err := os.WriteFile(configPath, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", configPath, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("created"), configPath)

		withPalette, _ := cmd.Flags().GetBool("palette")
		if withPalette {
			palettePath := "palette.yaml"
			if _, err := os.Stat(palettePath); err == nil {
				return fmt.Errorf("%s already exists", palettePath)
			}
			if err := os.WriteFile(palettePath, []byte(samplePalette), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", palettePath, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("created"), palettePath)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("palette", false, "also write a sample palette.yaml")

	rootCmd.AddCommand(initCmd)
}
