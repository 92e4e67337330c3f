package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aellingwood/placekit/internal/build"
	"github.com/aellingwood/placekit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview the asset set in a browser",
	Long:  "Generate the asset set, serve it locally, and regenerate with live reload when the config or palette changes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		overrides := map[string]any{}
		if cmd.Flags().Changed("port") {
			port, _ := cmd.Flags().GetInt("port")
			overrides["port"] = port
		}
		if cmd.Flags().Changed("host") {
			host, _ := cmd.Flags().GetString("host")
			overrides["host"] = host
		}
		if noLiveReload, _ := cmd.Flags().GetBool("no-live-reload"); noLiveReload {
			overrides["livereload"] = false
		}
		cfg = cfg.WithOverrides(overrides)

		verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
		projectRoot, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determining project root: %w", err)
		}

		opts := build.Options{ProjectRoot: projectRoot, Verbose: verbose}
		result, err := runBatch(cfg, opts)
		if err != nil {
			return fmt.Errorf("initial generation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %d assets in %s\n",
			result.AssetsRendered, result.Duration.Round(time.Millisecond))

		srv := server.New(server.Options{
			Host:       cfg.Server.Host,
			Port:       cfg.Server.Port,
			OutputDir:  filepath.Join(projectRoot, cfg.Output),
			LiveReload: cfg.Server.LiveReload,
			Verbose:    verbose,
		})

		// Regenerate when the config file or any referenced palette, font,
		// or intro file changes.
		configPath, _ := cmd.Root().PersistentFlags().GetString("config")
		watchPaths := []string{configPath}
		switch strings.ToLower(filepath.Ext(cfg.Palette)) {
		case ".yaml", ".yml", ".toml":
			watchPaths = append(watchPaths, cfg.Palette)
		}
		if cfg.Text.FontPath != "" {
			watchPaths = append(watchPaths, cfg.Text.FontPath)
		}
		if strings.HasSuffix(cfg.Gallery.Intro, ".md") {
			watchPaths = append(watchPaths, cfg.Gallery.Intro)
		}

		watcher := server.NewWatcher(watchPaths, 100*time.Millisecond, func() {
			log.Println("Change detected, regenerating...")
			rebuilt, err := runBatch(cfg, opts)
			if err != nil {
				log.Printf("Regeneration failed: %v", err)
				return
			}
			log.Printf("Regenerated %d assets in %s",
				rebuilt.AssetsRendered, rebuilt.Duration.Round(time.Millisecond))
			srv.NotifyReload()
		})
		srv.SetWatcher(watcher)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			fmt.Println("\nShutting down...")
			cancel()
		}()

		fmt.Fprintf(cmd.OutOrStdout(), "Serving at %s\n",
			accentStyle.Render(fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)))

		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "port to listen on")
	serveCmd.Flags().String("host", "localhost", "host to bind to")
	serveCmd.Flags().Bool("no-live-reload", false, "disable live reload")

	rootCmd.AddCommand(serveCmd)
}
