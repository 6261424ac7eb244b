package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"studyshelf/internal/app"
)

var dryRun bool

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Record viewer requests instead of opening the browser")
}

func runBrowser(cmd *cobra.Command, args []string) error {
	cfg, store, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.FolderPath = args[0]
	}
	if cfg.FolderPath != "" {
		abs, err := filepath.Abs(cfg.FolderPath)
		if err != nil {
			return fmt.Errorf("resolve folder: %w", err)
		}
		cfg.FolderPath = abs
	}

	return app.Run(app.Options{
		Config: cfg,
		Store:  store,
		Debug:  debug,
		DryRun: dryRun,
	})
}
