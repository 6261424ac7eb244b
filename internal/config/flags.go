package config

import "github.com/spf13/cobra"

const (
	flagFolder     = "folder"
	flagTheme      = "theme"
	flagWorkers    = "workers"
	flagSkipHidden = "skip-hidden"
)

// BindFlags registers persistent flags whose defaults come from cfg.
// Parsed values are written back into cfg.
func BindFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.FolderPath, flagFolder, cfg.FolderPath, "Study folder to scan")
	flags.StringVar(&cfg.Theme, flagTheme, cfg.Theme, "Color theme (dark or light)")
	flags.IntVar(&cfg.Workers, flagWorkers, cfg.Workers, "Course folders scanned in parallel")
	flags.BoolVar(&cfg.SkipHidden, flagSkipHidden, cfg.SkipHidden, "Skip course folders whose name starts with a dot")
}

// ApplyChanged copies the flags set on the command line from flagged onto
// base. Flags left at their defaults never override a stored value.
func ApplyChanged(cmd *cobra.Command, base, flagged Config) Config {
	flags := cmd.Flags()
	if flags.Changed(flagFolder) {
		base.FolderPath = flagged.FolderPath
	}
	if flags.Changed(flagTheme) {
		base.Theme = flagged.Theme
	}
	if flags.Changed(flagWorkers) && flagged.Workers > 0 {
		base.Workers = flagged.Workers
	}
	if flags.Changed(flagSkipHidden) {
		base.SkipHidden = flagged.SkipHidden
	}
	return base
}
