package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"studyshelf/internal/config"
)

var (
	configPath string
	debug      bool
)

// flagConfig receives the config flags; only the ones set are applied.
var flagConfig = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "studyshelf [folder]",
	Short: "Browse local study material by course",
	Long: `studyshelf scans a study folder where every subfolder is a course,
classifies the files inside as videos or documents, and lets you browse and
open them from the terminal.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runBrowser,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default is the user config dir)")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")
	config.BindFlags(rootCmd, &flagConfig)
}

// loadConfig merges the stored record with the flags set for cmd.
func loadConfig(cmd *cobra.Command) (config.Config, config.Store, error) {
	store := config.Store{Path: configPath}
	if store.Path == "" {
		defaultStore, err := config.DefaultStore()
		if err != nil {
			return config.Config{}, config.Store{}, fmt.Errorf("locate config: %w", err)
		}
		store = defaultStore
	}
	stored, _ := store.Load()
	return config.ApplyChanged(cmd, stored, flagConfig), store, nil
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
