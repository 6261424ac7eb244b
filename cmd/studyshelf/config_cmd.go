package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the saved settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		gray := color.New(color.FgHiBlack).SprintFunc()
		fmt.Fprintln(cmd.ErrOrStderr(), gray(store.Path))
		return writeJSON(cmd.OutOrStdout(), cfg)
	},
}

var configSetFolderCmd = &cobra.Command{
	Use:   "set-folder <folder>",
	Short: "Remember a study folder for the next launch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		folder, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolve folder: %w", err)
		}
		info, err := os.Stat(folder)
		if err != nil {
			return fmt.Errorf("stat folder: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a folder", folder)
		}
		if err := store.SaveFolder(folder); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(cmd.OutOrStdout(), "%s study folder set to %s\n", green("✓"), folder)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetFolderCmd)
	rootCmd.AddCommand(configCmd)
}
