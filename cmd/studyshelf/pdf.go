package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studyshelf/internal/services"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf <file>",
	Short: "Print a document as a base64 JSON payload",
	Long: `Read a document and print {success, data, path, error} as JSON, with
the file contents base64 encoded. Exits with status 1 when the file cannot
be read.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		payload := services.ReadDocument(args[0])
		if err := writeJSON(cmd.OutOrStdout(), payload); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !payload.Success {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(pdfCmd)
}
