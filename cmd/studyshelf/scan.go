package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"studyshelf/internal/app"
	"studyshelf/internal/domain"
	"studyshelf/internal/services"
)

var scanJSON bool

type scanOutput struct {
	Root        string              `json:"root"`
	Courses     []domain.Course     `json:"courses"`
	Diagnostics []domain.Diagnostic `json:"diagnostics,omitempty"`
	DurationMS  int64               `json:"durationMs"`
}

var scanCmd = &cobra.Command{
	Use:   "scan [folder]",
	Short: "Scan a study folder and print its courses",
	Long: `Scan a study folder once and print every course with its resources.
Without an argument the configured folder is scanned. Skipped entries are
reported on stderr.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		folder := cfg.FolderPath
		if len(args) == 1 {
			folder = args[0]
		}
		if folder == "" {
			return errors.New("no folder given and none configured")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logger := app.NewLogger(os.Stderr, debug)
		scanner := services.NewFSScanner(
			services.WithLogger(logger),
			services.WithWorkers(cfg.Workers),
		)
		result, err := scanner.Scan(ctx, services.ScanRequest{RootPath: folder, SkipHidden: cfg.SkipHidden})
		if err != nil {
			return fmt.Errorf("scan %s: %w", folder, err)
		}

		if scanJSON {
			return writeJSON(cmd.OutOrStdout(), scanOutput{
				Root:        result.RootPath,
				Courses:     result.Catalog.Courses,
				Diagnostics: result.Diagnostics,
				DurationMS:  result.Duration.Milliseconds(),
			})
		}
		printCatalog(cmd.OutOrStdout(), result.Catalog)
		printDiagnostics(cmd.ErrOrStderr(), result.Diagnostics)
		return nil
	},
}

func printCatalog(w io.Writer, catalog domain.Catalog) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(w, "%s\n", cyan(catalog.Root))
	if catalog.Empty() {
		fmt.Fprintf(w, "  %s\n", gray("No courses found"))
		return
	}
	for _, course := range catalog.Courses {
		fmt.Fprintf(w, "\n%s %s\n", cyan(course.Name), gray(fmt.Sprintf("(%d videos, %d documents)", course.VideoCount(), course.DocumentCount())))
		for _, resource := range course.Resources {
			fmt.Fprintf(w, "  %s %s  %s\n", resource.Kind.Icon(), resource.Name, gray(resource.Address))
		}
	}
	fmt.Fprintf(w, "\n%d courses, %d resources\n", len(catalog.Courses), catalog.ResourceCount())
}

func printDiagnostics(w io.Writer, diagnostics []domain.Diagnostic) {
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	for _, diag := range diagnostics {
		paint := yellow
		if diag.Severity == domain.SeverityError {
			paint = red
		}
		fmt.Fprintf(w, "%s %s\n", paint(string(diag.Severity)+":"), diag.Message)
		if diag.Path != "" {
			fmt.Fprintf(w, "    %s\n", diag.Path)
		}
	}
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print the catalog as JSON")
	rootCmd.AddCommand(scanCmd)
}
