package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/pkg/browser"

	"studyshelf/internal/config"
	"studyshelf/internal/services"
	"studyshelf/internal/state"
	"studyshelf/internal/ui"
)

const logFileName = "studyshelf.log"

type Options struct {
	Config config.Config
	Store  config.Store
	Debug  bool
	// DryRun records viewer requests instead of launching the browser.
	DryRun bool
}

// NewLogger builds the logger shared by the scanner, viewer and UI.
func NewLogger(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "studyshelf",
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// LogPath is where the TUI writes its log while the alt screen is active.
func LogPath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "studyshelf", logFileName), nil
}

func openLogFile() (io.WriteCloser, error) {
	path, err := LogPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// NewViewer picks the browser viewer, or a recording one for dry runs.
func NewViewer(dryRun bool, logger *log.Logger) services.Viewer {
	if dryRun {
		return services.NewMockViewer()
	}
	return services.NewBrowserViewer(logger)
}

// Run starts the TUI and saves the last-used folder when it exits.
func Run(opts Options) error {
	var logOutput io.Writer = io.Discard
	if file, err := openLogFile(); err == nil {
		defer file.Close()
		logOutput = file
	}
	logger := NewLogger(logOutput, opts.Debug)

	// pkg/browser echoes launcher output, which would tear the alt screen.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	cfg := opts.Config
	scanner := services.NewFSScanner(
		services.WithLogger(logger),
		services.WithWorkers(cfg.Workers),
	)
	viewer := NewViewer(opts.DryRun, logger)

	session := state.NewSession(cfg)
	model := ui.NewModel(session, scanner, viewer).
		WithStore(opts.Store).
		WithLogger(logger)
	if opts.DryRun {
		model = model.WithStatus("Dry run - resources are recorded, not opened")
	}

	logger.Info("starting", "folder", cfg.FolderPath, "dryRun", opts.DryRun)
	program := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	if err := persistFolder(opts.Store, finalModel); err != nil {
		return err
	}
	logger.Debug("config saved", "path", opts.Store.Path)
	return nil
}

// persistFolder saves the folder the session ended on. Only the folder is
// written; flags given for this run stay out of the stored record.
func persistFolder(store config.Store, final tea.Model) error {
	provider, ok := final.(ui.ConfigProvider)
	if !ok {
		return nil
	}
	folder := provider.ConfigSnapshot().FolderPath
	if folder == "" {
		return nil
	}
	if err := store.SaveFolder(folder); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
