package services

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"studyshelf/internal/domain"
)

// MaxShortcutBytes bounds how much of a .url/.txt/.link file is read.
const MaxShortcutBytes = 1 << 20

type FSScanner struct {
	mu               sync.RWMutex
	progress         chan ScanProgress
	logger           *log.Logger
	workers          int
	maxShortcutBytes int64
}

type ScannerOption func(*FSScanner)

func WithLogger(logger *log.Logger) ScannerOption {
	return func(scanner *FSScanner) {
		if logger != nil {
			scanner.logger = logger
		}
	}
}

// WithWorkers sets how many course directories are classified at once.
func WithWorkers(workers int) ScannerOption {
	return func(scanner *FSScanner) {
		scanner.workers = workers
	}
}

func WithMaxShortcutBytes(limit int64) ScannerOption {
	return func(scanner *FSScanner) {
		if limit > 0 {
			scanner.maxShortcutBytes = limit
		}
	}
}

func NewFSScanner(opts ...ScannerOption) *FSScanner {
	scanner := &FSScanner{
		logger:           log.New(io.Discard),
		workers:          runtime.NumCPU(),
		maxShortcutBytes: MaxShortcutBytes,
	}
	for _, opt := range opts {
		opt(scanner)
	}
	return scanner
}

func (scanner *FSScanner) Progress() <-chan ScanProgress {
	scanner.mu.RLock()
	defer scanner.mu.RUnlock()
	return scanner.progress
}

type courseScan struct {
	resources   []domain.Resource
	diagnostics []domain.Diagnostic
}

// Scan walks the first level of req.RootPath and classifies every
// subdirectory as a course. An unreadable root yields an empty catalog and
// a diagnostic; only cancellation is returned as an error.
func (scanner *FSScanner) Scan(ctx context.Context, req ScanRequest) (ScanResult, error) {
	start := time.Now()
	root := cleanPath(req.RootPath)
	progress := make(chan ScanProgress, 64)
	scanner.setProgress(progress)
	defer close(progress)

	result := ScanResult{
		RootPath: root,
		Catalog:  domain.Catalog{Root: root, Courses: []domain.Course{}},
	}
	scanner.logger.Info("scan started", "root", root)

	entries, err := os.ReadDir(root)
	if err != nil {
		scanner.logger.Error("cannot read root directory", "root", root, "err", err)
		result.Diagnostics = append(result.Diagnostics, domain.Diagnostic{
			Severity: domain.SeverityError,
			Code:     domain.CodeRootUnreadable,
			Path:     root,
			Message:  "cannot read folder: " + err.Error(),
			Cause:    err,
		})
		progressNonBlocking(progress, ScanProgress{Path: root, ErrMessage: err.Error()})
		result.Duration = time.Since(start)
		return result, nil
	}

	dirs := courseDirs(root, entries, req.SkipHidden)
	scans := make([]courseScan, len(dirs))
	var scanned atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(scanner.workerCount(len(dirs)))
	for index, dir := range dirs {
		index, dir := index, dir
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			scans[index] = scanner.scanCourse(dir)
			count := scanned.Add(1)
			progressNonBlocking(progress, ScanProgress{Path: root, Scanned: count, Total: len(dirs), Current: dir})
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return ScanResult{RootPath: root, Duration: time.Since(start)}, err
	}
	if err := ctx.Err(); err != nil {
		return ScanResult{RootPath: root, Duration: time.Since(start)}, err
	}

	for index, dir := range dirs {
		scan := scans[index]
		result.Diagnostics = append(result.Diagnostics, scan.diagnostics...)
		if len(scan.resources) == 0 {
			scanner.logger.Debug("skipping folder without resources", "path", dir)
			continue
		}
		result.Catalog.Courses = append(result.Catalog.Courses, domain.NewCourse(dir, scan.resources))
	}

	result.Duration = time.Since(start)
	progressNonBlocking(progress, ScanProgress{Path: root, Scanned: scanned.Load(), Total: len(dirs), Completed: true})
	scanner.logger.Info("scan finished",
		"root", root,
		"courses", len(result.Catalog.Courses),
		"resources", result.Catalog.ResourceCount(),
		"diagnostics", len(result.Diagnostics),
		"duration", result.Duration,
	)
	return result, nil
}

func (scanner *FSScanner) scanCourse(dir string) courseScan {
	resources, diagnostics, err := scanner.ClassifyDirectory(dir)
	if err != nil {
		scanner.logger.Warn("cannot read course folder", "path", dir, "err", err)
		return courseScan{diagnostics: append(diagnostics, domain.Diagnostic{
			Severity: domain.SeverityWarning,
			Code:     domain.CodeCourseUnreadable,
			Path:     dir,
			Message:  "course folder skipped: " + err.Error(),
			Cause:    err,
		})}
	}
	return courseScan{resources: resources, diagnostics: diagnostics}
}

// ClassifyDirectory turns the files directly inside coursePath into
// resources. Nested directories are not descended into. A file that cannot
// be read is reported as a diagnostic and skipped.
func (scanner *FSScanner) ClassifyDirectory(coursePath string) ([]domain.Resource, []domain.Diagnostic, error) {
	entries, err := os.ReadDir(coursePath)
	if err != nil {
		return nil, nil, err
	}

	resources := []domain.Resource{}
	var diagnostics []domain.Diagnostic
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		resource, ok, err := scanner.classifyFile(coursePath, entry.Name())
		if err != nil {
			diag := fileDiagnostic(filepath.Join(coursePath, entry.Name()), err)
			scanner.logger.Warn("skipping file", "path", diag.Path, "code", diag.Code, "err", err)
			diagnostics = append(diagnostics, diag)
			continue
		}
		if ok {
			resources = append(resources, resource)
		}
	}
	return resources, diagnostics, nil
}

func (scanner *FSScanner) workerCount(jobs int) int {
	workers := scanner.workers
	if workers < 1 {
		workers = 1
	}
	if jobs > 0 && workers > jobs {
		workers = jobs
	}
	return workers
}

func (scanner *FSScanner) setProgress(progress chan ScanProgress) {
	scanner.mu.Lock()
	defer scanner.mu.Unlock()
	scanner.progress = progress
}

func courseDirs(root string, entries []fs.DirEntry, skipHidden bool) []string {
	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if skipHidden && isHidden(entry.Name()) {
			continue
		}
		dirs = append(dirs, filepath.Join(root, entry.Name()))
	}
	return dirs
}

func fileDiagnostic(path string, err error) domain.Diagnostic {
	diag := domain.Diagnostic{
		Severity: domain.SeverityWarning,
		Code:     domain.CodeFileUnreadable,
		Path:     path,
		Message:  err.Error(),
		Cause:    err,
	}
	switch {
	case errors.Is(err, errShortcutTooLarge):
		diag.Code = domain.CodeFileTooLarge
	case errors.Is(err, errShortcutUnresolved):
		diag.Code = domain.CodeShortcutNoTarget
	}
	return diag
}

func progressNonBlocking(ch chan<- ScanProgress, msg ScanProgress) {
	select {
	case ch <- msg:
	default:
	}
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func cleanPath(path string) string {
	if path == "" {
		return path
	}
	clean := filepath.Clean(path)
	abs, err := filepath.Abs(clean)
	if err != nil {
		return clean
	}
	return abs
}
