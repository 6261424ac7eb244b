package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/browser"

	"studyshelf/internal/domain"
)

var errEmptyAddress = errors.New("resource has no address")

// BrowserViewer hands resources to the system browser. Videos open at
// their URL; documents open through a file:// URL.
type BrowserViewer struct {
	openURL func(string) error
	logger  *log.Logger
}

func NewBrowserViewer(logger *log.Logger) *BrowserViewer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &BrowserViewer{openURL: browser.OpenURL, logger: logger}
}

func (viewer *BrowserViewer) Open(ctx context.Context, req OpenRequest) (OpenResult, error) {
	if err := ctx.Err(); err != nil {
		return OpenResult{}, err
	}
	target, err := ViewerTarget(req.Resource)
	if err != nil {
		return OpenResult{}, err
	}
	viewer.logger.Info("opening resource", "kind", req.Resource.Kind, "name", req.Resource.Name, "target", target)
	if err := viewer.openURL(target); err != nil {
		return OpenResult{}, fmt.Errorf("open %s: %w", req.Resource.Name, err)
	}
	return OpenResult{Kind: req.Resource.Kind, Target: target}, nil
}

// ViewerTarget returns the address a viewer should navigate to.
func ViewerTarget(resource domain.Resource) (string, error) {
	if strings.TrimSpace(resource.Address) == "" {
		return "", errEmptyAddress
	}
	if resource.Kind == domain.KindDocument {
		return DocumentURL(resource.Address), nil
	}
	return resource.Address, nil
}

// DocumentURL converts a local path into a file:// URL.
func DocumentURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return (&url.URL{Scheme: "file", Path: slashed}).String()
}
