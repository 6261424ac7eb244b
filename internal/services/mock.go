package services

import (
	"context"
	"sync"
	"time"

	"studyshelf/internal/domain"
)

// MockScanner returns a fixed catalog after a short delay.
type MockScanner struct {
	Catalog domain.Catalog
	Delay   time.Duration
}

func NewMockScanner(catalog domain.Catalog) *MockScanner {
	return &MockScanner{Catalog: catalog}
}

func (scanner *MockScanner) Scan(ctx context.Context, req ScanRequest) (ScanResult, error) {
	start := time.Now()
	select {
	case <-ctx.Done():
		return ScanResult{}, ctx.Err()
	case <-time.After(scanner.Delay):
	}

	catalog := scanner.Catalog
	catalog.Root = req.RootPath
	return ScanResult{
		RootPath: req.RootPath,
		Catalog:  catalog,
		Duration: time.Since(start),
	}, nil
}

// MockViewer records what it was asked to open.
type MockViewer struct {
	mu     sync.Mutex
	Opened []OpenRequest
	Err    error
}

func NewMockViewer() *MockViewer {
	return &MockViewer{}
}

func (viewer *MockViewer) Open(ctx context.Context, req OpenRequest) (OpenResult, error) {
	if viewer.Err != nil {
		return OpenResult{}, viewer.Err
	}
	target, err := ViewerTarget(req.Resource)
	if err != nil {
		return OpenResult{}, err
	}
	viewer.mu.Lock()
	viewer.Opened = append(viewer.Opened, req)
	viewer.mu.Unlock()
	return OpenResult{Kind: req.Resource.Kind, Target: target}, nil
}

func (viewer *MockViewer) Requests() []OpenRequest {
	viewer.mu.Lock()
	defer viewer.mu.Unlock()
	return append([]OpenRequest{}, viewer.Opened...)
}
