package services

import "context"

type Scanner interface {
	Scan(ctx context.Context, req ScanRequest) (ScanResult, error)
}

// Viewer displays a resource outside the terminal.
type Viewer interface {
	Open(ctx context.Context, req OpenRequest) (OpenResult, error)
}
