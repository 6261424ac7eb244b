package services

import (
	"time"

	"studyshelf/internal/domain"
)

type ScanResult struct {
	RootPath    string
	Catalog     domain.Catalog
	Diagnostics []domain.Diagnostic
	Duration    time.Duration
}

type OpenResult struct {
	Kind   domain.ResourceKind
	Target string
}

// DocumentPayload carries a document's bytes across a boundary that cannot
// load local files directly. Failures are reported in the payload.
type DocumentPayload struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Path    string `json:"path,omitempty"`
	Error   string `json:"error,omitempty"`
}
