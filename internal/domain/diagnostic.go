package domain

import "fmt"

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

const (
	CodeRootUnreadable   = "root_unreadable"
	CodeCourseUnreadable = "course_unreadable"
	CodeFileUnreadable   = "file_unreadable"
	CodeFileTooLarge     = "file_too_large"
	CodeShortcutNoTarget = "shortcut_unresolved"
)

// Diagnostic describes an entry the scanner skipped. Diagnostics are
// returned next to the catalog so callers decide how to render them.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
	Cause    error    `json:"-"`
}

func (diag Diagnostic) String() string {
	if diag.Path == "" {
		return fmt.Sprintf("%s: %s", diag.Severity, diag.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", diag.Severity, diag.Message, diag.Path)
}
