package services

type ScanProgress struct {
	Path       string
	Scanned    int64
	Total      int
	Completed  bool
	ErrMessage string
	Current    string
}

type ProgressProvider interface {
	Progress() <-chan ScanProgress
}
