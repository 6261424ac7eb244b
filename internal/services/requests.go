package services

import "studyshelf/internal/domain"

type ScanRequest struct {
	RootPath   string
	SkipHidden bool
}

type OpenRequest struct {
	Resource domain.Resource
}
