package ui

import (
	"studyshelf/internal/services"
)

type startScanMsg struct {
	path    string
	persist bool
}

type scanResultMsg struct {
	seq     int
	persist bool
	result  services.ScanResult
	err     error
}

type scanProgressMsg struct {
	seq      int
	channel  <-chan services.ScanProgress
	progress services.ScanProgress
}

type openResultMsg struct {
	name   string
	result services.OpenResult
	err    error
}

type configSavedMsg struct {
	path string
	err  error
}
