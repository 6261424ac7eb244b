package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type entryFilter func(entry os.DirEntry) bool

func dirsOnly(entry os.DirEntry) bool {
	return entry.IsDir()
}

func dirsAndPDFs(entry os.DirEntry) bool {
	return entry.IsDir() || strings.EqualFold(filepath.Ext(entry.Name()), ".pdf")
}

// completePath extends input to the longest unambiguous name among the
// entries that pass filter and returns every candidate.
func completePath(input string, filter entryFilter) (string, []string) {
	trimmed := expandHome(strings.TrimSpace(input))
	if trimmed == "" {
		return trimmed, nil
	}
	dir := filepath.Dir(trimmed)
	base := filepath.Base(trimmed)
	if strings.HasSuffix(trimmed, string(filepath.Separator)) {
		dir = trimmed
		base = ""
	}
	if dir == "." {
		dir = ""
	}
	readDir := dir
	if readDir == "" {
		readDir = "."
	}
	entries, err := os.ReadDir(readDir)
	if err != nil {
		return input, nil
	}
	matches := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		if filter != nil && !filter(entry) {
			continue
		}
		matches = append(matches, name)
	}
	if len(matches) == 0 {
		return input, nil
	}
	completed := commonPrefix(matches)
	if dir != "" {
		completed = filepath.Join(dir, completed)
	}
	if len(matches) == 1 && entriesHasDir(entries, matches[0]) {
		completed += string(filepath.Separator)
	}
	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		if dir != "" {
			paths = append(paths, filepath.Join(dir, match))
		} else {
			paths = append(paths, match)
		}
	}
	return completed, paths
}

func commonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	prefix := values[0]
	for _, value := range values[1:] {
		for !strings.HasPrefix(value, prefix) && prefix != "" {
			prefix = prefix[:len(prefix)-1]
		}
		if prefix == "" {
			return ""
		}
	}
	return prefix
}

func entriesHasDir(entries []os.DirEntry, name string) bool {
	for _, entry := range entries {
		if entry.Name() == name {
			return entry.IsDir()
		}
	}
	return false
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// resolveFolder validates a typed folder and returns its absolute path.
func resolveFolder(input string) (string, error) {
	path, err := absInput(input)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a folder", path)
	}
	return path, nil
}

// resolveDocument validates a typed document path and returns it absolute.
func resolveDocument(input string) (string, error) {
	path, err := absInput(input)
	if err != nil {
		return "", err
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return "", fmt.Errorf("%s is not a PDF file", filepath.Base(path))
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a folder", path)
	}
	return path, nil
}

func absInput(input string) (string, error) {
	trimmed := expandHome(strings.TrimSpace(input))
	if trimmed == "" {
		return "", errors.New("no path entered")
	}
	return filepath.Abs(trimmed)
}
