package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"studyshelf/internal/domain"
)

var (
	errShortcutTooLarge   = errors.New("shortcut file too large")
	errShortcutUnresolved = errors.New("shortcut target not resolvable")
	errNotRegularFile     = errors.New("not a regular file")

	urlKeyPattern = regexp.MustCompile(`(?im)^[ \t]*URL=(.+)$`)
	webURLPattern = regexp.MustCompile(`https?://\S+`)
)

// classifyFile applies the extension rules in order; the first rule whose
// extension matches decides the outcome. ok is false when the file is not a
// resource.
func (scanner *FSScanner) classifyFile(dir, name string) (domain.Resource, bool, error) {
	path := filepath.Join(dir, name)
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".url":
		content, err := scanner.readShortcut(path)
		if err != nil {
			return domain.Resource{}, false, err
		}
		address, ok := parseURLShortcut(content)
		if !ok {
			return domain.Resource{}, false, nil
		}
		return domain.Resource{
			Kind:       domain.KindVideo,
			Name:       trimExt(name),
			Address:    address,
			SourcePath: path,
		}, true, nil
	case ".lnk":
		target, err := resolveLinkShortcut(path)
		if err != nil {
			return domain.Resource{}, false, err
		}
		if !strings.EqualFold(filepath.Ext(target), ".pdf") {
			return domain.Resource{}, false, nil
		}
		return domain.Resource{
			Kind:       domain.KindDocument,
			Name:       trimExt(name),
			Address:    target,
			SourcePath: path,
		}, true, nil
	case ".pdf":
		return domain.Resource{
			Kind:       domain.KindDocument,
			Name:       name,
			Address:    path,
			SourcePath: path,
		}, true, nil
	case ".txt", ".link":
		content, err := scanner.readShortcut(path)
		if err != nil {
			return domain.Resource{}, false, err
		}
		address, ok := findWebURL(content)
		if !ok {
			return domain.Resource{}, false, nil
		}
		return domain.Resource{
			Kind:       domain.KindVideo,
			Name:       trimExt(name),
			Address:    address,
			SourcePath: path,
		}, true, nil
	default:
		return domain.Resource{}, false, nil
	}
}

// readShortcut stats before opening so that pipes and devices are rejected
// without blocking the course walk.
func (scanner *FSScanner) readShortcut(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", errNotRegularFile, info.Mode().Type())
	}
	if info.Size() > scanner.maxShortcutBytes {
		return "", fmt.Errorf("%w: %d bytes", errShortcutTooLarge, info.Size())
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, scanner.maxShortcutBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseURLShortcut extracts the URL= value of an internet shortcut.
func parseURLShortcut(content string) (string, bool) {
	match := urlKeyPattern.FindStringSubmatch(content)
	if match == nil {
		return "", false
	}
	address := strings.TrimSpace(match[1])
	return address, address != ""
}

func findWebURL(content string) (string, bool) {
	address := webURLPattern.FindString(content)
	return address, address != ""
}

// resolveLinkShortcut only understands shortcuts that are symbolic links.
// Native binary shortcut files are reported as unresolved.
func resolveLinkShortcut(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return "", fmt.Errorf("%w: not a symbolic link", errShortcutUnresolved)
	}
	target, err := os.Readlink(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), nil
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
