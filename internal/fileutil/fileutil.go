// Package fileutil provides file and path helpers shared by the library and
// the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// tempPattern prefixes every temporary file and directory the converter makes.
const tempPattern = "html2pptx-*"

// WriteTempFile creates a file in dir (os.TempDir when empty) holding content.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(dir, content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp(dir, tempPattern+"."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// MkdirTemp creates a scratch directory for one conversion run.
func MkdirTemp() (dir string, cleanup func(), err error) {
	dir, err = os.MkdirTemp("", tempPattern)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp directory: %w", err)
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}

// WriteFileAtomic writes data next to path and renames it into place, so a
// failed write never leaves a partial file at path.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// ReplaceExt swaps the extension of path for ext (which includes the dot).
// A path without an extension gets ext appended.
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "midnight" -> false (name)
//   - "./brand.yaml" -> true (relative path)
//   - "/etc/themes/brand.yaml" -> true (absolute)
//   - "C:\themes\brand.yaml" -> true (Windows)
//   - "my-theme" -> false (hyphenated name)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
