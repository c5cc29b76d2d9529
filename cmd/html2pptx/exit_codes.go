package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	html2pptx "github.com/alnah/go-html2pptx"
	"github.com/alnah/go-html2pptx/internal/config"
	"github.com/alnah/go-html2pptx/internal/hints"
	"github.com/alnah/go-html2pptx/internal/pptx"
)

// Exit codes for html2pptx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, html2pptx.ErrBrowserConnect) ||
		errors.Is(err, html2pptx.ErrPageCreate) ||
		errors.Is(err, html2pptx.ErrPageLoad) ||
		errors.Is(err, html2pptx.ErrSnapshot) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, html2pptx.ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoFiles) ||
		errors.Is(err, pptx.ErrNotPPTX) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNotTerminal) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnknownFormat) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, html2pptx.ErrEmptyInput) ||
		errors.Is(err, html2pptx.ErrAmbiguousInput) ||
		errors.Is(err, html2pptx.ErrFieldTooLong) ||
		errors.Is(err, html2pptx.ErrInvalidColor) ||
		errors.Is(err, html2pptx.ErrInvalidTheme) ||
		errors.Is(err, html2pptx.ErrThemeNotFound) ||
		errors.Is(err, html2pptx.ErrTemplateSetNotFound) ||
		errors.Is(err, html2pptx.ErrIncompleteTemplateSet) ||
		errors.Is(err, html2pptx.ErrInvalidAssetPath) ||
		errors.Is(err, html2pptx.ErrInvalidPreviewWidth) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns the actionable hint matching err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, html2pptx.ErrBrowserConnect), errors.Is(err, html2pptx.ErrPageCreate):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(userConfigCandidates(err))
	case errors.Is(err, html2pptx.ErrThemeNotFound):
		return hints.ForThemeNotFound(html2pptx.ThemeNames())
	case errors.Is(err, html2pptx.ErrNoSlides):
		return hints.ForNoSlides()
	case errors.Is(err, html2pptx.ErrInvalidColor):
		return hints.ForColor()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// userConfigCandidates extracts the tried paths from a config lookup error.
func userConfigCandidates(err error) []string {
	msg := err.Error()
	i := strings.Index(msg, "tried ")
	if i < 0 {
		return nil
	}
	var paths []string
	for _, p := range strings.Split(msg[i+len("tried "):], ", ") {
		if filepath.IsAbs(p) {
			paths = append(paths, p)
		}
	}
	return paths
}
