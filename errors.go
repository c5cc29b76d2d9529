package html2pptx

import (
	"errors"

	"github.com/alnah/go-html2pptx/internal/draw"
	"github.com/alnah/go-html2pptx/internal/markdown"
	"github.com/alnah/go-html2pptx/internal/pptx"
	"github.com/alnah/go-html2pptx/internal/segment"
)

// Sentinel errors for library operations.
var (
	ErrEmptyInput     = errors.New("input is empty: set Path, HTML or Markdown")
	ErrAmbiguousInput = errors.New("input is ambiguous: set only one of Path, HTML or Markdown")
	ErrReadInput      = errors.New("cannot read input")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")

	// Browser errors, only reachable with Input.RenderJS.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrSnapshot       = errors.New("failed to read rendered page")

	// Preview errors.
	ErrInvalidPreviewWidth = errors.New("invalid preview width")

	// Asset loading errors.
	ErrThemeNotFound         = errors.New("theme not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required part")
	ErrInvalidTheme          = errors.New("invalid theme")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)

// Errors raised by pipeline stages, re-exported for errors.Is matching.
var (
	ErrNoSlides     = segment.ErrNoSlides
	ErrInvalidColor = draw.ErrInvalidColor
	ErrWriteDeck    = pptx.ErrWriteDeck
	ErrMarkdown     = markdown.ErrConversion
)
