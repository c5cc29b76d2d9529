package html2pptx

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/alnah/go-html2pptx/internal/assets"
	"github.com/alnah/go-html2pptx/internal/dom"
	"github.com/alnah/go-html2pptx/internal/draw"
	"github.com/alnah/go-html2pptx/internal/extract"
	"github.com/alnah/go-html2pptx/internal/fetch"
	"github.com/alnah/go-html2pptx/internal/fileutil"
	"github.com/alnah/go-html2pptx/internal/layout"
	"github.com/alnah/go-html2pptx/internal/markdown"
	"github.com/alnah/go-html2pptx/internal/pptx"
	"github.com/alnah/go-html2pptx/internal/preview"
	"github.com/alnah/go-html2pptx/internal/segment"
)

// Compile-time interface implementation checks.
var (
	_ snapshotter = (*rodSnapshotter)(nil)
	_ AssetLoader = (*assetLoaderAdapter)(nil)
)

// Preview width bounds in pixels.
const (
	MinPreviewWidth = 64
	MaxPreviewWidth = 7680
)

// Converter turns HTML or Markdown documents into PPTX decks.
// Create with NewConverter(), use Convert() for conversion, and Close() when
// done. A Converter is not safe for concurrent use; use ConverterPool for
// parallel work.
type Converter struct {
	cfg       converterConfig
	theme     ThemeColors
	palette   draw.Theme
	templates *assets.TemplateSet
	markdown  *markdown.Converter
	browser   snapshotter // created on first RenderJS input
	logger    *zap.Logger
}

// NewConverter creates a Converter. The theme and template set are resolved
// here, so a bad theme name or asset path fails early.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:      defaultTimeout,
			fetchTimeout: defaultFetchTimeout,
			logger:       zap.NewNop(),
			thumbnail:    true,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.cfg.logger

	if c.cfg.previews {
		if c.cfg.previewWidth == 0 {
			c.cfg.previewWidth = preview.DefaultWidth
		}
		if c.cfg.previewWidth < MinPreviewWidth || c.cfg.previewWidth > MaxPreviewWidth {
			return nil, fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidPreviewWidth,
				c.cfg.previewWidth, MinPreviewWidth, MaxPreviewWidth)
		}
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, convertAssetError(err)
	}

	if c.cfg.themeColors != nil {
		c.theme = *c.cfg.themeColors
	} else {
		c.theme, err = ResolveTheme(&assetLoaderAdapter{resolver: resolver}, c.cfg.themeInput)
		if err != nil {
			return nil, fmt.Errorf("loading theme: %w", err)
		}
	}
	if c.palette, err = c.theme.palette(); err != nil {
		return nil, err
	}

	c.templates, err = resolver.LoadTemplateSet(assets.DefaultTemplateSetName)
	if err != nil {
		return nil, fmt.Errorf("loading template set: %w", convertAssetError(err))
	}

	c.markdown = markdown.New(c.palette.CodeStyle)
	return c, nil
}

// Theme returns the resolved palette.
func (c *Converter) Theme() ThemeColors {
	return c.theme
}

// Convert runs the full pipeline and returns the deck with per-slide
// summaries. Images that cannot be fetched are logged and left out; any
// other failure aborts the conversion.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(&input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	scratch, cleanup, err := fileutil.MkdirTemp()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	doc, base, err := c.load(ctx, &input, scratch)
	if err != nil {
		return nil, err
	}

	regions, strategy, err := segment.Segment(doc)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("document segmented",
		zap.Stringer("strategy", strategy),
		zap.Int("regions", len(regions)))

	fetcher, err := fetch.New(scratch, c.fetchOptions(base)...)
	if err != nil {
		return nil, fmt.Errorf("resolving image base: %w", err)
	}
	renderer := layout.New(c.palette, layout.ResolverFunc(fetcher.Fetch), c.logger)

	deck, err := pptx.NewDeck(c.templates, c.palette)
	if err != nil {
		return nil, err
	}

	res := &ConvertResult{
		Strategy: strategy.String(),
		Slides:   make([]SlideSummary, 0, len(regions)),
	}
	slides := make([]draw.Slide, 0, len(regions))
	total := len(regions)

	for i, region := range regions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		input.progress(i, total, fmt.Sprintf("Rendering slide %d of %d", i+1, total))

		content := extract.Extract(region)
		slide := renderer.Render(ctx, &content)
		if err := deck.AddSlide(slide); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		slides = append(slides, slide)
		res.Slides = append(res.Slides, summarize(i+1, &content, &slide))
	}

	if err := c.renderPreviews(res, slides); err != nil {
		return nil, err
	}
	if c.cfg.thumbnail && len(slides) > 0 {
		var buf bytes.Buffer
		if err := preview.New(preview.ThumbnailWidth).JPEG(&buf, slides[0]); err != nil {
			c.logger.Warn("thumbnail skipped", zap.Error(err))
		} else {
			deck.SetThumbnail(buf.Bytes())
		}
	}

	deck.SetMetadata(pptx.Metadata{
		Title:    deckTitle(&input, res.Slides),
		Creator:  input.Creator,
		Modified: input.Modified,
	})
	res.PPTX, err = deck.Bytes()
	if err != nil {
		return nil, err
	}

	input.progress(total, total, "Done")
	return res, nil
}

// Close releases the headless browser, if one was started.
func (c *Converter) Close() error {
	if c.browser != nil {
		err := c.browser.Close()
		c.browser = nil
		return err
	}
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
// Both paths converge here, ensuring all inputs are validated before processing.
func (c *Converter) validateInput(input *Input) error {
	return input.Validate()
}

// load produces the document tree and the base for relative images.
func (c *Converter) load(ctx context.Context, in *Input, scratch string) (*html.Node, string, error) {
	base := in.BaseURL
	var (
		path   string // HTML file parsed from disk, charset-aware
		markup string // in-memory HTML
	)

	switch {
	case in.Path != "":
		abs, err := filepath.Abs(in.Path)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		if base == "" {
			base = filepath.Dir(abs)
		}
		if !IsMarkdownPath(abs) {
			path = abs
			break
		}
		data, err := os.ReadFile(abs) // #nosec G304 -- user-provided input path
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		if markup, err = c.markdown.ToHTML(ctx, string(data)); err != nil {
			return nil, "", err
		}
	case in.Markdown != "":
		var err error
		if markup, err = c.markdown.ToHTML(ctx, in.Markdown); err != nil {
			return nil, "", err
		}
	default:
		markup = in.HTML
	}

	if in.RenderJS {
		if path == "" {
			p, _, err := fileutil.WriteTempFile(scratch, markup, "html")
			if err != nil {
				return nil, "", err
			}
			path = p
		}
		rendered, err := c.snapshot(ctx, path)
		if err != nil {
			return nil, "", err
		}
		doc, err := dom.ParseString(rendered)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrSnapshot, err)
		}
		return doc, base, nil
	}

	if path != "" {
		f, err := os.Open(path) // #nosec G304 -- user-provided input path
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		defer func() { _ = f.Close() }()
		doc, err := dom.Parse(f, "")
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		return doc, base, nil
	}

	doc, err := dom.ParseString(markup)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return doc, base, nil
}

// snapshot starts the browser on first use and returns the rendered DOM.
func (c *Converter) snapshot(ctx context.Context, path string) (string, error) {
	if c.browser == nil {
		c.browser = newRodSnapshotter(c.cfg.timeout, c.logger)
	}
	return c.browser.Snapshot(ctx, fileURL(path))
}

func (c *Converter) fetchOptions(base string) []fetch.Option {
	opts := []fetch.Option{
		fetch.WithTimeout(c.cfg.fetchTimeout),
		fetch.WithLogger(c.logger),
	}
	if c.cfg.httpClient != nil {
		opts = append(opts, fetch.WithHTTPClient(c.cfg.httpClient))
	}
	if base != "" {
		opts = append(opts, fetch.WithBase(base))
	}
	return opts
}

func (c *Converter) renderPreviews(res *ConvertResult, slides []draw.Slide) error {
	if !c.cfg.previews {
		return nil
	}
	r := preview.New(c.cfg.previewWidth)
	res.Previews = make([][]byte, 0, len(slides))
	for i, s := range slides {
		var buf bytes.Buffer
		if err := r.PNG(&buf, s); err != nil {
			return fmt.Errorf("preview of slide %d: %w", i+1, err)
		}
		res.Previews = append(res.Previews, buf.Bytes())
	}
	return nil
}

func summarize(index int, content *extract.SlideContent, slide *draw.Slide) SlideSummary {
	images := len(content.Images)
	for _, card := range content.Cards {
		if card.Image != "" {
			images++
		}
	}
	return SlideSummary{
		Index:    index,
		Title:    content.Title,
		Layout:   string(content.Layout),
		Images:   images,
		Pictures: len(slide.Pictures()),
	}
}

// deckTitle prefers the explicit title, then the first slide title.
func deckTitle(in *Input, slides []SlideSummary) string {
	if in.Title != "" {
		return in.Title
	}
	for _, s := range slides {
		if s.Title != "" {
			return s.Title
		}
	}
	return ""
}

// IsMarkdownPath reports whether path names a Markdown file.
func IsMarkdownPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// fileURL builds a file URL for an absolute path on any platform.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // C:/x -> /C:/x
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
