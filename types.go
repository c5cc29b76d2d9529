package html2pptx

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Metadata field bounds.
const (
	MaxTitleLength   = 500
	MaxCreatorLength = 200
)

// ProgressFunc receives (current, total, message) before each slide is
// processed and once more with current == total after the last one.
type ProgressFunc func(current, total int, msg string)

// Input is one document to convert. Exactly one of Path, HTML and Markdown
// must be set.
type Input struct {
	// Path is an HTML or Markdown file. Files ending in .md or .markdown are
	// read as Markdown. Relative images resolve against the file's directory.
	Path string

	// HTML is raw markup. Relative images resolve against BaseURL, if set.
	HTML string

	// Markdown is raw Markdown. Thematic breaks (---) separate slides.
	Markdown string

	// BaseURL overrides the base for relative image references. It may be
	// an http(s) URL, a file URL or a directory path.
	BaseURL string

	// RenderJS loads the document in headless Chrome and converts the DOM
	// as it stands after scripts ran.
	RenderJS bool

	// Title and Creator go into the package properties. An empty Title uses
	// the first slide title.
	Title   string
	Creator string

	// Modified stamps the package properties. The zero value omits dates,
	// which keeps output byte-identical across runs.
	Modified time.Time

	// Progress is called as slides are processed. May be nil.
	Progress ProgressFunc
}

// SlideSummary describes one generated slide.
type SlideSummary struct {
	Index    int    // 1-based
	Title    string // may be empty
	Layout   string // auto, two-column, tile-grid, roadmap-grid or cards
	Images   int    // images found in the markup
	Pictures int    // pictures placed on the slide
}

// ConvertResult holds the outputs of one conversion.
type ConvertResult struct {
	PPTX     []byte         // the presentation package
	Slides   []SlideSummary // one per slide, in order
	Previews [][]byte       // PNG per slide, only with WithPreviews
	Strategy string         // segmentation strategy: container, section, separator or body
}

// progress calls in.Progress when it is set.
func (in *Input) progress(current, total int, msg string) {
	if in.Progress != nil {
		in.Progress(current, total, msg)
	}
}

// Validate checks that exactly one source is set and metadata fits.
func (in *Input) Validate() error {
	sources := 0
	for _, s := range []string{in.Path, in.HTML, in.Markdown} {
		if s != "" {
			sources++
		}
	}
	switch {
	case sources == 0:
		return ErrEmptyInput
	case sources > 1:
		return ErrAmbiguousInput
	}

	if err := validateFieldLength("title", in.Title, MaxTitleLength); err != nil {
		return err
	}
	return validateFieldLength("creator", in.Creator, MaxCreatorLength)
}

func validateFieldLength(name, value string, limit int) error {
	if n := len([]rune(value)); n > limit {
		return fmt.Errorf("%w: %s has %d characters (max %d)", ErrFieldTooLong, name, n, limit)
	}
	return nil
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds settings applied by options.
type converterConfig struct {
	timeout      time.Duration
	fetchTimeout time.Duration
	httpClient   *http.Client
	logger       *zap.Logger

	themeInput  string       // name or path, resolved in NewConverter
	themeColors *ThemeColors // explicit colors, win over themeInput
	assetPath   string

	previews     bool
	previewWidth int
	thumbnail    bool
}

// Defaults.
const (
	defaultTimeout      = 2 * time.Minute
	defaultFetchTimeout = 30 * time.Second
)

// WithTimeout bounds one Convert call, including image downloads and the
// browser snapshot.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2pptx: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithFetchTimeout bounds each image download.
// Panics if d <= 0.
func WithFetchTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2pptx: WithFetchTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.fetchTimeout = d
	}
}

// WithHTTPClient sets the client used for remote images.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Converter) {
		c.cfg.httpClient = client
	}
}

// WithLogger sets the logger. Image failures are logged at warn level.
// The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}

// WithTheme selects a theme preset by name, or loads a theme YAML file when
// the value contains a path separator.
func WithTheme(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.themeInput = nameOrPath
	}
}

// WithThemeColors sets the palette directly. It takes precedence over
// WithTheme.
func WithThemeColors(tc ThemeColors) Option {
	return func(c *Converter) {
		c.cfg.themeColors = &tc
	}
}

// WithAssetPath adds a directory of custom themes and template sets, searched
// before the built-in ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithPreviews renders a PNG of every slide, width pixels wide, into
// ConvertResult.Previews. A width of 0 uses 1280.
func WithPreviews(width int) Option {
	return func(c *Converter) {
		c.cfg.previews = true
		c.cfg.previewWidth = width
	}
}

// WithThumbnail controls the JPEG thumbnail stored in the package. It is on
// by default.
func WithThumbnail(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.thumbnail = enabled
	}
}
