package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag parsing and argument count errors.
var ErrUsage = errors.New("usage error")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config   string
	quiet    bool
	verbose  bool
	logLevel string
}

// themeFlags holds palette flags.
type themeFlags struct {
	name    string
	primary string
	accent  string
}

// renderFlags holds flags that control how input is read.
type renderFlags struct {
	js           bool
	timeout      time.Duration
	fetchTimeout time.Duration
}

// previewFlags holds preview and thumbnail flags.
type previewFlags struct {
	dir         string
	noThumbnail bool
}

// metadataFlags holds document property flags.
type metadataFlags struct {
	title   string
	creator string
	stamp   bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	workers   int
	theme     themeFlags
	render    renderFlags
	preview   previewFlags
	metadata  metadataFlags
	assetPath string

	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timings and debug logs")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// addThemeFlags adds palette flags to a FlagSet.
func addThemeFlags(fs *flag.FlagSet, f *themeFlags) {
	fs.StringVar(&f.name, "theme", "", "theme preset name or YAML file path")
	fs.StringVar(&f.primary, "primary", "", "primary color (hex), overrides the theme")
	fs.StringVar(&f.accent, "accent", "", "accent color (hex), overrides the theme")
}

// addRenderFlags adds input rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.js, "render-js", false, "run page scripts in headless Chrome before extraction")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "conversion timeout per file (e.g., 30s, 2m)")
	fs.DurationVar(&f.fetchTimeout, "fetch-timeout", 0, "timeout per image download")
}

// addPreviewFlags adds preview flags to a FlagSet.
func addPreviewFlags(fs *flag.FlagSet, f *previewFlags) {
	fs.StringVar(&f.dir, "preview", "", "write a PNG per slide into this directory")
	fs.BoolVar(&f.noThumbnail, "no-thumbnail", false, "do not embed a thumbnail in the deck")
}

// addMetadataFlags adds document property flags to a FlagSet.
func addMetadataFlags(fs *flag.FlagSet, f *metadataFlags) {
	fs.StringVar(&f.title, "title", "", "deck title (single file only; default: first slide title)")
	fs.StringVar(&f.creator, "creator", "", "author stored in the document properties")
	fs.BoolVar(&f.stamp, "stamp", false, "record the conversion time in the document properties")
}

// newConvertFlagSet registers every convert flag into a new FlagSet.
// Completion reads the same FlagSet, so flags are declared once.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for directories (0 = auto)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom themes and templates")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addThemeFlags(fs, &f.theme)
	addRenderFlags(fs, &f.render)
	addPreviewFlags(fs, &f.preview)
	addMetadataFlags(fs, &f.metadata)

	f.changed = fs.Changed
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	if fs.NArg() > 2 {
		return nil, nil, fmt.Errorf("%w: expected at most 2 arguments (input, output), got %d", ErrUsage, fs.NArg())
	}
	if fs.NArg() == 2 && f.output != "" {
		return nil, nil, fmt.Errorf("%w: output given both as argument and with --output", ErrUsage)
	}

	return f, fs.Args(), nil
}
