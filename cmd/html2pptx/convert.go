package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	html2pptx "github.com/alnah/go-html2pptx"
	"github.com/alnah/go-html2pptx/internal/config"
	"github.com/alnah/go-html2pptx/internal/logger"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoFiles            = errors.New("no HTML or Markdown files found")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrInvalidExtension   = errors.New("file must have .html, .htm, .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrConversionsFailed  = errors.New("conversions failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// settings is the merged view of defaults, config file, environment and flags.
type settings struct {
	cfg     *config.Config
	workers int
	quiet   bool
	verbose bool
}

// runConvertCmd parses convert flags and converts the given input.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	s, err := loadSettings(flags, env)
	if err != nil {
		return err
	}

	log, err := buildLogger(s)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	inputPath, err := resolveInputPath(positional, s.cfg)
	if err != nil {
		return err
	}
	outputPath := resolveOutput(positional, flags.output, s.cfg)

	files, err := discoverFiles(inputPath, outputPath)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoFiles, inputPath)
	}

	opts, err := buildOptions(s.cfg, log)
	if err != nil {
		return err
	}

	size := min(html2pptx.ResolvePoolSize(s.workers), len(files))
	log.Debug("starting conversion", zap.Int("files", len(files)), zap.Int("workers", size))

	pool := html2pptx.NewConverterPool(size, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			log.Warn("closing converters", zap.Error(err))
		}
	}()

	params := &conversionParams{cfg: s.cfg, single: len(files) == 1, log: log}
	if s.cfg.Metadata.Stamp {
		params.modified = env.Now()
	}
	results := convertBatch(ctx, pool, files, params)

	failed := printResults(results, s.quiet, s.verbose, env)
	switch {
	case failed == 0:
		return nil
	case len(results) == 1:
		return results[0].Err
	default:
		return fmt.Errorf("%w: %d of %d", ErrConversionsFailed, failed, len(results))
	}
}

// loadSettings resolves the configuration: CLI flags > env vars > config file > defaults.
func loadSettings(flags *convertFlags, env *Environment) (*settings, error) {
	envCfg, err := loadEnvConfig()
	if err != nil {
		return nil, err
	}
	warnUnknownEnvVars(env.Stderr)

	cfg := config.DefaultConfig()
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return nil, err
	}

	return &settings{
		cfg:     cfg,
		workers: workers,
		quiet:   flags.common.quiet,
		verbose: flags.common.verbose,
	}, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setString(&cfg.Theme.Name, flags.theme.name)
	setString(&cfg.Theme.Primary, flags.theme.primary)
	setString(&cfg.Theme.Accent, flags.theme.accent)
	setString(&cfg.Preview.Dir, flags.preview.dir)
	setString(&cfg.Assets.BasePath, flags.assetPath)
	setString(&cfg.Log.Level, flags.common.logLevel)
	setString(&cfg.Metadata.Title, flags.metadata.title)
	setString(&cfg.Metadata.Creator, flags.metadata.creator)

	if flags.render.timeout > 0 {
		cfg.Render.Timeout = flags.render.timeout
	}
	if flags.render.fetchTimeout > 0 {
		cfg.Fetch.Timeout = flags.render.fetchTimeout
	}

	changed := flags.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}
	if flags.render.js || changed("render-js") {
		cfg.Render.JS = flags.render.js
	}
	if flags.preview.noThumbnail || changed("no-thumbnail") {
		cfg.Preview.NoThumbnail = flags.preview.noThumbnail
	}
	if flags.metadata.stamp || changed("stamp") {
		cfg.Metadata.Stamp = flags.metadata.stamp
	}

	// Verbosity flags win over any configured level unless --log-level is explicit.
	if flags.common.logLevel == "" {
		switch {
		case flags.common.verbose:
			cfg.Log.Level = "debug"
		case flags.common.quiet:
			cfg.Log.Level = "error"
		}
	}
}

// buildLogger creates the CLI logger. Without a configured level only
// warnings and errors are shown.
func buildLogger(s *settings) (*zap.Logger, error) {
	level := s.cfg.Log.Level
	if level == "" {
		level = "warn"
	}
	l, err := logger.New(logger.Config{
		Level:      level,
		Encoding:   s.cfg.Log.Encoding,
		OutputPath: s.cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidValue, err)
	}
	return l, nil
}

// resolveTheme loads the configured theme and applies color overrides.
func resolveTheme(cfg *config.Config) (html2pptx.ThemeColors, error) {
	loader, err := html2pptx.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return html2pptx.ThemeColors{}, err
	}
	tc, err := html2pptx.ResolveTheme(loader, cfg.Theme.Name)
	if err != nil {
		return html2pptx.ThemeColors{}, err
	}
	if cfg.Theme.Primary != "" {
		tc.Primary = cfg.Theme.Primary
	}
	if cfg.Theme.Accent != "" {
		tc.Accent = cfg.Theme.Accent
	}
	if err := tc.Validate(); err != nil {
		return html2pptx.ThemeColors{}, err
	}
	return tc, nil
}

// buildOptions translates the merged config into converter options.
// The theme is resolved here so that a bad theme fails before any file is read.
func buildOptions(cfg *config.Config, log *zap.Logger) ([]html2pptx.Option, error) {
	tc, err := resolveTheme(cfg)
	if err != nil {
		return nil, err
	}

	opts := []html2pptx.Option{
		html2pptx.WithLogger(log),
		html2pptx.WithThemeColors(tc),
		html2pptx.WithThumbnail(!cfg.Preview.NoThumbnail),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, html2pptx.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Render.Timeout > 0 {
		opts = append(opts, html2pptx.WithTimeout(cfg.Render.Timeout))
	}
	if cfg.Fetch.Timeout > 0 {
		opts = append(opts, html2pptx.WithFetchTimeout(cfg.Fetch.Timeout))
	}
	if cfg.Preview.Dir != "" {
		opts = append(opts, html2pptx.WithPreviews(cfg.Preview.Width))
	}
	return opts, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutput determines the output file or directory: second argument,
// then --output, then config.
func resolveOutput(args []string, flagOutput string, cfg *config.Config) string {
	if len(args) > 1 {
		return args[1]
	}
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > html2pptx.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, html2pptx.MaxPoolSize)
	}
	return nil
}
