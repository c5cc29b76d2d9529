package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-html2pptx/internal/fileutil"
	"github.com/alnah/go-html2pptx/internal/logger"
	"github.com/alnah/go-html2pptx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxThemeLength    = 4096 // theme name or file path
	MaxColorLength    = 7    // "#RRGGBB"
	MaxTitleLength    = 500  // deck title
	MaxCreatorLength  = 200  // author shown in document properties
	MaxLogFieldLength = 20   // "debug", "console"
)

// Bounds for numeric settings.
const (
	MinPreviewWidth = 64
	MaxPreviewWidth = 7680
	MaxTimeout      = 30 * time.Minute
)

// ConfigDirName is the directory searched under os.UserConfigDir.
const ConfigDirName = "go-html2pptx"

// Config holds all configuration for deck generation.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Theme    ThemeConfig    `yaml:"theme"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Render   RenderConfig   `yaml:"render"`
	Preview  PreviewConfig  `yaml:"preview"`
	Assets   AssetsConfig   `yaml:"assets"`
	Log      LogConfig      `yaml:"log"`
	Metadata MetadataConfig `yaml:"metadata"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = next to source)
}

// ThemeConfig selects the color palette.
type ThemeConfig struct {
	Name    string `yaml:"name"`    // Preset name or path to a theme file (empty = default)
	Primary string `yaml:"primary"` // Overrides the preset's primary color
	Accent  string `yaml:"accent"`  // Overrides the preset's accent color
}

// FetchConfig controls image downloads.
type FetchConfig struct {
	Timeout time.Duration `yaml:"timeout"` // Per-request timeout (0 = library default)
}

// RenderConfig controls script execution before extraction.
type RenderConfig struct {
	JS      bool          `yaml:"js"`      // Run scripts in headless Chrome first
	Timeout time.Duration `yaml:"timeout"` // Whole-conversion timeout (0 = library default)
}

// PreviewConfig controls PNG previews and the package thumbnail.
type PreviewConfig struct {
	Dir         string `yaml:"dir"`         // Write one PNG per slide here (empty = no previews)
	Width       int    `yaml:"width"`       // Pixel width (0 = library default)
	NoThumbnail bool   `yaml:"noThumbnail"` // Skip docProps/thumbnail.jpeg
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LogConfig mirrors logger.Config.
type LogConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // console or json
	Output   string `yaml:"output"`   // file path, stdout or stderr
}

// MetadataConfig sets document properties.
type MetadataConfig struct {
	Title   string `yaml:"title"`   // Empty = first slide title
	Creator string `yaml:"creator"` // Empty = none
	Stamp   bool   `yaml:"stamp"`   // Record the conversion time (false = reproducible output)
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"theme.name", c.Theme.Name, MaxThemeLength},
		{"theme.primary", c.Theme.Primary, MaxColorLength},
		{"theme.accent", c.Theme.Accent, MaxColorLength},
		{"preview.dir", c.Preview.Dir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"log.level", c.Log.Level, MaxLogFieldLength},
		{"log.encoding", c.Log.Encoding, MaxLogFieldLength},
		{"log.output", c.Log.Output, MaxPathLength},
		{"metadata.title", c.Metadata.Title, MaxTitleLength},
		{"metadata.creator", c.Metadata.Creator, MaxCreatorLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateDuration("fetch.timeout", c.Fetch.Timeout); err != nil {
		return err
	}
	if err := validateDuration("render.timeout", c.Render.Timeout); err != nil {
		return err
	}

	if w := c.Preview.Width; w != 0 && (w < MinPreviewWidth || w > MaxPreviewWidth) {
		return fmt.Errorf("%w: preview.width must be between %d and %d, got %d",
			ErrInvalidValue, MinPreviewWidth, MaxPreviewWidth, w)
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidValue, err)
	}
	switch strings.ToLower(c.Log.Encoding) {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log.encoding %q (must be console or json)", ErrInvalidValue, c.Log.Encoding)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length in runes.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if n := utf8.RuneCountInString(value); n > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, n, maxLength)
	}
	return nil
}

func validateDuration(fieldName string, d time.Duration) error {
	if d < 0 || d > MaxTimeout {
		return fmt.Errorf("%w: %s must be between 0 and %s, got %s", ErrInvalidValue, fieldName, MaxTimeout, d)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: default theme, no previews,
// static parsing, library timeouts.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	} else if !fileutil.FileExists(configPath) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}

	var cfg Config
	if err := yamlutil.DecodeFile(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <UserConfigDir>/go-html2pptx/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, ConfigDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
