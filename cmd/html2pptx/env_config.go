package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/alnah/go-html2pptx/internal/config"
)

// envPrefix namespaces every environment override.
const envPrefix = "HTML2PPTX"

// ErrInvalidEnv reports an environment variable that cannot be decoded.
var ErrInvalidEnv = errors.New("invalid environment variable")

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string        `envconfig:"CONFIG"`
	Theme        string        `envconfig:"THEME"`
	Primary      string        `envconfig:"PRIMARY"`
	Accent       string        `envconfig:"ACCENT"`
	Timeout      time.Duration `envconfig:"TIMEOUT"`
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT"`
	RenderJS     *bool         `envconfig:"RENDER_JS"`
	InputDir     string        `envconfig:"INPUT_DIR"`
	OutputDir    string        `envconfig:"OUTPUT_DIR"`
	PreviewDir   string        `envconfig:"PREVIEW_DIR"`
	AssetPath    string        `envconfig:"ASSET_PATH"`
	LogLevel     string        `envconfig:"LOG_LEVEL"`
	Creator      string        `envconfig:"CREATOR"`
	Workers      int           `envconfig:"WORKERS"`
}

// knownEnvVars lists valid HTML2PPTX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTML2PPTX_CONFIG":        true,
	"HTML2PPTX_THEME":         true,
	"HTML2PPTX_PRIMARY":       true,
	"HTML2PPTX_ACCENT":        true,
	"HTML2PPTX_TIMEOUT":       true,
	"HTML2PPTX_FETCH_TIMEOUT": true,
	"HTML2PPTX_RENDER_JS":     true,
	"HTML2PPTX_INPUT_DIR":     true,
	"HTML2PPTX_OUTPUT_DIR":    true,
	"HTML2PPTX_PREVIEW_DIR":   true,
	"HTML2PPTX_ASSET_PATH":    true,
	"HTML2PPTX_LOG_LEVEL":     true,
	"HTML2PPTX_CREATOR":       true,
	"HTML2PPTX_WORKERS":       true,
	"HTML2PPTX_CONTAINER":     true, // read by doctor
}

// loadEnvConfig reads HTML2PPTX_* variables.
func loadEnvConfig() (*envConfig, error) {
	var env envConfig
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnv, err)
	}
	if env.Workers < 0 {
		return nil, fmt.Errorf("%w: %s_WORKERS must be >= 0", ErrInvalidEnv, envPrefix)
	}
	return &env, nil
}

// warnUnknownEnvVars logs warnings for unrecognized HTML2PPTX_* variables.
// Helps catch typos like HTML2PPTX_THEMES instead of HTML2PPTX_THEME.
func warnUnknownEnvVars(w io.Writer) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, envPrefix+"_") {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setString := func(dst *string, v string) {
		if v != "" && *dst == "" {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, v time.Duration) {
		if v > 0 && *dst == 0 {
			*dst = v
		}
	}

	setString(&cfg.Theme.Name, env.Theme)
	setString(&cfg.Theme.Primary, env.Primary)
	setString(&cfg.Theme.Accent, env.Accent)
	setDuration(&cfg.Render.Timeout, env.Timeout)
	setDuration(&cfg.Fetch.Timeout, env.FetchTimeout)
	if env.RenderJS != nil && !cfg.Render.JS {
		cfg.Render.JS = *env.RenderJS
	}
	setString(&cfg.Input.DefaultDir, env.InputDir)
	setString(&cfg.Output.DefaultDir, env.OutputDir)
	setString(&cfg.Preview.Dir, env.PreviewDir)
	setString(&cfg.Assets.BasePath, env.AssetPath)
	setString(&cfg.Log.Level, env.LogLevel)
	setString(&cfg.Metadata.Creator, env.Creator)
}
