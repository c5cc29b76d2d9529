package main

// Notes:
// - These tests mutate process environment with t.Setenv, so none of them
//   run in parallel.
// - Precedence (flags > env > config) is tested here at the applyEnvConfig
//   boundary; mergeFlags is covered in convert_test.go.

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-html2pptx/internal/config"
)

// ---------------------------------------------------------------------------
// loadEnvConfig
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("HTML2PPTX_THEME", "forest")
	t.Setenv("HTML2PPTX_ACCENT", "#AA5500")
	t.Setenv("HTML2PPTX_TIMEOUT", "2m")
	t.Setenv("HTML2PPTX_FETCH_TIMEOUT", "5s")
	t.Setenv("HTML2PPTX_RENDER_JS", "true")
	t.Setenv("HTML2PPTX_WORKERS", "3")
	t.Setenv("HTML2PPTX_CREATOR", "Ops")

	env, err := loadEnvConfig()
	if err != nil {
		t.Fatalf("loadEnvConfig() error = %v", err)
	}
	if env.Theme != "forest" || env.Accent != "#AA5500" || env.Creator != "Ops" {
		t.Errorf("strings = %+v", env)
	}
	if env.Timeout != 2*time.Minute || env.FetchTimeout != 5*time.Second {
		t.Errorf("timeouts = %s, %s", env.Timeout, env.FetchTimeout)
	}
	if env.RenderJS == nil || !*env.RenderJS {
		t.Errorf("RenderJS = %v, want true", env.RenderJS)
	}
	if env.Workers != 3 {
		t.Errorf("Workers = %d, want 3", env.Workers)
	}
}

func TestLoadEnvConfig_Unset(t *testing.T) {
	env, err := loadEnvConfig()
	if err != nil {
		t.Fatalf("loadEnvConfig() error = %v", err)
	}
	if env.RenderJS != nil {
		t.Errorf("RenderJS = %v, want nil when unset", *env.RenderJS)
	}
}

func TestLoadEnvConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad duration", "HTML2PPTX_TIMEOUT", "soon"},
		{"bad bool", "HTML2PPTX_RENDER_JS", "maybe"},
		{"bad int", "HTML2PPTX_WORKERS", "many"},
		{"negative workers", "HTML2PPTX_WORKERS", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := loadEnvConfig()
			if !errors.Is(err, ErrInvalidEnv) {
				t.Errorf("error = %v, want ErrInvalidEnv", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// warnUnknownEnvVars
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("HTML2PPTX_THEMES", "forest")
	t.Setenv("HTML2PPTX_THEME", "forest")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "HTML2PPTX_THEMES") {
		t.Errorf("output %q does not warn about the typo", out)
	}
	if strings.Contains(out, "HTML2PPTX_THEME ") {
		t.Errorf("output %q warns about a known variable", out)
	}
}

// ---------------------------------------------------------------------------
// applyEnvConfig
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	yes := true
	env := &envConfig{
		Theme:      "forest",
		Primary:    "#112233",
		Timeout:    time.Minute,
		RenderJS:   &yes,
		OutputDir:  "decks",
		PreviewDir: "png",
		LogLevel:   "info",
		Creator:    "Ops",
	}

	t.Run("fills empty fields", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)
		if cfg.Theme.Name != "forest" || cfg.Theme.Primary != "#112233" {
			t.Errorf("Theme = %+v", cfg.Theme)
		}
		if cfg.Render.Timeout != time.Minute || !cfg.Render.JS {
			t.Errorf("Render = %+v", cfg.Render)
		}
		if cfg.Output.DefaultDir != "decks" || cfg.Preview.Dir != "png" {
			t.Errorf("dirs = %q, %q", cfg.Output.DefaultDir, cfg.Preview.Dir)
		}
		if cfg.Log.Level != "info" || cfg.Metadata.Creator != "Ops" {
			t.Errorf("log/metadata = %q, %q", cfg.Log.Level, cfg.Metadata.Creator)
		}
	})

	t.Run("keeps config file values", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Theme.Name = "midnight"
		cfg.Render.Timeout = 10 * time.Second
		applyEnvConfig(env, cfg)
		if cfg.Theme.Name != "midnight" {
			t.Errorf("Theme.Name = %q, want config value", cfg.Theme.Name)
		}
		if cfg.Render.Timeout != 10*time.Second {
			t.Errorf("Render.Timeout = %s, want config value", cfg.Render.Timeout)
		}
	})
}
