package html2pptx

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-html2pptx/internal/draw"
	"github.com/alnah/go-html2pptx/internal/fileutil"
	"github.com/alnah/go-html2pptx/internal/highlight"
	"github.com/alnah/go-html2pptx/internal/yamlutil"
)

// ThemeColors is the slide palette. Colors are "#RRGGBB" or "RRGGBB".
// White and black are fixed and not part of a theme.
type ThemeColors struct {
	Name      string `yaml:"name"`
	Primary   string `yaml:"primary"`
	Accent    string `yaml:"accent"`
	Text      string `yaml:"text"`
	Muted     string `yaml:"muted"`
	Success   string `yaml:"success"`
	Warning   string `yaml:"warning"`
	CodeStyle string `yaml:"code_style,omitempty"` // chroma style for code blocks
}

// DefaultThemeColors returns the built-in navy and blue palette.
func DefaultThemeColors() ThemeColors {
	return ThemeColors{
		Name:      DefaultTheme,
		Primary:   "#003366",
		Accent:    "#0066CC",
		Text:      "#334155",
		Muted:     "#64748B",
		Success:   "#10B981",
		Warning:   "#F59E0B",
		CodeStyle: highlight.DefaultStyle,
	}
}

// fields pairs each color with its YAML key, in declaration order.
func (t *ThemeColors) fields() []struct{ key, value string } {
	return []struct{ key, value string }{
		{"primary", t.Primary},
		{"accent", t.Accent},
		{"text", t.Text},
		{"muted", t.Muted},
		{"success", t.Success},
		{"warning", t.Warning},
	}
}

// Validate checks every color. The error matches both ErrInvalidTheme and
// ErrInvalidColor.
func (t *ThemeColors) Validate() error {
	for _, f := range t.fields() {
		if _, err := draw.ParseColor(f.value); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidTheme, f.key, err)
		}
	}
	return nil
}

// palette converts validated colors to the renderer's theme.
func (t *ThemeColors) palette() (draw.Theme, error) {
	if err := t.Validate(); err != nil {
		return draw.Theme{}, err
	}
	p := draw.DefaultTheme()
	p.Primary = draw.MustParseColor(t.Primary)
	p.Accent = draw.MustParseColor(t.Accent)
	p.Text = draw.MustParseColor(t.Text)
	p.Muted = draw.MustParseColor(t.Muted)
	p.Success = draw.MustParseColor(t.Success)
	p.Warning = draw.MustParseColor(t.Warning)
	p.CodeStyle = t.CodeStyle
	return p, nil
}

// ParseTheme decodes a theme YAML document. Keys left out keep their
// default value; unknown keys are rejected.
func ParseTheme(data []byte) (ThemeColors, error) {
	tc := DefaultThemeColors()
	if err := yamlutil.UnmarshalStrict(data, &tc); err != nil {
		return ThemeColors{}, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	if err := tc.Validate(); err != nil {
		return ThemeColors{}, err
	}
	return tc, nil
}

// LoadThemeFile reads a theme YAML file. A file without a name key is named
// after its base name.
func LoadThemeFile(path string) (ThemeColors, error) {
	tc := DefaultThemeColors()
	tc.Name = ""
	if err := yamlutil.DecodeFile(path, &tc); err != nil {
		return ThemeColors{}, fmt.Errorf("%w: %s: %v", ErrInvalidTheme, path, err)
	}
	if tc.Name == "" {
		tc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := tc.Validate(); err != nil {
		return ThemeColors{}, err
	}
	return tc, nil
}

// ResolveTheme turns a --theme style value into colors: a value containing a
// path separator is a file, anything else a preset name looked up through
// loader. An empty value selects the default preset.
func ResolveTheme(loader AssetLoader, nameOrPath string) (ThemeColors, error) {
	switch {
	case nameOrPath == "":
		return loader.LoadTheme(DefaultTheme)
	case fileutil.IsFilePath(nameOrPath):
		return LoadThemeFile(nameOrPath)
	default:
		return loader.LoadTheme(nameOrPath)
	}
}
