package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed themes/*.yaml
var themes embed.FS

//go:embed templates/*
var templates embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTheme loads a theme preset from embedded assets by name.
func (e *EmbeddedLoader) LoadTheme(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	content, err := themes.ReadFile("themes/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	return content, nil
}

// LoadTemplateSet loads a template set from embedded assets by name.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	parts := make(map[string][]byte, len(partNames))
	for _, p := range partNames {
		content, err := templates.ReadFile(path.Join("templates", name, p))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		parts[p] = content
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}
	ts, missing := newTemplateSet(name, parts)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, strings.Join(missing, ", "))
	}
	return ts, nil
}

// ThemeNames lists the embedded theme presets.
func (e *EmbeddedLoader) ThemeNames() []string {
	entries, err := themes.ReadDir("themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
