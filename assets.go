package html2pptx

import (
	"errors"

	"github.com/alnah/go-html2pptx/internal/assets"
)

// Asset name constants for built-in themes and templates.
const (
	// DefaultTheme is the name of the built-in theme preset.
	DefaultTheme = assets.DefaultThemeName

	// DefaultTemplateSet is the name of the built-in template set.
	DefaultTemplateSet = assets.DefaultTemplateSetName
)

// AssetLoader loads theme presets by name.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded presets. Implement this interface for other backends.
type AssetLoader interface {
	// LoadTheme loads a preset by name (without .yaml extension).
	// Returns ErrThemeNotFound if the preset doesn't exist.
	LoadTheme(name string) (ThemeColors, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain:
//   - themes/{name}.yaml for theme presets
//   - templates/{name}/master.xml, layout.xml and theme.xml for template sets
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// ThemeNames lists the built-in theme presets in alphabetical order.
func ThemeNames() []string {
	return assets.ThemeNames()
}

// assetLoaderAdapter decodes theme YAML from the internal resolver.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadTheme(name string) (ThemeColors, error) {
	data, err := a.resolver.LoadTheme(name)
	if err != nil {
		return ThemeColors{}, convertAssetError(err)
	}
	tc, err := ParseTheme(data)
	if err != nil {
		return ThemeColors{}, err
	}
	if tc.Name == DefaultTheme && name != DefaultTheme {
		tc.Name = name
	}
	return tc, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrThemeNotFound):
		return wrapError(ErrThemeNotFound, err)
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return wrapError(ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrThemeNotFound, err) // an invalid name cannot exist
	default:
		return err
	}
}

// wrapError keeps the original message and matches the public sentinel.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
