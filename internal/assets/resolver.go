package assets

import "errors"

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the asset is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTheme loads a theme preset, trying the custom loader first.
func (r *AssetResolver) LoadTheme(name string) ([]byte, error) {
	return withFallback(r, func(l AssetLoader) ([]byte, error) {
		return l.LoadTheme(name)
	})
}

// LoadTemplateSet loads a template set, trying the custom loader first.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	return withFallback(r, func(l AssetLoader) (*TemplateSet, error) {
		return l.LoadTemplateSet(name)
	})
}

// withFallback implements the custom-first, fallback-to-embedded logic.
// Only not-found errors fall back; validation and I/O errors surface.
func withFallback[T any](r *AssetResolver, load func(AssetLoader) (T, error)) (T, error) {
	if r.custom == nil {
		return load(r.embedded)
	}

	v, err := load(r.custom)
	if err == nil || !isNotFoundError(err) {
		return v, err
	}

	return load(r.embedded)
}

// isNotFoundError checks if the error indicates the asset was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrThemeNotFound) ||
		errors.Is(err, ErrTemplateSetNotFound)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
