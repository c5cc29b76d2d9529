package assets

// AssetLoader defines the contract for loading theme presets and template sets.
type AssetLoader interface {
	// LoadTheme returns the raw YAML of a theme preset (without .yaml extension).
	// Returns ErrThemeNotFound if the preset doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTheme(name string) ([]byte, error)

	// LoadTemplateSet loads the presentation parts stored under a name.
	// Returns ErrTemplateSetNotFound if no part exists.
	// Returns ErrIncompleteTemplateSet if only some parts exist.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
