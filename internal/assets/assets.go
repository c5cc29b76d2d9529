package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadTheme loads a built-in theme preset by name.
// Returns ErrThemeNotFound if the preset does not exist.
func LoadTheme(name string) ([]byte, error) {
	return defaultLoader.LoadTheme(name)
}

// LoadTemplateSet loads a built-in template set by name.
// Returns ErrTemplateSetNotFound if the set does not exist.
func LoadTemplateSet(name string) (*TemplateSet, error) {
	return defaultLoader.LoadTemplateSet(name)
}

// ThemeNames lists the built-in theme presets in alphabetical order.
func ThemeNames() []string {
	return defaultLoader.ThemeNames()
}
