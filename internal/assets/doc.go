// Package assets provides theme presets and presentation template parts.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in presets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in themes (default, corporate, midnight,
// forest) and the default template set, embedded at compile time.
//
// FilesystemLoader allows users to provide custom assets from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader only when the asset
// is not found there, so a directory may override a single preset.
//
// # Directory Structure
//
//	{basePath}/
//	├── themes/
//	│   └── {name}.yaml          # palette and code style
//	└── templates/
//	    └── {name}/
//	        ├── theme.xml        # DrawingML theme, palette placeholders
//	        ├── master.xml       # slide master
//	        └── layout.xml       # blank slide layout
//
// # Security
//
// Asset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
