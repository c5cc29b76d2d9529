package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads assets from a directory on the filesystem.
// Implements AssetLoader interface.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Containment checks compare real paths, so the base must be real too.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// LoadTheme loads {basePath}/themes/{name}.yaml.
func (f *FilesystemLoader) LoadTheme(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	filePath := filepath.Join(f.basePath, "themes", name+".yaml")
	if err := f.verifyPathContainment(filePath); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filePath) // #nosec G304 -- path validated above
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	return content, nil
}

// LoadTemplateSet loads the parts under {basePath}/templates/{name}/.
func (f *FilesystemLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dirPath := filepath.Join(f.basePath, "templates", name)
	if err := f.verifyPathContainment(dirPath + string(filepath.Separator)); err != nil {
		return nil, err
	}

	parts := make(map[string][]byte, len(partNames))
	for _, p := range partNames {
		content, err := os.ReadFile(filepath.Join(dirPath, p)) // #nosec G304 -- path validated above
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, p, err)
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

// verifyPathContainment ensures the resolved file path is within basePath,
// following symlinks so a link cannot point outside it.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file keeps its unresolved path; opening it fails later.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	// Separator suffix rejects sibling prefixes such as /base/pathevil.
	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}

	return nil
}

// Compile-time interface check.
var _ AssetLoader = (*FilesystemLoader)(nil)
