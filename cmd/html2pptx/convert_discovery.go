package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// inputExtensions lists the file types a directory scan picks up.
var inputExtensions = map[string]bool{
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all HTML and Markdown files to convert.
func discoverFiles(inputPath, output string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateInputExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, output, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !inputExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		outPath := resolveOutputPath(path, output, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the deck path for an input file. An output
// ending in .pptx is used as is; any other output is a directory that mirrors
// the input tree.
func resolveOutputPath(inputPath, output, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if output == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".pptx")
	}

	if strings.EqualFold(filepath.Ext(output), ".pptx") && baseInputDir == "" {
		return output
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(output, filepath.Dir(relPath), base+".pptx")
		}
	}

	return filepath.Join(output, base+".pptx")
}

// validateInputExtension checks that a single input file is HTML or Markdown.
func validateInputExtension(path string) error {
	ext := filepath.Ext(path)
	if !inputExtensions[strings.ToLower(ext)] {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}
