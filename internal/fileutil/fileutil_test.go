package fileutil_test

// Notes:
// - The WriteString and Close error branches in WriteTempFile and
//   WriteFileAtomic are not tested: disk write failures are platform-specific.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-html2pptx/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "html", extension: "html"},
		{name: "double extension", extension: "tar.gz"},
		{name: "empty", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash", extension: "../x", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash", extension: `..\x`, wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte", extension: "html\x00", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temp file creation and cleanup
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		extension string
	}{
		{name: "html document", content: "<html><body><section>One</section></body></html>", extension: "html"},
		{name: "empty content", content: "", extension: "html"},
		{name: "large content", content: strings.Repeat("x", 1<<20), extension: "txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path, cleanup, err := fileutil.WriteTempFile(dir, tt.content, tt.extension)
			if err != nil {
				t.Fatalf("WriteTempFile() error = %v", err)
			}
			defer cleanup()

			if filepath.Dir(path) != dir {
				t.Errorf("path %q not in %q", path, dir)
			}
			if !strings.HasPrefix(filepath.Base(path), "html2pptx-") {
				t.Errorf("path %q lacks the html2pptx- prefix", path)
			}
			if !strings.HasSuffix(path, "."+tt.extension) {
				t.Errorf("path %q does not end in .%s", path, tt.extension)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.content {
				t.Errorf("content length = %d, want %d", len(data), len(tt.content))
			}
		})
	}
}

func TestWriteTempFile_Cleanup(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile(t.TempDir(), "<p>x</p>", "html")
	if err != nil {
		t.Fatal(err)
	}
	cleanup()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after cleanup at %s", path)
	}
}

func TestWriteTempFile_Errors(t *testing.T) {
	t.Parallel()

	t.Run("invalid extension", func(t *testing.T) {
		t.Parallel()

		_, _, err := fileutil.WriteTempFile(t.TempDir(), "x", "")
		if !errors.Is(err, fileutil.ErrExtensionEmpty) {
			t.Errorf("error = %v, want ErrExtensionEmpty", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, cleanup, err := fileutil.WriteTempFile(filepath.Join(t.TempDir(), "gone"), "x", "html")
		if cleanup != nil {
			cleanup()
		}
		if err == nil || !strings.Contains(err.Error(), "creating temp file") {
			t.Errorf("error = %v, want creating temp file", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMkdirTemp - Scratch directory for a conversion run
// ---------------------------------------------------------------------------

func TestMkdirTemp(t *testing.T) {
	t.Parallel()

	dir, cleanup, err := fileutil.MkdirTemp()
	if err != nil {
		t.Fatalf("MkdirTemp() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "image.png"), []byte("png"), 0o600); err != nil {
		cleanup()
		t.Fatal(err)
	}

	cleanup()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("directory %s survived cleanup", dir)
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Rename into place
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates and replaces", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "deck.pptx")
		for _, content := range []string{"first", "second"} {
			if err := fileutil.WriteFileAtomic(path, []byte(content), 0o644); err != nil {
				t.Fatalf("WriteFileAtomic() error = %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != content {
				t.Errorf("content = %q, want %q", data, content)
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want only the target", len(entries))
		}
	})

	t.Run("missing directory leaves nothing", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "absent", "deck.pptx")
		if err := fileutil.WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
			t.Fatal("expected error for missing directory")
		}
		if fileutil.FileExists(path) {
			t.Error("partial file left behind")
		}
	})
}

// ---------------------------------------------------------------------------
// Path predicates
// ---------------------------------------------------------------------------

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, ext, want string
	}{
		{path: "deck.html", ext: ".pptx", want: "deck.pptx"},
		{path: "/tmp/talks/q3.review.htm", ext: ".pptx", want: "/tmp/talks/q3.review.pptx"},
		{path: "notes", ext: ".pptx", want: "notes.pptx"},
		{path: "slides.md", ext: ".png", want: "slides.png"},
	}

	for _, tt := range tests {
		if got := fileutil.ReplaceExt(tt.path, tt.ext); got != tt.want {
			t.Errorf("ReplaceExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "deck.html")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "regular file", path: file, want: true},
		{name: "directory", path: dir, want: false},
		{name: "missing", path: filepath.Join(dir, "nope"), want: false},
		{name: "empty path", path: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "midnight", want: false},
		{input: "my-theme", want: false},
		{input: "./brand.yaml", want: true},
		{input: "../shared/brand.yaml", want: true},
		{input: "/etc/brand.yaml", want: true},
		{input: `C:\themes\brand.yaml`, want: true},
		{input: "", want: false},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "http://example.com", want: true},
		{input: "https://example.com/deck.html", want: true},
		{input: "/path/to/file", want: false},
		{input: "ftp://example.com", want: false},
		{input: "HTTP://example.com", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		if got := fileutil.IsURL(tt.input); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
