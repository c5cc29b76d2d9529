package html2pptx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func TestThemeColors_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*ThemeColors)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*ThemeColors) {}},
		{name: "without hash", mutate: func(tc *ThemeColors) { tc.Accent = "0066cc" }},
		{name: "named color", mutate: func(tc *ThemeColors) { tc.Primary = "navy" }, wantErr: true},
		{name: "short hex", mutate: func(tc *ThemeColors) { tc.Muted = "#FFF" }, wantErr: true},
		{name: "empty warning", mutate: func(tc *ThemeColors) { tc.Warning = "" }, wantErr: true},
		{name: "empty code style allowed", mutate: func(tc *ThemeColors) { tc.CodeStyle = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tc := DefaultThemeColors()
			tt.mutate(&tc)
			err := tc.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && (!errors.Is(err, ErrInvalidTheme) || !errors.Is(err, ErrInvalidColor)) {
				t.Errorf("error %v should match ErrInvalidTheme and ErrInvalidColor", err)
			}
		})
	}
}

func TestThemeColors_Palette(t *testing.T) {
	t.Parallel()

	tc := DefaultThemeColors()
	tc.Primary = "#102030"
	tc.CodeStyle = "monokai"

	p, err := tc.palette()
	if err != nil {
		t.Fatal(err)
	}
	if p.Primary.Hex() != "#102030" {
		t.Errorf("Primary = %s", p.Primary.Hex())
	}
	if p.White.Hex() != "#FFFFFF" || p.Black.Hex() != "#000000" {
		t.Errorf("fixed colors changed: white %s black %s", p.White.Hex(), p.Black.Hex())
	}
	if p.CodeStyle != "monokai" {
		t.Errorf("CodeStyle = %q", p.CodeStyle)
	}
}

// ---------------------------------------------------------------------------
// Parsing and loading
// ---------------------------------------------------------------------------

func TestParseTheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr bool
		check   func(t *testing.T, tc ThemeColors)
	}{
		{
			name: "partial keeps defaults",
			data: "name: brand\nprimary: \"#AA0000\"",
			check: func(t *testing.T, tc ThemeColors) {
				if tc.Name != "brand" || tc.Primary != "#AA0000" || tc.Accent != "#0066CC" {
					t.Errorf("got %+v", tc)
				}
			},
		},
		{name: "unknown key", data: "primary: \"#AA0000\"\nbackground: \"#FFFFFF\"", wantErr: true},
		{name: "bad color", data: "accent: blue", wantErr: true},
		{name: "empty", data: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tc, err := ParseTheme([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTheme() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidTheme) {
					t.Errorf("error %v should match ErrInvalidTheme", err)
				}
				return
			}
			tt.check(t, tc)
		})
	}
}

func TestLoadThemeFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	unnamed := filepath.Join(dir, "sunset.yaml")
	if err := os.WriteFile(unnamed, []byte("primary: \"#7C2D12\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tc, err := LoadThemeFile(unnamed)
	if err != nil {
		t.Fatalf("LoadThemeFile() error: %v", err)
	}
	if tc.Name != "sunset" || tc.Primary != "#7C2D12" {
		t.Errorf("got %+v", tc)
	}

	if _, err := LoadThemeFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("missing file error = %v, want ErrInvalidTheme", err)
	}
}

func TestResolveTheme(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(file, []byte("name: custom\naccent: \"#123456\""), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		input    string
		wantName string
		wantErr  error
	}{
		{input: "", wantName: "default"},
		{input: "forest", wantName: "forest"},
		{input: file, wantName: "custom"},
		{input: "does-not-exist", wantErr: ErrThemeNotFound},
		{input: "../escape", wantErr: ErrInvalidTheme},
	}

	for _, tt := range tests {
		tc, err := ResolveTheme(loader, tt.input)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ResolveTheme(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveTheme(%q) error: %v", tt.input, err)
			continue
		}
		if tc.Name != tt.wantName {
			t.Errorf("ResolveTheme(%q).Name = %q, want %q", tt.input, tc.Name, tt.wantName)
		}
	}
}

func TestBuiltinThemesValid(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatal(err)
	}
	names := ThemeNames()
	if len(names) < 4 {
		t.Fatalf("ThemeNames() = %v, want at least 4 presets", names)
	}
	for _, name := range names {
		tc, err := loader.LoadTheme(name)
		if err != nil {
			t.Errorf("LoadTheme(%q) error: %v", name, err)
			continue
		}
		if tc.Name != name {
			t.Errorf("preset %q declares name %q", name, tc.Name)
		}
	}
}
