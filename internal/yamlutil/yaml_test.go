package yamlutil_test

// Notes:
// - The Marshal error branch is not tested: yaml.Marshal only fails on
//   channels and functions, which no caller passes.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-html2pptx/internal/yamlutil"
)

type palette struct {
	Name    string `yaml:"name"`
	Primary string `yaml:"primary"`
	Width   int    `yaml:"width"`
}

// ---------------------------------------------------------------------------
// Decoding
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		want    palette
	}{
		{
			name: "valid",
			data: []byte("name: midnight\nprimary: \"#0F172A\"\nwidth: 1280"),
			dest: &palette{},
			want: palette{Name: "midnight", Primary: "#0F172A", Width: 1280},
		},
		{
			name: "unknown field ignored",
			data: []byte("name: forest\nextra: true"),
			dest: &palette{},
			want: palette{Name: "forest"},
		},
		{name: "nil data", data: nil, dest: &palette{}, wantErr: yamlutil.ErrNilData},
		{name: "empty data", data: []byte{}, dest: &palette{}, wantErr: yamlutil.ErrNilData},
		{name: "nil destination", data: []byte("name: x"), dest: nil, wantErr: yamlutil.ErrNilDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := *tt.dest.(*palette); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnmarshal_SyntaxErrorPrefixed(t *testing.T) {
	t.Parallel()

	err := yamlutil.Unmarshal([]byte("name: [unclosed"), &palette{})
	if err == nil || !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error = %v, want yamlutil: prefix", err)
	}
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "known fields", data: "name: default\nprimary: \"#003366\""},
		{name: "unknown field", data: "name: default\nprimry: \"#003366\"", wantErr: true},
		{name: "wrong type", data: "width: wide", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict([]byte(tt.data), &palette{})
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Encoding
// ---------------------------------------------------------------------------

func TestMarshal_DecodesBack(t *testing.T) {
	t.Parallel()

	in := palette{Name: "corporate", Primary: "#1E3A5F", Width: 256}
	data, err := yamlutil.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), "name: corporate") {
		t.Errorf("output lacks name field:\n%s", data)
	}

	var out palette
	if err := yamlutil.UnmarshalStrict(data, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("decoded %+v, want %+v", out, in)
	}
}

// ---------------------------------------------------------------------------
// Limits and files
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	t.Parallel()

	big := []byte("name: " + strings.Repeat("x", yamlutil.MaxInputSize))
	for name, fn := range map[string]func([]byte, any) error{
		"Unmarshal":       yamlutil.Unmarshal,
		"UnmarshalStrict": yamlutil.UnmarshalStrict,
	} {
		if err := fn(big, &palette{}); !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("%s error = %v, want ErrInputTooLarge", name, err)
		}
	}
}

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "theme.yaml")
	if err := os.WriteFile(good, []byte("name: custom\nprimary: \"#112233\""), 0o600); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("colour: red"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		var p palette
		if err := yamlutil.DecodeFile(good, &p); err != nil {
			t.Fatalf("DecodeFile() error: %v", err)
		}
		if p.Name != "custom" || p.Primary != "#112233" {
			t.Errorf("got %+v", p)
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		err := yamlutil.DecodeFile(filepath.Join(dir, "nope.yaml"), &palette{})
		if !errors.Is(err, yamlutil.ErrReadFile) {
			t.Errorf("error = %v, want ErrReadFile", err)
		}
	})

	t.Run("strict", func(t *testing.T) {
		t.Parallel()

		if err := yamlutil.DecodeFile(bad, &palette{}); err == nil {
			t.Error("unknown field accepted")
		}
	})
}
