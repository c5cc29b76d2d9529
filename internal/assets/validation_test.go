package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		// Valid names
		{name: "simple name", input: "midnight"},
		{name: "name with hyphen", input: "my-theme"},
		{name: "name with underscore", input: "my_theme"},
		{name: "name with numbers", input: "theme2"},
		{name: "longest allowed", input: strings.Repeat("a", MaxAssetNameLength)},

		// Invalid names
		{name: "empty name", input: "", wantErr: ErrInvalidAssetName},
		{name: "too long", input: strings.Repeat("a", MaxAssetNameLength+1), wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "path/to/theme", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: "path\\to\\theme", wantErr: ErrInvalidAssetName},
		{name: "parent directory traversal", input: "../secret", wantErr: ErrInvalidAssetName},
		{name: "extension", input: "default.yaml", wantErr: ErrInvalidAssetName},
		{name: "nul byte", input: "default\x00", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
