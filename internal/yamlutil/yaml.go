// Package yamlutil wraps YAML parsing for configuration files and theme
// presets, keeping goccy/go-yaml behind a small surface with size limits.
package yamlutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrReadFile       = errors.New("yamlutil: cannot read file")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Marshal encodes v as YAML.
func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// DecodeFile reads path and decodes it strictly into v. Files larger than
// MaxInputSize are rejected without being read in full.
func DecodeFile(path string, v any) error {
	f, err := os.Open(path) // #nosec G304 -- user-provided config or theme path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadFile, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, int64(MaxInputSize)+1))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadFile, err)
	}
	return UnmarshalStrict(data, v)
}
