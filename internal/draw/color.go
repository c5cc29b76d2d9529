package draw

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColor indicates a color string is not a 6-digit hex triple.
var ErrInvalidColor = errors.New("invalid color")

// Color is a 24-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseColor parses "#RRGGBB" or "RRGGBB" (case-insensitive).
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("%w: %q (expected #RRGGBB)", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q (expected #RRGGBB)", ErrInvalidColor, s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustParseColor is ParseColor for package-level constants.
// Panics on malformed input.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as uppercase "RRGGBB", the form used by OOXML srgbClr.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// String returns the color as "#RRGGBB".
func (c Color) String() string {
	return "#" + c.Hex()
}
