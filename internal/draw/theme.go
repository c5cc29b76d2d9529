package draw

// Theme is the palette passed to every rendering call. It is a value type:
// callers construct it once per conversion and never mutate it afterwards.
type Theme struct {
	Primary Color
	Accent  Color
	Text    Color
	Muted   Color
	Success Color
	Warning Color
	White   Color
	Black   Color

	// CodeStyle names the chroma style used for code blocks. Empty selects
	// the highlighter default.
	CodeStyle string
}

// Default palette.
var (
	defaultPrimary = MustParseColor("#003366")
	defaultAccent  = MustParseColor("#0066CC")
	defaultText    = MustParseColor("#334155")
	defaultMuted   = MustParseColor("#64748B")
	defaultSuccess = MustParseColor("#10B981")
	defaultWarning = MustParseColor("#F59E0B")
)

// DefaultTheme returns the built-in navy/blue palette.
func DefaultTheme() Theme {
	return Theme{
		Primary: defaultPrimary,
		Accent:  defaultAccent,
		Text:    defaultText,
		Muted:   defaultMuted,
		Success: defaultSuccess,
		Warning: defaultWarning,
		White:   RGB(0xFF, 0xFF, 0xFF),
		Black:   RGB(0, 0, 0),
	}
}
