package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-html2pptx/internal/dom"
)

// Glyph maps an icon-font class to a renderable symbol.
type Glyph struct {
	Class  string
	Symbol string
}

// DefaultGlyph is used when no icon class is recognized.
const DefaultGlyph = "•"

// Fixed list-item symbols for class-tagged items.
const (
	SuccessGlyph = "✓"
	WarningGlyph = "⚠"
)

// Glyphs is scanned in order; the first entry carried by the icon element wins.
var Glyphs = []Glyph{
	{"fa-check-circle", "✓"},
	{"fa-circle-check", "✓"},
	{"fa-check", "✓"},
	{"fa-exclamation-triangle", "⚠"},
	{"fa-triangle-exclamation", "⚠"},
	{"fa-warning", "⚠"},
	{"fa-globe-asia", "🌏"},
	{"fa-globe", "🌐"},
	{"fa-earth", "🌍"},
	{"fa-file-medical-alt", "📋"},
	{"fa-file-medical", "📋"},
	{"fa-file", "📄"},
	{"fa-robot", "🤖"},
	{"fa-microchip", "💡"},
	{"fa-lightbulb", "💡"},
	{"fa-star", "★"},
	{"fa-heart", "❤"},
	{"fa-arrow-right", "→"},
	{"fa-arrow-left", "←"},
	{"fa-info-circle", "ℹ"},
	{"fa-question-circle", "?"},
	{"fa-times", "✗"},
	{"fa-close", "✗"},
	{"fa-user", "👤"},
	{"fa-users", "👥"},
	{"fa-cog", "⚙"},
	{"fa-gear", "⚙"},
	{"fa-chart-bar", "📊"},
	{"fa-chart-line", "📈"},
}

// ResolveGlyph finds the first <i> descendant of n whose classes mention
// "fa" and maps it through Glyphs. Returns DefaultGlyph otherwise.
func ResolveGlyph(n *html.Node) string {
	icon := dom.Find(n, iconElement)
	if icon == nil {
		return DefaultGlyph
	}
	for _, g := range Glyphs {
		if dom.HasClass(icon, g.Class) {
			return g.Symbol
		}
	}
	return DefaultGlyph
}

var isItalic = dom.Tag("i")

func iconElement(n *html.Node) bool {
	if !isItalic(n) {
		return false
	}
	for _, c := range dom.Classes(n) {
		if strings.Contains(c, "fa") {
			return true
		}
	}
	return false
}
