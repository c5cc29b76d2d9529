// Package highlight colours source code as slide text runs using chroma.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-html2pptx/internal/draw"
)

// DefaultStyle is the chroma style used when none is requested.
const DefaultStyle = "github"

// Highlighter tokenises code and maps token types to colours of one style.
type Highlighter struct {
	style    *chroma.Style
	fallback draw.Color
}

// New returns a Highlighter for the named chroma style. Unknown names use
// chroma's fallback style. Untyped tokens are drawn in text.
func New(style string, text draw.Color) *Highlighter {
	if style == "" {
		style = DefaultStyle
	}
	return &Highlighter{style: styles.Get(style), fallback: text}
}

// Lines returns one run list per source line. Tokenisation errors degrade to
// uncoloured lines; code is never dropped.
func (h *Highlighter) Lines(source, language string) [][]draw.Run {
	source = strings.ReplaceAll(source, "\t", "    ")

	lexer := lexerFor(source, language)
	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return h.plain(source)
	}

	var out [][]draw.Run
	for _, line := range chroma.SplitTokensIntoLines(it.Tokens()) {
		var runs []draw.Run
		for _, tok := range line {
			text := strings.TrimSuffix(tok.Value, "\n")
			if text == "" {
				continue
			}
			runs = append(runs, h.run(tok.Type, text))
		}
		out = append(out, runs)
	}
	return trimTrailingEmpty(out)
}

func (h *Highlighter) run(tt chroma.TokenType, text string) draw.Run {
	entry := h.style.Get(tt)
	r := draw.Run{Text: text, Color: h.fallback, Bold: entry.Bold == chroma.Yes}
	if entry.Colour.IsSet() {
		r.Color = draw.RGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
	}
	return r
}

func (h *Highlighter) plain(source string) [][]draw.Run {
	var out [][]draw.Run
	for _, line := range strings.Split(source, "\n") {
		if line == "" {
			out = append(out, nil)
			continue
		}
		out = append(out, []draw.Run{{Text: line, Color: h.fallback}})
	}
	return trimTrailingEmpty(out)
}

// lexerFor picks a lexer by name, then by content analysis, then plaintext.
func lexerFor(source, language string) chroma.Lexer {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

func trimTrailingEmpty(lines [][]draw.Run) [][]draw.Run {
	for len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Text joins the run texts of each line, for tests and plain-text output.
func Text(lines [][]draw.Run) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range line {
			sb.WriteString(r.Text)
		}
	}
	return sb.String()
}
