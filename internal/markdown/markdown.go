// Package markdown converts Markdown input to an HTML document the slide
// segmenter understands.
//
// Thematic breaks (---) become <hr> elements, which the segmenter treats as
// slide separators. Fenced code blocks keep their language as a
// language-xxx class on the <pre> element so the extractor can colour them.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrConversion indicates Markdown to HTML conversion failed.
var ErrConversion = errors.New("markdown conversion failed")

// documentTemplate wraps goldmark's fragment output in a complete HTML5
// document. The title placeholder is left empty; slide titles come from
// headings.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title></title>
</head>
<body>
%s
</body>
</html>`

// Converter turns Markdown into HTML.
type Converter struct {
	md goldmark.Markdown
}

// New creates a Converter with GFM extensions. Code blocks are tokenised
// with the named chroma style (class names only, no inline colours).
func New(style string) *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
					chromahtml.PreventSurroundingPre(true),
				),
				highlighting.WithWrapperRenderer(wrapCodeBlock),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
			// Raw HTML stays escaped: a Markdown deck cannot inject markup
			// that changes how slides are segmented.
		),
	)
	return &Converter{md: md}
}

// wrapCodeBlock emits <pre class="language-xxx"><code> around highlighted
// code. Blocks without a language get a bare <pre><code>.
func wrapCodeBlock(w util.BufWriter, cb highlighting.CodeBlockContext, entering bool) {
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return
	}
	lang, ok := cb.Language()
	if !ok || len(lang) == 0 {
		_, _ = w.WriteString("<pre><code>")
		return
	}
	_, _ = w.WriteString(`<pre class="language-` + html.EscapeString(string(lang)) + `"><code>`)
}

// ToHTML converts Markdown content to a standalone HTML5 document.
// Goldmark has no context support, so conversion runs in a goroutine and
// the call returns early when ctx is done.
func (c *Converter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrConversion, err)}
			return
		}
		done <- result{html: fmt.Sprintf(documentTemplate, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
