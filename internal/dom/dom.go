// Package dom is the tree-query layer over golang.org/x/net/html.
//
// It exposes the small capability set the extraction pipeline relies on:
// find descendants by tag and/or class, read attributes, and collect the text
// of a subtree. Parsing is charset-aware so legacy encodings decode to UTF-8
// before the tree is built.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/unicode/norm"
)

// Parse decodes r using the declared or sniffed charset and parses it as HTML.
// contentType may be empty; it is the value of a Content-Type header when known.
func Parse(r io.Reader, contentType string) (*html.Node, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}
	doc, err := html.Parse(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// ParseBytes parses an in-memory document.
func ParseBytes(data []byte) (*html.Node, error) {
	return Parse(bytes.NewReader(data), "")
}

// ParseString parses markup that is already UTF-8.
func ParseString(s string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// Matcher reports whether an element node is selected.
type Matcher func(n *html.Node) bool

// Tag matches elements with any of the given tag names.
func Tag(names ...string) Matcher {
	atoms := make([]atom.Atom, 0, len(names))
	for _, name := range names {
		atoms = append(atoms, atom.Lookup([]byte(strings.ToLower(name))))
	}
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for i, a := range atoms {
			if a != 0 && n.DataAtom == a {
				return true
			}
			if a == 0 && strings.EqualFold(n.Data, names[i]) {
				return true
			}
		}
		return false
	}
}

// Class matches elements carrying any of the given class names.
func Class(names ...string) Matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, name := range names {
			if HasClass(n, name) {
				return true
			}
		}
		return false
	}
}

// And matches elements selected by every matcher.
func And(ms ...Matcher) Matcher {
	return func(n *html.Node) bool {
		for _, m := range ms {
			if !m(n) {
				return false
			}
		}
		return true
	}
}

// FindAll returns the descendants of root (root excluded) selected by m,
// in document order.
func FindAll(root *html.Node, m Matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && m(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// Find returns the first descendant of root selected by m, or nil.
func Find(root *html.Node, m Matcher) *html.Node {
	if root == nil {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && m(c) {
			return c
		}
		if found := Find(c, m); found != nil {
			return found
		}
	}
	return nil
}

// Children returns the direct element children of n selected by m.
func Children(n *html.Node, m Matcher) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && m(c) {
			out = append(out, c)
		}
	}
	return out
}

// Body returns the <body> element of a parsed document, or doc itself when
// the tree has none.
func Body(doc *html.Node) *html.Node {
	if doc == nil {
		return nil
	}
	if doc.Type == html.ElementNode && doc.DataAtom == atom.Body {
		return doc
	}
	if body := Find(doc, Tag("body")); body != nil {
		return body
	}
	return doc
}

// Contains reports whether n is ancestor itself or one of its descendants.
func Contains(ancestor, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// Attr returns the value of attribute key, or "" when absent.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// Classes returns the whitespace-separated tokens of the class attribute.
func Classes(n *html.Node) []string {
	return strings.Fields(Attr(n, "class"))
}

// HasClass reports whether n carries the exact class token.
func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// Text concatenates the text nodes of the subtree rooted at n.
// Script, style and template contents are skipped.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	collectText(n, &sb)
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Template, atom.Noscript:
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// CleanText normalizes to NFC, collapses runs of whitespace to a single
// space and trims both ends.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// CleanTextOf is CleanText(Text(n)).
func CleanTextOf(n *html.Node) string {
	return CleanText(Text(n))
}

// IsBlank reports whether n holds no element and no non-whitespace text.
func IsBlank(n *html.Node) bool {
	if n == nil {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			return false
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		}
	}
	return true
}
