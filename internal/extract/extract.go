// Package extract turns one slide region into a SlideContent record.
//
// Extraction never fails: absent elements leave the corresponding field at
// its zero value. Lookup tables (glyphs, card classes, layout hints) are
// ordered slices so that priority is explicit and testable.
package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-html2pptx/internal/dom"
)

// CardClasses lists card-like class names, highest priority first.
var CardClasses = []string{"tile-card", "roadmap-card", "card"}

// Layout hint classes.
const (
	hintTwoColumn   = "two-column"
	hintTileGrid    = "tile-grid"
	hintRoadmapGrid = "roadmap-grid"
)

// Item class hints.
var (
	successClasses = []string{"strength", "success"}
	warningClasses = []string{"gap", "warning"}
)

var (
	isTitle     = dom.Class("slide-title")
	isSubtitle  = dom.Class("slide-subtitle")
	isH1        = dom.Tag("h1")
	isH2        = dom.Tag("h2")
	isH3        = dom.Tag("h3")
	isList      = dom.Tag("ul", "ol")
	isListItem  = dom.Tag("li")
	isEmphasis  = dom.Tag("strong", "b")
	isImage     = dom.Tag("img")
	isCardHead  = dom.Tag("h3", "h4", "h5")
	isParagraph = dom.Tag("p")
	isTable     = dom.Tag("table")
	isRow       = dom.Tag("tr")
	isCell      = dom.Tag("th", "td")
	isPre       = dom.Tag("pre")
	isCode      = dom.Tag("code")
	isPageIdx   = dom.Class("page-indicator")
	isFooter    = dom.Class("footer")
)

// Extract builds the content record of one region.
func Extract(region *html.Node) SlideContent {
	c := SlideContent{Layout: LayoutAuto}
	if region == nil {
		return c
	}

	titleElem := firstOf(region, isTitle, isH1, isH2)
	if titleElem != nil {
		c.Title = dom.CleanTextOf(titleElem)
	}
	if sub := firstOf(region, isSubtitle, isH3); sub != nil && sub != titleElem {
		c.Subtitle = dom.CleanTextOf(sub)
	}

	c.Items = extractItems(region)
	c.Images = extractImages(region)
	c.Cards = extractCards(region)
	c.Tables = extractTables(region)
	c.Code = extractCode(region)

	if n := dom.Find(region, isPageIdx); n != nil {
		c.FooterLeft = dom.CleanTextOf(n)
	}
	if n := dom.Find(region, isFooter); n != nil {
		c.FooterRight = dom.CleanTextOf(n)
	}

	c.Layout = classify(region, &c)
	return c
}

// classify applies the layout priority list:
// two-column hint, tile-grid hint, roadmap-grid hint, any card,
// images together with items, then auto.
func classify(region *html.Node, c *SlideContent) Layout {
	switch {
	case hasHint(region, hintTwoColumn):
		return LayoutTwoColumn
	case hasHint(region, hintTileGrid):
		return LayoutTileGrid
	case hasHint(region, hintRoadmapGrid):
		return LayoutRoadmapGrid
	case len(c.Cards) > 0:
		return LayoutCards
	case len(c.Images) > 0 && len(c.Items) > 0:
		return LayoutTwoColumn
	default:
		return LayoutAuto
	}
}

// hasHint looks for a class hint on the region itself or any descendant.
func hasHint(region *html.Node, class string) bool {
	return dom.HasClass(region, class) || dom.Find(region, dom.Class(class)) != nil
}

func firstOf(root *html.Node, ms ...dom.Matcher) *html.Node {
	for _, m := range ms {
		if n := dom.Find(root, m); n != nil {
			return n
		}
	}
	return nil
}

func extractItems(region *html.Node) []Item {
	var items []Item
	for _, list := range dom.FindAll(region, isList) {
		for _, li := range dom.Children(list, isListItem) {
			items = append(items, extractItem(li))
		}
	}
	return items
}

func extractItem(li *html.Node) Item {
	item := Item{Icon: DefaultGlyph}

	switch {
	case hasAnyClass(li, successClasses):
		item.Icon = SuccessGlyph
		item.IconColor = IconSuccess
	case hasAnyClass(li, warningClasses):
		item.Icon = WarningGlyph
		item.IconColor = IconWarning
	default:
		item.Icon = ResolveGlyph(li)
	}

	strong := dom.Find(li, isEmphasis)
	if strong == nil {
		item.Text = dom.CleanTextOf(li)
		return item
	}

	item.Title = dom.CleanTextOf(strong)
	var rest []string
	for sib := strong.NextSibling; sib != nil; sib = sib.NextSibling {
		rest = append(rest, dom.Text(sib))
	}
	item.Text = dom.CleanText(strings.Join(rest, " "))
	return item
}

func hasAnyClass(n *html.Node, classes []string) bool {
	for _, c := range classes {
		if dom.HasClass(n, c) {
			return true
		}
	}
	return false
}

func extractImages(region *html.Node) []Image {
	var images []Image
	for _, img := range dom.FindAll(region, isImage) {
		src := dom.Attr(img, "src")
		if src == "" {
			continue
		}
		images = append(images, Image{Src: src, Alt: dom.Attr(img, "alt")})
	}
	return images
}

// extractCards collects cards by class priority. An element already taken,
// or nested inside or around a taken card, is not counted again.
func extractCards(region *html.Node) []Card {
	var (
		cards    []Card
		accepted []*html.Node
	)
	overlaps := func(n *html.Node) bool {
		for _, a := range accepted {
			if dom.Contains(a, n) || dom.Contains(n, a) {
				return true
			}
		}
		return false
	}

	for _, class := range CardClasses {
		for _, el := range dom.FindAll(region, dom.Class(class)) {
			if overlaps(el) {
				continue
			}
			accepted = append(accepted, el)
			cards = append(cards, extractCard(el))
		}
	}
	return cards
}

func extractCard(el *html.Node) Card {
	card := Card{Icon: ResolveGlyph(el)}
	if h := dom.Find(el, isCardHead); h != nil {
		card.Title = dom.CleanTextOf(h)
	}
	if p := dom.Find(el, isParagraph); p != nil {
		card.Text = dom.CleanTextOf(p)
	}
	if img := dom.Find(el, isImage); img != nil {
		card.Image = dom.Attr(img, "src")
	}
	return card
}

func extractTables(region *html.Node) []Table {
	var tables []Table
	for _, t := range dom.FindAll(region, isTable) {
		var table Table
		for _, tr := range dom.FindAll(t, isRow) {
			cells := dom.FindAll(tr, isCell)
			if len(cells) == 0 {
				continue
			}
			row := make([]string, len(cells))
			for i, cell := range cells {
				row[i] = dom.CleanTextOf(cell)
			}
			table = append(table, row)
		}
		if len(table) > 0 {
			tables = append(tables, table)
		}
	}
	return tables
}

func extractCode(region *html.Node) []CodeBlock {
	var blocks []CodeBlock
	for _, pre := range dom.FindAll(region, isPre) {
		text := strings.TrimRight(dom.Text(pre), "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		lang := languageOf(pre)
		if lang == "" {
			lang = languageOf(dom.Find(pre, isCode))
		}
		blocks = append(blocks, CodeBlock{Language: lang, Text: text})
	}
	return blocks
}

// languageOf reads "language-x" or "lang-x" class tokens.
func languageOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	for _, c := range dom.Classes(n) {
		for _, prefix := range []string{"language-", "lang-"} {
			if lang, ok := strings.CutPrefix(c, prefix); ok && lang != "" {
				return lang
			}
		}
	}
	return ""
}
