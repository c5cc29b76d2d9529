// Package segment partitions a parsed document into slide regions.
package segment

import (
	"errors"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-html2pptx/internal/dom"
)

// ErrNoSlides indicates the document yields no region under any strategy.
var ErrNoSlides = errors.New("no convertible content found")

// Strategy identifies which rule produced the regions.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyContainer
	StrategySection
	StrategySeparator
	StrategyBody
)

// String returns the strategy name used in logs.
func (s Strategy) String() string {
	switch s {
	case StrategyContainer:
		return "container"
	case StrategySection:
		return "section"
	case StrategySeparator:
		return "separator"
	case StrategyBody:
		return "body"
	default:
		return "none"
	}
}

// ContainerClasses lists slide container class names, highest priority first.
// The first class that matches at least one element wins.
var ContainerClasses = []string{"slide-container", "slide"}

// SectionTags lists structural sectioning elements, highest priority first.
var SectionTags = []string{"section", "article"}

// Segment returns the ordered regions of doc. First match wins:
//
//  1. elements with a container class (see ContainerClasses)
//  2. sectioning elements (see SectionTags)
//  3. the body's direct children split on <hr>: N separators give N+1
//     regions, empty ones included
//  4. the whole body
//
// The separator strategy moves body children into synthetic <div> regions,
// so doc must not be reused afterwards.
func Segment(doc *html.Node) ([]*html.Node, Strategy, error) {
	if doc == nil {
		return nil, StrategyNone, ErrNoSlides
	}

	for _, class := range ContainerClasses {
		if regions := dom.FindAll(doc, dom.Class(class)); len(regions) > 0 {
			return regions, StrategyContainer, nil
		}
	}

	for _, tag := range SectionTags {
		if regions := dom.FindAll(doc, dom.Tag(tag)); len(regions) > 0 {
			return regions, StrategySection, nil
		}
	}

	body := dom.Body(doc)
	if dom.IsBlank(body) {
		return nil, StrategyNone, ErrNoSlides
	}

	if len(dom.Children(body, dom.Tag("hr"))) > 0 {
		return splitOnSeparators(body), StrategySeparator, nil
	}

	return []*html.Node{body}, StrategyBody, nil
}

// splitOnSeparators groups the direct children of body between <hr> elements
// into fresh <div> wrappers.
func splitOnSeparators(body *html.Node) []*html.Node {
	var children []*html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}

	current := newRegion()
	regions := []*html.Node{current}
	for _, c := range children {
		if c.Type == html.ElementNode && c.DataAtom == atom.Hr {
			current = newRegion()
			regions = append(regions, current)
			continue
		}
		body.RemoveChild(c)
		current.AppendChild(c)
	}
	return regions
}

func newRegion() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
}
