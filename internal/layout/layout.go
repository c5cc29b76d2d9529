// Package layout places the content of one slide onto the 16:9 canvas.
//
// Every layout archetype is a fixed template: positions and sizes are
// constants in inches and nothing reflows. Text that does not fit its box is
// left for the writer (or PowerPoint) to clip.
package layout

import (
	"context"

	"go.uber.org/zap"

	"github.com/alnah/go-html2pptx/internal/draw"
	"github.com/alnah/go-html2pptx/internal/extract"
	"github.com/alnah/go-html2pptx/internal/highlight"
)

// ImageResolver turns an image source reference into a local file path.
type ImageResolver interface {
	Resolve(ctx context.Context, src string) (string, error)
}

// ResolverFunc adapts a function to ImageResolver.
type ResolverFunc func(ctx context.Context, src string) (string, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, src string) (string, error) {
	return f(ctx, src)
}

// Header and footer geometry.
var (
	titleBox       = draw.Box{X: 0.8, Y: 0.5, W: 11.7, H: 0.7}
	subtitleBox    = draw.Box{X: 0.8, Y: 1.15, W: 11.7, H: 0.5}
	dividerBox     = draw.Box{X: 0.8, Y: 1.7, W: 11.7, H: 0.03}
	footerLeftBox  = draw.Box{X: 0.8, Y: 7.0, W: 2.0, H: 0.3}
	footerRightBox = draw.Box{X: 9.5, Y: 7.0, W: 3.0, H: 0.3}
	sideImageBox   = draw.Box{X: 7.3, W: 5.2, H: 4.0}
)

const (
	contentTopWithTitle = 2.0
	contentTop          = 0.8
	marginLeft          = 0.8
	contentWidth        = 11.7

	listTextX         = 1.3
	listWidth         = 10.5
	listWidthColumn   = 5.7
	iconSize          = 0.4
	itemTitleHeight   = 0.35
	itemTextHeight    = 0.8
	itemStepTitled    = 0.8
	itemStepUntitled  = 1.0
	blockGap          = 0.2
	tableRowHeight    = 0.4
	codeMaxHeight     = 3.0
	codeLineHeight    = 0.2
	codePadding       = 0.2
	autoImageStep     = 6.2
	autoImageWidth    = 5.5
	autoImageHeight   = 3.0
	autoImageMax      = 2
	maxCards          = 4
	cardImageHeight   = 2.5
	cardTitleOffset   = 2.6
	cardTextOffset    = 3.0
	cardTitleHeight   = 0.4
	cardTextHeight    = 1.0
	cardBarWidth      = 0.05
	cardIconBoxSize   = 0.5
	cardHeaderIndent  = 0.75
	cardTextIndent    = 0.15
	cardTitleInset    = 0.9
	cardTextTopOffset = 0.7
)

// Font sizes in points.
const (
	sizeTitle     = 28
	sizeSubtitle  = 18
	sizeIcon      = 18
	sizeItemTitle = 16
	sizeItemText  = 14
	sizeCardTitle = 16
	sizeCardHead  = 15
	sizeCardIcon  = 16
	sizeSmall     = 12
	sizeFooter    = 10
)

// codeFill is the background of code blocks, independent of the theme.
var codeFill = draw.RGB(0xF6, 0xF8, 0xFA)

// Renderer turns SlideContent into draw primitives with one theme.
type Renderer struct {
	theme  draw.Theme
	images ImageResolver
	code   *highlight.Highlighter
	logger *zap.Logger
}

// New creates a Renderer. A nil resolver places no images; a nil logger
// discards image failures.
func New(theme draw.Theme, images ImageResolver, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		theme:  theme,
		images: images,
		code:   highlight.New(theme.CodeStyle, theme.Text),
		logger: logger,
	}
}

// Render places c on a new slide. Image resolution failures are logged and
// the image is omitted; rendering itself never fails.
func (r *Renderer) Render(ctx context.Context, c *extract.SlideContent) draw.Slide {
	s := draw.Slide{Title: c.Title}

	y := contentTop
	if c.Title != "" {
		r.text(&s, titleBox, c.Title, sizeTitle, r.theme.Primary, true, draw.AlignLeft)
		y = contentTopWithTitle
	}
	if c.Subtitle != "" {
		r.text(&s, subtitleBox, c.Subtitle, sizeSubtitle, r.theme.Muted, false, draw.AlignLeft)
		s.Add(draw.Rect{Box: dividerBox, Fill: r.theme.Accent})
	}

	switch {
	case c.Layout == extract.LayoutTwoColumn:
		r.twoColumn(ctx, &s, c, y)
	case c.Layout == extract.LayoutRoadmapGrid && len(c.Cards) > 0:
		r.cards(ctx, &s, c.Cards, y, true)
	case (c.Layout == extract.LayoutTileGrid || c.Layout == extract.LayoutCards) && len(c.Cards) > 0:
		r.cards(ctx, &s, c.Cards, y, false)
	default:
		r.auto(ctx, &s, c, y)
	}

	r.text(&s, footerLeftBox, c.FooterLeft, sizeFooter, r.theme.Muted, false, draw.AlignLeft)
	r.text(&s, footerRightBox, c.FooterRight, sizeFooter, r.theme.Muted, true, draw.AlignRight)
	return s
}

func (r *Renderer) twoColumn(ctx context.Context, s *draw.Slide, c *extract.SlideContent, y float64) {
	r.items(s, c.Items, y, listWidthColumn)
	if len(c.Images) == 0 {
		return
	}
	box := sideImageBox
	box.Y = y
	r.picture(ctx, s, box, c.Images[0].Src)
}

func (r *Renderer) auto(ctx context.Context, s *draw.Slide, c *extract.SlideContent, y float64) {
	y = r.items(s, c.Items, y, listWidth)

	if len(c.Tables) > 0 {
		t := c.Tables[0]
		h := float64(len(t)) * tableRowHeight
		s.Add(draw.Table{
			Box:        draw.Box{X: marginLeft, Y: y, W: contentWidth, H: h},
			Rows:       t,
			Size:       sizeSmall,
			HeaderFill: r.theme.Primary,
			HeaderText: r.theme.White,
			Text:       r.theme.Text,
		})
		y += h + blockGap
	}

	if len(c.Code) > 0 {
		y = r.codeBlock(s, c.Code[0], y)
	}

	for i, img := range c.Images {
		if i == autoImageMax {
			break
		}
		box := draw.Box{X: marginLeft + float64(i)*autoImageStep, Y: y, W: autoImageWidth, H: autoImageHeight}
		r.picture(ctx, s, box, img.Src)
	}
}

// items draws the bullet list from y and returns the cursor below it.
func (r *Renderer) items(s *draw.Slide, items []extract.Item, y, width float64) float64 {
	for _, it := range items {
		r.text(s, draw.Box{X: marginLeft, Y: y, W: iconSize, H: iconSize},
			it.Icon, sizeIcon, r.iconColor(it.IconColor), true, draw.AlignLeft)

		step := itemStepUntitled
		if it.Title != "" {
			r.text(s, draw.Box{X: listTextX, Y: y, W: width, H: itemTitleHeight},
				it.Title, sizeItemTitle, r.theme.Primary, true, draw.AlignLeft)
			y += itemTitleHeight
			step = itemStepTitled
		}
		r.text(s, draw.Box{X: listTextX, Y: y, W: width, H: itemTextHeight},
			it.Text, sizeItemText, r.theme.Text, false, draw.AlignLeft)
		y += step
	}
	return y
}

func (r *Renderer) codeBlock(s *draw.Slide, block extract.CodeBlock, y float64) float64 {
	lines := r.code.Lines(block.Text, block.Language)
	if len(lines) == 0 {
		return y
	}
	maxLines := int((codeMaxHeight - codePadding) / codeLineHeight)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	h := float64(len(lines))*codeLineHeight + codePadding
	s.Add(draw.CodeBox{
		Box:   draw.Box{X: marginLeft, Y: y, W: contentWidth, H: h},
		Lines: lines,
		Size:  sizeSmall,
		Fill:  codeFill,
	})
	return y + h + blockGap
}

// cards lays out at most four cards; extras are dropped. roadmap keeps the
// 2x2 grid whatever the card count and forces the icon style even when a
// card carries an image.
func (r *Renderer) cards(ctx context.Context, s *draw.Slide, cards []extract.Card, y float64, roadmap bool) {
	if len(cards) > maxCards {
		cards = cards[:maxCards]
	}
	n := len(cards)
	if roadmap {
		n = maxCards
	}
	cells := cardCells(n, y)
	for i, card := range cards {
		box := cells[i]
		if !roadmap && card.Image != "" {
			if path, ok := r.resolve(ctx, card.Image); ok {
				r.imageCard(s, box, card, path)
				continue
			}
		}
		r.decoratedCard(s, box, card)
	}
}

// cardCells returns the grid cells for n cards (n <= maxCards).
func cardCells(n int, y float64) []draw.Box {
	if n <= 2 {
		return []draw.Box{
			{X: 0.8, Y: y, W: 5.5, H: 4.5},
			{X: 7.0, Y: y, W: 5.5, H: 4.5},
		}
	}
	return []draw.Box{
		{X: 0.8, Y: y, W: 5.8, H: 2.2},
		{X: 6.9, Y: y, W: 5.8, H: 2.2},
		{X: 0.8, Y: y + 2.4, W: 5.8, H: 2.2},
		{X: 6.9, Y: y + 2.4, W: 5.8, H: 2.2},
	}
}

func (r *Renderer) imageCard(s *draw.Slide, box draw.Box, card extract.Card, path string) {
	s.Add(draw.Picture{Box: draw.Box{X: box.X, Y: box.Y, W: box.W, H: cardImageHeight}, Path: path})
	r.text(s, draw.Box{X: box.X, Y: box.Y + cardTitleOffset, W: box.W, H: cardTitleHeight},
		card.Title, sizeCardTitle, r.theme.Primary, true, draw.AlignCenter)
	r.text(s, draw.Box{X: box.X, Y: box.Y + cardTextOffset, W: box.W, H: cardTextHeight},
		card.Text, sizeSmall, r.theme.Muted, false, draw.AlignCenter)
}

func (r *Renderer) decoratedCard(s *draw.Slide, box draw.Box, card extract.Card) {
	x, y, w, h := box.X, box.Y, box.W, box.H

	s.Add(
		draw.Rect{Box: draw.Box{X: x, Y: y + 0.3, W: cardBarWidth, H: h - 0.6}, Fill: r.theme.Accent},
		draw.Rect{
			Box:     draw.Box{X: x + cardTextIndent, Y: y + 0.15, W: cardIconBoxSize, H: cardIconBoxSize},
			Fill:    r.theme.Primary,
			Rounded: true,
		},
	)
	r.text(s, draw.Box{X: x + cardTextIndent, Y: y + 0.22, W: cardIconBoxSize, H: 0.4},
		card.Icon, sizeCardIcon, r.theme.White, false, draw.AlignCenter)
	r.text(s, draw.Box{X: x + cardHeaderIndent, Y: y + 0.2, W: w - cardTitleInset, H: 0.4},
		card.Title, sizeCardHead, r.theme.Primary, true, draw.AlignLeft)
	r.text(s, draw.Box{X: x + cardTextIndent, Y: y + cardTextTopOffset, W: w - 2*cardTextIndent, H: h - 0.9},
		card.Text, sizeSmall, r.theme.Muted, false, draw.AlignLeft)
}

func (r *Renderer) picture(ctx context.Context, s *draw.Slide, box draw.Box, src string) {
	if path, ok := r.resolve(ctx, src); ok {
		s.Add(draw.Picture{Box: box, Path: path})
	}
}

func (r *Renderer) resolve(ctx context.Context, src string) (string, bool) {
	if r.images == nil {
		return "", false
	}
	path, err := r.images.Resolve(ctx, src)
	if err != nil {
		r.logger.Warn("image omitted", zap.String("src", truncate(src, 80)), zap.Error(err))
		return "", false
	}
	return path, true
}

// text adds a text box unless text is empty.
func (r *Renderer) text(s *draw.Slide, box draw.Box, text string, size float64, color draw.Color, bold bool, align draw.Align) {
	if text == "" {
		return
	}
	s.Add(draw.TextBox{Box: box, Text: text, Size: size, Color: color, Bold: bold, Align: align})
}

func (r *Renderer) iconColor(c extract.IconColor) draw.Color {
	switch c {
	case extract.IconSuccess:
		return r.theme.Success
	case extract.IconWarning:
		return r.theme.Warning
	default:
		return r.theme.Accent
	}
}

// truncate shortens long sources such as data URIs for log output.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
