// Package draw defines the placement primitives shared by the slide renderer,
// the PPTX writer and the preview rasteriser.
//
// All geometry is expressed in inches on a fixed 16:9 canvas. Primitives are
// plain values: a Slide is an ordered list of shapes, painted back to front.
package draw

// Canvas dimensions in inches (16:9 widescreen).
const (
	SlideWidth  = 13.333
	SlideHeight = 7.5
)

// Box is a rectangle in inches, origin at the top-left of the slide.
type Box struct {
	X, Y, W, H float64
}

// Bounds returns the box itself so that shapes embedding Box satisfy Shape.
func (b Box) Bounds() Box { return b }

// Align is the horizontal alignment of a paragraph.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// String returns the alignment name.
func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Shape is any primitive that can be placed on a slide.
type Shape interface {
	Bounds() Box
	shape()
}

// TextBox is a single word-wrapped paragraph.
type TextBox struct {
	Box
	Text  string
	Size  float64 // points
	Color Color
	Bold  bool
	Align Align
}

// Rect is a filled rectangle without outline.
type Rect struct {
	Box
	Fill    Color
	Rounded bool
}

// Picture places a local image file stretched to its box.
type Picture struct {
	Box
	Path string
}

// Table is a grid of text cells. The first row is styled as a header.
type Table struct {
	Box
	Rows       [][]string
	Size       float64
	HeaderFill Color
	HeaderText Color
	Text       Color
}

// Run is a span of uniformly styled monospace text.
type Run struct {
	Text  string
	Color Color
	Bold  bool
}

// CodeBox is a block of pre-formatted, coloured lines on a filled background.
type CodeBox struct {
	Box
	Lines [][]Run
	Size  float64
	Fill  Color
}

func (TextBox) shape() {}
func (Rect) shape()    {}
func (Picture) shape() {}
func (Table) shape()   {}
func (CodeBox) shape() {}

// Slide is the ordered primitive list of one rendered region.
type Slide struct {
	Title  string // document-level label, not drawn
	Shapes []Shape
}

// Add appends shapes in paint order.
func (s *Slide) Add(shapes ...Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// Pictures returns the image placements of the slide in order.
func (s *Slide) Pictures() []Picture {
	var out []Picture
	for _, sh := range s.Shapes {
		if p, ok := sh.(Picture); ok {
			out = append(out, p)
		}
	}
	return out
}

// Texts returns the text of every text box in paint order.
func (s *Slide) Texts() []string {
	var out []string
	for _, sh := range s.Shapes {
		if t, ok := sh.(TextBox); ok {
			out = append(out, t.Text)
		}
	}
	return out
}
