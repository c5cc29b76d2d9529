package extract

// Layout is the archetype chosen for a region. It is always derived from the
// extracted content and class hints, never supplied by the caller.
type Layout string

const (
	LayoutAuto        Layout = "auto"
	LayoutTwoColumn   Layout = "two-column"
	LayoutTileGrid    Layout = "tile-grid"
	LayoutRoadmapGrid Layout = "roadmap-grid"
	LayoutCards       Layout = "cards"
)

// IconColor tags a list item with a semantic color resolved at render time.
type IconColor int

const (
	IconAccent IconColor = iota
	IconSuccess
	IconWarning
)

// String returns the tag name.
func (c IconColor) String() string {
	switch c {
	case IconSuccess:
		return "success"
	case IconWarning:
		return "warning"
	default:
		return "accent"
	}
}

// Item is one list entry.
type Item struct {
	Icon      string
	Title     string
	Text      string
	IconColor IconColor
}

// Image is an unresolved image reference, kept verbatim.
type Image struct {
	Src string
	Alt string
}

// Card is a self-contained block placed in a grid layout.
type Card struct {
	Title string
	Text  string
	Icon  string
	Image string // source reference, empty when the card has no image
}

// CodeBlock is the raw text of a <pre> element.
type CodeBlock struct {
	Language string
	Text     string
}

// Table is a list of rows, each a list of cell texts.
type Table [][]string

// SlideContent is everything the renderer needs to know about one region.
type SlideContent struct {
	Title       string
	Subtitle    string
	Items       []Item
	Images      []Image
	Cards       []Card
	Tables      []Table
	Code        []CodeBlock
	FooterLeft  string
	FooterRight string
	Layout      Layout
}

// IsEmpty reports whether nothing drawable was extracted.
func (c *SlideContent) IsEmpty() bool {
	return c.Title == "" && c.Subtitle == "" &&
		len(c.Items) == 0 && len(c.Images) == 0 && len(c.Cards) == 0 &&
		len(c.Tables) == 0 && len(c.Code) == 0 &&
		c.FooterLeft == "" && c.FooterRight == ""
}
