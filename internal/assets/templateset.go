package assets

// TemplateSet holds the XML parts shared by every slide of a deck.
type TemplateSet struct {
	Name   string // identifier (name or directory path)
	Theme  string // DrawingML theme; a text/template over the palette
	Master string // slide master
	Layout string // blank slide layout
}

// Part file names inside a template set directory.
const (
	ThemePart  = "theme.xml"
	MasterPart = "master.xml"
	LayoutPart = "layout.xml"
)

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultThemeName is the name of the built-in palette.
const DefaultThemeName = "default"

// partNames lists the parts in loading order.
var partNames = []string{ThemePart, MasterPart, LayoutPart}

// newTemplateSet assembles a set from parts keyed by file name, reporting
// which parts are missing.
func newTemplateSet(name string, parts map[string][]byte) (*TemplateSet, []string) {
	var missing []string
	for _, p := range partNames {
		if _, ok := parts[p]; !ok {
			missing = append(missing, p)
		}
	}
	return &TemplateSet{
		Name:   name,
		Theme:  string(parts[ThemePart]),
		Master: string(parts[MasterPart]),
		Layout: string(parts[LayoutPart]),
	}, missing
}
