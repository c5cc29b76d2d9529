package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/alnah/go-html2pptx/internal/draw"
)

// Namespaces shared by presentation parts.
const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"

	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

// monoFont is the typeface of code boxes.
const monoFont = "Consolas"

// slideWriter renders the shape tree of one slide.
type slideWriter struct {
	buf    bytes.Buffer
	nextID int
}

func newSlideWriter(name string) *slideWriter {
	sw := &slideWriter{nextID: 2}
	sw.buf.WriteString(xmlHeader)
	fmt.Fprintf(&sw.buf, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	if name != "" {
		fmt.Fprintf(&sw.buf, `<p:cSld name="%s">`, escape(name))
	} else {
		sw.buf.WriteString(`<p:cSld>`)
	}
	sw.buf.WriteString(`<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	sw.buf.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)
	return sw
}

func (sw *slideWriter) finish() []byte {
	sw.buf.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return sw.buf.Bytes()
}

func (sw *slideWriter) id() int {
	id := sw.nextID
	sw.nextID++
	return id
}

// shape renders every primitive except pictures, which need a relationship.
func (sw *slideWriter) shape(s draw.Shape) {
	switch v := s.(type) {
	case draw.TextBox:
		sw.textBox(v)
	case draw.Rect:
		sw.rect(v)
	case draw.Table:
		sw.table(v)
	case draw.CodeBox:
		sw.codeBox(v)
	}
}

func (sw *slideWriter) textBox(tb draw.TextBox) {
	id := sw.id()
	fmt.Fprintf(&sw.buf, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, id)
	sw.buf.WriteString(`<p:spPr>`)
	sw.xfrm(tb.Box)
	sw.buf.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)
	sw.buf.WriteString(`<p:txBody><a:bodyPr wrap="square" rtlCol="0"><a:noAutofit/></a:bodyPr><a:lstStyle/>`)
	for _, line := range strings.Split(tb.Text, "\n") {
		fmt.Fprintf(&sw.buf, `<a:p><a:pPr algn="%s"/>`, alignAttr(tb.Align))
		sw.run(line, tb.Size, tb.Color, tb.Bold, "")
		sw.buf.WriteString(`</a:p>`)
	}
	sw.buf.WriteString(`</p:txBody></p:sp>`)
}

func (sw *slideWriter) rect(r draw.Rect) {
	id := sw.id()
	geom := "rect"
	if r.Rounded {
		geom = "roundRect"
	}
	fmt.Fprintf(&sw.buf, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Shape %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr>`, id, id)
	sw.xfrm(r.Box)
	fmt.Fprintf(&sw.buf, `<a:prstGeom prst="%s"><a:avLst/></a:prstGeom>`, geom)
	sw.solidFill(r.Fill)
	sw.buf.WriteString(`<a:ln><a:noFill/></a:ln></p:spPr></p:sp>`)
}

func (sw *slideWriter) picture(p draw.Picture, rid string) {
	id := sw.id()
	fmt.Fprintf(&sw.buf, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`, id, id)
	fmt.Fprintf(&sw.buf, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill><p:spPr>`, rid)
	sw.xfrm(p.Box)
	sw.buf.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
}

func (sw *slideWriter) table(t draw.Table) {
	cols := 0
	for _, row := range t.Rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return
	}

	id := sw.id()
	fmt.Fprintf(&sw.buf, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Table %d"/>`, id, id)
	sw.buf.WriteString(`<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>`)
	fmt.Fprintf(&sw.buf, `<p:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></p:xfrm>`,
		EMU(t.X), EMU(t.Y), EMU(t.W), EMU(t.H))
	fmt.Fprintf(&sw.buf, `<a:graphic><a:graphicData uri="%s"><a:tbl><a:tblPr firstRow="1" bandRow="1"/><a:tblGrid>`,
		"http://schemas.openxmlformats.org/drawingml/2006/table")
	for _, w := range split(EMU(t.W), cols) {
		fmt.Fprintf(&sw.buf, `<a:gridCol w="%d"/>`, w)
	}
	sw.buf.WriteString(`</a:tblGrid>`)

	heights := split(EMU(t.H), len(t.Rows))
	for r, row := range t.Rows {
		fmt.Fprintf(&sw.buf, `<a:tr h="%d">`, heights[r])
		for c := 0; c < cols; c++ {
			var text string
			if c < len(row) {
				text = row[c]
			}
			header := r == 0
			color := t.Text
			if header {
				color = t.HeaderText
			}
			sw.buf.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/><a:p>`)
			sw.run(text, t.Size, color, header, "")
			sw.buf.WriteString(`</a:p></a:txBody>`)
			if header {
				sw.buf.WriteString(`<a:tcPr>`)
				sw.solidFill(t.HeaderFill)
				sw.buf.WriteString(`</a:tcPr>`)
			} else {
				sw.buf.WriteString(`<a:tcPr/>`)
			}
			sw.buf.WriteString(`</a:tc>`)
		}
		sw.buf.WriteString(`</a:tr>`)
	}
	sw.buf.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
}

func (sw *slideWriter) codeBox(cb draw.CodeBox) {
	id := sw.id()
	fmt.Fprintf(&sw.buf, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Code %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr>`, id, id)
	sw.xfrm(cb.Box)
	sw.buf.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	sw.solidFill(cb.Fill)
	sw.buf.WriteString(`</p:spPr><p:txBody><a:bodyPr wrap="none" rtlCol="0"><a:noAutofit/></a:bodyPr><a:lstStyle/>`)
	for _, line := range cb.Lines {
		sw.buf.WriteString(`<a:p>`)
		for _, r := range line {
			sw.run(r.Text, cb.Size, r.Color, r.Bold, monoFont)
		}
		fmt.Fprintf(&sw.buf, `<a:endParaRPr lang="en-US" sz="%d" dirty="0"/></a:p>`, hundredths(cb.Size))
	}
	sw.buf.WriteString(`</p:txBody></p:sp>`)
}

// run writes one text run. An empty text writes nothing.
func (sw *slideWriter) run(text string, size float64, color draw.Color, bold bool, font string) {
	if text == "" {
		return
	}
	fmt.Fprintf(&sw.buf, `<a:r><a:rPr lang="en-US" sz="%d"`, hundredths(size))
	if bold {
		sw.buf.WriteString(` b="1"`)
	}
	sw.buf.WriteString(` dirty="0">`)
	sw.solidFill(color)
	if font != "" {
		fmt.Fprintf(&sw.buf, `<a:latin typeface="%s"/><a:cs typeface="%s"/>`, font, font)
	}
	fmt.Fprintf(&sw.buf, `</a:rPr><a:t>%s</a:t></a:r>`, escape(text))
}

func (sw *slideWriter) xfrm(b draw.Box) {
	fmt.Fprintf(&sw.buf, `<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`,
		EMU(b.X), EMU(b.Y), EMU(b.W), EMU(b.H))
}

func (sw *slideWriter) solidFill(c draw.Color) {
	fmt.Fprintf(&sw.buf, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, c.Hex())
}

func alignAttr(a draw.Align) string {
	switch a {
	case draw.AlignCenter:
		return "ctr"
	case draw.AlignRight:
		return "r"
	default:
		return "l"
	}
}

// hundredths converts points to the hundredths of a point used by sz.
func hundredths(pt float64) int {
	return int(pt*100 + 0.5)
}

// split divides total into n integer parts; the last absorbs the remainder.
func split(total int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	parts := make([]int64, n)
	each := total / int64(n)
	for i := range parts {
		parts[i] = each
	}
	parts[n-1] += total - each*int64(n)
	return parts
}

// escape returns s as XML character data. Characters not allowed in XML are
// replaced with U+FFFD.
func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
