package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"time"
)

// Relationship types.
const (
	relBase        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	relOffice      = relBase + "officeDocument"
	relExtended    = relBase + "extended-properties"
	relSlideMaster = relBase + "slideMaster"
	relSlideLayout = relBase + "slideLayout"
	relSlide       = relBase + "slide"
	relTheme       = relBase + "theme"
	relImage       = relBase + "image"
	relPresProps   = relBase + "presProps"
	relViewProps   = relBase + "viewProps"
	relTableStyles = relBase + "tableStyles"
	relCore        = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relThumbnail   = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/thumbnail"
)

// Content types.
const (
	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps    = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctViewProps    = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ctTableStyles  = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctCore         = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtended     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctRels         = "application/vnd.openxmlformats-package.relationships+xml"
)

// mediaTypes maps stored picture extensions to content types.
var mediaTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// zipEpoch is the modification time of every entry.
var zipEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// Application is written to docProps/app.xml.
const Application = "go-html2pptx"

type relationship struct {
	id     string
	typ    string
	target string
}

func relsXML(rels []relationship) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range rels {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`, r.id, r.typ, escape(r.target))
	}
	b.WriteString(`</Relationships>`)
	return b.Bytes()
}

// writePackage emits parts in a fixed order.
func (d *Deck) writePackage(w io.Writer) error {
	zw := zip.NewWriter(w)

	put := func(name string, data []byte, method uint16) error {
		f, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method, Modified: zipEpoch})
		if err != nil {
			return err
		}
		_, err = f.Write(data)
		return err
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", d.contentTypes()},
		{"_rels/.rels", relsXML(d.packageRels())},
		{"docProps/core.xml", d.coreXML()},
		{"docProps/app.xml", d.appXML()},
		{"ppt/presentation.xml", d.presentationXML()},
		{"ppt/_rels/presentation.xml.rels", relsXML(d.presentationRels())},
		{"ppt/presProps.xml", []byte(xmlHeader + fmt.Sprintf(`<p:presentationPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"/>`, nsA, nsR, nsP))},
		{"ppt/viewProps.xml", []byte(xmlHeader + fmt.Sprintf(`<p:viewPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"><p:gridSpacing cx="76200" cy="76200"/></p:viewPr>`, nsA, nsR, nsP))},
		{"ppt/tableStyles.xml", []byte(xmlHeader + fmt.Sprintf(`<a:tblStyleLst xmlns:a="%s" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`, nsA))},
		{"ppt/theme/theme1.xml", d.theme},
		{"ppt/slideMasters/slideMaster1.xml", []byte(d.master)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", relsXML([]relationship{
			{id: "rId1", typ: relSlideLayout, target: "../slideLayouts/slideLayout1.xml"},
			{id: "rId2", typ: relTheme, target: "../theme/theme1.xml"},
		})},
		{"ppt/slideLayouts/slideLayout1.xml", []byte(d.layout)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", relsXML([]relationship{
			{id: "rId1", typ: relSlideMaster, target: "../slideMasters/slideMaster1.xml"},
		})},
	}
	for _, p := range parts {
		if err := put(p.name, p.data, zip.Deflate); err != nil {
			return err
		}
	}

	for i, s := range d.slides {
		n := i + 1
		if err := put(fmt.Sprintf("ppt/slides/slide%d.xml", n), s.xml, zip.Deflate); err != nil {
			return err
		}
		if err := put(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), relsXML(s.rels), zip.Deflate); err != nil {
			return err
		}
	}

	// Pictures are already compressed.
	for _, m := range d.media {
		if err := put("ppt/media/"+m.name, m.data, zip.Store); err != nil {
			return err
		}
	}
	if d.thumbnail != nil {
		if err := put("docProps/thumbnail.jpeg", d.thumbnail, zip.Store); err != nil {
			return err
		}
	}

	return zw.Close()
}

func (d *Deck) contentTypes() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	fmt.Fprintf(&b, `<Default Extension="rels" ContentType="%s"/>`, ctRels)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)

	exts := make(map[string]bool)
	for _, m := range d.media {
		exts[extOf(m.name)] = true
	}
	if d.thumbnail != nil {
		b.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	}
	sorted := make([]string, 0, len(exts))
	for ext := range exts {
		sorted = append(sorted, ext)
	}
	sort.Strings(sorted)
	for _, ext := range sorted {
		fmt.Fprintf(&b, `<Default Extension="%s" ContentType="%s"/>`, ext[1:], mediaTypes[ext])
	}

	overrides := [][2]string{
		{"/ppt/presentation.xml", ctPresentation},
		{"/ppt/presProps.xml", ctPresProps},
		{"/ppt/viewProps.xml", ctViewProps},
		{"/ppt/tableStyles.xml", ctTableStyles},
		{"/ppt/theme/theme1.xml", ctTheme},
		{"/ppt/slideMasters/slideMaster1.xml", ctSlideMaster},
		{"/ppt/slideLayouts/slideLayout1.xml", ctSlideLayout},
		{"/docProps/core.xml", ctCore},
		{"/docProps/app.xml", ctExtended},
	}
	for i := range d.slides {
		overrides = append(overrides, [2]string{fmt.Sprintf("/ppt/slides/slide%d.xml", i+1), ctSlide})
	}
	for _, o := range overrides {
		fmt.Fprintf(&b, `<Override PartName="%s" ContentType="%s"/>`, o[0], o[1])
	}
	b.WriteString(`</Types>`)
	return b.Bytes()
}

func extOf(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i:]
		}
	}
	return ""
}

func (d *Deck) packageRels() []relationship {
	rels := []relationship{
		{id: "rId1", typ: relOffice, target: "ppt/presentation.xml"},
		{id: "rId2", typ: relCore, target: "docProps/core.xml"},
		{id: "rId3", typ: relExtended, target: "docProps/app.xml"},
	}
	if d.thumbnail != nil {
		rels = append(rels, relationship{id: "rId4", typ: relThumbnail, target: "docProps/thumbnail.jpeg"})
	}
	return rels
}

// Presentation relationship ids: fixed parts first, slides after.
const firstSlideRel = 6

func (d *Deck) presentationRels() []relationship {
	rels := []relationship{
		{id: "rId1", typ: relSlideMaster, target: "slideMasters/slideMaster1.xml"},
		{id: "rId2", typ: relTheme, target: "theme/theme1.xml"},
		{id: "rId3", typ: relPresProps, target: "presProps.xml"},
		{id: "rId4", typ: relViewProps, target: "viewProps.xml"},
		{id: "rId5", typ: relTableStyles, target: "tableStyles.xml"},
	}
	for i := range d.slides {
		rels = append(rels, relationship{
			id:     fmt.Sprintf("rId%d", firstSlideRel+i),
			typ:    relSlide,
			target: fmt.Sprintf("slides/slide%d.xml", i+1),
		})
	}
	return rels
}

func (d *Deck) presentationXML() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" saveSubsetFonts="1">`, nsA, nsR, nsP)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	if len(d.slides) > 0 {
		b.WriteString(`<p:sldIdLst>`)
		for i := range d.slides {
			fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, firstSlideRel+i)
		}
		b.WriteString(`</p:sldIdLst>`)
	}
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/><p:notesSz cx="%d" cy="%d"/>`,
		SlideWidthEMU, SlideHeightEMU, SlideHeightEMU, 9144000)
	b.WriteString(`</p:presentation>`)
	return b.Bytes()
}

func (d *Deck) coreXML() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	if d.meta.Title != "" {
		fmt.Fprintf(&b, `<dc:title>%s</dc:title>`, escape(d.meta.Title))
	}
	if d.meta.Creator != "" {
		fmt.Fprintf(&b, `<dc:creator>%s</dc:creator>`, escape(d.meta.Creator))
	}
	if !d.meta.Modified.IsZero() {
		ts := d.meta.Modified.UTC().Format(time.RFC3339)
		fmt.Fprintf(&b, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`, ts)
		fmt.Fprintf(&b, `<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, ts)
	}
	b.WriteString(`</cp:coreProperties>`)
	return b.Bytes()
}

func (d *Deck) appXML() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"` +
		` xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">`)
	fmt.Fprintf(&b, `<Application>%s</Application><PresentationFormat>Widescreen</PresentationFormat><Slides>%d</Slides>`,
		Application, len(d.slides))
	b.WriteString(`</Properties>`)
	return b.Bytes()
}
