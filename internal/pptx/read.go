package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// SlideText is the text found on one slide.
type SlideText struct {
	Number int
	Name   string
	Texts  []string // one entry per paragraph, empty paragraphs skipped
}

// Summary describes a presentation package.
type Summary struct {
	Title  string
	Slides []SlideText
	Media  int
}

// ReadText lists the paragraphs of every slide, in slide order.
func ReadText(r io.ReaderAt, size int64) (*Summary, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPPTX, err)
	}

	sum := &Summary{}
	found := false
	for _, f := range zr.File {
		switch {
		case f.Name == "ppt/presentation.xml":
			found = true
		case f.Name == "docProps/core.xml":
			title, err := readTitle(f)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrNotPPTX, f.Name, err)
			}
			sum.Title = title
		case strings.HasPrefix(f.Name, "ppt/media/"):
			sum.Media++
		case strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml"):
			n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(f.Name, "ppt/slides/slide"), ".xml"))
			if err != nil {
				continue
			}
			st, err := readSlide(f)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrNotPPTX, f.Name, err)
			}
			st.Number = n
			sum.Slides = append(sum.Slides, st)
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: missing ppt/presentation.xml", ErrNotPPTX)
	}

	sort.Slice(sum.Slides, func(i, j int) bool { return sum.Slides[i].Number < sum.Slides[j].Number })
	return sum, nil
}

func newDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}

// readSlide collects the a:t text of each a:p paragraph.
func readSlide(f *zip.File) (SlideText, error) {
	rc, err := f.Open()
	if err != nil {
		return SlideText{}, err
	}
	defer func() { _ = rc.Close() }()

	var (
		st     SlideText
		para   strings.Builder
		inText bool
	)
	dec := newDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return st, nil
		}
		if err != nil {
			return SlideText{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "cSld":
				for _, a := range t.Attr {
					if a.Name.Local == "name" {
						st.Name = a.Value
					}
				}
			case "p":
				if t.Name.Space == nsA {
					para.Reset()
				}
			case "t":
				inText = t.Name.Space == nsA
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		case xml.EndElement:
			switch {
			case t.Name.Local == "t":
				inText = false
			case t.Name.Local == "p" && t.Name.Space == nsA:
				if s := para.String(); strings.TrimSpace(s) != "" {
					st.Texts = append(st.Texts, s)
				}
			}
		}
	}
}

func readTitle(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	var core struct {
		Title string `xml:"title"`
	}
	if err := newDecoder(rc).Decode(&core); err != nil {
		return "", err
	}
	return core.Title, nil
}
