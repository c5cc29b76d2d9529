// Package pptx writes Office Open XML presentations from draw primitives
// and reads their text back.
//
// A Deck is built in memory: each AddSlide renders the slide XML at once and
// registers its pictures as media parts, de-duplicated by content hash.
// WriteTo emits the whole package with fixed zip timestamps and a stable part
// order, so the same slides and metadata always give the same bytes.
package pptx

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/alnah/go-html2pptx/internal/assets"
	"github.com/alnah/go-html2pptx/internal/draw"
)

// Sentinel errors for deck building.
var (
	ErrTemplate         = errors.New("invalid template set")
	ErrMedia            = errors.New("cannot embed picture")
	ErrWriteDeck        = errors.New("cannot write deck")
	ErrNotPPTX          = errors.New("not a presentation package")
	ErrDeckWritten      = errors.New("deck already written")
	ErrUnsupportedMedia = errors.New("unsupported picture format")
)

// Page size of every deck: 13.333in x 7.5in.
const (
	EMUPerInch     = 914400
	SlideWidthEMU  = 12192000
	SlideHeightEMU = 6858000
)

// Metadata is written to docProps/core.xml. A zero Modified omits the
// created and modified dates.
type Metadata struct {
	Title    string
	Creator  string
	Modified time.Time
}

// media is one stored picture part.
type media struct {
	name string // file name under ppt/media/
	data []byte
}

// slidePart is the rendered XML of one slide with its relationships.
type slidePart struct {
	xml  []byte
	rels []relationship
}

// Deck accumulates slides and media until WriteTo.
type Deck struct {
	theme  []byte
	master string
	layout string

	meta      Metadata
	thumbnail []byte

	slides  []slidePart
	media   []media
	byHash  map[[sha256.Size]byte]int
	written bool
}

// NewDeck prepares a deck from a template set, filling the theme part with
// the palette.
func NewDeck(ts *assets.TemplateSet, palette draw.Theme) (*Deck, error) {
	if ts == nil {
		return nil, fmt.Errorf("%w: nil template set", ErrTemplate)
	}

	tmpl, err := template.New(ts.Name).Option("missingkey=error").Parse(ts.Theme)
	if err != nil {
		return nil, fmt.Errorf("%w: theme part: %v", ErrTemplate, err)
	}
	var theme bytes.Buffer
	if err := tmpl.Execute(&theme, paletteData(ts.Name, palette)); err != nil {
		return nil, fmt.Errorf("%w: theme part: %v", ErrTemplate, err)
	}

	return &Deck{
		theme:  theme.Bytes(),
		master: ts.Master,
		layout: ts.Layout,
		byHash: make(map[[sha256.Size]byte]int),
	}, nil
}

// paletteData is the value the theme part template is executed with.
func paletteData(name string, t draw.Theme) map[string]string {
	return map[string]string{
		"Name":    escape(name),
		"Primary": t.Primary.Hex(),
		"Accent":  t.Accent.Hex(),
		"Text":    t.Text.Hex(),
		"Muted":   t.Muted.Hex(),
		"Success": t.Success.Hex(),
		"Warning": t.Warning.Hex(),
	}
}

// SetMetadata replaces the package properties.
func (d *Deck) SetMetadata(m Metadata) {
	d.meta = m
}

// SetThumbnail stores a JPEG shown by file browsers. Nil removes it.
func (d *Deck) SetThumbnail(jpeg []byte) {
	d.thumbnail = jpeg
}

// Len returns the number of slides added so far.
func (d *Deck) Len() int {
	return len(d.slides)
}

// AddSlide renders s as the next slide. Pictures are read from disk now, so
// their files may be removed once AddSlide returns.
func (d *Deck) AddSlide(s draw.Slide) error {
	if d.written {
		return ErrDeckWritten
	}

	rels := []relationship{{id: "rId1", typ: relSlideLayout, target: "../slideLayouts/slideLayout1.xml"}}
	embeds := make(map[int]string) // media index -> rId within this slide

	sw := newSlideWriter(s.Title)
	for _, shape := range s.Shapes {
		pic, ok := shape.(draw.Picture)
		if !ok {
			sw.shape(shape)
			continue
		}

		idx, err := d.addMedia(pic.Path)
		if err != nil {
			return err
		}
		rid, seen := embeds[idx]
		if !seen {
			rid = fmt.Sprintf("rId%d", len(rels)+1)
			embeds[idx] = rid
			rels = append(rels, relationship{id: rid, typ: relImage, target: "../media/" + d.media[idx].name})
		}
		sw.picture(pic, rid)
	}

	d.slides = append(d.slides, slidePart{xml: sw.finish(), rels: rels})
	return nil
}

// addMedia stores the file at path once per distinct content and returns its
// index in d.media.
func (d *Deck) addMedia(path string) (int, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	if _, ok := mediaTypes[ext]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedMedia, filepath.Base(path))
	}

	data, err := os.ReadFile(path) // #nosec G304 -- picture paths come from the image fetcher
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMedia, err)
	}

	sum := sha256.Sum256(data)
	if idx, ok := d.byHash[sum]; ok {
		return idx, nil
	}

	idx := len(d.media)
	d.media = append(d.media, media{name: fmt.Sprintf("image%d%s", idx+1, ext), data: data})
	d.byHash[sum] = idx
	return idx, nil
}

// WriteTo writes the package to w. A deck can be written once.
func (d *Deck) WriteTo(w io.Writer) (int64, error) {
	if d.written {
		return 0, ErrDeckWritten
	}
	d.written = true

	cw := &countingWriter{w: w}
	if err := d.writePackage(cw); err != nil {
		return cw.n, fmt.Errorf("%w: %v", ErrWriteDeck, err)
	}
	return cw.n, nil
}

// Bytes writes the package to memory.
func (d *Deck) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EMU converts inches to English Metric Units.
func EMU(inches float64) int64 {
	if inches < 0 {
		return -EMU(-inches)
	}
	return int64(inches*EMUPerInch + 0.5)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
