// Package preview rasterises draw primitives into slide images.
//
// Previews are an approximation of what a presentation viewer shows: text
// uses the Go fonts with greedy word wrapping, pictures are stretched into
// their boxes, and a picture that cannot be loaded is drawn as a grey
// placeholder. They serve as per-slide PNG previews and as the JPEG
// thumbnail stored inside the package.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register decoder
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	_ "golang.org/x/image/tiff"

	"github.com/alnah/go-html2pptx/internal/draw"
)

// Sentinel errors for rasterising.
var (
	ErrFont   = errors.New("cannot load preview font")
	ErrRender = errors.New("cannot render preview")
	ErrEncode = errors.New("cannot encode preview")
)

// Image widths in pixels. Heights follow the 16:9 canvas.
const (
	DefaultWidth   = 1280
	ThumbnailWidth = 256
	JPEGQuality    = 85
)

// Placeholder fill for pictures that cannot be loaded.
var placeholderFill = color.RGBA{R: 0xE2, G: 0xE8, B: 0xF0, A: 0xFF}

const cornerRatio = 0.08 // rounded rect radius relative to the short side

// lineSpacing scales the font's line height.
const lineSpacing = 1.15

type fontSet struct {
	regular, bold, mono *text.FontSource
}

var (
	fontsOnce sync.Once
	fonts     fontSet
	fontsErr  error
)

func loadFonts() (fontSet, error) {
	fontsOnce.Do(func() {
		var fs fontSet
		for _, f := range []struct {
			dst  **text.FontSource
			data []byte
		}{
			{&fs.regular, goregular.TTF},
			{&fs.bold, gobold.TTF},
			{&fs.mono, gomono.TTF},
		} {
			src, err := text.NewFontSource(f.data)
			if err != nil {
				fontsErr = fmt.Errorf("%w: %v", ErrFont, err)
				return
			}
			*f.dst = src
		}
		fonts = fs
	})
	return fonts, fontsErr
}

// Renderer draws slides at a fixed pixel width.
type Renderer struct {
	width  int
	height int
	scale  float64 // pixels per inch
}

// New returns a Renderer producing images width pixels wide.
// Panics if width <= 0 (programmer error).
func New(width int) *Renderer {
	if width <= 0 {
		panic("preview: width must be positive")
	}
	scale := float64(width) / draw.SlideWidth
	return &Renderer{
		width:  width,
		height: int(math.Round(draw.SlideHeight * scale)),
		scale:  scale,
	}
}

// Size returns the pixel dimensions of rendered images.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Render paints s on a white canvas.
func (r *Renderer) Render(s draw.Slide) (image.Image, error) {
	dc, err := r.paint(s)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dc.Close() }()
	return dc.Image(), nil
}

// PNG renders s and writes it as PNG.
func (r *Renderer) PNG(w io.Writer, s draw.Slide) error {
	dc, err := r.paint(s)
	if err != nil {
		return err
	}
	defer func() { _ = dc.Close() }()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// JPEG renders s and writes it as JPEG at JPEGQuality.
func (r *Renderer) JPEG(w io.Writer, s draw.Slide) error {
	dc, err := r.paint(s)
	if err != nil {
		return err
	}
	defer func() { _ = dc.Close() }()
	if err := dc.EncodeJPEG(w, JPEGQuality); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

func (r *Renderer) paint(s draw.Slide) (*gg.Context, error) {
	fs, err := loadFonts()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(r.width, r.height)
	dc.ClearWithColor(gg.RGB(1, 1, 1))

	for _, sh := range s.Shapes {
		var err error
		switch v := sh.(type) {
		case draw.Rect:
			err = r.rect(dc, v.Box, rgba(v.Fill), v.Rounded)
		case draw.Picture:
			err = r.picture(dc, v)
		case draw.TextBox:
			face := fs.regular
			if v.Bold {
				face = fs.bold
			}
			r.text(dc, face, v.Box, v.Text, v.Size, rgba(v.Color), v.Align)
		case draw.Table:
			err = r.table(dc, fs, v)
		case draw.CodeBox:
			err = r.code(dc, fs, v)
		}
		if err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
	}
	return dc, nil
}

func (r *Renderer) rect(dc *gg.Context, b draw.Box, fill color.Color, rounded bool) error {
	x, y, w, h := r.px(b)
	if rounded {
		dc.DrawRoundedRectangle(x, y, w, h, math.Min(w, h)*cornerRatio)
	} else {
		dc.DrawRectangle(x, y, w, h)
	}
	dc.SetColor(fill)
	return dc.Fill()
}

func (r *Renderer) picture(dc *gg.Context, p draw.Picture) error {
	img, err := loadImage(p.Path)
	if err != nil {
		return r.rect(dc, p.Box, placeholderFill, false)
	}
	x, y, w, h := r.px(p.Box)
	dc.DrawImageEx(img, gg.DrawImageOptions{X: x, Y: y, DstWidth: w, DstHeight: h})
	return nil
}

// loadImage reads PNG, JPEG and WebP through gg, and any other registered
// format (GIF, BMP, TIFF) through image.Decode.
func loadImage(path string) (*gg.ImageBuf, error) {
	if img, err := gg.LoadImage(path); err == nil {
		return img, nil
	}
	f, err := os.Open(path) // #nosec G304 -- picture paths come from the image fetcher
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return gg.ImageBufFromImage(img), nil
}

// text draws one paragraph per line of s, wrapping words to the box width.
func (r *Renderer) text(dc *gg.Context, src *text.FontSource, b draw.Box, s string, pt float64, c color.Color, align draw.Align) {
	if s == "" {
		return
	}
	dc.SetFont(src.Face(r.fontPixels(pt)))
	dc.SetColor(c)

	x, y, w, _ := r.px(b)
	_, lh := dc.MeasureString("Hg")
	lh *= lineSpacing

	line := 0
	for _, para := range strings.Split(s, "\n") {
		for _, l := range wrap(para, w, func(t string) float64 { tw, _ := dc.MeasureString(t); return tw }) {
			top := y + float64(line)*lh
			if top > float64(r.height) {
				return
			}
			tw, _ := dc.MeasureString(l)
			lx := x
			switch align {
			case draw.AlignCenter:
				lx = x + (w-tw)/2
			case draw.AlignRight:
				lx = x + w - tw
			}
			dc.DrawString(l, lx, top+lh*0.8)
			line++
		}
	}
}

func (r *Renderer) table(dc *gg.Context, fs fontSet, t draw.Table) error {
	cols := 0
	for _, row := range t.Rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return nil
	}

	cw := t.W / float64(cols)
	rh := t.H / float64(len(t.Rows))
	for i, row := range t.Rows {
		rowBox := draw.Box{X: t.X, Y: t.Y + float64(i)*rh, W: t.W, H: rh}
		if i == 0 {
			if err := r.rect(dc, rowBox, rgba(t.HeaderFill), false); err != nil {
				return err
			}
		}
		for j, cell := range row {
			cellBox := draw.Box{X: t.X + float64(j)*cw + 0.05, Y: rowBox.Y + 0.05, W: cw - 0.1, H: rh}
			if i == 0 {
				r.text(dc, fs.bold, cellBox, cell, t.Size, rgba(t.HeaderText), draw.AlignLeft)
			} else {
				r.text(dc, fs.regular, cellBox, cell, t.Size, rgba(t.Text), draw.AlignLeft)
			}
		}
	}
	return nil
}

func (r *Renderer) code(dc *gg.Context, fs fontSet, cb draw.CodeBox) error {
	if err := r.rect(dc, cb.Box, rgba(cb.Fill), false); err != nil {
		return err
	}

	dc.SetFont(fs.mono.Face(r.fontPixels(cb.Size)))
	_, lh := dc.MeasureString("Hg")
	lh *= lineSpacing

	x, y, _, h := r.px(cb.Box)
	pad := 0.1 * r.scale
	for i, line := range cb.Lines {
		top := y + pad + float64(i)*lh
		if top+lh > y+h {
			break
		}
		lx := x + pad
		for _, run := range line {
			dc.SetColor(rgba(run.Color))
			dc.DrawString(run.Text, lx, top+lh*0.8)
			w, _ := dc.MeasureString(run.Text)
			lx += w
		}
	}
	return nil
}

// wrap splits s into lines no wider than width. A single word wider than
// width gets a line of its own.
func wrap(s string, width float64, measure func(string) float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		next := cur + " " + w
		if measure(next) <= width {
			cur = next
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

func (r *Renderer) px(b draw.Box) (x, y, w, h float64) {
	return b.X * r.scale, b.Y * r.scale, b.W * r.scale, b.H * r.scale
}

// fontPixels converts a point size to pixels on this canvas.
func (r *Renderer) fontPixels(pt float64) float64 {
	return pt * r.scale / 72
}

func rgba(c draw.Color) color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}
