// Package html2pptx converts HTML and Markdown documents to PowerPoint decks.
//
// # Quick Start
//
// Create a converter, convert a document, and close when done:
//
//	conv, err := html2pptx.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, html2pptx.Input{
//	    Path: "talk.html",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("talk.pptx", result.PPTX, 0o644)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Loading: charset-aware HTML parsing, Markdown through goldmark, or the
//     post-script DOM from headless Chrome when Input.RenderJS is set
//  2. Segmentation into slide regions: elements with class slide-container
//     or slide, then <section> or <article>, then <hr> separators, then the
//     whole body
//  3. Extraction of titles, list items, images, cards, tables, code blocks
//     and footers from each region
//  4. Layout classification and placement on a 13.333 x 7.5 inch canvas
//  5. Assembly of the Open XML package, with a JPEG thumbnail
//
// Images are downloaded into a temporary directory removed when Convert
// returns. An image that cannot be fetched is logged and left out; the slide
// is still produced.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := html2pptx.NewConverter(
//	    html2pptx.WithTheme("midnight"),
//	    html2pptx.WithTimeout(5 * time.Minute),
//	    html2pptx.WithFetchTimeout(10 * time.Second),
//	    html2pptx.WithPreviews(640),
//	    html2pptx.WithLogger(logger),
//	)
//
// Per-conversion settings are passed via Input:
//
//	result, err := conv.Convert(ctx, html2pptx.Input{
//	    HTML:     markup,
//	    BaseURL:  "https://example.com/decks/",
//	    Title:    "Quarterly Review",
//	    Progress: func(cur, total int, msg string) { log.Println(msg) },
//	})
//
// # Themes
//
// A theme is six colors plus a code style. Built-in presets are listed by
// ThemeNames; custom presets live in themes/{name}.yaml under the directory
// given to WithAssetPath, or in any YAML file passed to WithTheme as a path.
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool:
//
//	pool := html2pptx.NewConverterPool(html2pptx.ResolvePoolSize(0), opts...)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Error Handling
//
// Errors wrap sentinels for errors.Is checks: ErrEmptyInput,
// ErrAmbiguousInput, ErrNoSlides, ErrInvalidColor, ErrThemeNotFound,
// ErrInvalidAssetPath, ErrBrowserConnect, ErrPageLoad, ErrSnapshot and
// ErrWriteDeck among others.
package html2pptx
