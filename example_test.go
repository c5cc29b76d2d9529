package html2pptx_test

import (
	"context"
	"fmt"

	"github.com/alnah/go-html2pptx"
)

// Example converts a three-slide HTML document.
func Example() {
	conv, err := html2pptx.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), html2pptx.Input{
		HTML: `<div class="slide"><h1>Welcome</h1></div>
<div class="slide"><h1>Agenda</h1><ul><li>Goals</li><li>Risks</li></ul></div>
<div class="slide"><h1>Questions</h1></div>`,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, s := range result.Slides {
		fmt.Printf("%d %s (%s)\n", s.Index, s.Title, s.Layout)
	}
	// Output:
	// 1 Welcome (auto)
	// 2 Agenda (auto)
	// 3 Questions (auto)
}

// Example_markdown splits Markdown into slides at thematic breaks.
func Example_markdown() {
	conv, err := html2pptx.NewConverter(html2pptx.WithTheme("corporate"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), html2pptx.Input{
		Markdown: "# Plan\n\n- ship\n\n---\n\n# Review\n",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(len(result.Slides), result.Strategy)
	// Output: 2 separator
}

// Example_progress reports progress as slides are rendered.
func Example_progress() {
	conv, err := html2pptx.NewConverter(html2pptx.WithThumbnail(false))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	_, err = conv.Convert(context.Background(), html2pptx.Input{
		HTML: "<section><h1>A</h1></section><section><h1>B</h1></section>",
		Progress: func(current, total int, msg string) {
			fmt.Printf("%d/%d %s\n", current, total, msg)
		},
	})
	if err != nil {
		fmt.Println("error:", err)
	}
	// Output:
	// 0/2 Rendering slide 1 of 2
	// 1/2 Rendering slide 2 of 2
	// 2/2 Done
}

// ExampleConverterPool shows batch conversion with a pool.
func ExampleConverterPool() {
	pool := html2pptx.NewConverterPool(2)
	defer pool.Close()

	conv, err := pool.Acquire()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer pool.Release(conv)

	result, err := conv.Convert(context.Background(), html2pptx.Input{HTML: "<h1>Solo</h1>"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(result.Strategy, len(result.Slides))
	// Output: body 1
}

// ExampleThemeNames lists the built-in presets.
func ExampleThemeNames() {
	fmt.Println(html2pptx.ThemeNames())
	// Output: [corporate default forest midnight]
}
