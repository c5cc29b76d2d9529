//go:build bench

package markdown

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkToHTML benchmarks conversion scaling with the number of slides.
func BenchmarkToHTML(b *testing.B) {
	converter := New("github")
	ctx := context.Background()

	for _, slides := range []int{1, 10, 50, 200} {
		content := generateDeck(slides)
		b.Run(fmt.Sprintf("slides_%d", slides), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := converter.ToHTML(ctx, content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkToHTMLParallel benchmarks concurrent conversion, as batch mode
// does with one converter per worker.
func BenchmarkToHTMLParallel(b *testing.B) {
	converter := New("github")
	ctx := context.Background()
	content := generateDeck(20)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := converter.ToHTML(ctx, content); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func generateDeck(slides int) string {
	var sb strings.Builder
	for i := 0; i < slides; i++ {
		if i > 0 {
			sb.WriteString("---\n\n")
		}
		fmt.Fprintf(&sb, "# Slide %d\n\n", i+1)
		sb.WriteString("- **Point** with supporting text\n- **Another** point\n\n")
		if i%3 == 0 {
			sb.WriteString("```go\nfor i := 0; i < 10; i++ {\n    process(i)\n}\n```\n\n")
		}
		if i%4 == 0 {
			sb.WriteString("| A | B |\n|---|---|\n| 1 | 2 |\n\n")
		}
	}
	return sb.String()
}
