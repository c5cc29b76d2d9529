package segment

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-html2pptx/internal/dom"
)

func TestSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		wantStrategy Strategy
		wantTexts    []string
	}{
		{
			name:         "slide-container wins over slide",
			html:         `<div class="slide-container">A</div><div class="slide">B</div><div class="slide-container">C</div>`,
			wantStrategy: StrategyContainer,
			wantTexts:    []string{"A", "C"},
		},
		{
			name:         "slide class when no slide-container",
			html:         `<div class="slide">A</div><section>S</section><div class="slide">B</div>`,
			wantStrategy: StrategyContainer,
			wantTexts:    []string{"A", "B"},
		},
		{
			name:         "container class on any element",
			html:         `<section class="slide">A</section><li class="slide-container">B</li>`,
			wantStrategy: StrategyContainer,
			wantTexts:    []string{"B"},
		},
		{
			name:         "containers take precedence over separators",
			html:         `<div class="slide">A</div><hr><div class="slide">B</div><hr><p>C</p>`,
			wantStrategy: StrategyContainer,
			wantTexts:    []string{"A", "B"},
		},
		{
			name:         "section before article",
			html:         `<article>X</article><section>A</section><section>B</section>`,
			wantStrategy: StrategySection,
			wantTexts:    []string{"A", "B"},
		},
		{
			name:         "article when no section",
			html:         `<article>A</article><hr><article>B</article>`,
			wantStrategy: StrategySection,
			wantTexts:    []string{"A", "B"},
		},
		{
			name:         "two separators give three regions",
			html:         `<h1>A</h1><hr><h1>B</h1><hr><h1>C</h1>`,
			wantStrategy: StrategySeparator,
			wantTexts:    []string{"A", "B", "C"},
		},
		{
			name:         "leading and trailing separators keep empty regions",
			html:         `<hr><p>A</p><hr>`,
			wantStrategy: StrategySeparator,
			wantTexts:    []string{"", "A", ""},
		},
		{
			name:         "nested hr is not a separator",
			html:         `<div><p>A</p><hr><p>B</p></div>`,
			wantStrategy: StrategyBody,
			wantTexts:    []string{"AB"},
		},
		{
			name:         "whole body as one region",
			html:         `<h1>Only</h1><p>slide</p>`,
			wantStrategy: StrategyBody,
			wantTexts:    []string{"Onlyslide"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := dom.ParseString(tt.html)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}

			regions, strategy, err := Segment(doc)
			if err != nil {
				t.Fatalf("Segment() unexpected error: %v", err)
			}
			if strategy != tt.wantStrategy {
				t.Errorf("strategy = %v, want %v", strategy, tt.wantStrategy)
			}
			if len(regions) != len(tt.wantTexts) {
				t.Fatalf("got %d regions, want %d", len(regions), len(tt.wantTexts))
			}
			for i, r := range regions {
				if got := dom.CleanTextOf(r); got != tt.wantTexts[i] {
					t.Errorf("region[%d] text = %q, want %q", i, got, tt.wantTexts[i])
				}
			}
		})
	}
}

func TestSegment_SeparatorCountProperty(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 6; n++ {
		var sb strings.Builder
		for i := 0; i < n; i++ {
			sb.WriteString("<p>x</p><hr>")
		}
		sb.WriteString("<p>last</p>")

		doc, err := dom.ParseString(sb.String())
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		regions, _, err := Segment(doc)
		if err != nil {
			t.Fatalf("Segment: %v", err)
		}
		if len(regions) != n+1 {
			t.Errorf("%d separators: got %d regions, want %d", n, len(regions), n+1)
		}
	}
}

func TestSegment_EmptyDocument(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "<html><body>  \n </body></html>", "<!-- only a comment -->"} {
		doc, err := dom.ParseString(input)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		_, _, err = Segment(doc)
		if !errors.Is(err, ErrNoSlides) {
			t.Errorf("Segment(%q) error = %v, want ErrNoSlides", input, err)
		}
	}
}

func TestSegment_NilDocument(t *testing.T) {
	t.Parallel()

	if _, _, err := Segment(nil); !errors.Is(err, ErrNoSlides) {
		t.Errorf("Segment(nil) error = %v, want ErrNoSlides", err)
	}
}
