package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-html2pptx/internal/tui"
)

// testEnv returns an Environment writing to buffers, never a terminal.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:        func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
		Stdout:     stdout,
		Stderr:     stderr,
		IsTerminal: func() bool { return false },
		Interactive: func(context.Context, tui.ConvertFunc) error {
			panic("interactive mode started in a test")
		},
	}, stdout, stderr
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

const twoSectionHTML = `<!DOCTYPE html>
<html><head><title>Review</title></head>
<body>
<section><h1>Quarterly review</h1><h3>Platform team</h3></section>
<section><h2>Highlights</h2><ul><li><strong>Latency</strong> down 30%</li><li>Two launches</li></ul></section>
</body></html>`

const threeSlideMarkdown = `# Kickoff

Welcome.

---

## Agenda

- Goals
- Risks

---

## Next steps

- Ship it
`
