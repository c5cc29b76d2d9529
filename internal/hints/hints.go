// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-html2pptx/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Only --render-js needs a browser, so the first hint says how to avoid it.
func ForBrowserConnect() string {
	hints := []string{"drop --render-js if the deck does not need scripts"}

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the limits that apply to slow inputs.
func ForTimeout() string {
	return format("for large decks or slow image hosts, use --timeout or --fetch-timeout")
}

// ForConfigNotFound suggests --config and the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath2slash(p), "go-html2pptx/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForThemeNotFound lists the built-in themes.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a path to a theme YAML file")
}

// ForNoSlides explains what markup the segmenter looks for.
func ForNoSlides() string {
	return format(`wrap slides in class="slide" elements, <section> tags, or separate them with <hr>`)
}

// ForColor shows the accepted color syntax.
func ForColor() string {
	return format("colors are six hex digits, e.g. #003366 or 003366")
}

func filepath2slash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
