package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel(): they call t.Setenv and
//   replace the package-level IsInContainer variable.

import (
	"strings"
	"testing"
)

func withContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

// ---------------------------------------------------------------------------
// ForBrowserConnect
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		container   bool
		ci          string
		noSandbox   string
		browserBin  string
		wantSandbox bool
		wantBin     bool
	}{
		{name: "CI without settings", ci: "true", wantSandbox: true, wantBin: true},
		{name: "docker", container: true, wantSandbox: true, wantBin: true},
		{name: "sandbox already disabled", container: true, noSandbox: "1", wantBin: true},
		{name: "browser bin set", browserBin: "/usr/bin/chromium"},
		{name: "all configured", container: true, ci: "true", noSandbox: "1", browserBin: "/usr/bin/chromium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withContainer(t, tt.container)
			t.Setenv("CI", tt.ci)
			t.Setenv("GITHUB_ACTIONS", "")
			t.Setenv("GITLAB_CI", "")
			t.Setenv("JENKINS_URL", "")
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint = %q, want hint prefix", hint)
			}
			if !strings.Contains(hint, "--render-js") {
				t.Error("expected --render-js mention")
			}
			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("ROD_NO_SANDBOX mentioned = %v, want %v", got, tt.wantSandbox)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("ROD_BROWSER_BIN mentioned = %v, want %v", got, tt.wantBin)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Static hints
// ---------------------------------------------------------------------------

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hint     string
		contains []string
	}{
		{name: "timeout", hint: ForTimeout(), contains: []string{"--timeout", "--fetch-timeout"}},
		{name: "output directory", hint: ForOutputDirectory(), contains: []string{"parent directory"}},
		{name: "no slides", hint: ForNoSlides(), contains: []string{`class="slide"`, "<section>", "<hr>"}},
		{name: "color", hint: ForColor(), contains: []string{"#003366"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint format inconsistent: %q", tt.hint)
			}
			for _, want := range tt.contains {
				if !strings.Contains(tt.hint, want) {
					t.Errorf("hint %q lacks %q", tt.hint, want)
				}
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{name: "no paths", paths: nil, contains: "--config"},
		{
			name:     "suggests user config",
			paths:    []string{"./deck.yaml", "/home/u/.config/go-html2pptx/deck.yaml"},
			contains: "or create /home/u/.config/go-html2pptx/deck.yaml",
		},
		{
			name:     "windows separators",
			paths:    []string{`C:\Users\u\AppData\Roaming\go-html2pptx\deck.yaml`},
			contains: "or create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("hint = %q, want it to contain %q", hint, tt.contains)
			}
		})
	}
}

func TestForThemeNotFound(t *testing.T) {
	t.Parallel()

	if hint := ForThemeNotFound(nil); hint != "" {
		t.Errorf("empty list gave %q", hint)
	}
	hint := ForThemeNotFound([]string{"corporate", "default"})
	if !strings.Contains(hint, "corporate, default") {
		t.Errorf("hint = %q", hint)
	}
}
