package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	html2pptx "github.com/alnah/go-html2pptx"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Themes   []string   `json:"themes"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// doctorDeps lets tests replace the probes that touch the machine.
type doctorDeps struct {
	lookPath      func() (string, bool)
	chromeVersion func(path string) (string, error)
	tempDir       func() string
}

var defaultDoctorDeps = doctorDeps{
	lookPath: launcher.LookPath,
	chromeVersion: func(path string) (string, error) {
		out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path from rod lookup or ROD_BROWSER_BIN
		return strings.TrimSpace(string(out)), err
	},
	tempDir: os.TempDir,
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	jsonOutput := fs.Bool("json", false, "print the report as JSON")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return report(env, fmt.Errorf("%w: %v", ErrUsage, err))
	}

	result := runDoctor(defaultDoctorDeps)

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(deps doctorDeps) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result, deps)
	checkEnvironment(result)
	checkSystem(result, deps)
	checkThemes(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects Chrome/Chromium. A missing browser is a warning:
// only --render-js needs one.
func checkChrome(result *doctorResult, deps doctorDeps) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = deps.lookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; --render-js will not work. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s; --render-js will not work", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	version, err := deps.chromeVersion(chromePath)
	if err == nil {
		result.Chrome.Version = version
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Chrome.Found && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 for --render-js")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("HTML2PPTX_CONTAINER") == "1" {
		return true, "HTML2PPTX_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for image downloads is writable.
func checkSystem(result *doctorResult, deps doctorDeps) {
	dir := deps.tempDir()
	f, err := os.CreateTemp(dir, "html2pptx-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", dir))
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	result.System.TempWritable = true
}

// checkThemes loads every built-in theme.
func checkThemes(result *doctorResult) {
	loader, err := html2pptx.NewAssetLoader("")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Embedded assets unavailable: %v", err))
		return
	}
	for _, name := range html2pptx.ThemeNames() {
		if _, err := loader.LoadTheme(name); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Theme %s: %v", name, err))
			continue
		}
		result.Themes = append(result.Themes, name)
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "html2pptx doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (for --render-js)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	if len(r.Themes) > 0 {
		fmt.Fprintf(w, "  [OK] Themes: %s\n", strings.Join(r.Themes, ", "))
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

// printDoctorUsage prints help for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pptx doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, the container sandbox, the temp directory and the")
	fmt.Fprintln(w, "built-in themes. Chrome is only needed for --render-js.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json   Print the report as JSON")
}
