package main

import (
	"fmt"
	"io"
	"strings"

	html2pptx "github.com/alnah/go-html2pptx"
)

// printUsage prints the top-level usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "html2pptx - Convert HTML and Markdown to PowerPoint")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  html2pptx                          Open the interactive form")
	fmt.Fprintln(w, "  html2pptx <input> [output]         Convert a file or directory")
	fmt.Fprintln(w, "  html2pptx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert      Convert HTML or Markdown to PowerPoint (default)")
	fmt.Fprintln(w, "  inspect      Print the text of a deck")
	fmt.Fprintln(w, "  doctor       Check the environment")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2pptx help <command>' for details.")
	fmt.Fprintln(w, "An input named like a command (e.g. a directory called 'doctor') needs the")
	fmt.Fprintln(w, "explicit form: html2pptx convert doctor")
}

// printConvertUsage prints help for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pptx convert [flags] <input> [output]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert an .html, .htm, .md or .markdown file, or every such file in a")
	fmt.Fprintln(w, "directory, to .pptx. Without output, decks are written next to the sources.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers for directories (0 = auto)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with custom themes and templates")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only print errors")
	fmt.Fprintln(w, "  -v, --verbose             Print details and debug logs")
	fmt.Fprintln(w, "      --log-level <level>   debug, info, warn or error")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Theme:")
	fmt.Fprintf(w, "      --theme <name|path>   One of: %s\n", strings.Join(html2pptx.ThemeNames(), ", "))
	fmt.Fprintln(w, "      --primary <#RRGGBB>   Override the primary color")
	fmt.Fprintln(w, "      --accent <#RRGGBB>    Override the accent color")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --render-js           Run scripts in headless Chrome before extraction")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Conversion timeout per file (e.g. 2m)")
	fmt.Fprintln(w, "      --fetch-timeout <dur> Per-image download timeout (e.g. 10s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Previews:")
	fmt.Fprintln(w, "      --preview <dir>       Write one PNG per slide")
	fmt.Fprintln(w, "      --no-thumbnail        Do not embed a thumbnail in the package")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document properties:")
	fmt.Fprintln(w, "      --title <text>        Deck title (single file only)")
	fmt.Fprintln(w, "      --creator <name>      Author")
	fmt.Fprintln(w, "      --stamp               Record the conversion time")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HTML2PPTX_CONFIG, HTML2PPTX_THEME, HTML2PPTX_PRIMARY, HTML2PPTX_ACCENT,")
	fmt.Fprintln(w, "  HTML2PPTX_TIMEOUT, HTML2PPTX_FETCH_TIMEOUT, HTML2PPTX_RENDER_JS,")
	fmt.Fprintln(w, "  HTML2PPTX_INPUT_DIR, HTML2PPTX_OUTPUT_DIR, HTML2PPTX_PREVIEW_DIR,")
	fmt.Fprintln(w, "  HTML2PPTX_ASSET_PATH, HTML2PPTX_LOG_LEVEL, HTML2PPTX_CREATOR, HTML2PPTX_WORKERS")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  html2pptx report.html")
	fmt.Fprintln(w, "  html2pptx notes.md deck.pptx --theme midnight")
	fmt.Fprintln(w, "  html2pptx ./talks -o ./decks --preview ./png")
}

func printVersionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pptx version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the version and exit.")
}

// runHelp prints help for a command, or the top-level usage.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}
	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		printVersionUsage(env.Stdout)
	case "help":
		printUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command %q\n\n", args[0])
		printUsage(env.Stdout)
	}
}
