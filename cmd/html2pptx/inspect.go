package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-html2pptx/internal/pptx"
	"github.com/alnah/go-html2pptx/internal/yamlutil"
)

// ErrUnknownFormat is returned for an unsupported --format value.
var ErrUnknownFormat = errors.New("unknown output format")

// inspectReport is the serialized form of a deck summary.
type inspectReport struct {
	File   string        `json:"file" yaml:"file"`
	Title  string        `json:"title,omitempty" yaml:"title,omitempty"`
	Media  int           `json:"media" yaml:"media"`
	Slides []slideReport `json:"slides" yaml:"slides"`
}

type slideReport struct {
	Number int      `json:"number" yaml:"number"`
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Text   []string `json:"text" yaml:"text"`
}

// runInspect prints the text of every slide in a .pptx file.
func runInspect(args []string, env *Environment) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	format := fs.StringP("format", "f", "text", "output format: text, json, yaml")
	fs.Usage = func() { printInspectUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: inspect takes exactly one .pptx file", ErrUsage)
	}

	report, err := inspectFile(fs.Arg(0))
	if err != nil {
		return err
	}

	switch strings.ToLower(*format) {
	case "text":
		printInspectText(env.Stdout, report)
		return nil
	case "json":
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		out, err := yamlutil.Marshal(report)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(out)
		return err
	default:
		return fmt.Errorf("%w: %q (expected text, json or yaml)", ErrUnknownFormat, *format)
	}
}

// inspectFile reads the deck at path into a report.
func inspectFile(path string) (*inspectReport, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	sum, err := pptx.ReadText(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	report := &inspectReport{File: path, Title: sum.Title, Media: sum.Media, Slides: make([]slideReport, 0, len(sum.Slides))}
	for _, s := range sum.Slides {
		text := s.Texts
		if text == nil {
			text = []string{}
		}
		report.Slides = append(report.Slides, slideReport{Number: s.Number, Name: s.Name, Text: text})
	}
	return report, nil
}

func printInspectText(w io.Writer, r *inspectReport) {
	fmt.Fprintf(w, "File:   %s\n", r.File)
	if r.Title != "" {
		fmt.Fprintf(w, "Title:  %s\n", r.Title)
	}
	fmt.Fprintf(w, "Slides: %d\n", len(r.Slides))
	fmt.Fprintf(w, "Media:  %d\n", r.Media)
	for _, s := range r.Slides {
		fmt.Fprintf(w, "\n[%d]\n", s.Number)
		for _, t := range s.Text {
			fmt.Fprintf(w, "  %s\n", t)
		}
	}
}

func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pptx inspect <deck.pptx> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the text of every slide.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: text, json, yaml")
}
