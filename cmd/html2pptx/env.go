package main

import (
	"context"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/alnah/go-html2pptx/internal/tui"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
	IsTerminal func() bool
	// Interactive shows the form used when no arguments are given.
	Interactive func(ctx context.Context, convert tui.ConvertFunc) error
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) // #nosec G115 -- fd fits in int
		},
		Interactive: func(ctx context.Context, convert tui.ConvertFunc) error {
			return tui.Run(ctx, convert)
		},
	}
}
