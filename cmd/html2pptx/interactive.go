package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	html2pptx "github.com/alnah/go-html2pptx"
	"github.com/alnah/go-html2pptx/internal/config"
	"github.com/alnah/go-html2pptx/internal/tui"
)

// ErrNotTerminal is returned when the form is requested without a terminal.
var ErrNotTerminal = errors.New("interactive mode needs a terminal (pass an input file instead)")

// runInteractive shows the conversion form. Settings come from
// HTML2PPTX_CONFIG and the environment; the form overrides the colors.
func runInteractive(ctx context.Context, env *Environment) error {
	s, err := loadSettings(&convertFlags{}, env)
	if err != nil {
		return err
	}
	// The form owns the terminal, so nothing below error level is printed.
	if s.cfg.Log.Level == "" {
		s.cfg.Log.Level = "error"
	}
	log, err := buildLogger(s)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	return env.Interactive(ctx, interactiveConvert(s.cfg, log, env.Now))
}

// interactiveConvert returns the conversion run when the form is submitted.
func interactiveConvert(base *config.Config, log *zap.Logger, now func() time.Time) tui.ConvertFunc {
	return func(ctx context.Context, req tui.Request, progress func(current, total int)) (tui.Result, error) {
		cfg := *base
		if req.Primary != "" {
			cfg.Theme.Primary = req.Primary
		}
		if req.Accent != "" {
			cfg.Theme.Accent = req.Accent
		}

		opts, err := buildOptions(&cfg, log)
		if err != nil {
			return tui.Result{}, err
		}
		conv, err := html2pptx.NewConverter(opts...)
		if err != nil {
			return tui.Result{}, err
		}
		defer func() {
			if err := conv.Close(); err != nil {
				log.Warn("closing converter", zap.Error(err))
			}
		}()

		var modified time.Time
		if cfg.Metadata.Stamp {
			modified = now()
		}
		res, err := conv.Convert(ctx, html2pptx.Input{
			Path:     req.Input,
			RenderJS: cfg.Render.JS,
			Title:    cfg.Metadata.Title,
			Creator:  cfg.Metadata.Creator,
			Modified: modified,
			Progress: func(current, total int, _ string) { progress(current, total) },
		})
		if err != nil {
			return tui.Result{}, fmt.Errorf("%s: %w", req.Input, err)
		}
		if err := writeOutput(req.Output, res.PPTX); err != nil {
			return tui.Result{}, err
		}
		return tui.Result{Output: req.Output, Slides: len(res.Slides)}, nil
	}
}
