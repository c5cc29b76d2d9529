package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	html2pptx "github.com/alnah/go-html2pptx"
	"github.com/alnah/go-html2pptx/internal/config"
	"github.com/alnah/go-html2pptx/internal/fileutil"
)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (*html2pptx.Converter, error)
	Release(*html2pptx.Converter)
	Size() int
}

// Compile-time interface implementation check.
var _ Pool = (*html2pptx.ConverterPool)(nil)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	cfg    *config.Config
	single bool // metadata.title applies only when one file is converted
	log    *zap.Logger

	modified time.Time // zero unless metadata.stamp is set
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Slides     int
	Strategy   string
	Previews   []string
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark this worker's jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// deckConverter is the part of *html2pptx.Converter used per file.
type deckConverter interface {
	Convert(ctx context.Context, input html2pptx.Input) (*html2pptx.ConvertResult, error)
}

// convertFile converts one file and writes the deck and its previews.
func convertFile(ctx context.Context, conv deckConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	cfg := params.cfg
	input := html2pptx.Input{
		Path:     f.InputPath,
		RenderJS: cfg.Render.JS,
		Creator:  cfg.Metadata.Creator,
		Modified: params.modified,
		Progress: func(current, total int, msg string) {
			params.log.Debug(msg, zap.String("file", f.InputPath), zap.Int("current", current), zap.Int("total", total))
		},
	}
	if params.single {
		input.Title = cfg.Metadata.Title
	}

	res, err := conv.Convert(ctx, input)
	if err != nil {
		return done(fmt.Errorf("%s: %w", f.InputPath, err))
	}
	result.Slides = len(res.Slides)
	result.Strategy = res.Strategy

	if err := writeOutput(f.OutputPath, res.PPTX); err != nil {
		return done(err)
	}

	if cfg.Preview.Dir != "" {
		paths, err := writePreviews(cfg.Preview.Dir, f.InputPath, res.Previews)
		if err != nil {
			return done(err)
		}
		result.Previews = paths
	}

	return done(nil)
}

// writeOutput creates the parent directory and writes data atomically.
func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating directory for %s: %v", ErrWriteOutput, path, err)
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// writePreviews stores slide PNGs as <dir>/<input base>-NN.png.
func writePreviews(dir, inputPath string, previews [][]byte) ([]string, error) {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	paths := make([]string, 0, len(previews))
	for i, png := range previews {
		p := filepath.Join(dir, fmt.Sprintf("%s-%02d.png", base, i+1))
		if err := writeOutput(p, png); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
// A single failure is left to the caller so it is reported once, with hints.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %v\n", r.Err)
			}
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d slides, %s, %v)\n",
				r.InputPath, r.OutputPath, r.Slides, r.Strategy, r.Duration.Round(time.Millisecond))
			for _, p := range r.Previews {
				fmt.Fprintf(env.Stdout, "  preview %s\n", p)
			}
		} else {
			fmt.Fprintf(env.Stdout, "Created %s (%d slides)\n", r.OutputPath, r.Slides)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
