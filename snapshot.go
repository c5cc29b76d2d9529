package html2pptx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-html2pptx/internal/process"
)

// snapshotter returns the DOM of a page after its scripts ran.
type snapshotter interface {
	Snapshot(ctx context.Context, pageURL string) (string, error)
	Close() error
}

// scriptSettle bounds the wait for the page to go idle after load, so decks
// that build slides in requestAnimationFrame or setTimeout callbacks are
// captured complete.
const scriptSettle = 2 * time.Second

// rodSnapshotter implements snapshotter with headless Chrome via go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodSnapshotter struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	logger   *zap.Logger
}

func newRodSnapshotter(timeout time.Duration, logger *zap.Logger) *rodSnapshotter {
	return &rodSnapshotter{timeout: timeout, logger: logger}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodSnapshotter) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	r.logger.Debug("browser started", zap.Int("pid", l.PID()))
	return nil
}

// Snapshot opens pageURL, waits for load and a short idle period, and
// returns the serialized DOM.
func (r *rodSnapshotter) Snapshot(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := r.ensureBrowser(); err != nil {
		return "", err
	}

	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return "", context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.WaitIdle(min(scriptSettle, timeout)); err != nil {
		// Pages that never go idle are captured as they are.
		r.logger.Debug("page did not settle", zap.Error(err))
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	markup, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	return markup, nil
}

// Close shuts the browser down and kills whatever Chrome processes remain.
func (r *rodSnapshotter) Close() error {
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	if r.launcher != nil {
		process.KillProcessGroup(r.launcher.PID())
		r.launcher.Kill()
		r.launcher.Cleanup()
	}
	r.browser = nil
	r.launcher = nil
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
