package tui

// Notes:
// - pump plays the bubbletea runtime: it runs commands in goroutines and feeds
//   their messages back into Update until the conversion settles.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func pressRune(m Model, r rune) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(Model), cmd
}

func pump(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	msgs := make(chan tea.Msg, 16)
	exec := func(c tea.Cmd) {
		if c != nil {
			go func() { msgs <- c() }()
		}
	}
	exec(cmd)

	timeout := time.After(5 * time.Second)
	for m.state == stateConverting {
		select {
		case msg := <-msgs:
			switch msg := msg.(type) {
			case nil:
			case tea.BatchMsg:
				for _, c := range msg {
					exec(c)
				}
			default:
				next, c := m.Update(msg)
				m = next.(Model)
				exec(c)
			}
		case <-timeout:
			t.Fatal("conversion did not finish")
		}
	}
	return m
}

func inputFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "deck.html")
	if err := os.WriteFile(p, []byte("<h1>x</h1>"), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func noConvert(context.Context, Request, func(int, int)) (Result, error) {
	return Result{}, errors.New("unexpected conversion")
}

// ---------------------------------------------------------------------------
// Form editing
// ---------------------------------------------------------------------------

func TestModel_OutputDerivedFromInput(t *testing.T) {
	t.Parallel()

	m := typeText(New(noConvert), "talks/intro.md")
	if got := m.inputs[fieldOutput].Value(); got != "talks/intro.pptx" {
		t.Errorf("output = %q, want talks/intro.pptx", got)
	}

	// Once the output is edited by hand it no longer follows the input.
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "x")
	m, _ = press(m, tea.KeyShiftTab)
	m = typeText(m, "y")
	if got := m.inputs[fieldOutput].Value(); got != "talks/intro.pptxx" {
		t.Errorf("output = %q, want the edited value", got)
	}
}

func TestModel_WithInput(t *testing.T) {
	t.Parallel()

	m := New(noConvert, WithInput("deck.htm"))
	if got := m.inputs[fieldOutput].Value(); got != "deck.pptx" {
		t.Errorf("output = %q, want deck.pptx", got)
	}
}

func TestModel_FocusCycles(t *testing.T) {
	t.Parallel()

	m := New(noConvert)
	for i := 1; i <= fieldCount; i++ {
		m, _ = press(m, tea.KeyTab)
		if want := i % fieldCount; m.focus != want {
			t.Fatalf("after %d tabs focus = %d, want %d", i, m.focus, want)
		}
	}
	m, _ = press(m, tea.KeyShiftTab)
	if m.focus != fieldAccent {
		t.Errorf("shift+tab from first field focus = %d, want %d", m.focus, fieldAccent)
	}
}

func TestModel_SubmitValidation(t *testing.T) {
	t.Parallel()

	existing := inputFile(t)
	tests := []struct {
		name    string
		input   string
		primary string
		want    string
	}{
		{name: "empty input", want: ErrNoInput.Error()},
		{name: "missing file", input: filepath.Join(t.TempDir(), "nope.html"), want: ErrInputMissing.Error()},
		{name: "bad color", input: existing, primary: "red", want: "primary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := New(noConvert)
			m.inputs[fieldInput].SetValue(tt.input)
			m.inputs[fieldPrimary].SetValue(tt.primary)
			next, cmd := m.submit()
			m = next.(Model)
			if cmd != nil || m.state != stateForm {
				t.Fatalf("state = %d, conversion started", m.state)
			}
			if !strings.Contains(m.notice, tt.want) {
				t.Errorf("notice = %q, want it to contain %q", m.notice, tt.want)
			}
			if !strings.Contains(m.View(), m.notice) {
				t.Error("notice not shown in view")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Conversion
// ---------------------------------------------------------------------------

func TestModel_ConversionSucceeds(t *testing.T) {
	t.Parallel()

	in := inputFile(t)
	var (
		got     Request
		copied  string
		percent []float64
	)
	convert := func(_ context.Context, req Request, progress func(int, int)) (Result, error) {
		got = req
		for i := 0; i < 3; i++ {
			progress(i, 3)
		}
		return Result{Output: req.Output, Slides: 3}, nil
	}

	m := New(convert, WithInput(in), WithClipboard(func(s string) error {
		copied = s
		return nil
	}))
	m.inputs[fieldAccent].SetValue("#AA5500")

	next, cmd := m.submit()
	m = next.(Model)
	if m.state != stateConverting {
		t.Fatalf("state = %d, want converting", m.state)
	}
	if !strings.Contains(m.View(), "esc: cancel") {
		t.Error("progress view missing")
	}
	percent = append(percent, m.percent)
	m = pump(t, m, cmd)

	if m.state != stateDone || m.err != nil {
		t.Fatalf("state = %d err = %v", m.state, m.err)
	}
	wantOut := strings.TrimSuffix(in, ".html") + ".pptx"
	if got.Input != in || got.Output != wantOut || got.Accent != "#AA5500" || got.Primary != "" {
		t.Errorf("request = %+v", got)
	}
	if m.percent != 1 || percent[0] != 0 {
		t.Errorf("percent = %v (start %v)", m.percent, percent[0])
	}
	if view := m.View(); !strings.Contains(view, "3 slides") {
		t.Errorf("view %q lacks the result", view)
	}

	m, _ = pressRune(m, 'c')
	if copied != wantOut {
		t.Errorf("copied %q, want %q", copied, wantOut)
	}
	if !strings.Contains(m.notice, "Copied") {
		t.Errorf("notice = %q", m.notice)
	}

	m, _ = press(m, tea.KeyEnter)
	if m.state != stateForm {
		t.Errorf("enter after done: state = %d, want form", m.state)
	}
}

func TestModel_ConversionFails(t *testing.T) {
	t.Parallel()

	convert := func(context.Context, Request, func(int, int)) (Result, error) {
		return Result{}, errors.New("no convertible content found")
	}
	copyCalled := false
	m := New(convert, WithInput(inputFile(t)), WithClipboard(func(string) error {
		copyCalled = true
		return nil
	}))

	next, cmd := m.submit()
	m = pump(t, next.(Model), cmd)

	if m.err == nil {
		t.Fatal("err = nil, want conversion error")
	}
	if !strings.Contains(m.View(), "no convertible content") {
		t.Error("error not shown")
	}
	m, _ = pressRune(m, 'c')
	if copyCalled {
		t.Error("copy ran after a failed conversion")
	}
}

func TestModel_CancelDuringConversion(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	stopped := make(chan error, 1)
	convert := func(ctx context.Context, _ Request, _ func(int, int)) (Result, error) {
		close(started)
		<-ctx.Done()
		stopped <- ctx.Err()
		return Result{}, ctx.Err()
	}

	m := New(convert, WithInput(inputFile(t)))
	next, cmd := m.submit()
	m = next.(Model)

	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("submit command returned %T, want tea.BatchMsg", cmd())
	}
	for _, c := range batch {
		go c()
	}
	<-started

	m, quit := press(m, tea.KeyEsc)
	if quit == nil {
		t.Fatal("esc did not quit")
	}
	if _, ok := quit().(tea.QuitMsg); !ok {
		t.Error("esc command is not tea.Quit")
	}
	select {
	case err := <-stopped:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("conversion stopped with %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("conversion not cancelled")
	}
}

// ---------------------------------------------------------------------------
// Help and quitting
// ---------------------------------------------------------------------------

func TestModel_Help(t *testing.T) {
	t.Parallel()

	m := New(noConvert, WithHelpStyle("notty"))
	m, _ = press(m, tea.KeyF1)
	if m.state != stateHelp {
		t.Fatalf("state = %d, want help", m.state)
	}
	view := m.View()
	for _, want := range []string{"Separators", "roadmap-grid"} {
		if !strings.Contains(view, want) {
			t.Errorf("help lacks %q", want)
		}
	}

	m, _ = press(m, tea.KeyEsc)
	if m.state != stateForm {
		t.Errorf("esc from help: state = %d, want form", m.state)
	}
}

func TestModel_QuitFromForm(t *testing.T) {
	t.Parallel()

	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := press(New(noConvert), k)
		if cmd == nil {
			t.Fatalf("%v: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: command is not tea.Quit", k)
		}
	}
}
