// Package tui is the interactive form shown when html2pptx runs on a
// terminal without arguments.
package tui

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/alnah/go-html2pptx/internal/draw"
	"github.com/alnah/go-html2pptx/internal/fileutil"
)

//go:embed help.md
var helpMarkdown string

// Errors reported on the form before a conversion starts.
var (
	ErrNoInput      = errors.New("input file is required")
	ErrInputMissing = errors.New("input file not found")
)

// Request is what the form collects.
type Request struct {
	Input   string
	Output  string
	Primary string
	Accent  string
}

// Result describes a finished conversion.
type Result struct {
	Output string
	Slides int
}

// ConvertFunc runs one conversion. It must call progress from the goroutine
// it runs on and return once ctx is cancelled.
type ConvertFunc func(ctx context.Context, req Request, progress func(current, total int)) (Result, error)

const (
	fieldInput = iota
	fieldOutput
	fieldPrimary
	fieldAccent
	fieldCount
)

const defaultWidth = 80

type state int

const (
	stateForm state = iota
	stateConverting
	stateDone
	stateHelp
)

type progressMsg struct{ current, total int }

type doneMsg struct {
	result Result
	err    error
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1F4E79")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Width(9).Foreground(lipgloss.Color("#6B7280"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0066CC")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0392B"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D32")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).MarginTop(1)
)

var labels = [fieldCount]string{"Input", "Output", "Primary", "Accent"}

// Option configures a Model.
type Option func(*Model)

// WithClipboard replaces the function used by the copy key.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) { m.copy = fn }
}

// WithHelpStyle selects the glamour style for the help page ("dark", "light", "notty").
func WithHelpStyle(style string) Option {
	return func(m *Model) { m.helpStyle = style }
}

// WithInput pre-fills the input field.
func WithInput(path string) Option {
	return func(m *Model) {
		m.inputs[fieldInput].SetValue(path)
		m.syncOutput()
	}
}

// Model is the bubbletea model for the conversion form.
type Model struct {
	convert   ConvertFunc
	copy      func(string) error
	helpStyle string

	inputs       []textinput.Model
	focus        int
	outputEdited bool

	state   state
	back    state
	bar     progress.Model
	percent float64
	updates chan tea.Msg
	cancel  context.CancelFunc

	result Result
	err    error
	notice string
	help   string
	width  int
}

// New returns a form that calls convert on submit.
func New(convert ConvertFunc, opts ...Option) Model {
	m := Model{
		convert:   convert,
		copy:      clipboard.WriteAll,
		helpStyle: "dark",
		inputs:    make([]textinput.Model, fieldCount),
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(defaultWidth-20)),
		width:     defaultWidth,
	}
	placeholders := [fieldCount]string{"deck.html", "deck.pptx", "#1F4E79 (theme default)", "#0066CC (theme default)"}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = "> "
		in.Placeholder = placeholders[i]
		in.Width = defaultWidth - 20
		if i >= fieldPrimary {
			in.CharLimit = 7
		}
		m.inputs[i] = in
	}
	m.inputs[fieldInput].Focus()

	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run shows the form until the user quits or ctx is cancelled.
func Run(ctx context.Context, convert ConvertFunc, opts ...Option) error {
	p := tea.NewProgram(New(convert, opts...), tea.WithContext(ctx))
	final, err := p.Run()
	if m, ok := final.(Model); ok && m.cancel != nil {
		m.cancel()
	}
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = max(msg.Width-20, 10)
		for i := range m.inputs {
			m.inputs[i].Width = max(msg.Width-20, 10)
		}
		if m.state == stateHelp {
			m.help = m.renderHelp()
		}
		return m, nil

	case progressMsg:
		if msg.total > 0 {
			m.percent = float64(msg.current) / float64(msg.total)
		}
		return m, waitForUpdate(m.updates)

	case doneMsg:
		m.state = stateDone
		m.result, m.err = msg.result, msg.err
		if msg.err == nil {
			m.percent = 1
		}
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateHelp:
			return m.updateHelp(msg)
		case stateConverting:
			return m.updateConverting(msg)
		case stateDone:
			return m.updateDone(msg)
		default:
			return m.updateForm(msg)
		}
	}

	if m.state == stateForm {
		return m.forwardToInput(msg)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "f1":
		return m.showHelp()
	case "tab", "down":
		return m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if m.focus < fieldCount-1 {
			return m.setFocus(m.focus + 1)
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	}
	return m.forwardToInput(msg)
}

func (m Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() == before {
		return m, cmd
	}

	m.notice = ""
	switch m.focus {
	case fieldInput:
		m.syncOutput()
	case fieldOutput:
		m.outputEdited = m.inputs[fieldOutput].Value() != ""
	}
	return m, cmd
}

// syncOutput derives the output path from the input until the user edits it.
func (m *Model) syncOutput() {
	if m.outputEdited {
		return
	}
	in := strings.TrimSpace(m.inputs[fieldInput].Value())
	if in == "" {
		m.inputs[fieldOutput].SetValue("")
		return
	}
	m.inputs[fieldOutput].SetValue(fileutil.ReplaceExt(in, ".pptx"))
}

func (m Model) setFocus(i int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m, m.inputs[i].Focus()
}

func (m Model) request() Request {
	return Request{
		Input:   strings.TrimSpace(m.inputs[fieldInput].Value()),
		Output:  strings.TrimSpace(m.inputs[fieldOutput].Value()),
		Primary: strings.TrimSpace(m.inputs[fieldPrimary].Value()),
		Accent:  strings.TrimSpace(m.inputs[fieldAccent].Value()),
	}
}

func validateRequest(req Request) error {
	if req.Input == "" {
		return ErrNoInput
	}
	if !fileutil.FileExists(req.Input) {
		return fmt.Errorf("%w: %s", ErrInputMissing, req.Input)
	}
	for _, c := range []struct{ name, value string }{{"primary", req.Primary}, {"accent", req.Accent}} {
		if c.value == "" {
			continue
		}
		if _, err := draw.ParseColor(c.value); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
	}
	return nil
}

// submit starts the conversion in a command goroutine. Progress and the final
// result arrive through m.updates.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req := m.request()
	if err := validateRequest(req); err != nil {
		m.notice = err.Error()
		return m, nil
	}
	if req.Output == "" {
		req.Output = fileutil.ReplaceExt(req.Input, ".pptx")
	}

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan tea.Msg)
	convert := m.convert

	run := func() tea.Msg {
		defer close(updates)
		send := func(msg tea.Msg) {
			select {
			case updates <- msg:
			case <-ctx.Done():
			}
		}
		res, err := convert(ctx, req, func(current, total int) {
			send(progressMsg{current: current, total: total})
		})
		send(doneMsg{result: res, err: err})
		return nil
	}

	m.state = stateConverting
	m.notice = ""
	m.percent = 0
	m.err = nil
	m.updates = updates
	m.cancel = cancel
	m.inputs[m.focus].Blur()
	return m, tea.Batch(run, waitForUpdate(updates))
}

func waitForUpdate(updates <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-updates
		if !ok {
			return nil
		}
		return msg
	}
}

func (m Model) updateConverting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	case "f1":
		return m.showHelp()
	case "c":
		if m.err != nil {
			return m, nil
		}
		if err := m.copy(m.result.Output); err != nil {
			m.notice = "clipboard: " + err.Error()
		} else {
			m.notice = "Copied " + m.result.Output
		}
		return m, nil
	case "enter", "n":
		m.state = stateForm
		m.notice = ""
		m.percent = 0
		return m, m.inputs[m.focus].Focus()
	}
	return m, nil
}

func (m Model) showHelp() (tea.Model, tea.Cmd) {
	m.back = m.state
	m.state = stateHelp
	m.help = m.renderHelp()
	return m, nil
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "f1", "q":
		m.state = m.back
	}
	return m, nil
}

func (m Model) renderHelp() string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.helpStyle),
		glamour.WithWordWrap(m.width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}

// View implements tea.Model.
func (m Model) View() string {
	if m.state == stateHelp {
		return m.help + hintStyle.Render("esc: back")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("html2pptx"))
	b.WriteString("\n")
	for i, in := range m.inputs {
		label := labelStyle.Render(labels[i])
		if i == m.focus && m.state == stateForm {
			label = focusStyle.Width(9).Render(labels[i])
		}
		b.WriteString(label + in.View() + "\n")
	}

	switch m.state {
	case stateConverting:
		b.WriteString("\n" + m.bar.ViewAs(m.percent) + "\n")
		b.WriteString(hintStyle.Render("esc: cancel"))
	case stateDone:
		if m.err != nil {
			b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n")
		} else {
			b.WriteString("\n" + m.bar.ViewAs(1) + "\n")
			b.WriteString(successStyle.Render(fmt.Sprintf("Wrote %s (%d slides)", m.result.Output, m.result.Slides)) + "\n")
		}
		if m.notice != "" {
			b.WriteString(m.notice + "\n")
		}
		b.WriteString(hintStyle.Render("c: copy path  enter: convert another  f1: help  q: quit"))
	default:
		if m.notice != "" {
			b.WriteString("\n" + errorStyle.Render(m.notice) + "\n")
		}
		b.WriteString(hintStyle.Render("tab: next field  enter: convert  f1: help  esc: quit"))
	}
	return b.String()
}
