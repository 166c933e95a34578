// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     playground
// Description: Interactive pipeline playground with live evaluation
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package playground

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
	mdwlog "github.com/msto63/cstring/foundation/core/log"
	"github.com/msto63/cstring/internal/history"
)

// Focus identifies the component receiving key input
type Focus int

const (
	FocusExpression Focus = iota
	FocusInput
)

const (
	inputHeight   = 5
	statusTimeout = 3 * time.Second
)

// Config holds the playground configuration
type Config struct {
	Expression string
	Input      string
	Unit       string
	Evaluate   Evaluator
	Store      history.Store // nil disables ctrl+s
	Timeout    time.Duration // per evaluation, default 1s
	Logger     *mdwlog.Logger
}

// Model is the Bubble Tea model of the playground
type Model struct {
	cfg    Config
	logger *mdwlog.Logger

	width  int
	height int
	ready  bool
	focus  Focus

	expression textinput.Model
	input      textarea.Model
	viewport   viewport.Model

	result    Evaluation
	lastExpr  string
	lastInput string

	status    string
	statusErr bool
	statusSeq int
}

// New creates a playground model and evaluates the initial expression
func New(cfg Config) Model {
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Second
	}
	if cfg.Unit == "" {
		cfg.Unit = "byte"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = mdwlog.Discard()
	}

	ti := textinput.New()
	ti.Placeholder = `split "," | pick 0 | trim`
	ti.Prompt = "» "
	ti.CharLimit = 4096
	ti.SetValue(cfg.Expression)
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Input text..."
	ta.ShowLineNumbers = false
	ta.SetHeight(inputHeight)
	ta.SetValue(cfg.Input)
	ta.Blur()

	m := Model{
		cfg:        cfg,
		logger:     logger.WithField("component", "playground"),
		focus:      FocusExpression,
		expression: ti,
		input:      ta,
	}
	m.evaluate()
	return m
}

// Init starts the cursor blink
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, textarea.Blink)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil
		case "ctrl+s":
			return m, m.save()
		case "pgup":
			if m.ready {
				m.viewport.ViewUp()
			}
			return m, nil
		case "pgdown":
			if m.ready {
				m.viewport.ViewDown()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case savedMsg:
		m.statusSeq++
		if msg.err != nil {
			m.setStatus("save failed: "+msg.err.Error(), true)
			m.logger.ErrorWithErr("Saving run failed", msg.err)
		} else {
			m.setStatus("saved "+shortID(msg.id), false)
			m.logger.Debug("Run saved", mdwlog.Fields{"id": msg.id})
		}
		seq := m.statusSeq
		return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{seq: seq}
		})

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == FocusExpression {
		m.expression, cmd = m.expression.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	cmds = append(cmds, cmd)

	if m.expression.Value() != m.lastExpr || m.input.Value() != m.lastInput {
		m.evaluate()
	}

	return m, tea.Batch(cmds...)
}

// View renders the playground
func (m Model) View() string {
	if !m.ready {
		return "Loading playground..."
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("cstr playground") + "  " + LabelStyle.Render("unit: "+m.cfg.Unit))
	b.WriteString("\n")
	b.WriteString(m.box(FocusExpression).Render(m.expression.View()))
	b.WriteString("\n")
	b.WriteString(m.box(FocusInput).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(BoxStyle.Width(m.innerWidth()).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("tab: switch focus • ctrl+s: save run • pgup/pgdown: scroll • esc: quit"))
	return b.String()
}

// Result returns the latest evaluation
func (m Model) Result() Evaluation {
	return m.result
}

func (m Model) box(f Focus) lipgloss.Style {
	if m.focus == f {
		return FocusedBoxStyle.Width(m.innerWidth())
	}
	return BoxStyle.Width(m.innerWidth())
}

func (m Model) innerWidth() int {
	if m.width < 10 {
		return 10
	}
	return m.width - 2
}

func (m *Model) toggleFocus() {
	if m.focus == FocusExpression {
		m.focus = FocusInput
		m.expression.Blur()
		m.input.Focus()
		return
	}
	m.focus = FocusExpression
	m.input.Blur()
	m.expression.Focus()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	inner := m.innerWidth() - 4

	m.expression.Width = inner - lipgloss.Width(m.expression.Prompt)
	m.input.SetWidth(inner)

	// title, expression box, input box, status and help lines plus borders
	used := 1 + 3 + (inputHeight + 2) + 2 + 1 + 1 + 5
	vh := height - used
	if vh < 3 {
		vh = 3
	}

	if !m.ready {
		m.viewport = viewport.New(inner, vh)
		m.ready = true
	} else {
		m.viewport.Width = inner
		m.viewport.Height = vh
	}
	m.refreshViewport()
}

// evaluate reruns the pipeline on the current expression and input
func (m *Model) evaluate() {
	expr := m.expression.Value()
	input := m.input.Value()
	m.lastExpr, m.lastInput = expr, input

	switch {
	case strings.TrimSpace(expr) == "":
		m.result = Evaluation{Output: input, Kind: "buffer"}
	case m.cfg.Evaluate == nil:
		m.result = Evaluation{Err: mdwerror.New("no evaluator configured").WithCode(mdwerror.CodeConfigError)}
	default:
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Timeout)
		m.result = m.cfg.Evaluate(ctx, expr, input)
		cancel()
	}
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderResult())
}

func (m Model) renderResult() string {
	if m.result.Err != nil {
		return ErrorMessageStyle.Render(m.result.Err.Error())
	}
	if m.result.Kind != "array" {
		return ResultStyle.Render(m.result.Output) + TerminatorStyle.Render(Terminator)
	}
	if len(m.result.Elements) == 0 {
		return LabelStyle.Render("(empty array)")
	}
	lines := make([]string, len(m.result.Elements))
	for i, e := range m.result.Elements {
		lines[i] = IndexStyle.Render(fmt.Sprintf("[%d] ", i)) +
			ResultStyle.Render(e) + TerminatorStyle.Render(Terminator)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	var parts []string
	if m.result.Err != nil {
		parts = append(parts, StatusErrorStyle.Render("error"))
	} else {
		parts = append(parts, StatusOKStyle.Render(m.result.Kind))
		if m.result.Kind == "array" {
			parts = append(parts, fmt.Sprintf("%d elements", len(m.result.Elements)))
		}
		parts = append(parts,
			fmt.Sprintf("%d stages", len(m.result.Stages)),
			m.result.Duration.Round(time.Microsecond).String())
	}
	if m.status != "" {
		if m.statusErr {
			parts = append(parts, StatusErrorStyle.Render(m.status))
		} else {
			parts = append(parts, StatusOKStyle.Render(m.status))
		}
	}
	return StatusBarStyle.Width(m.innerWidth()).Render(strings.Join(parts, " │ "))
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// save stores the current expression, input and result in the history
func (m *Model) save() tea.Cmd {
	if m.cfg.Store == nil {
		m.setStatus("history disabled", true)
		return nil
	}
	if strings.TrimSpace(m.expression.Value()) == "" {
		m.setStatus("nothing to save", true)
		return nil
	}

	run := &history.Run{
		Expression: m.expression.Value(),
		Input:      m.input.Value(),
		Unit:       m.cfg.Unit,
		Stages:     m.result.Stages,
		DurationMs: float64(m.result.Duration.Microseconds()) / 1000,
	}
	if m.result.Err != nil {
		run.Error = m.result.Err.Error()
	} else {
		run.Output = m.result.Output
	}

	store := m.cfg.Store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := store.Record(ctx, run)
		return savedMsg{id: run.ID, err: err}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
