package ui

import (
	"math/big"
	"strings"
	"time"

	"factprime/internal/config"
	"factprime/internal/logging"
	"factprime/internal/present"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	resultHeight       = 8
	slowComputeWarning = 500 * time.Millisecond
)

// computeResultMsg carries the text of a finished computation back to the
// dialog that started it.
type computeResultMsg struct {
	dialogID int
	seq      int
	text     string
}

// DialogModel asks for a number and shows the result for one action.
type DialogModel struct {
	id      int
	seq     int
	action  present.Action
	adapter *present.Adapter

	title       string
	prompt      string
	resultWidth int

	input   textinput.Model
	spinner spinner.Model
	result  viewport.Model
	help    help.Model

	computing  bool
	hasResult  bool
	resultText string
	errText    string

	styles Styles
	keys   KeyMap
	width  int
}

// NewDialogModel creates the input dialog for action. id distinguishes
// results of this dialog from those of dialogs closed earlier.
func NewDialogModel(id int, action present.Action, adapter *present.Adapter, cfg config.UIConfig, styles Styles, keys KeyMap) DialogModel {
	ti := textinput.New()
	ti.Focus()
	ti.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := DialogModel{
		id:      id,
		action:  action,
		adapter: adapter,
		input:   ti,
		spinner: sp,
		result:  viewport.New(60, resultHeight),
		help:    help.New(),
		keys:    keys,
	}
	m.ApplyConfig(cfg, styles)
	return m
}

// ApplyConfig updates title, prompt, placeholder and palette in place.
func (m *DialogModel) ApplyConfig(cfg config.UIConfig, styles Styles) {
	m.title = orDefault(buttonConfig(cfg, m.action).DialogTitle, m.action.DialogTitle())
	m.prompt = cfg.Prompt
	m.input.Placeholder = cfg.Placeholder
	m.resultWidth = cfg.ResultWidth
	m.styles = styles
	m.spinner.Style = styles.Spinner
	m.input.PromptStyle = styles.Prompt
	m.resize()
}

// SetWidth records the terminal width and rewraps the result.
func (m *DialogModel) SetWidth(w int) {
	m.width = w
	m.resize()
}

// Action returns the dialog's action.
func (m DialogModel) Action() present.Action {
	return m.action
}

// Result returns the last result text, or "" before the first one arrives.
func (m DialogModel) Result() string {
	return m.resultText
}

// Err returns the error line currently shown.
func (m DialogModel) Err() string {
	return m.errText
}

// Computing reports whether a computation is in flight.
func (m DialogModel) Computing() bool {
	return m.computing
}

// Init starts the cursor blinking.
func (m DialogModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input editing, submission, scrolling and results.
func (m DialogModel) Update(msg tea.Msg) (DialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
			var cmd tea.Cmd
			m.result, cmd = m.result.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case computeResultMsg:
		if msg.dialogID != m.id || msg.seq != m.seq {
			return m, nil // superseded
		}
		m.computing = false
		m.hasResult = true
		m.resultText = msg.text
		m.setResultContent()
		return m, nil

	case spinner.TickMsg:
		if !m.computing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m DialogModel) submit() (DialogModel, tea.Cmd) {
	n, err := present.ParseInput(m.input.Value())
	if err != nil {
		logging.Get(logging.CategoryUI).Debug("invalid input",
			zap.Stringer("action", m.action), zap.Error(err))
		m.errText = present.InvalidIntegerMessage
		return m, nil
	}

	m.errText = ""
	m.seq++
	m.computing = true
	return m, tea.Batch(m.spinner.Tick, compute(m.id, m.seq, m.adapter, m.action, n))
}

func compute(dialogID, seq int, adapter *present.Adapter, action present.Action, n *big.Int) tea.Cmd {
	return func() tea.Msg {
		timer := logging.StartTimer(logging.CategoryUI, "describe "+action.String())
		text := adapter.Describe(action, n)
		timer.StopWithThreshold(slowComputeWarning)
		return computeResultMsg{dialogID: dialogID, seq: seq, text: text}
	}
}

func (m *DialogModel) wrapWidth() int {
	w := m.resultWidth
	if m.width > 0 && (w == 0 || w > m.width-4) {
		w = m.width - 4
	}
	if w <= 0 {
		w = 60
	}
	return w
}

func (m *DialogModel) resize() {
	w := m.wrapWidth()
	m.result.Width = w
	m.help.Width = w
	if m.hasResult {
		m.setResultContent()
	}
}

func (m *DialogModel) setResultContent() {
	m.result.SetContent(m.styles.Result.Width(m.result.Width).Render(m.resultText))
	m.result.GotoTop()
}

// View renders the dialog.
func (m DialogModel) View() string {
	var sb strings.Builder

	titleBar := m.styles.TitleBar
	if m.width > 0 {
		titleBar = titleBar.Width(m.width)
	}
	sb.WriteString(titleBar.Render(m.title))
	sb.WriteString("\n\n")

	lines := []string{
		m.styles.Body.Render(m.prompt),
		m.input.View(),
		"",
	}
	if m.errText != "" {
		lines = append(lines, m.styles.Error.Render(m.errText))
	}
	if m.computing {
		lines = append(lines, m.spinner.View()+m.styles.Muted.Render(" Calculating..."))
	}
	if m.hasResult {
		lines = append(lines, m.result.View())
	}
	lines = append(lines, "", m.help.View(dialogKeys(m.keys)))

	sb.WriteString(m.styles.Content.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	return sb.String()
}
