package ui

import (
	"strings"

	"factprime/internal/config"
	"factprime/internal/present"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OpenDialogMsg asks the app to open the input dialog for an action.
type OpenDialogMsg struct {
	Action present.Action
}

type menuButton struct {
	action      present.Action
	label       string
	description string
}

// MenuModel is the main window: a title and one button per action.
type MenuModel struct {
	windowTitle string
	mainTitle   string
	buttons     []menuButton
	focused     int
	styles      Styles
	keys        KeyMap
	width       int
}

// NewMenuModel builds the main window from the ui config section.
func NewMenuModel(cfg config.UIConfig, styles Styles, keys KeyMap) MenuModel {
	m := MenuModel{styles: styles, keys: keys}
	m.ApplyConfig(cfg)
	return m
}

// ApplyConfig replaces titles, labels and tooltips, keeping focus.
func (m *MenuModel) ApplyConfig(cfg config.UIConfig) {
	m.windowTitle = cfg.WindowTitle
	m.mainTitle = cfg.MainTitle
	actions := present.Actions()
	buttons := make([]menuButton, 0, len(actions))
	for _, action := range actions {
		b := buttonConfig(cfg, action)
		buttons = append(buttons, menuButton{
			action:      action,
			label:       orDefault(b.Label, action.Label()),
			description: orDefault(b.Description, action.Description()),
		})
	}
	m.buttons = buttons
	if m.focused >= len(m.buttons) {
		m.focused = 0
	}
}

// SetStyles swaps the palette.
func (m *MenuModel) SetStyles(styles Styles) {
	m.styles = styles
}

// SetWidth records the terminal width.
func (m *MenuModel) SetWidth(w int) {
	m.width = w
}

// Focused returns the action under focus.
func (m MenuModel) Focused() present.Action {
	return m.buttons[m.focused].action
}

// Tooltip returns the description of the focused button.
func (m MenuModel) Tooltip() string {
	return m.buttons[m.focused].description
}

// Update handles focus movement and button presses.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.focused = (m.focused - 1 + len(m.buttons)) % len(m.buttons)
	case key.Matches(keyMsg, m.keys.Right):
		m.focused = (m.focused + 1) % len(m.buttons)
	case key.Matches(keyMsg, m.keys.Press):
		return m, openDialog(m.Focused())
	case key.Matches(keyMsg, m.keys.Factorial):
		m.focus(present.ActionFactorial)
		return m, openDialog(present.ActionFactorial)
	case key.Matches(keyMsg, m.keys.Prime):
		m.focus(present.ActionPrimeCheck)
		return m, openDialog(present.ActionPrimeCheck)
	}
	return m, nil
}

func (m *MenuModel) focus(action present.Action) {
	for i, b := range m.buttons {
		if b.action == action {
			m.focused = i
			return
		}
	}
}

func openDialog(action present.Action) tea.Cmd {
	return func() tea.Msg {
		return OpenDialogMsg{Action: action}
	}
}

// View renders the main window.
func (m MenuModel) View() string {
	var sb strings.Builder

	titleBar := m.styles.TitleBar
	if m.width > 0 {
		titleBar = titleBar.Width(m.width)
	}
	sb.WriteString(titleBar.Render(m.windowTitle))
	sb.WriteString("\n\n")

	rendered := make([]string, len(m.buttons))
	for i, b := range m.buttons {
		style := m.styles.Button
		if i == m.focused {
			style = m.styles.ButtonFocused
		}
		rendered[i] = style.Render(b.label)
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	body := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Title.Render(m.mainTitle),
		buttons,
		m.styles.Tooltip.Render(m.Tooltip()),
	)
	sb.WriteString(m.styles.Content.Render(body))
	return sb.String()
}

func buttonConfig(cfg config.UIConfig, action present.Action) config.ButtonConfig {
	if action == present.ActionPrimeCheck {
		return cfg.Prime
	}
	return cfg.Factorial
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
