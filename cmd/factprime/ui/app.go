package ui

import (
	"fmt"
	"strings"

	"factprime/internal/config"
	"factprime/internal/logging"
	"factprime/internal/present"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

// ConfigReloadedMsg delivers a config reload from the file watcher.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

const helpMarkdown = `# %s

## Main window

| Key | Action |
|-----|--------|
| ←/→, tab | Move focus between buttons |
| enter, space | Open the focused dialog |
| f | %s |
| p | %s |
| ? | Toggle this help |
| q, ctrl+c | Quit |

## Input dialog

| Key | Action |
|-----|--------|
| enter | Calculate |
| ↑/↓, pgup/pgdn | Scroll the result |
| esc | Close the dialog |

Numbers are base-10 integers with an optional sign. Factorials are cached for
the whole session: %d values cached, %d hits, %d misses.
`

// AppModel is the root Bubble Tea model.
type AppModel struct {
	cfg     config.UIConfig
	adapter *present.Adapter
	styles  Styles
	keys    KeyMap
	help    help.Model
	renders *RenderCache

	menu         MenuModel
	dialog       *DialogModel
	nextDialogID int

	showHelp bool
	status   string
	width    int
	height   int
}

// NewApp creates the root model.
func NewApp(cfg config.UIConfig, adapter *present.Adapter) AppModel {
	styles := NewStyles(ThemeNamed(cfg.Theme))
	keys := DefaultKeyMap()
	return AppModel{
		cfg:     cfg,
		adapter: adapter,
		styles:  styles,
		keys:    keys,
		help:    help.New(),
		renders: NewRenderCache(8),
		menu:    NewMenuModel(cfg, styles, keys),
	}
}

// Init sets the terminal title.
func (m AppModel) Init() tea.Cmd {
	return tea.SetWindowTitle(m.cfg.WindowTitle)
}

// Update routes messages to the help screen, the open dialog, or the menu.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.menu.SetWidth(msg.Width)
		if m.dialog != nil {
			m.dialog.SetWidth(msg.Width)
		}
		return m, nil

	case ConfigReloadedMsg:
		return m.applyReload(msg)

	case OpenDialogMsg:
		return m.openDialog(msg.Action)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.dialog != nil {
		d, cmd := m.dialog.Update(msg)
		m.dialog = &d
		return m, cmd
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	if m.dialog != nil {
		if key.Matches(msg, m.keys.Back) {
			logging.Get(logging.CategoryUI).Debug("dialog closed", zap.Stringer("action", m.dialog.Action()))
			m.dialog = nil
			return m, nil
		}
		d, cmd := m.dialog.Update(msg)
		m.dialog = &d
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m AppModel) openDialog(action present.Action) (tea.Model, tea.Cmd) {
	m.nextDialogID++
	d := NewDialogModel(m.nextDialogID, action, m.adapter, m.cfg, m.styles, m.keys)
	d.SetWidth(m.width)
	m.dialog = &d
	m.status = ""
	logging.Get(logging.CategoryUI).Debug("dialog opened", zap.Stringer("action", action))
	return m, d.Init()
}

func (m AppModel) applyReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.status = fmt.Sprintf("Config reload failed: %v", msg.Err)
		return m, nil
	}
	if msg.Config == nil {
		return m, nil
	}

	m.cfg = msg.Config.UI
	m.renders.Clear()
	m.styles = NewStyles(ThemeNamed(m.cfg.Theme))
	m.menu.ApplyConfig(m.cfg)
	m.menu.SetStyles(m.styles)
	if m.dialog != nil {
		d := *m.dialog
		d.ApplyConfig(m.cfg, m.styles)
		m.dialog = &d
	}
	m.status = "Config reloaded"
	logging.Get(logging.CategoryUI).Info("ui config applied", zap.String("theme", m.cfg.Theme))
	return m, tea.SetWindowTitle(m.cfg.WindowTitle)
}

// Menu returns the main window model.
func (m AppModel) Menu() MenuModel {
	return m.menu
}

// Dialog returns the open dialog, or nil when the main window is shown.
func (m AppModel) Dialog() *DialogModel {
	return m.dialog
}

// View renders whichever screen is active.
func (m AppModel) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.dialog != nil {
		return m.dialog.View()
	}

	var sb strings.Builder
	sb.WriteString(m.menu.View())
	sb.WriteString("\n")
	if m.status != "" {
		sb.WriteString(m.styles.Footer.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Footer.Render(m.help.View(menuKeys(m.keys))))
	return sb.String()
}

func (m AppModel) helpText() string {
	stats := m.adapter.Core().Cache().Stats()
	return fmt.Sprintf(helpMarkdown,
		m.cfg.WindowTitle,
		orDefault(m.cfg.Factorial.Label, present.ActionFactorial.Label()),
		orDefault(m.cfg.Prime.Label, present.ActionPrimeCheck.Label()),
		stats.Entries, stats.Hits, stats.Misses,
	)
}

func (m AppModel) renderHelp() string {
	md := m.helpText()

	width := m.width
	if width <= 0 {
		width = 80
	}
	dark := m.styles.Theme.IsDark
	return m.renders.GetOrCompute(ComputeKey(md, width, dark), func() string {
		style := "light"
		if dark {
			style = "dark"
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStylePath(style),
			glamour.WithWordWrap(width-4),
		)
		if err != nil {
			return m.styles.Content.Render(md)
		}
		out, err := renderer.Render(md)
		if err != nil {
			return m.styles.Content.Render(md)
		}
		return out
	})
}
