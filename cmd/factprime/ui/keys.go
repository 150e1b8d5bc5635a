package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the interface responds to.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Press      key.Binding
	Factorial  key.Binding
	Prime      key.Binding
	Submit     key.Binding
	Back       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "shift+tab", "h"),
			key.WithHelp("←", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "tab", "l"),
			key.WithHelp("→", "next"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", " ", "space"),
			key.WithHelp("enter", "open"),
		),
		Factorial: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "factorial"),
		),
		Prime: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prime check"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "calculate"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "pgup"),
			key.WithHelp("↑/pgup", "scroll"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "pgdown"),
			key.WithHelp("↓/pgdn", "scroll"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// menuKeys is the help.KeyMap shown under the main window.
type menuKeys KeyMap

func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Press, k.Help, k.Quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Press},
		{k.Factorial, k.Prime},
		{k.Help, k.Quit},
	}
}

// dialogKeys is the help.KeyMap shown under an input dialog.
type dialogKeys KeyMap

func (k dialogKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ScrollUp, k.ScrollDown, k.Back}
}

func (k dialogKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Back}, {k.ScrollUp, k.ScrollDown}}
}
