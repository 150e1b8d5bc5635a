package ui

import (
	"errors"
	"strings"
	"testing"

	"factprime/internal/config"
	"factprime/internal/numeric"
	"factprime/internal/present"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp() AppModel {
	adapter := present.NewAdapter(numeric.New(), nil)
	return NewApp(config.DefaultUIConfig(), adapter)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd runs cmd one level deep, flattening batches.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func send(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	app, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T, want AppModel", next)
	}
	return app, cmd
}

// deliver sends msg and feeds back the messages its command produces,
// skipping spinner ticks and cursor blinks.
func deliver(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	m, cmd := send(t, m, msg)
	for _, out := range runCmd(cmd) {
		switch out.(type) {
		case OpenDialogMsg, computeResultMsg:
			m = deliver(t, m, out)
		}
	}
	return m
}

func typeText(t *testing.T, m AppModel, s string) AppModel {
	t.Helper()
	for _, r := range s {
		m, _ = send(t, m, runes(string(r)))
	}
	return m
}

func TestApp_FocusAndTooltip(t *testing.T) {
	m := newTestApp()

	if got := m.Menu().Focused(); got != present.ActionFactorial {
		t.Fatalf("initial focus = %v, want factorial", got)
	}
	if got := m.Menu().Tooltip(); got != "Calculates the factorial of n." {
		t.Errorf("tooltip = %q", got)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Menu().Focused(); got != present.ActionPrimeCheck {
		t.Errorf("focus after right = %v, want prime", got)
	}
	if got := m.Menu().Tooltip(); got != "Checks if the number is prime." {
		t.Errorf("tooltip = %q", got)
	}

	// wraps
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.Menu().Focused(); got != present.ActionFactorial {
		t.Errorf("focus after tab = %v, want factorial", got)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.Menu().Focused(); got != present.ActionPrimeCheck {
		t.Errorf("focus after left = %v, want prime", got)
	}
}

func TestApp_MainWindowView(t *testing.T) {
	m := newTestApp()
	view := m.View()

	for _, want := range []string{"User Interface", "Technical Assessment", "Factorial", "Prime Check", "Calculates the factorial of n."} {
		if !strings.Contains(view, want) {
			t.Errorf("main view missing %q", want)
		}
	}
}

func TestApp_EnterOpensFocusedDialog(t *testing.T) {
	m := newTestApp()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Dialog() == nil {
		t.Fatal("expected dialog to be open")
	}
	if got := m.Dialog().Action(); got != present.ActionPrimeCheck {
		t.Errorf("dialog action = %v, want prime", got)
	}
	view := m.View()
	if !strings.Contains(view, "Prime Number Checker") || !strings.Contains(view, "Enter a number:") {
		t.Errorf("dialog view missing title or prompt:\n%s", view)
	}
	if strings.Contains(view, "Technical Assessment") {
		t.Error("main window should be hidden while the dialog is open")
	}
}

func TestApp_FactorialFlow(t *testing.T) {
	m := newTestApp()
	m = deliver(t, m, runes("f"))
	if m.Dialog() == nil {
		t.Fatal("f should open the factorial dialog")
	}

	m = typeText(t, m, "5")
	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.Dialog().Result(); got != "The factorial of 5 is 120" {
		t.Errorf("result = %q", got)
	}
	if m.Dialog().Computing() {
		t.Error("spinner should stop once the result arrives")
	}
	if !strings.Contains(m.View(), "The factorial of 5 is 120") {
		t.Error("result not rendered")
	}
}

func TestApp_PrimeFlowAndNegative(t *testing.T) {
	m := newTestApp()
	m = deliver(t, m, runes("p"))

	m = typeText(t, m, "97")
	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Dialog().Result(); got != "97 is a Prime Number" {
		t.Errorf("result = %q", got)
	}

	for i := 0; i < 2; i++ {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = typeText(t, m, "-3")
	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Dialog().Result(); got != numeric.MsgPrimeNegative {
		t.Errorf("result = %q, want %q", got, numeric.MsgPrimeNegative)
	}
}

func TestApp_InvalidInputShowsError(t *testing.T) {
	m := newTestApp()
	m = deliver(t, m, runes("f"))
	m = typeText(t, m, "abc")

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("invalid input should not start a computation")
	}
	if got := m.Dialog().Err(); got != present.InvalidIntegerMessage {
		t.Errorf("error = %q", got)
	}
	if !strings.Contains(m.View(), present.InvalidIntegerMessage) {
		t.Error("error line not rendered")
	}
}

func TestApp_KeysTypeIntoDialog(t *testing.T) {
	m := newTestApp()
	m = deliver(t, m, runes("f"))

	// f, p, q and ? are text while the dialog is open
	m = typeText(t, m, "fpq?")
	if m.Dialog() == nil {
		t.Fatal("dialog closed unexpectedly")
	}
	if got := m.Dialog().Action(); got != present.ActionFactorial {
		t.Errorf("dialog action changed to %v", got)
	}
}

func TestApp_EscClosesDialog(t *testing.T) {
	m := newTestApp()
	m = deliver(t, m, runes("f"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.Dialog() != nil {
		t.Fatal("esc should close the dialog")
	}
	if !strings.Contains(m.View(), "Technical Assessment") {
		t.Error("main window should be visible again")
	}
}

func TestApp_StaleResultDropped(t *testing.T) {
	m := newTestApp()
	m = deliver(t, m, runes("f"))
	m = typeText(t, m, "4")

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	stale := runCmd(cmd)

	// close and reopen, then deliver the first dialog's result
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = deliver(t, m, runes("f"))
	for _, msg := range stale {
		if _, ok := msg.(computeResultMsg); ok {
			m, _ = send(t, m, msg)
		}
	}

	if got := m.Dialog().Result(); got != "" {
		t.Errorf("stale result %q reached a new dialog", got)
	}
}

func TestApp_CacheSharedAcrossDialogs(t *testing.T) {
	m := newTestApp()

	for i := 0; i < 2; i++ {
		m = deliver(t, m, runes("f"))
		m = typeText(t, m, "10")
		m = deliver(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	}

	stats := m.adapter.Core().Cache().Stats()
	if stats.Hits != 1 {
		t.Errorf("cache hits = %d, want 1", stats.Hits)
	}
}

func TestApp_HelpToggle(t *testing.T) {
	m := newTestApp()
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = send(t, m, runes("?"))

	if !m.showHelp {
		t.Fatal("? should open help")
	}
	if !strings.Contains(m.helpText(), "Main window") {
		t.Error("help text missing heading")
	}
	if strings.TrimSpace(m.View()) == "" {
		t.Error("help view is empty")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Error("esc should close help")
	}
}

func TestApp_Quit(t *testing.T) {
	m := newTestApp()
	_, cmd := send(t, m, runes("q"))
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	if _, ok := msgs[0].(tea.QuitMsg); !ok {
		t.Errorf("q produced %T, want tea.QuitMsg", msgs[0])
	}
}

func TestApp_ConfigReload(t *testing.T) {
	m := newTestApp()
	m = deliver(t, m, runes("f"))

	cfg := config.DefaultConfig()
	cfg.UI.MainTitle = "Number Tools"
	cfg.UI.Factorial.DialogTitle = "n!"
	cfg.UI.Prime.Description = "Trial division."
	cfg.UI.Theme = "dark"

	m, _ = send(t, m, ConfigReloadedMsg{Config: cfg})
	if !strings.Contains(m.View(), "n!") {
		t.Error("open dialog title not updated")
	}
	if !m.styles.Theme.IsDark {
		t.Error("theme not switched to dark")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Menu().Tooltip(); got != "Trial division." {
		t.Errorf("tooltip = %q", got)
	}
	if !strings.Contains(m.View(), "Number Tools") {
		t.Error("main title not updated")
	}
}

func TestApp_ConfigReloadDropsRenderedHelp(t *testing.T) {
	m := newTestApp()
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = send(t, m, runes("?"))
	_ = m.View()
	if m.renders.Len() != 1 {
		t.Fatalf("expected rendered help to be cached, Len = %d", m.renders.Len())
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = send(t, m, ConfigReloadedMsg{Config: config.DefaultConfig()})
	if m.renders.Len() != 0 {
		t.Errorf("reload kept %d stale renders", m.renders.Len())
	}

	m, _ = send(t, m, ConfigReloadedMsg{Err: errors.New("bad yaml")})
	m, _ = send(t, m, runes("?"))
	_ = m.View()
	m, _ = send(t, m, ConfigReloadedMsg{Err: errors.New("bad yaml")})
	if m.renders.Len() != 1 {
		t.Errorf("failed reload should keep renders, Len = %d", m.renders.Len())
	}
}

func TestApp_ConfigReloadError(t *testing.T) {
	m := newTestApp()
	m, _ = send(t, m, ConfigReloadedMsg{Err: errors.New("bad yaml")})

	if !strings.Contains(m.View(), "Config reload failed: bad yaml") {
		t.Error("reload error not shown")
	}
	if got := m.Menu().Tooltip(); got != "Calculates the factorial of n." {
		t.Errorf("failed reload changed tooltip to %q", got)
	}
}
