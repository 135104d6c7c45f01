package tui

import (
	"context"
	"testing"
	"time"

	"timecard-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

var testNow = time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, opts Options) appModel {
	t.Helper()
	t.Setenv("TIMECARD_CONFIG_DIR", t.TempDir())
	t.Setenv("TIMECARD_TUI_THEME", "dark")
	if opts.Store.Dir == "" {
		opts.Store = store.Store{Dir: t.TempDir()}
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	if opts.StartPath == "" {
		opts.StartPath = "/"
	}
	m := newAppModel(opts)
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return mm.(appModel)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msgs through Update and returns the model plus the last cmd.
func send(t *testing.T, m appModel, msgs ...tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var mm tea.Model
		mm, cmd = m.Update(msg)
		m = mm.(appModel)
	}
	return m, cmd
}

func TestNewAppModel_StartsOnEditor(t *testing.T) {
	m := newTestApp(t, Options{})
	if m.path != "/" || m.screen != screenEditor {
		t.Fatalf("expected editor at /, got path=%q screen=%v", m.path, m.screen)
	}
	if len(m.history) != 0 {
		t.Fatalf("expected empty history, got %v", m.history)
	}
}

func TestNewAppModel_ResumesLastPath(t *testing.T) {
	dir := t.TempDir()
	s := store.Store{Dir: dir}
	if err := s.SaveTUIState(&store.TUIState{Path: "/list"}); err != nil {
		t.Fatalf("save state: %v", err)
	}
	t.Setenv("TIMECARD_CONFIG_DIR", t.TempDir())
	m := newAppModel(Options{Store: s, Now: func() time.Time { return testNow }})
	if m.path != "/list" || m.screen != screenList {
		t.Fatalf("expected to resume /list, got %q", m.path)
	}
}

func TestNavigate_ListAndBack(t *testing.T) {
	m := newTestApp(t, Options{})

	m, _ = send(t, m, keyMsg("l"))
	if m.path != "/list" || m.screen != screenList {
		t.Fatalf("expected /list, got %q", m.path)
	}
	if len(m.history) != 1 || m.history[0] != "/" {
		t.Fatalf("expected history [/], got %v", m.history)
	}
	if !m.currentShell().canGoBack {
		t.Fatalf("expected back button on the list screen")
	}

	m, _ = send(t, m, keyMsg("esc"))
	if m.path != "/" {
		t.Fatalf("expected back to /, got %q", m.path)
	}
	if len(m.history) != 0 {
		t.Fatalf("expected history to pop, got %v", m.history)
	}

	st, err := m.opts.Store.LoadTUIState()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if st.Path != "/" {
		t.Fatalf("expected last path to be persisted, got %q", st.Path)
	}
}

func TestNavigate_UnknownPathShowsMinibuffer(t *testing.T) {
	m := newTestApp(t, Options{})
	m, _ = send(t, m, navigateMsg{path: "/nope"})
	if m.path != "/" {
		t.Fatalf("expected to stay on /, got %q", m.path)
	}
	if m.minibufferText == "" {
		t.Fatalf("expected a minibuffer message for an unknown path")
	}
}

func TestNavigate_NestedWizardPath(t *testing.T) {
	m := newTestApp(t, Options{})
	m, _ = send(t, m, navigateMsg{path: "/wizard/hours/"})
	if m.screen != screenWizard || m.wizard.step != "wizard.hours" {
		t.Fatalf("expected wizard hours step, got screen=%v step=%q", m.screen, m.wizard.step)
	}
	if m.path != "/wizard/hours" {
		t.Fatalf("expected canonical path, got %q", m.path)
	}
}

func TestHeaderClick_LeftSlotOpensList(t *testing.T) {
	m := newTestApp(t, Options{})
	left := padLeftOf(m.width, contentWidth(m.width))
	m, _ = send(t, m, tea.MouseMsg{X: left + 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.path != "/list" {
		t.Fatalf("expected header left slot to open /list, got %q", m.path)
	}

	m, _ = send(t, m, tea.MouseMsg{X: left + 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.path != "/" {
		t.Fatalf("expected header back button to return to /, got %q", m.path)
	}
}

func TestUpdate_ClockTickAutoClearsMinibuffer(t *testing.T) {
	m := newTestApp(t, Options{})

	(&m).showMinibuffer("Hello")
	m.minibufferSetAt = testNow.Add(-minibufferAutoClearAfter - 100*time.Millisecond)

	m, cmd := send(t, m, clockTickMsg{at: testNow})
	if got := m.minibufferText; got != "" {
		t.Fatalf("expected minibuffer text to clear, got %q", got)
	}
	if cmd == nil {
		t.Fatalf("expected the clock tick to be rescheduled")
	}
}

func TestUpdate_ClockTickKeepsRecentMinibuffer(t *testing.T) {
	m := newTestApp(t, Options{})

	(&m).showMinibuffer("Hello")
	m, _ = send(t, m, clockTickMsg{at: testNow})
	if got := m.minibufferText; got == "" {
		t.Fatalf("expected minibuffer text to remain set")
	}
}

func TestLoginGuard_RedirectsAndLogsIn(t *testing.T) {
	s := store.Store{Dir: t.TempDir()}
	if _, err := s.CreateUser(context.Background(), "ada", "correct horse"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	m := newTestApp(t, Options{Store: s, Config: &store.GlobalConfig{RequireLogin: true}})
	if m.path != "/login" || m.screen != screenLogin {
		t.Fatalf("expected redirect to /login, got %q", m.path)
	}

	m.login.username.SetValue("ada")
	m.login.password.SetValue("wrong password")
	m.login.setFocus(loginFocusPassword)
	m, cmd := send(t, m, keyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected a login command")
	}
	m, _ = send(t, m, cmd())
	if m.path != "/login" {
		t.Fatalf("expected to stay on /login after bad password, got %q", m.path)
	}
	if m.login.err != "Invalid username or password." {
		t.Fatalf("unexpected login error %q", m.login.err)
	}

	m.login.password.SetValue("correct horse")
	m, cmd = send(t, m, keyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected a login command")
	}
	m, _ = send(t, m, cmd())
	if m.path != "/" || m.screen != screenEditor {
		t.Fatalf("expected editor after login, got %q", m.path)
	}
	if len(m.history) != 0 {
		t.Fatalf("expected login to reset history, got %v", m.history)
	}
}

func TestLoginGuard_OffByDefault(t *testing.T) {
	m := newTestApp(t, Options{})
	if m.path != "/" {
		t.Fatalf("expected editor without a session when login is not required, got %q", m.path)
	}
}

func TestLogout_ConfirmThenNavigatesToLogin(t *testing.T) {
	m := newTestApp(t, Options{})
	m, _ = send(t, m, keyMsg("L"))
	if !m.editor.confirmLogout {
		t.Fatalf("expected logout confirmation")
	}
	m, cmd := send(t, m, keyMsg("y"))
	if cmd == nil {
		t.Fatalf("expected a logout command")
	}
	m, _ = send(t, m, cmd())
	if m.path != "/login" {
		t.Fatalf("expected /login after logout, got %q", m.path)
	}
}

func TestWizard_SavesHoursPerDay(t *testing.T) {
	var saved *store.GlobalConfig
	m := newTestApp(t, Options{SaveConfig: func(cfg *store.GlobalConfig) error {
		saved = cfg
		return nil
	}})

	m, _ = send(t, m, keyMsg("w"))
	if m.path != "/wizard" {
		t.Fatalf("expected /wizard, got %q", m.path)
	}
	m, cmd := send(t, m, keyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected navigation to the hours step")
	}
	m, _ = send(t, m, cmd())
	if m.path != "/wizard/hours" {
		t.Fatalf("expected /wizard/hours, got %q", m.path)
	}
	if got := m.wizard.hours.Value(); got != "8" {
		t.Fatalf("expected default hours seeded, got %q", got)
	}

	m.wizard.hours.SetValue("30")
	m, cmd = send(t, m, keyMsg("enter"))
	if cmd != nil || m.wizard.field.err == "" {
		t.Fatalf("expected validation error for 30 hours")
	}

	m.wizard.hours.SetValue("7.5")
	m, cmd = send(t, m, keyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected a save command")
	}
	m, _ = send(t, m, cmd())
	if saved == nil || saved.HoursPerDay != 7.5 {
		t.Fatalf("expected 7.5 hours saved, got %+v", saved)
	}
	if m.cfg.EffectiveHoursPerDay() != 7.5 {
		t.Fatalf("expected live config to update, got %v", m.cfg.EffectiveHoursPerDay())
	}
	if m.path != "/list" {
		t.Fatalf("expected the week list after saving, got %q", m.path)
	}
	if got := m.weeks.weeks[0].Days[0].Hours; got != 7.5 {
		t.Fatalf("expected weeks to use the new target, got %v", got)
	}
}

func TestConfigChanged_AppliesThreshold(t *testing.T) {
	m := newTestApp(t, Options{})
	m, _ = send(t, m, configChangedMsg{cfg: &store.GlobalConfig{TUI: &store.TUIConfig{CellWidth: 8, DeleteThreshold: 120}}})
	if m.editor.list.cellWidth != 8 {
		t.Fatalf("expected cell width 8, got %d", m.editor.list.cellWidth)
	}
	if got := m.editor.list.gestures.Distance(); got != 120 {
		t.Fatalf("expected threshold 120, got %d", got)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestApp(t, Options{})
	if _, cmd := send(t, m, keyMsg("q")); cmd == nil {
		t.Fatalf("expected q to quit")
	} else if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg from q")
	}

	m, _ = send(t, m, keyMsg("a"))
	m, cmd := send(t, m, keyMsg("q"))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatalf("q must type into the focused row, not quit")
		}
	}
	if got := m.editor.list.input.Value(); got != "q" {
		t.Fatalf("expected q in the field, got %q", got)
	}
}

func TestView_FitsTerminal(t *testing.T) {
	m := newTestApp(t, Options{})
	out := m.View()
	if out == "" {
		t.Fatalf("expected a view")
	}
	lines := 1
	for _, r := range out {
		if r == '\n' {
			lines++
		}
	}
	if lines != m.height {
		t.Fatalf("expected %d lines, got %d", m.height, lines)
	}
}
