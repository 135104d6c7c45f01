package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"timecard-cli/internal/route"
	"timecard-cli/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const minibufferAutoClearAfter = 4 * time.Second

// Options configures the interactive app.
type Options struct {
	Store  store.Store
	Config *store.GlobalConfig
	// ConfigPath is watched for live reloads when set.
	ConfigPath string
	Logger     *slog.Logger
	// StartPath is the first route; empty resumes the last one.
	StartPath string
	// Now is the clock; tests pin it.
	Now func() time.Time
	// SaveConfig persists the wizard's settings. Defaults to store.SaveConfig.
	SaveConfig func(*store.GlobalConfig) error
}

type appModel struct {
	opts   Options
	keys   keyMap
	help   help.Model
	routes *route.Table
	cfg    *store.GlobalConfig
	logger *slog.Logger
	now    func() time.Time
	state  *store.TUIState

	watcher *configWatcher

	path    string
	name    string
	screen  screen
	history []string

	width  int
	height int

	editor editorModel
	weeks  listPage
	login  loginModel
	wizard wizardModel

	minibufferText  string
	minibufferSetAt time.Time

	startCmd tea.Cmd
}

func newAppModel(opts Options) appModel {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Config == nil {
		opts.Config = &store.GlobalConfig{}
	}
	if opts.SaveConfig == nil {
		opts.SaveConfig = store.SaveConfig
	}
	cfg := opts.Config

	st, err := opts.Store.LoadTUIState()
	if err != nil {
		opts.Logger.Warn("load tui state", "error", err)
		st = &store.TUIState{Version: 1}
	}

	m := appModel{
		opts:   opts,
		keys:   defaultKeyMap,
		help:   help.New(),
		routes: route.New(),
		cfg:    cfg,
		logger: opts.Logger,
		now:    opts.Now,
		state:  st,
		width:  80,
		height: 24,
	}
	m.editor = newEditorModel(m.keys, m.logger, cfg.EffectiveCellWidth(), cfg.DeleteThreshold())
	m.weeks = newListPage(m.keys, m.logger)
	m.login = newLoginModel(opts.Store)
	m.wizard = newWizardModel(opts.SaveConfig)
	m.layout()

	start := strings.TrimSpace(opts.StartPath)
	if start == "" {
		start = st.Path
	}
	if start == "" {
		start = route.PathEditor
	}
	if _, err := m.routes.Resolve(start); err != nil {
		m.showMinibuffer(fmt.Sprintf("No screen at %s", start))
		start = route.PathEditor
	}
	m.startCmd = m.navigate(start, false)
	return m
}

func clockTick() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg { return clockTickMsg{at: t} })
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(clockTick(), m.watcher.next(), m.startCmd)
}

func (m *appModel) showMinibuffer(s string) {
	m.minibufferText = s
	m.minibufferSetAt = m.now()
}

// layout splits the terminal into header, body and footer.
func (m *appModel) layout() {
	cw := contentWidth(m.width)
	left := padLeftOf(m.width, cw)
	bodyH := m.height - shellHeaderHeight - m.footerHeight()
	if bodyH < 1 {
		bodyH = 1
	}
	top := shellHeaderHeight
	m.editor.setLayout(left, top, cw, bodyH)
	m.weeks.setLayout(left, top, cw, bodyH)
	m.login.setLayout(left, top, cw)
	m.wizard.setLayout(left, top, cw)
	m.help.Width = cw
}

func (m appModel) footerHeight() int {
	if m.help.ShowAll {
		return strings.Count(m.helpView(), "\n") + 1
	}
	return 1
}

func screenFor(name string) screen {
	switch name {
	case route.List:
		return screenList
	case route.Login:
		return screenLogin
	case route.Wizard, route.WizardHours:
		return screenWizard
	default:
		return screenEditor
	}
}

func (m appModel) loggedIn() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := m.opts.Store.CurrentUser(ctx)
	if err != nil && !errors.Is(err, store.ErrNoSession) {
		m.logger.Warn("current user lookup", "error", err)
	}
	return err == nil
}

// navigate switches to path. push records the current path for Back.
func (m *appModel) navigate(path string, push bool) tea.Cmd {
	name, err := m.routes.Resolve(path)
	if err != nil {
		m.showMinibuffer(fmt.Sprintf("No screen at %s", path))
		return nil
	}
	if name == route.Editor && m.cfg.RequireLogin && !m.loggedIn() {
		m.logger.Info("login required", "from", path)
		path, name = route.PathLogin, route.Login
	}
	if canon, err := m.routes.Path(name); err == nil {
		path = canon
	}

	next := screenFor(name)
	if m.path != "" && m.screen == screenEditor && next != screenEditor {
		m.editor.leave()
	}
	if m.screen == screenList && m.path != "" {
		m.state.ListWeek = m.weeks.selectedWeek() + 1
	}
	if push && m.path != "" && m.path != path {
		m.history = append(m.history, m.path)
	}
	m.path, m.name, m.screen = path, name, next
	m.logger.Debug("navigate", "path", path, "route", name)

	var cmd tea.Cmd
	switch next {
	case screenList:
		m.weeks.refresh(m.now(), m.cfg.EffectiveHoursPerDay(), m.state.ListWeek-1)
	case screenLogin:
		cmd = m.login.reset()
	case screenWizard:
		cmd = m.wizard.enter(name, m.cfg)
	}
	m.saveState()
	return cmd
}

func (m *appModel) back() tea.Cmd {
	if len(m.history) == 0 {
		return nil
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return m.navigate(prev, false)
}

func (m *appModel) saveState() {
	if m.path == route.PathLogin {
		return
	}
	m.state.Path = m.path
	if err := m.opts.Store.SaveTUIState(m.state); err != nil {
		m.logger.Warn("save tui state", "error", err)
	}
}

func (m *appModel) applyConfig(cfg *store.GlobalConfig) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	if cfg.TUI != nil {
		applyThemePreference(cfg.TUI.Theme)
		applyGlyphPreference(cfg.TUI.Glyphs)
	}
	m.editor.list.cellWidth = cfg.EffectiveCellWidth()
	m.editor.list.gestures.Threshold = cfg.DeleteThreshold()
	if m.screen == screenList {
		m.weeks.refresh(m.now(), cfg.EffectiveHoursPerDay(), m.weeks.selectedWeek())
	}
}

func (m appModel) logoutCmd() tea.Cmd {
	s := m.opts.Store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return logoutDoneMsg{err: s.Logout(ctx)}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case clockTickMsg:
		if m.minibufferText != "" && m.now().Sub(m.minibufferSetAt) >= minibufferAutoClearAfter {
			m.minibufferText = ""
		}
		return m, clockTick()

	case deleteDoneMsg:
		// Stale tokens are ignored by the gestures, including after a leave.
		m.editor.confirmDelete(msg.pending)
		return m, nil

	case navigateMsg:
		cmd := m.navigate(msg.path, !msg.replace)
		return m, cmd

	case loginDoneMsg:
		if m.login.done(msg) {
			m.logger.Info("logged in", "user", msg.session.UserID)
			m.history = nil
			cmd := m.navigate(route.PathEditor, false)
			return m, cmd
		}
		return m, nil

	case logoutDoneMsg:
		if msg.err != nil {
			m.showMinibuffer("Logout failed: " + msg.err.Error())
			return m, nil
		}
		m.logger.Info("logged out")
		m.history = nil
		cmd := m.navigate(route.PathLogin, false)
		return m, cmd

	case configSavedMsg:
		if msg.err != nil {
			m.showMinibuffer("Could not save settings: " + msg.err.Error())
			return m, nil
		}
		m.applyConfig(msg.cfg)
		m.showMinibuffer(fmt.Sprintf("Saved: %s per day", hoursText(msg.cfg.EffectiveHoursPerDay())))
		m.history = nil
		cmd := m.navigate(route.PathList, false)
		return m, cmd

	case configChangedMsg:
		m.applyConfig(msg.cfg)
		m.showMinibuffer("Config reloaded")
		return m, m.watcher.next()

	case watchErrMsg:
		m.showMinibuffer("Config: " + msg.err.Error())
		return m, m.watcher.next()

	case clipboardDoneMsg:
		if msg.err != nil {
			m.showMinibuffer("Copy failed: " + msg.err.Error())
		} else {
			m.showMinibuffer("Copied")
		}
		return m, nil

	case clipboardFadeMsg:
		if m.minibufferText == "Copied" {
			m.minibufferText = ""
		}
		return m, nil

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other component messages go to the focused inputs.
	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m *appModel) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.screen {
	case screenEditor:
		if m.editor.list.editing {
			m.editor.list.input, cmd = m.editor.list.input.Update(msg)
		}
	case screenLogin:
		var c1, c2 tea.Cmd
		m.login.username, c1 = m.login.username.Update(msg)
		m.login.password, c2 = m.login.password.Update(msg)
		cmd = tea.Batch(c1, c2)
	case screenWizard:
		m.wizard.hours, cmd = m.wizard.hours.Update(msg)
	case screenList:
		if m.weeks.addDayOpen {
			var c1, c2 tea.Cmd
			m.weeks.addDay.date, c1 = m.weeks.addDay.date.Update(msg)
			m.weeks.addDay.hours, c2 = m.weeks.addDay.hours.Update(msg)
			cmd = tea.Batch(c1, c2)
		}
	}
	return cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	m.minibufferText = ""

	var (
		cmd     tea.Cmd
		handled bool
	)
	switch m.screen {
	case screenEditor:
		var act editorAction
		cmd, act, handled = m.editor.handleKey(msg, m.now())
		switch act {
		case editorOpenList:
			cmd := m.navigate(route.PathList, true)
			return m, cmd
		case editorOpenWizard:
			cmd := m.navigate(route.PathWizard, true)
			return m, cmd
		case editorLogout:
			return m, m.logoutCmd()
		}
	case screenList:
		cmd, handled = m.weeks.handleKey(msg)
	case screenLogin:
		cmd, handled = m.login.handleKey(msg)
	case screenWizard:
		cmd, handled = m.wizard.handleKey(msg, m.cfg)
	}
	if handled {
		m.layout()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		cmd := m.back()
		return m, cmd
	}
	return m, nil
}

func (m *appModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Y < shellHeaderHeight {
		if msg.Y != 0 || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		cw := contentWidth(m.width)
		switch m.currentShell().hit(msg.X-padLeftOf(m.width, cw), cw) {
		case shellHitBack:
			return m.back()
		case shellHitLeft:
			if m.screen == screenEditor {
				return m.navigate(route.PathList, true)
			}
		case shellHitRight:
			if m.screen == screenEditor {
				m.editor.askLogout()
			}
		}
		return nil
	}
	switch m.screen {
	case screenEditor:
		return m.editor.handleMouse(msg, m.now())
	case screenList:
		return m.weeks.handleMouse(msg)
	case screenLogin:
		return m.login.handleMouse(msg)
	case screenWizard:
		return m.wizard.handleMouse(msg, m.cfg)
	}
	return nil
}

func (m appModel) currentShell() appShell {
	var sh appShell
	switch m.screen {
	case screenEditor:
		sh = m.editor.shell()
	case screenList:
		sh = appShell{title: "List"}
	case screenLogin:
		sh = appShell{title: "Login"}
	case screenWizard:
		sh = appShell{title: "Setup"}
	}
	sh.canGoBack = len(m.history) > 0
	return sh
}

func (m appModel) helpView() string {
	if m.screen == screenList {
		return m.help.View(listHelp{k: m.keys})
	}
	return m.help.View(editorHelp{k: m.keys})
}

func (m appModel) View() string {
	cw := contentWidth(m.width)
	bodyH := m.height - shellHeaderHeight - m.footerHeight()
	if bodyH < 1 {
		bodyH = 1
	}

	var body string
	switch m.screen {
	case screenEditor:
		body = m.editor.view(m.now())
	case screenList:
		body = m.weeks.view()
	case screenLogin:
		body = m.login.view()
	case screenWizard:
		body = m.wizard.view()
	}

	footer := m.helpView()
	if m.minibufferText != "" {
		footer = styleMuted().Render(m.minibufferText)
	}
	page := strings.Join([]string{
		m.currentShell().render(cw),
		normalizePane(body, cw, bodyH),
		normalizePane(footer, cw, m.footerHeight()),
	}, "\n")
	return indent(page, padLeftOf(m.width, cw))
}

func hoursText(h float64) string {
	if h == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%g hours", h)
}
