package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"timecard-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginFocus int

const (
	loginFocusUser loginFocus = iota
	loginFocusPassword
	loginFocusSubmit
	loginFocusCount
)

// Lines above each control on the login body.
const (
	loginUserLine     = 2
	loginPasswordLine = loginUserLine + formFieldHeight
	loginSubmitLine   = loginPasswordLine + formFieldHeight
)

type loginModel struct {
	store    store.Store
	username textinput.Model
	password textinput.Model
	focus    loginFocus
	pending  bool
	err      string

	left, top, width int
}

func newLoginModel(s store.Store) loginModel {
	u := textinput.New()
	u.Prompt = ""
	u.Placeholder = "username"
	u.CharLimit = 64

	p := textinput.New()
	p.Prompt = ""
	p.Placeholder = "password"
	p.EchoMode = textinput.EchoPassword
	p.EchoCharacter = '•'
	p.CharLimit = 128

	return loginModel{store: s, username: u, password: p, width: minContentW}
}

func (m *loginModel) setLayout(left, top, width int) {
	m.left, m.top, m.width = left, top, width
	m.username.Width = width - 4
	m.password.Width = width - 4
}

// reset clears the form when the screen is entered.
func (m *loginModel) reset() tea.Cmd {
	m.username.SetValue("")
	m.password.SetValue("")
	m.err = ""
	m.pending = false
	return m.setFocus(loginFocusUser)
}

func (m *loginModel) setFocus(f loginFocus) tea.Cmd {
	m.focus = (f + loginFocusCount) % loginFocusCount
	m.username.Blur()
	m.password.Blur()
	switch m.focus {
	case loginFocusUser:
		return m.username.Focus()
	case loginFocusPassword:
		return m.password.Focus()
	}
	return nil
}

func (m *loginModel) submit() tea.Cmd {
	if m.pending {
		return nil
	}
	user := strings.TrimSpace(m.username.Value())
	pass := m.password.Value()
	if user == "" || pass == "" {
		m.err = "Enter your username and password."
		return nil
	}
	m.pending = true
	m.err = ""
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		sess, err := s.Login(ctx, user, pass)
		return loginDoneMsg{session: sess, err: err}
	}
}

// done records the outcome and reports whether the login succeeded.
func (m *loginModel) done(msg loginDoneMsg) bool {
	m.pending = false
	switch {
	case msg.err == nil:
		m.password.SetValue("")
		return true
	case errors.Is(msg.err, store.ErrInvalidCredentials):
		m.err = "Invalid username or password."
	default:
		m.err = msg.err.Error()
	}
	m.password.SetValue("")
	m.setFocus(loginFocusPassword)
	return false
}

func (m *loginModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "down":
		return m.setFocus(m.focus + 1), true
	case "shift+tab", "up":
		return m.setFocus(m.focus - 1), true
	case "enter":
		if m.focus == loginFocusUser {
			return m.setFocus(loginFocusPassword), true
		}
		return m.submit(), true
	case "esc":
		return nil, false
	}
	var cmd tea.Cmd
	switch m.focus {
	case loginFocusUser:
		m.username, cmd = m.username.Update(msg)
	case loginFocusPassword:
		m.password, cmd = m.password.Update(msg)
	default:
		return nil, false
	}
	return cmd, true
}

func (m *loginModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	switch y := msg.Y - m.top; {
	case y >= loginUserLine && y < loginPasswordLine:
		return m.setFocus(loginFocusUser)
	case y >= loginPasswordLine && y < loginSubmitLine:
		return m.setFocus(loginFocusPassword)
	case y == loginSubmitLine:
		m.setFocus(loginFocusSubmit)
		return m.submit()
	}
	return nil
}

func (m loginModel) view() string {
	bodyW := m.width - 2
	user := formField{label: "Username"}
	pass := formField{label: "Password"}
	submitLabel := "Log in"
	if m.pending {
		submitLabel = "Logging in…"
	}
	focused := -1
	if m.focus == loginFocusSubmit {
		focused = 0
	}
	errLine := ""
	if m.err != "" {
		errLine = lipgloss.NewStyle().Foreground(colorDangerFg).Render(m.err)
	}
	return strings.Join([]string{
		styleMuted().Render("Sign in to continue."),
		"",
		user.render(bodyW, m.username.View(), m.focus == loginFocusUser),
		pass.render(bodyW, m.password.View(), m.focus == loginFocusPassword),
		renderButtons([]string{submitLabel}, focused),
		"",
		errLine,
	}, "\n")
}
