package tui

import (
	"time"

	"timecard-cli/internal/model"
	"timecard-cli/internal/notes"
	"timecard-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenEditor screen = iota
	screenList
	screenLogin
	screenWizard
)

// clockTickMsg refreshes elapsed time once a second.
type clockTickMsg struct{ at time.Time }

// deleteDoneMsg fires when a swipe-delete animation has run its course.
type deleteDoneMsg struct{ pending notes.PendingDelete }

type navigateMsg struct {
	path    string
	replace bool
}

type loginDoneMsg struct {
	session model.Session
	err     error
}

type logoutDoneMsg struct{ err error }

type configChangedMsg struct{ cfg *store.GlobalConfig }

type configSavedMsg struct {
	cfg *store.GlobalConfig
	err error
}

type watchErrMsg struct{ err error }

func navigateCmd(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}
