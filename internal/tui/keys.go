package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings shared by every screen. Text inputs take
// precedence while focused; these only apply when nothing is being typed.
type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
	Help  key.Binding

	// Editor: notes.
	AddNote    key.Binding
	Edit       key.Binding
	Delete     key.Binding
	ChangeType key.Binding
	Copy       key.Binding

	// Editor: control center.
	ClockIn  key.Binding
	ClockOut key.Binding
	Break    key.Binding

	// Navigation.
	OpenList   key.Binding
	OpenWizard key.Binding
	Logout     key.Binding

	// List page.
	Summary key.Binding
	AddDay  key.Binding
}

var defaultKeyMap = keyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up", "ctrl+p"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down", "ctrl+n"),
		key.WithHelp("j/↓", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	AddNote: key.NewBinding(
		key.WithKeys("a", "n"),
		key.WithHelp("a", "add note"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "delete"),
	),
	ChangeType: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "type"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
	ClockIn: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "clock in"),
	),
	ClockOut: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "clock out"),
	),
	Break: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "break/resume"),
	),
	OpenList: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "weeks"),
	),
	OpenWizard: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "setup"),
	),
	Logout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "log out"),
	),
	Summary: key.NewBinding(
		key.WithKeys("s", "enter"),
		key.WithHelp("s", "summary"),
	),
	AddDay: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add day"),
	),
}

// editorHelp implements help.KeyMap for the editor footer.
type editorHelp struct{ k keyMap }

func (h editorHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.AddNote, h.k.Edit, h.k.Delete, h.k.ClockIn, h.k.Break, h.k.ClockOut, h.k.OpenList, h.k.Help}
}

func (h editorHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Up, h.k.Down, h.k.AddNote, h.k.Edit, h.k.Delete, h.k.ChangeType, h.k.Copy},
		{h.k.ClockIn, h.k.ClockOut, h.k.Break},
		{h.k.OpenList, h.k.OpenWizard, h.k.Logout, h.k.Quit},
	}
}

type listHelp struct{ k keyMap }

func (h listHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Summary, h.k.AddDay, h.k.Back}
}

func (h listHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{{h.k.Up, h.k.Down, h.k.Summary, h.k.AddDay, h.k.Back, h.k.Quit}}
}
