package tui

import (
	"fmt"
	"io"

	"timecard-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// menuDelegate renders one-line menu entries (break drawer, type dropdown).
type menuDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newMenuDelegate() menuDelegate {
	return menuDelegate{
		normal:   lipgloss.NewStyle().Foreground(colorSurfaceFg),
		selected: styleSelected().Bold(true),
	}
}

func (d menuDelegate) Height() int                             { return 1 }
func (d menuDelegate) Spacing() int                            { return 0 }
func (d menuDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d menuDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}
	style := d.normal
	mark := glyphRadioOff()
	if index == m.Index() {
		style = d.selected
		mark = glyphRadioOn()
	}
	txt := fmt.Sprint(item)
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	}
	fmt.Fprint(w, style.Render(fitLine(" "+mark+" "+txt, contentW)))
}

type breakItem struct{ d model.BreakDuration }

func (i breakItem) FilterValue() string { return i.d.Label }
func (i breakItem) Title() string       { return i.d.Label }

type typeItem struct{ t model.NoteType }

func (i typeItem) FilterValue() string { return string(i.t) }
func (i typeItem) Title() string       { return i.t.Label() }

// newMenu builds a small chrome-less list. Esc closes menus, so the list's
// own quit binding is narrowed to nothing the app uses.
func newMenu(items []list.Item, width int) list.Model {
	l := list.New(items, newMenuDelegate(), width, len(items))
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	up := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(up, "ctrl+p")...)
	down := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(down, "ctrl+n")...)
	return l
}

func newBreakMenu(width int) list.Model {
	items := make([]list.Item, 0, len(model.BreakDurations))
	for _, d := range model.BreakDurations {
		items = append(items, breakItem{d: d})
	}
	return newMenu(items, width)
}

func newTypeMenu(current model.NoteType, width int) list.Model {
	items := make([]list.Item, 0, len(model.NoteTypes))
	sel := 0
	for i, t := range model.NoteTypes {
		items = append(items, typeItem{t: t})
		if t == current {
			sel = i
		}
	}
	l := newMenu(items, width)
	l.Select(sel)
	return l
}
