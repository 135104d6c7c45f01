package tui

import (
	"log/slog"
	"time"

	"timecard-cli/internal/model"
	"timecard-cli/internal/notes"
	"timecard-cli/internal/timecard"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type editorAction int

const (
	editorNone editorAction = iota
	editorOpenList
	editorOpenWizard
	editorLogout
)

// editorModel is the home screen. It owns the notes and the clock; the
// notes list and the control center only request changes.
type editorModel struct {
	keys   keyMap
	logger *slog.Logger

	coll    *notes.Collection
	clock   *timecard.Clock
	list    notesList
	control controlCenter

	confirmLogout bool
	confirmFocus  confirmModalFocus

	left, top, width, height int
}

func newEditorModel(keys keyMap, logger *slog.Logger, cellWidth, threshold int) editorModel {
	coll := notes.NewCollection()
	e := editorModel{
		keys:    keys,
		logger:  logger,
		coll:    coll,
		clock:   &timecard.Clock{},
		control: newControlCenter(keys),
	}
	e.list = newNotesList(keys, cellWidth, threshold, coll.NewNote, func(ch notes.Change) {
		coll.Apply(ch)
		logger.Debug("note changed", "kind", ch.Kind.String(), "id", ch.Note.ID)
	})
	return e
}

func (e editorModel) items() []model.NoteItem { return e.coll.Items() }

func (e editorModel) shell() appShell {
	return appShell{
		title: "Home",
		left:  &shellSlot{label: glyphList() + " List"},
		right: &shellSlot{label: glyphLogout() + " Log out"},
	}
}

func (e *editorModel) setLayout(left, top, width, height int) {
	e.left, e.top, e.width, e.height = left, top, width, height
	e.relayout()
}

// relayout pins the control center to the bottom; the drawer grows it.
func (e *editorModel) relayout() {
	ccH := e.control.height()
	listH := e.height - ccH
	if listH < 1 {
		listH = 1
	}
	e.list.setLayout(e.left, e.top, e.width, listH)
	e.control.setLayout(e.left, e.top+listH, e.width)
	e.list.ensureVisible(e.items())
}

func (e *editorModel) apply(req ccRequest, now time.Time) error {
	from := e.clock.Status()
	var err error
	if req.action == timecard.ActionTakeBreak {
		err = e.clock.Break(req.choice, now)
	} else {
		err = e.clock.Apply(req.action, now)
	}
	if err != nil {
		e.logger.Debug("transition rejected", "action", req.action.String(), "status", from.String(), "error", err)
		return err
	}
	attrs := []any{"action", req.action.String(), "from", from.String(), "to", e.clock.Status().String()}
	if req.action == timecard.ActionTakeBreak {
		attrs = append(attrs, "break", req.choice.Label, "seconds", req.choice.Seconds)
	}
	e.logger.Info("status changed", attrs...)
	return nil
}

// leave runs when another screen replaces the editor.
func (e *editorModel) leave() {
	e.list.leave(e.items())
	e.control.closeDrawer()
	e.confirmLogout = false
	e.relayout()
}

func (e *editorModel) confirmDelete(p notes.PendingDelete) {
	e.list.confirmDelete(e.items(), p)
	e.list.clampCursor(e.items())
	e.list.ensureVisible(e.items())
}

func (e *editorModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Cmd, editorAction, bool) {
	if e.confirmLogout {
		switch msg.String() {
		case "esc", "n":
			e.confirmLogout = false
		case "tab", "shift+tab", "left", "right", "h", "l":
			e.confirmFocus = e.confirmFocus.toggle()
		case "y":
			e.confirmLogout = false
			return nil, editorLogout, true
		case "enter":
			e.confirmLogout = false
			if e.confirmFocus == confirmFocusConfirm {
				return nil, editorLogout, true
			}
		}
		return nil, editorNone, true
	}

	if e.control.drawerOpen {
		req, ok, cmd, _ := e.control.handleKey(msg, e.clock.Status())
		if ok {
			_ = e.apply(req, now)
		}
		e.relayout()
		return cmd, editorNone, true
	}

	if cmd, handled := e.list.handleKey(msg, e.items()); handled {
		return cmd, editorNone, true
	}

	if req, ok, cmd, handled := e.control.handleKey(msg, e.clock.Status()); handled {
		if ok {
			_ = e.apply(req, now)
		}
		e.relayout()
		return cmd, editorNone, true
	}

	switch {
	case key.Matches(msg, e.keys.OpenList):
		return nil, editorOpenList, true
	case key.Matches(msg, e.keys.OpenWizard):
		return nil, editorOpenWizard, true
	case key.Matches(msg, e.keys.Logout):
		e.askLogout()
		return nil, editorNone, true
	}
	return nil, editorNone, false
}

func (e *editorModel) askLogout() {
	e.list.blur(e.items())
	e.confirmLogout = true
	e.confirmFocus = confirmFocusCancel
}

func (e *editorModel) handleMouse(msg tea.MouseMsg, now time.Time) tea.Cmd {
	if e.confirmLogout {
		if msg.Action == tea.MouseActionPress {
			e.confirmLogout = false
		}
		return nil
	}
	inControl := msg.Y >= e.control.top
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && (inControl || e.control.drawerOpen) {
		e.list.blur(e.items())
		if req, ok := e.control.handleClick(msg.X, msg.Y, e.clock.Status()); ok {
			_ = e.apply(req, now)
		}
		e.relayout()
		return nil
	}
	if inControl && msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonNone {
		// Leaving the list area counts as leaving the hovered row.
		e.list.hover(e.items(), -1)
		return nil
	}
	return e.list.handleMouse(msg, e.items())
}

func (e editorModel) view(now time.Time) string {
	items := e.items()
	body := e.list.view(items) + "\n" + e.control.view(e.clock, now)
	body = normalizePane(body, e.width, e.height)
	if e.confirmLogout {
		modal := renderConfirmModal(e.width, "Log out?", "Your notes and clock are kept until you quit.", "Log out", "Cancel", e.confirmFocus)
		return normalizePane(placeModal(modal, e.width, e.height), e.width, e.height)
	}
	return body
}
