package tui

import (
	"strings"
	"time"

	"timecard-cli/internal/model"
	"timecard-cli/internal/notes"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// addRowID marks the trailing "add" row, which has no note behind it.
const addRowID = -1

type rowPress struct {
	id    int
	x     int
	zone  rowZone
	moved bool
}

// listLine is one rendered line of the notes list: a row, or an entry of the
// type dropdown opened under a row.
type listLine struct {
	row  int
	menu int // -1 for row lines
}

// notesList renders the rows and turns keys and mouse gestures into
// created/updated/deleted changes. It never mutates notes itself.
type notesList struct {
	keys      keyMap
	gestures  notes.Gestures
	cellWidth int

	cursor  int
	input   textinput.Model
	editing bool
	editID  int
	seed    string

	typeMenu   list.Model
	typeMenuOn bool
	typeMenuID int

	press    *rowPress
	hoverID  int
	hovering bool

	left, top     int
	width, height int
	scroll        int

	newNote  func(text string) model.NoteItem
	onChange func(notes.Change)
}

func newNotesList(keys keyMap, cellWidth, threshold int, newNote func(string) model.NoteItem, onChange func(notes.Change)) notesList {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "Add a note…"
	in.CharLimit = 500
	if cellWidth <= 0 {
		cellWidth = 10
	}
	l := notesList{
		keys:      keys,
		cellWidth: cellWidth,
		input:     in,
		editID:    addRowID,
		newNote:   newNote,
		onChange:  onChange,
		width:     minContentW,
		height:    10,
	}
	l.gestures.Threshold = threshold
	return l
}

func (l *notesList) setLayout(left, top, width, height int) {
	l.left, l.top = left, top
	l.width = width
	if height < 1 {
		height = 1
	}
	l.height = height
	l.input.Width = width - rowBadgeW - rowActionsW - 2
}

func (l *notesList) emit(ch notes.Change) {
	if l.onChange != nil {
		l.onChange(ch)
	}
}

func rowIDAt(items []model.NoteItem, idx int) (int, bool) {
	if idx < 0 || idx >= len(items) {
		return 0, false
	}
	return items[idx].ID, true
}

func indexOf(items []model.NoteItem, id int) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (l *notesList) isFocused(id int) bool { return l.editing && l.editID == id }

func (l *notesList) clampCursor(items []model.NoteItem) {
	if l.cursor > len(items) {
		l.cursor = len(items)
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// syncActive mirrors the keyboard cursor onto the active row, the way a
// pointer resting on a row would.
func (l *notesList) syncActive(items []model.NoteItem) {
	if _, dragging := l.gestures.DragOffset(); dragging {
		return
	}
	if id, ok := rowIDAt(items, l.cursor); ok {
		if !l.gestures.IsDeleting(id) {
			l.gestures.Activate(id)
		}
		return
	}
	l.gestures.Reset()
}

func (l *notesList) moveCursor(items []model.NoteItem, delta int) {
	l.cursor += delta
	l.clampCursor(items)
	l.syncActive(items)
	l.ensureVisible(items)
}

func (l *notesList) ensureVisible(items []model.NoteItem) {
	lines := l.lines(items)
	at := 0
	for i, ln := range lines {
		if ln.row == l.cursor && ln.menu < 0 {
			at = i
			break
		}
	}
	if at < l.scroll {
		l.scroll = at
	}
	if at >= l.scroll+l.height {
		l.scroll = at - l.height + 1
	}
	if max := len(lines) - l.height; l.scroll > max {
		l.scroll = max
	}
	if l.scroll < 0 {
		l.scroll = 0
	}
}

// focusRow puts the cursor row's field into text entry.
func (l *notesList) focusRow(items []model.NoteItem, idx int) tea.Cmd {
	l.cursor = idx
	l.clampCursor(items)
	id := addRowID
	seed := ""
	if it := l.cursor; it < len(items) {
		id = items[it].ID
		seed = items[it].Text
		if l.gestures.IsDeleting(id) || l.gestures.InputDisabled(id) {
			return nil
		}
	}
	if l.editing && l.editID != id {
		l.blur(items)
	}
	l.editing = true
	l.editID = id
	l.seed = seed
	l.input.SetValue(seed)
	l.input.CursorEnd()
	l.ensureVisible(items)
	return l.input.Focus()
}

// commit applies the inline-edit rules to the field and reports upward.
func (l *notesList) commit(items []model.NoteItem, via notes.CommitVia) notes.CommitResult {
	res := notes.Commit(l.seed, l.input.Value(), via)
	if res.Accepted {
		if l.editID == addRowID {
			if l.newNote != nil {
				l.emit(notes.Change{Kind: notes.Created, Note: l.newNote(res.Text)})
			}
		} else if i := indexOf(items, l.editID); i >= 0 {
			it := items[i]
			it.Text = res.Text
			l.emit(notes.Change{Kind: notes.Updated, Note: it})
			l.seed = res.Text
		}
	}
	l.input.SetValue(res.Field)
	return res
}

// blur is the loss-of-focus commit path.
func (l *notesList) blur(items []model.NoteItem) {
	if !l.editing {
		return
	}
	l.commit(items, notes.CommitBlur)
	l.input.Blur()
	l.editing = false
	l.seed = ""
}

// leave is called when the editor goes away: pending deletes must not fire
// against a list that is no longer shown.
func (l *notesList) leave(items []model.NoteItem) {
	l.blur(items)
	l.gestures.Cancel()
	l.press = nil
	l.hovering = false
	l.typeMenuOn = false
}

func scheduleDelete(p notes.PendingDelete) tea.Cmd {
	return tea.Tick(notes.DeleteDelay, func(time.Time) tea.Msg { return deleteDoneMsg{pending: p} })
}

// swipeOut runs a full-distance swipe on id, as if dragged off screen.
func (l *notesList) swipeOut(id int) tea.Cmd {
	if l.gestures.IsDeleting(id) {
		return nil
	}
	if !l.gestures.SwipeStart(notes.Row(id)) {
		return nil
	}
	d := -l.gestures.Distance()
	l.gestures.Swiping(d)
	if p, ok := l.gestures.SwipeEnd(d); ok {
		return scheduleDelete(p)
	}
	return nil
}

func (l *notesList) confirmDelete(items []model.NoteItem, p notes.PendingDelete) {
	id, ok := l.gestures.ConfirmDelete(p)
	if !ok {
		return
	}
	note := model.NoteItem{ID: id}
	if i := indexOf(items, id); i >= 0 {
		note = items[i]
	}
	if l.isFocused(id) {
		l.input.Blur()
		l.editing = false
	}
	if l.typeMenuOn && l.typeMenuID == id {
		l.typeMenuOn = false
	}
	l.emit(notes.Change{Kind: notes.Deleted, Note: note})
}

func (l *notesList) openTypeMenu(items []model.NoteItem, id int) {
	i := indexOf(items, id)
	if i < 0 || l.gestures.IsDeleting(id) {
		return
	}
	l.typeMenu = newTypeMenu(items[i].Type, rowTypeActionW+4)
	l.typeMenuOn = true
	l.typeMenuID = id
}

func (l *notesList) chooseType(items []model.NoteItem, t model.NoteType) {
	l.typeMenuOn = false
	i := indexOf(items, l.typeMenuID)
	if i < 0 || items[i].Type == t {
		return
	}
	it := items[i]
	it.Type = t
	l.emit(notes.Change{Kind: notes.Updated, Note: it})
}

func (l *notesList) copyRow(items []model.NoteItem, id int) tea.Cmd {
	if i := indexOf(items, id); i >= 0 {
		return copyToClipboard(items[i].Text)
	}
	return nil
}

// handleKey reports whether the list consumed msg.
func (l *notesList) handleKey(msg tea.KeyMsg, items []model.NoteItem) (tea.Cmd, bool) {
	if l.typeMenuOn {
		switch msg.String() {
		case "esc":
			l.typeMenuOn = false
		case "enter":
			if it, ok := l.typeMenu.SelectedItem().(typeItem); ok {
				l.chooseType(items, it.t)
			}
		default:
			var cmd tea.Cmd
			l.typeMenu, cmd = l.typeMenu.Update(msg)
			return cmd, true
		}
		return nil, true
	}

	if l.editing {
		switch msg.String() {
		case "enter":
			res := l.commit(items, notes.CommitEnter)
			if res.Accepted && l.editID != addRowID {
				l.input.Blur()
				l.editing = false
				l.seed = ""
			}
			if l.editID == addRowID {
				l.cursor = len(items) + boolInt(res.Accepted)
				l.ensureVisible(items)
			}
			return nil, true
		case "esc", "tab", "shift+tab":
			l.blur(items)
			return nil, true
		case "up", "down":
			l.blur(items)
			if msg.String() == "up" {
				l.moveCursor(items, -1)
			} else {
				l.moveCursor(items, 1)
			}
			return nil, true
		}
		var cmd tea.Cmd
		l.input, cmd = l.input.Update(msg)
		return cmd, true
	}

	switch {
	case key.Matches(msg, l.keys.Up):
		l.moveCursor(items, -1)
	case key.Matches(msg, l.keys.Down):
		l.moveCursor(items, 1)
	case key.Matches(msg, l.keys.AddNote):
		return l.focusRow(items, len(items)), true
	case key.Matches(msg, l.keys.Edit):
		return l.focusRow(items, l.cursor), true
	case key.Matches(msg, l.keys.Delete):
		if id, ok := rowIDAt(items, l.cursor); ok {
			return l.swipeOut(id), true
		}
	case key.Matches(msg, l.keys.ChangeType):
		if id, ok := rowIDAt(items, l.cursor); ok {
			l.openTypeMenu(items, id)
		}
	case key.Matches(msg, l.keys.Copy):
		if id, ok := rowIDAt(items, l.cursor); ok {
			return l.copyRow(items, id), true
		}
	default:
		return nil, false
	}
	return nil, true
}

// lines lays out rows plus the open dropdown, before scrolling.
func (l *notesList) lines(items []model.NoteItem) []listLine {
	out := make([]listLine, 0, len(items)+1+len(model.NoteTypes))
	for i := 0; i <= len(items); i++ {
		out = append(out, listLine{row: i, menu: -1})
		if l.typeMenuOn && i < len(items) && items[i].ID == l.typeMenuID {
			for j := range model.NoteTypes {
				out = append(out, listLine{row: i, menu: j})
			}
		}
	}
	return out
}

func (l *notesList) lineAt(items []model.NoteItem, y int) (listLine, bool) {
	y -= l.top
	if y < 0 || y >= l.height {
		return listLine{}, false
	}
	lines := l.lines(items)
	y += l.scroll
	if y >= len(lines) {
		return listLine{}, false
	}
	return lines[y], true
}

// resolverAt is the row capability for a pointer position.
func (l *notesList) resolverAt(items []model.NoteItem, y int) notes.RowResolver {
	ln, ok := l.lineAt(items, y)
	if !ok || ln.menu >= 0 {
		return notes.NoRow
	}
	return notes.RowIDFunc(func() (int, bool) { return rowIDAt(items, ln.row) })
}

func (l *notesList) handleMouse(msg tea.MouseMsg, items []model.NoteItem) tea.Cmd {
	x := msg.X - l.left

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if l.scroll > 0 {
			l.scroll--
		}
		return nil
	case tea.MouseButtonWheelDown:
		if l.scroll < len(l.lines(items))-l.height {
			l.scroll++
		}
		return nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft && l.press != nil {
			l.drag(x)
			return nil
		}
		if msg.Button == tea.MouseButtonNone {
			l.hover(items, msg.Y)
		}
		return nil

	case tea.MouseActionRelease:
		return l.release(items)

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return l.pressAt(items, x, msg.Y)
	}
	return nil
}

func (l *notesList) hover(items []model.NoteItem, y int) {
	id, ok := l.resolverAt(items, y).RowID()
	if l.hovering && (!ok || id != l.hoverID) {
		l.gestures.PointerLeave(l.hoverID, l.isFocused(l.hoverID))
		l.hovering = false
	}
	if ok && !l.hovering {
		l.gestures.PointerEnter(id, l.editing)
		l.hoverID = id
		l.hovering = true
	}
}

func (l *notesList) pressAt(items []model.NoteItem, x, y int) tea.Cmd {
	ln, ok := l.lineAt(items, y)
	if l.typeMenuOn {
		if ok && ln.menu >= 0 {
			l.chooseType(items, model.NoteTypes[ln.menu])
			return nil
		}
		l.typeMenuOn = false
	}
	if !ok {
		l.blur(items)
		return nil
	}
	if ln.row == len(items) {
		return l.focusRow(items, ln.row)
	}

	id := items[ln.row].ID
	if l.gestures.IsDeleting(id) {
		return nil
	}
	row := noteRow{add: false, showActions: l.gestures.ShowActions(id)}
	zone := row.zoneAt(x, l.width)
	switch zone {
	case zoneType:
		l.openTypeMenu(items, id)
		return nil
	case zoneCopy:
		return l.copyRow(items, id)
	}
	if l.editing && l.editID != id {
		l.blur(items)
	}
	if l.isFocused(id) {
		return nil
	}
	if !l.gestures.SwipeStart(l.resolverAt(items, y)) {
		return nil
	}
	l.cursor = ln.row
	l.press = &rowPress{id: id, x: x, zone: zone}
	return nil
}

func (l *notesList) drag(x int) {
	p := l.press
	if !l.gestures.IsActive(p.id) {
		return
	}
	dx := (x - p.x) * l.cellWidth
	if dx != 0 {
		p.moved = true
	}
	if p.moved {
		l.gestures.Swiping(dx)
	}
}

func (l *notesList) release(items []model.NoteItem) tea.Cmd {
	p := l.press
	l.press = nil
	if p == nil {
		return nil
	}
	if p.moved {
		off, _ := l.gestures.DragOffset()
		if pd, ok := l.gestures.SwipeEnd(off); ok {
			return scheduleDelete(pd)
		}
		return nil
	}
	// A press without movement is a click on the field.
	if p.zone == zoneText {
		if i := indexOf(items, p.id); i >= 0 {
			return l.focusRow(items, i)
		}
	}
	return nil
}

func (l *notesList) view(items []model.NoteItem) string {
	lines := l.lines(items)
	end := l.scroll + l.height
	if end > len(lines) {
		end = len(lines)
	}
	threshold := l.gestures.Distance()
	out := make([]string, 0, l.height)
	for _, ln := range lines[l.scroll:end] {
		if ln.menu >= 0 {
			out = append(out, l.menuLine(ln.menu))
			continue
		}
		out = append(out, l.rowView(items, ln.row, threshold).render(l.width))
	}
	return normalizePane(strings.Join(out, "\n"), l.width, l.height)
}

func (l *notesList) rowView(items []model.NoteItem, idx, threshold int) noteRow {
	if idx >= len(items) {
		r := noteRow{ordinal: idx + 1, add: true, active: l.cursor == idx}
		if l.isFocused(addRowID) {
			r.focused = true
			r.inputView = l.input.View()
		}
		return r
	}
	it := items[idx]
	r := noteRow{
		ordinal:     idx + 1,
		item:        it,
		active:      l.gestures.IsActive(it.ID),
		disabled:    l.gestures.InputDisabled(it.ID),
		deleting:    l.gestures.IsDeleting(it.ID),
		showActions: l.gestures.ShowActions(it.ID),
	}
	if l.isFocused(it.ID) {
		r.focused = true
		r.inputView = l.input.View()
	}
	if off, ok := l.gestures.DragOffset(); ok && l.gestures.IsSwiping(it.ID) {
		r.offsetCells = off / l.cellWidth
		r.armed = abs(off) >= threshold
	}
	return r
}

func (l *notesList) menuLine(i int) string {
	pad := l.width - rowActionsW
	if pad < 0 {
		pad = 0
	}
	var sel string
	if i < len(l.typeMenu.Items()) {
		marker := glyphRadioOff()
		st := styleMuted()
		if i == l.typeMenu.Index() {
			marker = glyphRadioOn()
			st = styleSelected().Bold(true)
		}
		sel = st.Render(fitLine(" "+marker+" "+model.NoteTypes[i].Label(), rowActionsW))
	}
	return fitLine(strings.Repeat(" ", pad)+sel, l.width)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
