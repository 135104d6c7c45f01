package notes

import (
	"sort"
	"time"
)

const (
	// DeleteThreshold is the horizontal swipe distance (px) that deletes a row.
	DeleteThreshold = 300
	// DeleteDelay is how long the removal animation runs before the delete is reported.
	DeleteDelay = 200 * time.Millisecond
)

// RowResolver resolves the row a gesture started on. Surfaces that are not
// part of a row report ok=false.
type RowResolver interface {
	RowID() (id int, ok bool)
}

// RowIDFunc adapts a function to RowResolver.
type RowIDFunc func() (int, bool)

func (f RowIDFunc) RowID() (int, bool) { return f() }

// Row is a RowResolver for a known row id.
type Row int

func (r Row) RowID() (int, bool) { return int(r), true }

// NoRow never resolves.
var NoRow RowResolver = RowIDFunc(func() (int, bool) { return 0, false })

type slot struct {
	id  int
	set bool
}

func (s slot) get() (int, bool) { return s.id, s.set }

func (s slot) is(id int) bool { return s.set && s.id == id }

// PendingDelete is handed back by SwipeEnd when a row crossed the delete
// threshold. The owner confirms it after DeleteDelay.
type PendingDelete struct {
	ID    int
	Token uint64
}

// Gestures is the swipe/hover state of a notes list. Only one row is active
// at a time, but several rows may be animating out; the zero value has
// nothing active.
type Gestures struct {
	active slot
	offset slot

	// Threshold overrides DeleteThreshold when > 0.
	Threshold int

	seq uint64
	// pending maps each deleting row to the token its confirmation must carry.
	pending map[int]uint64
}

func (g *Gestures) threshold() int {
	if g.Threshold > 0 {
		return g.Threshold
	}
	return DeleteThreshold
}

// Distance is the effective delete threshold in px.
func (g *Gestures) Distance() int { return g.threshold() }

func (g *Gestures) Active() (int, bool)     { return g.active.get() }
func (g *Gestures) DragOffset() (int, bool) { return g.offset.get() }
func (g *Gestures) IsActive(id int) bool { return g.active.is(id) }

// Deleting lists the rows whose delete animation is running, in id order.
func (g *Gestures) Deleting() []int {
	ids := make([]int, 0, len(g.pending))
	for id := range g.pending {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (g *Gestures) IsDeleting(id int) bool {
	_, ok := g.pending[id]
	return ok
}

// IsSwiping reports whether id is being dragged right now.
func (g *Gestures) IsSwiping(id int) bool {
	return g.active.is(id) && g.offset.set
}

// InputDisabled reports whether id's text field should ignore the pointer
// because another row is being dragged.
func (g *Gestures) InputDisabled(id int) bool {
	return !g.active.is(id) && g.offset.set
}

// ShowActions reports whether id's trailing actions are visible.
func (g *Gestures) ShowActions(id int) bool {
	return !g.IsSwiping(id) && !g.IsDeleting(id)
}

// Activate makes id the active row, without a drag.
func (g *Gestures) Activate(id int) {
	g.active = slot{id: id, set: true}
	g.offset = slot{}
}

// Reset clears the active row and its drag offset.
func (g *Gestures) Reset() {
	g.active = slot{}
	g.offset = slot{}
}

// SwipeStart activates the row the gesture started on. Returns false when
// the origin does not belong to a row.
func (g *Gestures) SwipeStart(origin RowResolver) bool {
	if origin == nil {
		return false
	}
	id, ok := origin.RowID()
	if !ok {
		return false
	}
	g.Activate(id)
	return true
}

// Swiping records the live horizontal delta of the active row.
func (g *Gestures) Swiping(deltaX int) {
	if !g.active.set {
		return
	}
	g.offset = slot{id: deltaX, set: true}
}

// SwipeEnd finishes a swipe. Past the threshold the row enters its delete
// animation and a PendingDelete is returned; otherwise the row springs back.
func (g *Gestures) SwipeEnd(finalOffsetX int) (PendingDelete, bool) {
	id, ok := g.active.get()
	if !ok {
		return PendingDelete{}, false
	}
	if abs(finalOffsetX) < g.threshold() {
		g.Reset()
		return PendingDelete{}, false
	}
	g.seq++
	if g.pending == nil {
		g.pending = make(map[int]uint64)
	}
	g.pending[id] = g.seq
	return PendingDelete{ID: id, Token: g.seq}, true
}

// ConfirmDelete completes p once the animation delay elapsed. It returns the
// deleted id, or false when p was cancelled. Other rows still animating are
// left alone.
func (g *Gestures) ConfirmDelete(p PendingDelete) (int, bool) {
	tok, ok := g.pending[p.ID]
	if !ok || p.Token == 0 || p.Token != tok {
		return 0, false
	}
	delete(g.pending, p.ID)
	if g.active.is(p.ID) {
		g.Reset()
	}
	return p.ID, true
}

// Cancel drops every pending delete and clears all gesture state. Owners
// call it when the list goes away.
func (g *Gestures) Cancel() {
	g.pending = nil
	g.Reset()
}

// PointerEnter activates id for hover actions when no row is active and no
// row has text focus.
func (g *Gestures) PointerEnter(id int, anyFocused bool) bool {
	if g.active.set || anyFocused {
		return false
	}
	g.Activate(id)
	return true
}

// PointerLeave deactivates id unless it is mid-drag or its field has focus.
func (g *Gestures) PointerLeave(id int, focused bool) bool {
	if !g.active.is(id) || g.offset.set || focused {
		return false
	}
	g.active = slot{}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
