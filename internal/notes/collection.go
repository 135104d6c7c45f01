package notes

import (
	"timecard-cli/internal/model"
)

type ChangeKind int

const (
	Created ChangeKind = iota
	Updated
	Deleted
)

func (k ChangeKind) String() string {
	switch k {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Change is a notification from the list to the collection owner.
type Change struct {
	Kind ChangeKind
	Note model.NoteItem
}

// Apply returns the collection after ch. The input slice is never modified.
func Apply(items []model.NoteItem, ch Change) []model.NoteItem {
	switch ch.Kind {
	case Created:
		out := make([]model.NoteItem, 0, len(items)+1)
		out = append(out, items...)
		return append(out, ch.Note)
	case Deleted:
		out := make([]model.NoteItem, 0, len(items))
		for _, n := range items {
			if n.ID != ch.Note.ID {
				out = append(out, n)
			}
		}
		return out
	case Updated:
		out := make([]model.NoteItem, len(items))
		for i, n := range items {
			if n.ID == ch.Note.ID {
				n = ch.Note
			}
			out[i] = n
		}
		return out
	default:
		return append([]model.NoteItem(nil), items...)
	}
}

// IDAllocator hands out note ids that are never reused, even after deletes.
type IDAllocator struct {
	next int
}

// NewIDAllocator starts after the largest id already present.
func NewIDAllocator(items []model.NoteItem) IDAllocator {
	a := IDAllocator{}
	for _, n := range items {
		if n.ID >= a.next {
			a.next = n.ID + 1
		}
	}
	return a
}

func (a *IDAllocator) Next() int {
	id := a.next
	a.next++
	return id
}

// Collection is the page-owned list of notes.
type Collection struct {
	items []model.NoteItem
	ids   IDAllocator
}

func NewCollection(items ...model.NoteItem) *Collection {
	return &Collection{
		items: append([]model.NoteItem(nil), items...),
		ids:   NewIDAllocator(items),
	}
}

func (c *Collection) Items() []model.NoteItem {
	return append([]model.NoteItem(nil), c.items...)
}

func (c *Collection) Len() int { return len(c.items) }

func (c *Collection) Find(id int) (model.NoteItem, bool) {
	for _, n := range c.items {
		if n.ID == id {
			return n, true
		}
	}
	return model.NoteItem{}, false
}

// NewNote builds (but does not add) a note with a fresh id.
func (c *Collection) NewNote(text string) model.NoteItem {
	return model.NoteItem{ID: c.ids.Next(), Text: text, Type: model.NoteTypeNote}
}

// Apply folds ch into the collection. Changes that would leave a note
// with invalid text are ignored.
func (c *Collection) Apply(ch Change) {
	if ch.Kind != Deleted && !ValidText(ch.Note.Text) {
		return
	}
	if ch.Kind == Created && ch.Note.ID >= c.ids.next {
		c.ids.next = ch.Note.ID + 1
	}
	c.items = Apply(c.items, ch)
}
