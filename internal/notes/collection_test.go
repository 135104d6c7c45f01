package notes

import (
	"testing"

	"timecard-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_AddFromEmpty(t *testing.T) {
	c := NewCollection()

	res := Commit("", "Buy milk", CommitEnter)
	require.True(t, res.Accepted)
	c.Apply(Change{Kind: Created, Note: c.NewNote(res.Text)})

	assert.Equal(t, []model.NoteItem{{ID: 0, Text: "Buy milk", Type: model.NoteTypeNote}}, c.Items())
}

func TestCollection_ShortTextIsNoChange(t *testing.T) {
	c := NewCollection()

	res := Commit("", "hi", CommitEnter)
	require.False(t, res.Accepted)
	assert.Empty(t, c.Items())

	// Even a forged change cannot store invalid text.
	c.Apply(Change{Kind: Created, Note: model.NoteItem{ID: 0, Text: "hi", Type: model.NoteTypeNote}})
	assert.Empty(t, c.Items())
}

func TestCollection_UpdateAndDelete(t *testing.T) {
	c := NewCollection(
		model.NoteItem{ID: 0, Text: "first note", Type: model.NoteTypeNote},
		model.NoteItem{ID: 1, Text: "second note", Type: model.NoteTypeTask},
	)

	c.Apply(Change{Kind: Updated, Note: model.NoteItem{ID: 1, Text: "second note", Type: model.NoteTypeProblem}})
	got, ok := c.Find(1)
	require.True(t, ok)
	assert.Equal(t, model.NoteTypeProblem, got.Type)

	c.Apply(Change{Kind: Deleted, Note: model.NoteItem{ID: 0}})
	assert.Equal(t, 1, c.Len())
	_, ok = c.Find(0)
	assert.False(t, ok)
}

func TestCollection_IDsAreNotReusedAfterDelete(t *testing.T) {
	c := NewCollection()
	a := c.NewNote("note a")
	c.Apply(Change{Kind: Created, Note: a})
	b := c.NewNote("note b")
	c.Apply(Change{Kind: Created, Note: b})
	c.Apply(Change{Kind: Deleted, Note: a})

	n := c.NewNote("note c")
	assert.NotEqual(t, b.ID, n.ID)
	assert.Equal(t, 2, n.ID)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := []model.NoteItem{{ID: 3, Text: "keep me", Type: model.NoteTypeNote}}
	out := Apply(in, Change{Kind: Updated, Note: model.NoteItem{ID: 3, Text: "changed", Type: model.NoteTypeTask}})

	assert.Equal(t, "keep me", in[0].Text)
	assert.Equal(t, "changed", out[0].Text)
}

func TestNewIDAllocator_StartsAfterMax(t *testing.T) {
	a := NewIDAllocator([]model.NoteItem{{ID: 4}, {ID: 1}})
	assert.Equal(t, 5, a.Next())
	assert.Equal(t, 6, a.Next())
}
