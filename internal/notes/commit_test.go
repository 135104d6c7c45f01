package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommit(t *testing.T) {
	tests := []struct {
		name    string
		seed    string
		entered string
		via     CommitVia
		want    CommitResult
	}{
		{
			name:    "add row accepts and clears",
			entered: "  Buy milk ",
			want:    CommitResult{Accepted: true, Text: "Buy milk", Field: ""},
		},
		{
			name:    "add row rejects short text and keeps draft",
			entered: "hi",
			want:    CommitResult{Field: "hi"},
		},
		{
			name:    "add row rejects whitespace and clears",
			entered: "    ",
			want:    CommitResult{Field: ""},
		},
		{
			name:    "edit keeps committed text in the field",
			seed:    "Buy milk",
			entered: "Buy oat milk",
			via:     CommitBlur,
			want:    CommitResult{Accepted: true, Text: "Buy oat milk", Field: "Buy oat milk"},
		},
		{
			name:    "edit rejects short text",
			seed:    "Buy milk",
			entered: "abc",
			want:    CommitResult{Field: "abc"},
		},
		{
			name:    "edit with nothing typed restores seed",
			seed:    "Buy milk",
			entered: "",
			via:     CommitBlur,
			want:    CommitResult{Field: "Buy milk"},
		},
		{
			name:    "unchanged text is not a commit",
			seed:    "Buy milk",
			entered: "Buy milk  ",
			want:    CommitResult{Field: "Buy milk"},
		},
		{
			name:    "exactly four characters is enough",
			entered: "abcd",
			want:    CommitResult{Accepted: true, Text: "abcd"},
		},
		{
			name:    "length counts characters not bytes",
			entered: "ñañ",
			want:    CommitResult{Field: "ñañ"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Commit(tt.seed, tt.entered, tt.via))
		})
	}
}

func TestCommit_SameRuleForEnterAndBlur(t *testing.T) {
	for _, seed := range []string{"", "Existing note"} {
		for _, entered := range []string{"", "a", "abc", "abcd", "  abcd  ", "Existing note"} {
			enter := Commit(seed, entered, CommitEnter)
			blur := Commit(seed, entered, CommitBlur)
			assert.Equal(t, enter.Accepted, blur.Accepted, "seed=%q entered=%q", seed, entered)
			assert.Equal(t, enter.Text, blur.Text, "seed=%q entered=%q", seed, entered)
		}
	}
}

func TestValidText(t *testing.T) {
	assert.False(t, ValidText(""))
	assert.False(t, ValidText(" abc "))
	assert.True(t, ValidText("abcd"))
}
