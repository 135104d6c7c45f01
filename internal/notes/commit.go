package notes

import (
	"strings"
	"unicode/utf8"
)

// MinTextLen is the shortest trimmed text a row will accept.
const MinTextLen = 4

// CommitVia is the gesture that asked a row to commit its text.
type CommitVia int

const (
	CommitEnter CommitVia = iota
	CommitBlur
)

func (v CommitVia) String() string {
	if v == CommitBlur {
		return "blur"
	}
	return "enter"
}

// CommitResult describes what a row does after a commit gesture.
//
// Field is the value the input should show afterwards. Text is only
// meaningful when Accepted is true.
type CommitResult struct {
	Accepted bool
	Text     string
	Field    string
}

// Commit applies the row commit rules to entered, for a row seeded with seed.
// An empty seed is the "add new" row; anything else is an edit in place.
// A rejected short draft stays in the field for both variants; only a field
// cleared to blank snaps back to seed.
func Commit(seed, entered string, via CommitVia) CommitResult {
	text := strings.TrimSpace(entered)
	if utf8.RuneCountInString(text) < MinTextLen {
		if text == "" {
			return CommitResult{Field: seed}
		}
		return CommitResult{Field: entered}
	}
	if text == seed {
		return CommitResult{Field: seed}
	}
	if seed == "" {
		return CommitResult{Accepted: true, Text: text, Field: ""}
	}
	return CommitResult{Accepted: true, Text: text, Field: text}
}

// ValidText reports whether text would survive a commit as note text.
func ValidText(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= MinTextLen
}
