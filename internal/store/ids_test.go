package store

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewRandomID_PrefixAndLength(t *testing.T) {
	id, err := newRandomID("usr")
	if err != nil {
		t.Fatalf("newRandomID: %v", err)
	}
	if !strings.HasPrefix(id, "usr-") {
		t.Fatalf("expected usr prefix, got %q", id)
	}
	suffix := strings.TrimPrefix(id, "usr-")
	if got, want := len(suffix), 8; got != want {
		t.Fatalf("expected suffix len %d, got %d (%q)", want, got, suffix)
	}
}

func TestNewSessionToken_IsUUID(t *testing.T) {
	a, err := newSessionToken()
	if err != nil {
		t.Fatalf("newSessionToken: %v", err)
	}
	b, _ := newSessionToken()
	if a == b {
		t.Fatalf("expected distinct tokens, got %q twice", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("expected uuid token, got %q: %v", a, err)
	}
}
