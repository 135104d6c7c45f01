package model

import "time"

type NoteType string

const (
	NoteTypeTask    NoteType = "task"
	NoteTypeProblem NoteType = "problem"
	NoteTypeNote    NoteType = "note"
)

// NoteTypes lists the selectable note types in menu order.
var NoteTypes = []NoteType{NoteTypeTask, NoteTypeProblem, NoteTypeNote}

func (t NoteType) Label() string {
	switch t {
	case NoteTypeTask:
		return "Task"
	case NoteTypeProblem:
		return "Problem"
	case NoteTypeNote:
		return "Note"
	default:
		return string(t)
	}
}

func (t NoteType) Valid() bool {
	switch t {
	case NoteTypeTask, NoteTypeProblem, NoteTypeNote:
		return true
	default:
		return false
	}
}

type NoteItem struct {
	ID   int      `json:"id" yaml:"id"`
	Text string   `json:"text" yaml:"text"`
	Type NoteType `json:"type" yaml:"type"`
}

type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusBreak
	StatusStopped
)

// Label is the heading shown above the elapsed-time display.
func (s Status) Label() string {
	switch s {
	case StatusRunning:
		return "Running"
	case StatusBreak:
		return "On break"
	case StatusStopped:
		return "Active for"
	default:
		return "Idle"
	}
}

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusBreak:
		return "break"
	case StatusStopped:
		return "stopped"
	default:
		return "idle"
	}
}

type BreakDuration struct {
	Label   string `json:"label" yaml:"label"`
	Seconds int    `json:"seconds" yaml:"seconds"`
}

func (b BreakDuration) Duration() time.Duration {
	return time.Duration(b.Seconds) * time.Second
}

// BreakDurations is the fixed break menu, in display order.
var BreakDurations = []BreakDuration{
	{Label: "5 minutes", Seconds: 5 * 60},
	{Label: "10 minutes", Seconds: 10 * 60},
	{Label: "15 minutes", Seconds: 15 * 60},
	{Label: "30 minutes", Seconds: 30 * 60},
	{Label: "1 hour", Seconds: 60 * 60},
	{Label: "2 hours", Seconds: 2 * 60 * 60},
	{Label: "3 hours", Seconds: 3 * 60 * 60},
	{Label: "Break for the day", Seconds: 8 * 60 * 60},
}

// Week and Day are display-only; nothing creates or stores them.
type Week struct {
	Number int       `json:"number" yaml:"number"`
	Start  time.Time `json:"start" yaml:"start"`
	End    time.Time `json:"end" yaml:"end"`
	Hours  float64   `json:"hours" yaml:"hours"`
	Days   []Day     `json:"days" yaml:"days"`
}

type Day struct {
	Number    int       `json:"number" yaml:"number"`
	Date      time.Time `json:"date" yaml:"date"`
	Completed bool      `json:"completed" yaml:"completed"`
	Hours     float64   `json:"hours" yaml:"hours"`
}

// DayEntry is what the "add day" form gathers.
type DayEntry struct {
	Date  string  `json:"date" yaml:"date"` // YYYY-MM-DD
	Hours float64 `json:"hours" yaml:"hours"`
}

type User struct {
	ID        string    `json:"id" yaml:"id"`
	Username  string    `json:"username" yaml:"username"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

type Session struct {
	Token     string    `json:"token" yaml:"token"`
	UserID    string    `json:"userId" yaml:"userId"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}
