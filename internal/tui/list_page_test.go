package tui

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestListApp(t *testing.T) (appModel, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := newTestApp(t, Options{Logger: logger, StartPath: "/list"})
	return m, &buf
}

func TestListPage_SynthesizesWeeks(t *testing.T) {
	m, _ := newTestListApp(t)
	if got := len(m.weeks.weeks); got != 8 {
		t.Fatalf("expected 8 weeks, got %d", got)
	}
	for _, w := range m.weeks.weeks {
		if len(w.Days) != 5 {
			t.Fatalf("expected 5 days in week %d, got %d", w.Number, len(w.Days))
		}
	}
	if got := m.weeks.selectedWeek(); got != 7 {
		t.Fatalf("expected the current week to be selected, got %d", got)
	}
	if out := m.View(); !strings.Contains(out, "Week 8") {
		t.Fatalf("expected the current week in view")
	}
}

func TestListPage_SummaryOpensAndCloses(t *testing.T) {
	m, _ := newTestListApp(t)
	m, _ = send(t, m, keyMsg("s"))
	if !m.weeks.summaryOpen {
		t.Fatalf("expected the summary to open")
	}
	if out := m.View(); !strings.Contains(out, "Week 8 summary") {
		t.Fatalf("expected the summary modal in view")
	}
	m, _ = send(t, m, keyMsg("esc"))
	if m.weeks.summaryOpen {
		t.Fatalf("expected esc to close the summary")
	}
	if m.path != "/list" {
		t.Fatalf("esc on the summary must not navigate, got %q", m.path)
	}
}

func TestListPage_AddDayValidatesAndLogs(t *testing.T) {
	m, logs := newTestListApp(t)

	m, _ = send(t, m, keyMsg("a"))
	if !m.weeks.addDayOpen {
		t.Fatalf("expected the add day drawer to open")
	}
	m, _ = send(t, m, keyMsg("2024-13-01"), keyMsg("enter"), keyMsg("8"), keyMsg("enter"))
	if m.weeks.addDay.focus != addDayFocusSubmit {
		t.Fatalf("expected focus on Submit, got %v", m.weeks.addDay.focus)
	}
	m, _ = send(t, m, keyMsg("enter"))
	if !m.weeks.addDayOpen {
		t.Fatalf("expected an invalid date to keep the drawer open")
	}
	if m.weeks.addDay.dateErr == "" {
		t.Fatalf("expected a date error")
	}
	if m.weeks.addDay.focus != addDayFocusDate {
		t.Fatalf("expected focus back on the date, got %v", m.weeks.addDay.focus)
	}

	m.weeks.addDay.date.SetValue("2024-03-12")
	m.weeks.addDay.hours.SetValue("25")
	m.weeks.addDay.setFocus(addDayFocusSubmit)
	m, _ = send(t, m, keyMsg("enter"))
	if m.weeks.addDay.hoursErr == "" || !m.weeks.addDayOpen {
		t.Fatalf("expected an hours error for 25")
	}

	m.weeks.addDay.hours.SetValue("7.5")
	m.weeks.addDay.setFocus(addDayFocusSubmit)
	m, _ = send(t, m, keyMsg("enter"))
	if m.weeks.addDayOpen {
		t.Fatalf("expected a valid entry to close the drawer")
	}
	out := logs.String()
	if !strings.Contains(out, "add day submitted") || !strings.Contains(out, "hours=7.5") {
		t.Fatalf("expected the submission to be logged, got %q", out)
	}
}

func TestListPage_AddDayCancel(t *testing.T) {
	m, logs := newTestListApp(t)
	m, _ = send(t, m, keyMsg("a"), keyMsg("esc"))
	if m.weeks.addDayOpen {
		t.Fatalf("expected esc to cancel the drawer")
	}
	if m.path != "/list" {
		t.Fatalf("expected to stay on /list, got %q", m.path)
	}
	if strings.Contains(logs.String(), "add day submitted") {
		t.Fatalf("cancel must not log a submission")
	}
}

func TestListPage_DayOpensEditor(t *testing.T) {
	m, _ := newTestListApp(t)
	m, _ = send(t, m, keyMsg("down"))
	if got := m.weeks.lines[m.weeks.cursor].kind; got != weekLineDay {
		t.Fatalf("expected a day line under the cursor, got %v", got)
	}
	m, cmd := send(t, m, keyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected navigation from a day row")
	}
	m, _ = send(t, m, cmd())
	if m.path != "/" {
		t.Fatalf("expected the editor, got %q", m.path)
	}
}

func TestListPage_RemembersSelectedWeek(t *testing.T) {
	m, _ := newTestListApp(t)
	m, _ = send(t, m, keyMsg("up"), keyMsg("up"))
	want := m.weeks.selectedWeek()
	if want == 7 {
		t.Fatalf("expected the cursor to move to an earlier week")
	}
	m, _ = send(t, m, navigateMsg{path: "/"}, keyMsg("l"))
	if got := m.weeks.selectedWeek(); got != want {
		t.Fatalf("expected week %d to stay selected, got %d", want, got)
	}
}

func TestListPage_WheelScrolls(t *testing.T) {
	m, _ := newTestListApp(t)
	before := m.weeks.scroll
	m, _ = send(t, m, tea.MouseMsg{X: 5, Y: 5, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if before > 0 && m.weeks.scroll != before-1 {
		t.Fatalf("expected wheel up to scroll, got %d from %d", m.weeks.scroll, before)
	}
}
