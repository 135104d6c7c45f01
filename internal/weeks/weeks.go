// Package weeks builds the display-only weekly overview used by the list
// screen. Nothing here is persisted.
package weeks

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"timecard-cli/internal/model"
)

const (
	DefaultWeeks       = 8
	DaysPerWeek        = 5
	DefaultHoursPerDay = 8.0
	dateLayout         = "2006-01-02"
)

var (
	ErrInvalidDate  = errors.New("date must be YYYY-MM-DD")
	ErrInvalidHours = errors.New("hours must be a number between 0 and 24")
)

// Synthesize returns n consecutive weeks ending with the week containing ref.
// Each week has DaysPerWeek working days starting Monday; days before ref are
// marked completed.
func Synthesize(ref time.Time, n int, hoursPerDay float64) []model.Week {
	if n <= 0 {
		n = DefaultWeeks
	}
	if hoursPerDay <= 0 {
		hoursPerDay = DefaultHoursPerDay
	}
	today := startOfDay(ref)
	first := mondayOf(today).AddDate(0, 0, -7*(n-1))

	out := make([]model.Week, 0, n)
	for i := 0; i < n; i++ {
		start := first.AddDate(0, 0, 7*i)
		w := model.Week{
			Number: i + 1,
			Start:  start,
			End:    start.AddDate(0, 0, DaysPerWeek),
		}
		for j := 0; j < DaysPerWeek; j++ {
			date := start.AddDate(0, 0, j)
			w.Days = append(w.Days, model.Day{
				Number:    i*DaysPerWeek + j + 1,
				Date:      date,
				Completed: date.Before(today),
				Hours:     hoursPerDay,
			})
			w.Hours += hoursPerDay
		}
		out = append(out, w)
	}
	return out
}

// RangeLabel renders "January 1 - January 6".
func RangeLabel(w model.Week) string {
	return DayLabel(w.Start) + " - " + DayLabel(w.End)
}

func DayLabel(t time.Time) string {
	return t.Format("January 2")
}

func HoursLabel(h float64) string {
	s := strconv.FormatFloat(h, 'f', -1, 64)
	if h == 1 {
		return s + " hour"
	}
	return s + " hours"
}

// SummaryMarkdown renders a short markdown report for w.
func SummaryMarkdown(w model.Week) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Week %d\n\n", w.Number)
	fmt.Fprintf(&b, "**%s** · %s\n\n", HoursLabel(w.Hours), RangeLabel(w))
	b.WriteString("| Day | Date | State | Hours |\n")
	b.WriteString("|-----|------|-------|-------|\n")
	done := 0
	for _, d := range w.Days {
		state := "Upcoming"
		if d.Completed {
			state = "Completed"
			done++
		}
		fmt.Fprintf(&b, "| Day %d | %s | %s | %s |\n", d.Number, DayLabel(d.Date), state, HoursLabel(d.Hours))
	}
	fmt.Fprintf(&b, "\n%d of %d days completed.\n", done, len(w.Days))
	return b.String()
}

// ParseDayEntry validates the add-day form fields.
func ParseDayEntry(date, hours string) (model.DayEntry, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse(dateLayout, date); err != nil {
		return model.DayEntry{}, fmt.Errorf("%q: %w", date, ErrInvalidDate)
	}
	h, err := ParseHours(hours)
	if err != nil {
		return model.DayEntry{}, err
	}
	return model.DayEntry{Date: date, Hours: h}, nil
}

// ParseHours accepts a decimal hour count in (0, 24].
func ParseHours(s string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(h) || h <= 0 || h > 24 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidHours)
	}
	return h, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
