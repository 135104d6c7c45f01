package weeks

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	// Wednesday.
	ref := time.Date(2026, 10, 21, 15, 30, 0, 0, time.UTC)
	ws := Synthesize(ref, 8, 8)

	require.Len(t, ws, 8)
	last := ws[7]
	assert.Equal(t, 8, last.Number)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), last.Start)
	assert.Equal(t, time.Monday, ws[0].Start.Weekday())
	assert.Equal(t, 40.0, last.Hours)

	require.Len(t, last.Days, DaysPerWeek)
	assert.Equal(t, 36, last.Days[0].Number)
	assert.Equal(t, 40, last.Days[4].Number)
	assert.True(t, last.Days[1].Completed)
	assert.False(t, last.Days[2].Completed, "today is not completed yet")
	for _, d := range ws[0].Days {
		assert.True(t, d.Completed)
	}
}

func TestSynthesize_Defaults(t *testing.T) {
	ws := Synthesize(time.Now(), 0, 0)
	require.Len(t, ws, DefaultWeeks)
	assert.Equal(t, DefaultHoursPerDay, ws[0].Days[0].Hours)
}

func TestLabels(t *testing.T) {
	ws := Synthesize(time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), 1, 7.5)
	assert.Equal(t, "January 5 - January 10", RangeLabel(ws[0]))
	assert.Equal(t, "37.5 hours", HoursLabel(ws[0].Hours))
	assert.Equal(t, "1 hour", HoursLabel(1))
}

func TestSummaryMarkdown(t *testing.T) {
	ws := Synthesize(time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), 1, 8)
	md := SummaryMarkdown(ws[0])
	assert.True(t, strings.HasPrefix(md, "# Week 1\n"))
	assert.Contains(t, md, "| Day 1 | January 5 | Completed | 8 hours |")
	assert.Contains(t, md, "2 of 5 days completed.")
}

func TestParseDayEntry(t *testing.T) {
	e, err := ParseDayEntry(" 2026-01-05 ", "7.5")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-05", e.Date)
	assert.Equal(t, 7.5, e.Hours)

	_, err = ParseDayEntry("05/01/2026", "8")
	assert.ErrorIs(t, err, ErrInvalidDate)

	for _, h := range []string{"", "abc", "0", "-1", "25", "NaN", "nan", "Inf"} {
		_, err = ParseDayEntry("2026-01-05", h)
		assert.ErrorIs(t, err, ErrInvalidHours, "hours=%q", h)
	}
}

func TestParseHours(t *testing.T) {
	h, err := ParseHours(" 24 ")
	require.NoError(t, err)
	assert.Equal(t, 24.0, h)

	_, err = ParseHours("24.5")
	assert.ErrorIs(t, err, ErrInvalidHours)
}
