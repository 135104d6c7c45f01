package timecard

import (
	"errors"
	"testing"
	"time"

	"timecard-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnabled_Table(t *testing.T) {
	type row struct {
		clockIn, clockOut, takeBreak, resume bool
	}
	want := map[model.Status]row{
		model.StatusIdle:    {clockIn: true},
		model.StatusRunning: {clockOut: true, takeBreak: true},
		model.StatusBreak:   {resume: true},
		model.StatusStopped: {clockIn: true},
	}
	for s, w := range want {
		assert.Equal(t, w.clockIn, Enabled(s, ActionClockIn), "clock in from %s", s)
		assert.Equal(t, w.clockOut, Enabled(s, ActionClockOut), "clock out from %s", s)
		assert.Equal(t, w.takeBreak, Enabled(s, ActionTakeBreak), "break from %s", s)
		assert.Equal(t, w.resume, Enabled(s, ActionResume), "resume from %s", s)
	}
}

func TestNext_DisabledIsNoop(t *testing.T) {
	got, err := Next(model.StatusIdle, ActionClockOut)
	assert.True(t, errors.Is(err, ErrTransitionNotAllowed))
	assert.Equal(t, model.StatusIdle, got)

	got, err = Next(model.StatusRunning, ActionClockIn)
	assert.ErrorIs(t, err, ErrTransitionNotAllowed)
	assert.Equal(t, model.StatusRunning, got)
}

func TestClock_ClockInTwice(t *testing.T) {
	var c Clock
	at := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	require.NoError(t, c.Apply(ActionClockIn, at))
	assert.Equal(t, model.StatusRunning, c.Status())

	err := c.Apply(ActionClockIn, at.Add(time.Minute))
	assert.ErrorIs(t, err, ErrTransitionNotAllowed)
	assert.Equal(t, model.StatusRunning, c.Status())
}

func TestClock_BreakAndResume(t *testing.T) {
	var c Clock
	t0 := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	require.NoError(t, c.Apply(ActionClockIn, t0))
	assert.ErrorIs(t, c.Apply(ActionTakeBreak, t0), ErrTransitionNotAllowed, "breaks need a duration")

	require.NoError(t, c.Break(model.BreakDurations[0], t0.Add(time.Hour)))
	assert.Equal(t, model.StatusBreak, c.Status())
	choice, ok := c.BreakChoice()
	require.True(t, ok)
	assert.Equal(t, 300, choice.Seconds)
	assert.False(t, c.Enabled(ActionClockIn))
	assert.False(t, c.Enabled(ActionClockOut))

	// No timer: the clock stays on break well past the chosen duration.
	assert.Equal(t, model.StatusBreak, c.Status())
	assert.Equal(t, 20*time.Minute, c.Elapsed(t0.Add(time.Hour+20*time.Minute)))

	require.NoError(t, c.Apply(ActionResume, t0.Add(2*time.Hour)))
	assert.Equal(t, model.StatusRunning, c.Status())
	assert.Equal(t, 90*time.Minute, c.Worked(t0.Add(2*time.Hour+30*time.Minute)))

	require.NoError(t, c.Apply(ActionClockOut, t0.Add(3*time.Hour)))
	assert.Equal(t, model.StatusStopped, c.Status())
	assert.Equal(t, 2*time.Hour, c.Worked(t0.Add(10*time.Hour)))
	out, ok := c.TimeOut()
	require.True(t, ok)
	assert.Equal(t, t0.Add(3*time.Hour), out)
}

func TestClock_ClockInAfterStopStartsNewSession(t *testing.T) {
	var c Clock
	t0 := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	require.NoError(t, c.Apply(ActionClockIn, t0))
	require.NoError(t, c.Apply(ActionClockOut, t0.Add(time.Hour)))
	require.NoError(t, c.Apply(ActionClockIn, t0.Add(2*time.Hour)))

	in, _ := c.TimeIn()
	assert.Equal(t, t0.Add(2*time.Hour), in)
	_, hasOut := c.TimeOut()
	assert.False(t, hasOut)
	assert.Equal(t, time.Duration(0), c.Worked(t0.Add(2*time.Hour)))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "06:00:01", FormatElapsed(6*time.Hour+time.Second))
	assert.Equal(t, "00:00:00", FormatElapsed(-time.Second))
	assert.Equal(t, "--:--", FormatClock(time.Time{}, false))
	assert.Equal(t, "06:44 PM", FormatClock(time.Date(2026, 1, 1, 18, 44, 0, 0, time.UTC), true))
}
