package timecard

import (
	"fmt"
	"time"

	"timecard-cli/internal/model"
)

// Clock is the page-held timecard: the current status plus the times shown
// by the control center. It holds nothing across restarts.
type Clock struct {
	status model.Status

	timeIn  time.Time
	timeOut time.Time

	worked       time.Duration
	runningSince time.Time

	breakChoice  *model.BreakDuration
	breakStarted time.Time
}

func (c *Clock) Status() model.Status { return c.status }

func (c *Clock) Enabled(a Action) bool { return Enabled(c.status, a) }

// Apply performs a at the given instant. TakeBreak requires a duration
// choice; use Break for that.
func (c *Clock) Apply(a Action, at time.Time) error {
	if a == ActionTakeBreak {
		return fmt.Errorf("%s needs a duration: %w", a, ErrTransitionNotAllowed)
	}
	return c.apply(a, at, nil)
}

// Break moves a running clock to Break with the chosen duration. The
// duration is informational; nothing resumes the clock automatically.
func (c *Clock) Break(choice model.BreakDuration, at time.Time) error {
	return c.apply(ActionTakeBreak, at, &choice)
}

func (c *Clock) apply(a Action, at time.Time, choice *model.BreakDuration) error {
	next, err := Next(c.status, a)
	if err != nil {
		return err
	}
	switch a {
	case ActionClockIn:
		if c.status == model.StatusStopped || c.timeIn.IsZero() {
			c.timeIn = at
			c.worked = 0
		}
		c.timeOut = time.Time{}
		c.runningSince = at
	case ActionClockOut:
		c.worked += nonNegative(at.Sub(c.runningSince))
		c.runningSince = time.Time{}
		c.timeOut = at
	case ActionTakeBreak:
		c.worked += nonNegative(at.Sub(c.runningSince))
		c.runningSince = time.Time{}
		c.breakChoice = choice
		c.breakStarted = at
	case ActionResume:
		c.breakChoice = nil
		c.breakStarted = time.Time{}
		c.runningSince = at
	}
	c.status = next
	return nil
}

func (c *Clock) TimeIn() (time.Time, bool)  { return c.timeIn, !c.timeIn.IsZero() }
func (c *Clock) TimeOut() (time.Time, bool) { return c.timeOut, !c.timeOut.IsZero() }

// BreakChoice is the duration picked for the current break.
func (c *Clock) BreakChoice() (model.BreakDuration, bool) {
	if c.breakChoice == nil {
		return model.BreakDuration{}, false
	}
	return *c.breakChoice, true
}

// Worked is the total running time up to now, excluding breaks.
func (c *Clock) Worked(now time.Time) time.Duration {
	d := c.worked
	if c.status == model.StatusRunning {
		d += nonNegative(now.Sub(c.runningSince))
	}
	return d
}

// Elapsed is the figure under the status label: time worked, or time on
// break while on break.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	if c.status == model.StatusBreak {
		return nonNegative(now.Sub(c.breakStarted))
	}
	return c.Worked(now)
}

// FormatElapsed renders d as HH:MM:SS.
func FormatElapsed(d time.Duration) string {
	d = nonNegative(d).Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatClock renders a wall-clock time as "06:44 PM", or a placeholder.
func FormatClock(t time.Time, ok bool) string {
	if !ok {
		return "--:--"
	}
	return t.Format("03:04 PM")
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
