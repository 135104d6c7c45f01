package timecard

import (
	"errors"
	"fmt"

	"timecard-cli/internal/model"
)

var ErrTransitionNotAllowed = errors.New("transition not allowed")

type Action int

const (
	ActionClockIn Action = iota
	ActionClockOut
	ActionTakeBreak
	ActionResume
)

func (a Action) String() string {
	switch a {
	case ActionClockIn:
		return "clock in"
	case ActionClockOut:
		return "clock out"
	case ActionTakeBreak:
		return "take a break"
	case ActionResume:
		return "resume"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Enabled reports whether a is available from s.
//
//	Idle, Stopped --clock in--> Running
//	Running --clock out--> Stopped
//	Running --take a break--> Break
//	Break --resume--> Running
func Enabled(s model.Status, a Action) bool {
	switch a {
	case ActionClockIn:
		return s == model.StatusIdle || s == model.StatusStopped
	case ActionClockOut:
		return s == model.StatusRunning
	case ActionTakeBreak:
		return s == model.StatusRunning
	case ActionResume:
		return s == model.StatusBreak
	default:
		return false
	}
}

// Next returns the status after a, or ErrTransitionNotAllowed.
func Next(s model.Status, a Action) (model.Status, error) {
	if !Enabled(s, a) {
		return s, fmt.Errorf("%s while %s: %w", a, s, ErrTransitionNotAllowed)
	}
	switch a {
	case ActionClockIn, ActionResume:
		return model.StatusRunning, nil
	case ActionClockOut:
		return model.StatusStopped, nil
	case ActionTakeBreak:
		return model.StatusBreak, nil
	}
	return s, nil
}
