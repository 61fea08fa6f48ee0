package activity

import "time"

// Action is a lifecycle transition request
type Action string

const (
	ActionActivate Action = "activate"
	ActionPause    Action = "pause"
	ActionComplete Action = "complete"
)

// InitialStatus returns the status a new activity starts in. An activity
// with no assignees is pending; assigning anyone at creation makes it
// inactive.
func InitialStatus(assigneeCount int) Status {
	if assigneeCount > 0 {
		return StatusInactive
	}
	return StatusPending
}

// Transition computes the guarded status update for applying action to an
// activity in status from at the given time. It is pure: the only
// non-deterministic input is the injected now value.
//
// Legal transitions:
//
//	inactive, paused -> in_progress (activate; overwrites activated_at)
//	in_progress      -> paused      (pause)
//	in_progress      -> completed   (complete; terminal)
func Transition(from Status, action Action, now time.Time) (StatusUpdate, error) {
	switch action {
	case ActionActivate:
		if from != StatusInactive && from != StatusPaused {
			return StatusUpdate{}, ErrInvalidTransition
		}
		return StatusUpdate{Status: StatusInProgress, ActivatedAt: &now}, nil
	case ActionPause:
		if from != StatusInProgress {
			return StatusUpdate{}, ErrInvalidTransition
		}
		return StatusUpdate{Status: StatusPaused, PausedAt: &now}, nil
	case ActionComplete:
		if from != StatusInProgress {
			return StatusUpdate{}, ErrInvalidTransition
		}
		return StatusUpdate{Status: StatusCompleted, CompletedAt: &now}, nil
	}
	return StatusUpdate{}, ErrInvalidTransition
}
