package activity

import "errors"

var (
	// ErrActivityNotFound indicates the activity doesn't exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrInvalidTransition indicates the requested lifecycle transition is
	// not legal from the current status.
	ErrInvalidTransition = errors.New("invalid activity status transition")
	// ErrConflict indicates the activity's status changed between read and
	// update (concurrent modification).
	ErrConflict = errors.New("activity modified concurrently")
	// ErrInvalidInput indicates invalid activity input.
	ErrInvalidInput = errors.New("invalid activity input")
)
