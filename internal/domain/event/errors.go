package event

import "errors"

var (
	// ErrEventNotFound indicates the event doesn't exist.
	ErrEventNotFound = errors.New("event not found")
	// ErrInvalidInput indicates invalid event input. Events require a
	// title and at least one linked contact.
	ErrInvalidInput = errors.New("invalid event input")
)
