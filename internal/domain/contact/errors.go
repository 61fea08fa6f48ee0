package contact

import "errors"

var (
	// ErrContactNotFound indicates the contact doesn't exist.
	ErrContactNotFound = errors.New("contact not found")
	// ErrInvalidInput indicates invalid contact input.
	ErrInvalidInput = errors.New("invalid contact input")
)
