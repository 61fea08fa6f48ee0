package summary

import "errors"

var (
	// ErrSummaryNotFound indicates the summary doesn't exist.
	ErrSummaryNotFound = errors.New("summary not found")
	// ErrInvalidRange indicates start_date is after end_date.
	ErrInvalidRange = errors.New("invalid summary date range")
	// ErrInvalidType indicates an unknown summary type.
	ErrInvalidType = errors.New("invalid summary type")
)
