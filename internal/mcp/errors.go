package mcp

import (
	"errors"
	"fmt"

	"github.com/lumeng/mindmirror/internal/domain/activity"
	"github.com/lumeng/mindmirror/internal/domain/contact"
	"github.com/lumeng/mindmirror/internal/domain/event"
	"github.com/lumeng/mindmirror/internal/domain/project"
	"github.com/lumeng/mindmirror/internal/domain/summary"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unmapped errors pass
// through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, activity.ErrInvalidTransition):
		return &APIError{Code: "INVALID_TRANSITION", Message: "transition not allowed from the current status", RecoveryHint: "Re-fetch the activity and check its status"}
	case errors.Is(err, activity.ErrConflict):
		return &APIError{Code: "CONFLICT", Message: "activity was modified concurrently", RecoveryHint: "Re-fetch and retry"}
	case errors.Is(err, summary.ErrInvalidRange):
		return &APIError{Code: "INVALID_RANGE", Message: "start_date must not be after end_date", RecoveryHint: "Correct the date range"}
	case errors.Is(err, summary.ErrInvalidType):
		return &APIError{Code: "INVALID_TYPE", Message: "unknown summary type", RecoveryHint: "Use daily, weekly, monthly, yearly, or custom"}
	case errors.Is(err, activity.ErrActivityNotFound),
		errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, contact.ErrContactNotFound),
		errors.Is(err, event.ErrEventNotFound),
		errors.Is(err, summary.ErrSummaryNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Refresh the listing; the record may have been deleted"}
	case errors.Is(err, activity.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, contact.ErrInvalidInput),
		errors.Is(err, event.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check required fields"}
	default:
		return err
	}
}
