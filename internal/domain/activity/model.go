package activity

import (
	"time"

	"github.com/lumeng/mindmirror/internal/domain/contact"
)

// Status represents the lifecycle state of an activity
type Status string

const (
	StatusPending    Status = "pending"     // created without assignees
	StatusInactive   Status = "inactive"    // has assignees, not started
	StatusInProgress Status = "in_progress" // actively worked on
	StatusPaused     Status = "paused"      // started, then suspended
	StatusCompleted  Status = "completed"   // terminal
)

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInactive, StatusInProgress, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// Activity is a trackable unit of work within a project
type Activity struct {
	ID                      string     `json:"id"`
	ProjectID               string     `json:"project_id"`
	Name                    string     `json:"name"`
	Description             string     `json:"description,omitempty"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date,omitempty"`
	Status                  Status     `json:"status"`
	ActivatedAt             *time.Time `json:"activated_at,omitempty"`
	PausedAt                *time.Time `json:"paused_at,omitempty"`
	CompletedAt             *time.Time `json:"completed_at,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// WithAssignees pairs an activity with its assigned contacts
type WithAssignees struct {
	Activity
	Assignees   []contact.Contact `json:"assignees"`
	ProjectName string            `json:"project_name,omitempty"`
}

// StatusUpdate describes the target state of a guarded status transition.
// Timestamp fields that are nil are left untouched by the store.
type StatusUpdate struct {
	Status      Status
	ActivatedAt *time.Time
	PausedAt    *time.Time
	CompletedAt *time.Time
}
