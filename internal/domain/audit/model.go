package audit

import "time"

// Operation classifies what happened to an entity
type Operation string

const (
	OpCreate     Operation = "create"
	OpUpdate     Operation = "update"
	OpDelete     Operation = "delete"
	OpTransition Operation = "transition"
)

// EntityKind identifies which aggregate an entry refers to
type EntityKind string

const (
	KindProject  EntityKind = "project"
	KindContact  EntityKind = "contact"
	KindEvent    EntityKind = "event"
	KindActivity EntityKind = "activity"
	KindSummary  EntityKind = "summary"
)

// Entry records a single operation for the journal
type Entry struct {
	ID          int64      `json:"id"`
	Operation   Operation  `json:"operation"`
	EntityKind  EntityKind `json:"entity_kind"`
	EntityID    string     `json:"entity_id"`
	EntityName  string     `json:"entity_name"`
	ProjectID   *string    `json:"project_id,omitempty"`
	ProjectName *string    `json:"project_name,omitempty"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ListOptions filters audit entries
type ListOptions struct {
	EntityKind EntityKind
	ProjectID  string
	Since      *time.Time
	Limit      int
}
