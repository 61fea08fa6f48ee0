package activity

import (
	"context"

	"github.com/lumeng/mindmirror/internal/domain/audit"
	"github.com/lumeng/mindmirror/internal/domain/contact"
)

// Repository provides persistence for activities and assignee links.
type Repository interface {
	Create(ctx context.Context, a *Activity) error
	Get(ctx context.Context, id string) (*Activity, error)
	UpdateDetails(ctx context.Context, a *Activity) error
	// UpdateStatus applies upd only if the persisted status still equals
	// expected. It returns repository.ErrConflict when the guard fails and
	// repository.ErrNotFound when the activity doesn't exist.
	UpdateStatus(ctx context.Context, id string, expected Status, upd StatusUpdate) error
	Delete(ctx context.Context, id string) error
	ListForProject(ctx context.Context, projectID string) ([]WithAssignees, error)
	ListAll(ctx context.Context) ([]WithAssignees, error)
	AssignContacts(ctx context.Context, activityID string, contactIDs []string) error
	UnassignContact(ctx context.Context, activityID, contactID string) error
	ListAssignees(ctx context.Context, activityID string) ([]contact.Contact, error)
}

// AuditRepository logs activity operations.
type AuditRepository interface {
	Log(ctx context.Context, entry *audit.Entry) error
}
