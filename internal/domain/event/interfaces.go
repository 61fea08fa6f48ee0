package event

import (
	"context"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/audit"
	"github.com/lumeng/mindmirror/internal/domain/contact"
)

// Repository provides persistence for events, their contact links, and
// reminder state.
type Repository interface {
	Create(ctx context.Context, e *Event) error
	Get(ctx context.Context, id string) (*WithContacts, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
	LinkContacts(ctx context.Context, eventID string, contactIDs []string) error
	UnlinkContacts(ctx context.Context, eventID string) error
	ListForContact(ctx context.Context, contactID string) ([]WithContacts, error)
	ListForProject(ctx context.Context, projectID string) ([]WithContacts, error)
	ListAll(ctx context.Context) ([]WithContacts, error)
	// ListRange returns events whose event_date falls within [start, end]
	// inclusive, date-only comparison.
	ListRange(ctx context.Context, start, end time.Time) ([]WithContacts, error)
	// PendingReminders returns untriggered reminders with reminder_time in
	// (since, until].
	PendingReminders(ctx context.Context, since, until time.Time) ([]Event, error)
	// ListRemindersForDay returns events whose reminder falls on the given
	// calendar day, triggered or not.
	ListRemindersForDay(ctx context.Context, day time.Time) ([]Event, error)
	MarkReminderTriggered(ctx context.Context, eventID string) error
}

// ProjectLinker attaches contacts to a project. Satisfied by the contact
// repository; event creation uses it to auto-link an event's contacts to
// the event's project.
type ProjectLinker interface {
	LinkToProject(ctx context.Context, projectID, contactID, role, notes string) error
}

// AuditRepository logs event operations.
type AuditRepository interface {
	Log(ctx context.Context, entry *audit.Entry) error
}

var _ ProjectLinker = (contact.Repository)(nil)
