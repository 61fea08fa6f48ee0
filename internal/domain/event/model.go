package event

import (
	"time"

	"github.com/lumeng/mindmirror/internal/domain/contact"
)

// Event is a dated record of an interaction, optionally attached to a
// project and linked to one or more contacts.
type Event struct {
	ID                string     `json:"id"`
	ProjectID         *string    `json:"project_id,omitempty"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	EventDate         time.Time  `json:"event_date"`
	EventType         string     `json:"event_type,omitempty"`
	ReminderTime      *time.Time `json:"reminder_time,omitempty"`
	ReminderTriggered bool       `json:"reminder_triggered"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// WithContacts pairs an event with its linked contacts
type WithContacts struct {
	Event
	Contacts    []contact.Contact `json:"contacts"`
	ProjectName *string           `json:"project_name,omitempty"`
}
