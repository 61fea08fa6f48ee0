package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/contact"
	"github.com/lumeng/mindmirror/internal/domain/event"
	"github.com/lumeng/mindmirror/internal/repository"
)

// EventRepository implements event.Repository for SQLite
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `e.id, e.project_id, e.title, e.description, e.event_date,
	e.event_type, e.reminder_time, e.reminder_triggered, e.created_at, e.updated_at`

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, e *event.Event) error {
	query := `
		INSERT INTO events (id, project_id, title, description, event_date,
			event_type, reminder_time, reminder_triggered, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		e.Title,
		e.Description,
		e.EventDate.UTC(),
		e.EventType,
		nullTime(e.ReminderTime),
		e.ReminderTriggered,
		e.CreatedAt.UTC(),
		e.UpdatedAt.UTC(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// Get retrieves an event with its contacts and project name
func (r *EventRepository) Get(ctx context.Context, id string) (*event.WithContacts, error) {
	query := `
		SELECT ` + eventColumns + `, p.name
		FROM events e
		LEFT JOIN projects p ON p.id = e.project_id
		WHERE e.id = ?
	`

	e, err := scanEventWithProject(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	contacts, err := r.listEventContacts(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.Contacts = contacts

	return e, nil
}

// Update modifies an event
func (r *EventRepository) Update(ctx context.Context, e *event.Event) error {
	query := `
		UPDATE events
		SET project_id = ?, title = ?, description = ?, event_date = ?,
		    event_type = ?, reminder_time = ?, reminder_triggered = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		e.ProjectID,
		e.Title,
		e.Description,
		e.EventDate.UTC(),
		e.EventType,
		nullTime(e.ReminderTime),
		e.ReminderTriggered,
		e.UpdatedAt.UTC(),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes an event; contact links cascade
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// LinkContacts attaches contacts to an event, ignoring duplicates
func (r *EventRepository) LinkContacts(ctx context.Context, eventID string, contactIDs []string) error {
	query := `
		INSERT INTO events_contacts (event_id, contact_id)
		VALUES (?, ?)
		ON CONFLICT(event_id, contact_id) DO NOTHING
	`

	for _, cid := range contactIDs {
		if _, err := r.db.ExecContext(ctx, query, eventID, cid); err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			return fmt.Errorf("failed to link event contact: %w", err)
		}
	}

	return nil
}

// UnlinkContacts removes all contact links for an event
func (r *EventRepository) UnlinkContacts(ctx context.Context, eventID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM events_contacts WHERE event_id = ?", eventID)
	if err != nil {
		return fmt.Errorf("failed to unlink event contacts: %w", err)
	}
	return nil
}

// ListForContact retrieves a contact's events, newest first
func (r *EventRepository) ListForContact(ctx context.Context, contactID string) ([]event.WithContacts, error) {
	query := `
		SELECT ` + eventColumns + `, p.name
		FROM events e
		JOIN events_contacts ec ON ec.event_id = e.id
		LEFT JOIN projects p ON p.id = e.project_id
		WHERE ec.contact_id = ?
		ORDER BY e.event_date DESC
	`
	return r.queryEvents(ctx, query, contactID)
}

// ListForProject retrieves a project's events, newest first
func (r *EventRepository) ListForProject(ctx context.Context, projectID string) ([]event.WithContacts, error) {
	query := `
		SELECT ` + eventColumns + `, p.name
		FROM events e
		LEFT JOIN projects p ON p.id = e.project_id
		WHERE e.project_id = ?
		ORDER BY e.event_date DESC
	`
	return r.queryEvents(ctx, query, projectID)
}

// ListAll retrieves every event, newest first
func (r *EventRepository) ListAll(ctx context.Context) ([]event.WithContacts, error) {
	query := `
		SELECT ` + eventColumns + `, p.name
		FROM events e
		LEFT JOIN projects p ON p.id = e.project_id
		ORDER BY e.event_date DESC
	`
	return r.queryEvents(ctx, query)
}

// ListRange retrieves events dated within [start, end] inclusive. Bounds
// are normalized to day granularity.
func (r *EventRepository) ListRange(ctx context.Context, start, end time.Time) ([]event.WithContacts, error) {
	query := `
		SELECT ` + eventColumns + `, p.name
		FROM events e
		LEFT JOIN projects p ON p.id = e.project_id
		WHERE e.event_date >= ? AND e.event_date < ?
		ORDER BY e.event_date ASC
	`
	return r.queryEvents(ctx, query, dayStart(start), dayStart(end).AddDate(0, 0, 1))
}

// PendingReminders retrieves untriggered reminders due in (since, until]
func (r *EventRepository) PendingReminders(ctx context.Context, since, until time.Time) ([]event.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		WHERE e.reminder_triggered = 0
		  AND e.reminder_time IS NOT NULL
		  AND e.reminder_time > ? AND e.reminder_time <= ?
		ORDER BY e.reminder_time ASC
	`
	return r.queryBareEvents(ctx, query, since.UTC(), until.UTC())
}

// ListRemindersForDay retrieves events whose reminder falls on the given day
func (r *EventRepository) ListRemindersForDay(ctx context.Context, day time.Time) ([]event.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		WHERE e.reminder_time IS NOT NULL
		  AND e.reminder_time >= ? AND e.reminder_time < ?
		ORDER BY e.reminder_time ASC
	`
	return r.queryBareEvents(ctx, query, dayStart(day), dayStart(day).AddDate(0, 0, 1))
}

// MarkReminderTriggered latches a reminder as delivered
func (r *EventRepository) MarkReminderTriggered(ctx context.Context, eventID string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE events SET reminder_triggered = 1 WHERE id = ?", eventID)
	if err != nil {
		return fmt.Errorf("failed to mark reminder triggered: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check reminder update result: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *EventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]event.WithContacts, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var list []event.WithContacts
	for rows.Next() {
		e, err := scanEventWithProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range list {
		contacts, err := r.listEventContacts(ctx, list[i].ID)
		if err != nil {
			return nil, err
		}
		list[i].Contacts = contacts
	}

	return list, nil
}

func (r *EventRepository) queryBareEvents(ctx context.Context, query string, args ...any) ([]event.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var list []event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		list = append(list, *e)
	}

	return list, rows.Err()
}

func (r *EventRepository) listEventContacts(ctx context.Context, eventID string) ([]contact.Contact, error) {
	query := `
		SELECT c.id, c.name, c.title, c.notes, c.tags, c.phone, c.email,
		       c.address, c.company, c.created_at, c.updated_at
		FROM contacts c
		JOIN events_contacts ec ON ec.contact_id = c.id
		WHERE ec.event_id = ?
		ORDER BY c.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list event contacts: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

func scanEvent(row rowScanner) (*event.Event, error) {
	var e event.Event
	var projectID sql.NullString
	var reminder sql.NullTime
	if err := row.Scan(
		&e.ID, &projectID, &e.Title, &e.Description, &e.EventDate,
		&e.EventType, &reminder, &e.ReminderTriggered, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if projectID.Valid {
		e.ProjectID = &projectID.String
	}
	e.ReminderTime = timePtr(reminder)
	return &e, nil
}

func scanEventWithProject(row rowScanner) (*event.WithContacts, error) {
	var e event.WithContacts
	var projectID, projectName sql.NullString
	var reminder sql.NullTime
	if err := row.Scan(
		&e.ID, &projectID, &e.Title, &e.Description, &e.EventDate,
		&e.EventType, &reminder, &e.ReminderTriggered, &e.CreatedAt, &e.UpdatedAt,
		&projectName,
	); err != nil {
		return nil, err
	}
	if projectID.Valid {
		e.ProjectID = &projectID.String
	}
	if projectName.Valid {
		e.ProjectName = &projectName.String
	}
	e.ReminderTime = timePtr(reminder)
	return &e, nil
}

// dayStart truncates to midnight UTC.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
