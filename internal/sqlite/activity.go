package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/activity"
	"github.com/lumeng/mindmirror/internal/domain/contact"
	"github.com/lumeng/mindmirror/internal/repository"
)

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `id, project_id, name, description, estimated_completion_date,
	status, activated_at, paused_at, completed_at, created_at, updated_at`

// Create creates a new activity
func (r *ActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	query := `
		INSERT INTO activities (` + activityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.ProjectID,
		a.Name,
		a.Description,
		nullTime(a.EstimatedCompletionDate),
		a.Status,
		nullTime(a.ActivatedAt),
		nullTime(a.PausedAt),
		nullTime(a.CompletedAt),
		a.CreatedAt.UTC(),
		a.UpdatedAt.UTC(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

// Get retrieves an activity by ID
func (r *ActivityRepository) Get(ctx context.Context, id string) (*activity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = ?`

	a, err := scanActivity(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return a, nil
}

// UpdateDetails modifies an activity's name, description, and estimate.
// Status and lifecycle timestamps are only changed through UpdateStatus.
func (r *ActivityRepository) UpdateDetails(ctx context.Context, a *activity.Activity) error {
	query := `
		UPDATE activities
		SET name = ?, description = ?, estimated_completion_date = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		a.Name,
		a.Description,
		nullTime(a.EstimatedCompletionDate),
		a.UpdatedAt.UTC(),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
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

// UpdateStatus applies a guarded status transition: the row is only
// updated when its persisted status still matches expected. Zero rows
// affected means either the activity is gone (ErrNotFound) or another
// writer got there first (ErrConflict).
func (r *ActivityRepository) UpdateStatus(ctx context.Context, id string, expected activity.Status, upd activity.StatusUpdate) error {
	query := `
		UPDATE activities
		SET status = ?,
		    activated_at = COALESCE(?, activated_at),
		    paused_at = COALESCE(?, paused_at),
		    completed_at = COALESCE(?, completed_at),
		    updated_at = ?
		WHERE id = ? AND status = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		upd.Status,
		nullTime(upd.ActivatedAt),
		nullTime(upd.PausedAt),
		nullTime(upd.CompletedAt),
		time.Now().UTC(),
		id,
		expected,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check status update result: %w", err)
	}
	if rows > 0 {
		return nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM activities WHERE id = ?", id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check activity existence: %w", err)
	}
	if exists == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}

// Delete removes an activity; assignee links cascade
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM activities WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
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

// ListForProject retrieves a project's activities with assignees, newest first
func (r *ActivityRepository) ListForProject(ctx context.Context, projectID string) ([]activity.WithAssignees, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE project_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	return r.collectWithAssignees(ctx, rows)
}

// ListAll retrieves every activity with assignees and project names,
// grouped by project
func (r *ActivityRepository) ListAll(ctx context.Context) ([]activity.WithAssignees, error) {
	query := `
		SELECT a.id, a.project_id, a.name, a.description, a.estimated_completion_date,
		       a.status, a.activated_at, a.paused_at, a.completed_at, a.created_at, a.updated_at,
		       p.name
		FROM activities a
		JOIN projects p ON p.id = a.project_id
		ORDER BY p.name ASC, a.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all activities: %w", err)
	}
	defer rows.Close()

	var list []activity.WithAssignees
	for rows.Next() {
		var a activity.Activity
		var estimated, activated, paused, completed sql.NullTime
		var projectName string
		if err := rows.Scan(
			&a.ID, &a.ProjectID, &a.Name, &a.Description, &estimated,
			&a.Status, &activated, &paused, &completed, &a.CreatedAt, &a.UpdatedAt,
			&projectName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.EstimatedCompletionDate = timePtr(estimated)
		a.ActivatedAt = timePtr(activated)
		a.PausedAt = timePtr(paused)
		a.CompletedAt = timePtr(completed)
		list = append(list, activity.WithAssignees{Activity: a, ProjectName: projectName})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range list {
		assignees, err := r.ListAssignees(ctx, list[i].ID)
		if err != nil {
			return nil, err
		}
		list[i].Assignees = assignees
	}

	return list, nil
}

// AssignContacts links contacts to an activity, ignoring duplicates
func (r *ActivityRepository) AssignContacts(ctx context.Context, activityID string, contactIDs []string) error {
	query := `
		INSERT INTO activities_contacts (activity_id, contact_id)
		VALUES (?, ?)
		ON CONFLICT(activity_id, contact_id) DO NOTHING
	`

	for _, cid := range contactIDs {
		if _, err := r.db.ExecContext(ctx, query, activityID, cid); err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			return fmt.Errorf("failed to assign contact: %w", err)
		}
	}

	return nil
}

// UnassignContact removes an assignee link
func (r *ActivityRepository) UnassignContact(ctx context.Context, activityID, contactID string) error {
	query := `DELETE FROM activities_contacts WHERE activity_id = ? AND contact_id = ?`

	res, err := r.db.ExecContext(ctx, query, activityID, contactID)
	if err != nil {
		return fmt.Errorf("failed to unassign contact: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check unassign result: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListAssignees retrieves an activity's assigned contacts
func (r *ActivityRepository) ListAssignees(ctx context.Context, activityID string) ([]contact.Contact, error) {
	query := `
		SELECT c.id, c.name, c.title, c.notes, c.tags, c.phone, c.email,
		       c.address, c.company, c.created_at, c.updated_at
		FROM contacts c
		JOIN activities_contacts ac ON ac.contact_id = c.id
		WHERE ac.activity_id = ?
		ORDER BY c.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignees: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

func (r *ActivityRepository) collectWithAssignees(ctx context.Context, rows *sql.Rows) ([]activity.WithAssignees, error) {
	var list []activity.WithAssignees
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		list = append(list, activity.WithAssignees{Activity: *a})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range list {
		assignees, err := r.ListAssignees(ctx, list[i].ID)
		if err != nil {
			return nil, err
		}
		list[i].Assignees = assignees
	}

	return list, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (*activity.Activity, error) {
	var a activity.Activity
	var estimated, activated, paused, completed sql.NullTime
	if err := row.Scan(
		&a.ID, &a.ProjectID, &a.Name, &a.Description, &estimated,
		&a.Status, &activated, &paused, &completed, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.EstimatedCompletionDate = timePtr(estimated)
	a.ActivatedAt = timePtr(activated)
	a.PausedAt = timePtr(paused)
	a.CompletedAt = timePtr(completed)
	return &a, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
