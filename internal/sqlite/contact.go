package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lumeng/mindmirror/internal/domain/contact"
	"github.com/lumeng/mindmirror/internal/repository"
)

// ContactRepository implements contact.Repository for SQLite
type ContactRepository struct {
	db *DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = `id, name, title, notes, tags, phone, email, address, company, created_at, updated_at`

// Create creates a new contact
func (r *ContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Title,
		c.Notes,
		c.Tags,
		c.Phone,
		c.Email,
		c.Address,
		c.Company,
		c.CreatedAt.UTC(),
		c.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}

// Get retrieves a contact by ID
func (r *ContactRepository) Get(ctx context.Context, id string) (*contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = ?`

	var c contact.Contact
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Title, &c.Notes, &c.Tags,
		&c.Phone, &c.Email, &c.Address, &c.Company,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return &c, nil
}

// Update modifies a contact
func (r *ContactRepository) Update(ctx context.Context, c *contact.Contact) error {
	query := `
		UPDATE contacts
		SET name = ?, title = ?, notes = ?, tags = ?, phone = ?,
		    email = ?, address = ?, company = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Title, c.Notes, c.Tags, c.Phone,
		c.Email, c.Address, c.Company, c.UpdatedAt.UTC(),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
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

// List retrieves all contacts ordered by name
func (r *ContactRepository) List(ctx context.Context) ([]contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

// LinkToProject attaches a contact to a project, updating the role and
// notes if the link already exists.
func (r *ContactRepository) LinkToProject(ctx context.Context, projectID, contactID, role, notes string) error {
	query := `
		INSERT INTO projects_contacts (project_id, contact_id, role, notes)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(project_id, contact_id) DO UPDATE SET
			role = CASE WHEN excluded.role != '' THEN excluded.role ELSE role END,
			notes = CASE WHEN excluded.notes != '' THEN excluded.notes ELSE notes END
	`

	_, err := r.db.ExecContext(ctx, query, projectID, contactID, role, notes)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to link contact to project: %w", err)
	}

	return nil
}

// UnlinkFromProject removes a contact from a project
func (r *ContactRepository) UnlinkFromProject(ctx context.Context, projectID, contactID string) error {
	query := `DELETE FROM projects_contacts WHERE project_id = ? AND contact_id = ?`

	res, err := r.db.ExecContext(ctx, query, projectID, contactID)
	if err != nil {
		return fmt.Errorf("failed to unlink contact from project: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check unlink result: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListForProject retrieves a project's contacts with their link role/notes
func (r *ContactRepository) ListForProject(ctx context.Context, projectID string) ([]contact.ProjectLink, error) {
	query := `
		SELECT c.id, c.name, c.title, c.notes, c.tags, c.phone, c.email,
		       c.address, c.company, c.created_at, c.updated_at,
		       pc.role, pc.notes
		FROM contacts c
		JOIN projects_contacts pc ON pc.contact_id = c.id
		WHERE pc.project_id = ?
		ORDER BY c.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project contacts: %w", err)
	}
	defer rows.Close()

	var links []contact.ProjectLink
	for rows.Next() {
		var link contact.ProjectLink
		var role, notes sql.NullString
		if err := rows.Scan(
			&link.Contact.ID, &link.Contact.Name, &link.Contact.Title,
			&link.Contact.Notes, &link.Contact.Tags, &link.Contact.Phone,
			&link.Contact.Email, &link.Contact.Address, &link.Contact.Company,
			&link.Contact.CreatedAt, &link.Contact.UpdatedAt,
			&role, &notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project contact: %w", err)
		}
		link.Role = role.String
		link.Notes = notes.String
		links = append(links, link)
	}

	return links, rows.Err()
}

func scanContacts(rows *sql.Rows) ([]contact.Contact, error) {
	var contacts []contact.Contact
	for rows.Next() {
		var c contact.Contact
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Title, &c.Notes, &c.Tags,
			&c.Phone, &c.Email, &c.Address, &c.Company,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// isForeignKeyViolation detects SQLite foreign key constraint failures.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
