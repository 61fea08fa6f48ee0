package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/audit"
)

// AuditRepository implements audit.Repository for SQLite
type AuditRepository struct {
	db *DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Log appends an audit entry
func (r *AuditRepository) Log(ctx context.Context, entry *audit.Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO audit_log (operation, entity_kind, entity_id, entity_name,
			project_id, project_name, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		entry.Operation,
		entry.EntityKind,
		entry.EntityID,
		entry.EntityName,
		entry.ProjectID,
		entry.ProjectName,
		entry.Description,
		entry.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to log audit entry: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		entry.ID = id
	}

	return nil
}

// List retrieves audit entries matching the filter, newest first
func (r *AuditRepository) List(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error) {
	var conds []string
	var args []any

	if opts.EntityKind != "" {
		conds = append(conds, "entity_kind = ?")
		args = append(args, opts.EntityKind)
	}
	if opts.ProjectID != "" {
		conds = append(conds, "project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.Since != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, opts.Since.UTC())
	}

	query := `
		SELECT id, operation, entity_kind, entity_id, entity_name,
		       project_id, project_name, description, created_at
		FROM audit_log
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var entityName, projectID, projectName, description sql.NullString
		if err := rows.Scan(
			&e.ID, &e.Operation, &e.EntityKind, &e.EntityID, &entityName,
			&projectID, &projectName, &description, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.EntityName = entityName.String
		if projectID.Valid {
			e.ProjectID = &projectID.String
		}
		if projectName.Valid {
			e.ProjectName = &projectName.String
		}
		e.Description = description.String
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
