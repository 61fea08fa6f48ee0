package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/summary"
	"github.com/lumeng/mindmirror/internal/repository"
)

// SummaryRepository implements summary.Repository for SQLite
type SummaryRepository struct {
	db *DB
}

// NewSummaryRepository creates a new SummaryRepository
func NewSummaryRepository(db *DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

const summaryColumns = `id, title, summary_type, start_date, end_date, content,
	statistics, is_auto_generated, created_at`

// Create persists a new summary; statistics are stored as JSON
func (r *SummaryRepository) Create(ctx context.Context, s *summary.Summary) error {
	stats, err := json.Marshal(s.Statistics)
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}

	query := `
		INSERT INTO summaries (` + summaryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.Title,
		s.Type,
		s.StartDate.UTC(),
		s.EndDate.UTC(),
		s.Content,
		string(stats),
		s.IsAutoGenerated,
		s.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}

	return nil
}

// Get retrieves a summary by ID
func (r *SummaryRepository) Get(ctx context.Context, id string) (*summary.Summary, error) {
	query := `SELECT ` + summaryColumns + ` FROM summaries WHERE id = ?`

	s, err := scanSummary(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	return s, nil
}

// List retrieves all summaries, newest first
func (r *SummaryRepository) List(ctx context.Context) ([]summary.Summary, error) {
	query := `SELECT ` + summaryColumns + ` FROM summaries ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	var list []summary.Summary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		list = append(list, *s)
	}

	return list, rows.Err()
}

// Delete removes a summary
func (r *SummaryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM summaries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete summary: %w", err)
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

// ExistsForPeriod reports whether an auto-generated summary of the given
// type and period start already exists
func (r *SummaryRepository) ExistsForPeriod(ctx context.Context, typ summary.Type, start time.Time) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM summaries
		WHERE summary_type = ? AND start_date = ? AND is_auto_generated = 1
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, typ, start.UTC()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check summary period: %w", err)
	}

	return count > 0, nil
}

func scanSummary(row rowScanner) (*summary.Summary, error) {
	var s summary.Summary
	var stats sql.NullString
	if err := row.Scan(
		&s.ID, &s.Title, &s.Type, &s.StartDate, &s.EndDate,
		&s.Content, &stats, &s.IsAutoGenerated, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	if stats.Valid && stats.String != "" {
		if err := json.Unmarshal([]byte(stats.String), &s.Statistics); err != nil {
			return nil, fmt.Errorf("failed to decode statistics: %w", err)
		}
	}
	return &s, nil
}
