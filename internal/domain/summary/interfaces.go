package summary

import (
	"context"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/audit"
	"github.com/lumeng/mindmirror/internal/domain/event"
)

// Repository provides persistence for summaries.
type Repository interface {
	Create(ctx context.Context, s *Summary) error
	Get(ctx context.Context, id string) (*Summary, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error
	// ExistsForPeriod reports whether an auto-generated summary of the
	// given type and start date already exists.
	ExistsForPeriod(ctx context.Context, typ Type, start time.Time) (bool, error)
}

// EventSource reads the events a summary aggregates over. Satisfied by the
// event repository.
type EventSource interface {
	ListRange(ctx context.Context, start, end time.Time) ([]event.WithContacts, error)
}

// AuditRepository logs summary operations.
type AuditRepository interface {
	Log(ctx context.Context, entry *audit.Entry) error
}
