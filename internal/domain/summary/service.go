package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lumeng/mindmirror/internal/domain/audit"
	"github.com/lumeng/mindmirror/internal/repository"
)

// Service generates and manages summaries.
type Service struct {
	repo   Repository
	events EventSource
	audits AuditRepository
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new summary service.
func NewService(repo Repository, events EventSource, audits AuditRepository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		events: events,
		audits: audits,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate produces and persists a new summary over [start, end]. Each
// call creates an independent record; summaries are history, not a cache.
func (s *Service) Generate(ctx context.Context, typ Type, start, end time.Time) (*Summary, error) {
	return s.generate(ctx, typ, start, end, false)
}

func (s *Service) generate(ctx context.Context, typ Type, start, end time.Time, auto bool) (*Summary, error) {
	if !typ.Valid() {
		return nil, ErrInvalidType
	}
	start = dateOnly(start)
	end = dateOnly(end)
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	events, err := s.events.ListRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	sum := &Summary{
		ID:              uuid.NewString(),
		Title:           Title(typ, start, end),
		Type:            typ,
		StartDate:       start,
		EndDate:         end,
		Content:         Render(typ, start, end, events),
		Statistics:      Aggregate(events),
		IsAutoGenerated: auto,
		CreatedAt:       s.now(),
	}

	if err := s.repo.Create(ctx, sum); err != nil {
		return nil, fmt.Errorf("saving summary: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			Operation:   audit.OpCreate,
			EntityKind:  audit.KindSummary,
			EntityID:    sum.ID,
			EntityName:  sum.Title,
			Description: fmt.Sprintf("generated %s summary covering %d event(s)", typ, sum.Statistics.TotalEvents),
		})
	}

	return sum, nil
}

// GenerateDue produces any scheduled summaries that are due at now and not
// yet generated: yesterday's daily every day, the previous week's weekly on
// Mondays, and the previous month's monthly on the first of the month.
// Deduplication is keyed on type plus period start, so repeated polls on
// the same day are no-ops.
func (s *Service) GenerateDue(ctx context.Context, now time.Time) error {
	type period struct {
		typ        Type
		start, end time.Time
	}

	today := dateOnly(now)
	yesterday := today.AddDate(0, 0, -1)

	due := []period{{TypeDaily, yesterday, yesterday}}
	if today.Weekday() == time.Monday {
		due = append(due, period{TypeWeekly, today.AddDate(0, 0, -7), yesterday})
	}
	if today.Day() == 1 {
		due = append(due, period{TypeMonthly, today.AddDate(0, -1, 0), yesterday})
	}

	for _, d := range due {
		exists, err := s.repo.ExistsForPeriod(ctx, d.typ, d.start)
		if err != nil {
			return fmt.Errorf("checking existing %s summary: %w", d.typ, err)
		}
		if exists {
			continue
		}
		if _, err := s.generate(ctx, d.typ, d.start, d.end, true); err != nil {
			return fmt.Errorf("auto-generating %s summary: %w", d.typ, err)
		}
		s.logger.Info("auto-generated summary", "type", d.typ, "start", d.start.Format(dateLayout))
	}

	return nil
}

// Get returns a summary by ID.
func (s *Service) Get(ctx context.Context, id string) (*Summary, error) {
	sum, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("getting summary: %w", err)
	}
	return sum, nil
}

// List returns all summaries, newest first.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.List(ctx)
}

// Delete removes a summary.
func (s *Service) Delete(ctx context.Context, id string) error {
	sum, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSummaryNotFound
		}
		return fmt.Errorf("deleting summary: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			Operation:   audit.OpDelete,
			EntityKind:  audit.KindSummary,
			EntityID:    sum.ID,
			EntityName:  sum.Title,
			Description: fmt.Sprintf("deleted summary %q", sum.Title),
		})
	}

	return nil
}
