package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumeng/mindmirror/internal/domain/audit"
	"github.com/lumeng/mindmirror/internal/repository"
)

// Service handles event business logic.
type Service struct {
	repo   Repository
	linker ProjectLinker
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

// NewService creates a new event service.
func NewService(repo Repository, linker ProjectLinker, audits AuditRepository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		linker: linker,
		audits: audits,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest describes an event creation request.
type CreateRequest struct {
	Title        string
	Description  string
	EventDate    time.Time
	EventType    string
	ProjectID    *string
	ReminderTime *time.Time
	ContactIDs   []string
}

// UpdateRequest describes an event update.
type UpdateRequest struct {
	ID           string
	Title        string
	Description  string
	EventDate    time.Time
	EventType    string
	ProjectID    *string
	ReminderTime *time.Time
	ContactIDs   []string
}

// Create records a new event. Every event needs a title and at least one
// contact. When the event belongs to a project, its contacts are also
// linked to that project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*WithContacts, error) {
	if strings.TrimSpace(req.Title) == "" || len(req.ContactIDs) == 0 {
		return nil, ErrInvalidInput
	}

	now := s.now()
	e := &Event{
		ID:           uuid.NewString(),
		ProjectID:    req.ProjectID,
		Title:        req.Title,
		Description:  req.Description,
		EventDate:    req.EventDate,
		EventType:    req.EventType,
		ReminderTime: req.ReminderTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("creating event: %w", err)
	}

	if err := s.repo.LinkContacts(ctx, e.ID, req.ContactIDs); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("linking contacts: %w", err)
	}

	if req.ProjectID != nil {
		for _, cid := range req.ContactIDs {
			if err := s.linker.LinkToProject(ctx, *req.ProjectID, cid, "", ""); err != nil {
				s.logger.Warn("auto-linking contact to project failed",
					"project_id", *req.ProjectID,
					"contact_id", cid,
					"error", err)
			}
		}
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			Operation:   audit.OpCreate,
			EntityKind:  audit.KindEvent,
			EntityID:    e.ID,
			EntityName:  e.Title,
			ProjectID:   e.ProjectID,
			Description: fmt.Sprintf("recorded event %q on %s", e.Title, e.EventDate.Format("2006-01-02")),
		})
	}

	return s.Get(ctx, e.ID)
}

// Update modifies an event and replaces its contact links. Changing the
// reminder time resets the triggered latch so the new time fires again.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*WithContacts, error) {
	if strings.TrimSpace(req.Title) == "" || len(req.ContactIDs) == 0 {
		return nil, ErrInvalidInput
	}

	cur, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	e := cur.Event
	e.Title = req.Title
	e.Description = req.Description
	e.EventDate = req.EventDate
	e.EventType = req.EventType
	e.ProjectID = req.ProjectID
	if !equalTimePtr(e.ReminderTime, req.ReminderTime) {
		e.ReminderTime = req.ReminderTime
		e.ReminderTriggered = false
	}
	e.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, &e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("updating event: %w", err)
	}

	if err := s.repo.UnlinkContacts(ctx, e.ID); err != nil {
		return nil, fmt.Errorf("replacing contact links: %w", err)
	}
	if err := s.repo.LinkContacts(ctx, e.ID, req.ContactIDs); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("linking contacts: %w", err)
	}

	if e.ProjectID != nil {
		for _, cid := range req.ContactIDs {
			if err := s.linker.LinkToProject(ctx, *e.ProjectID, cid, "", ""); err != nil {
				s.logger.Warn("auto-linking contact to project failed",
					"project_id", *e.ProjectID,
					"contact_id", cid,
					"error", err)
			}
		}
	}

	return s.Get(ctx, e.ID)
}

// Get returns an event with its contacts.
func (s *Service) Get(ctx context.Context, id string) (*WithContacts, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("getting event: %w", err)
	}
	return e, nil
}

// Delete removes an event and its contact links.
func (s *Service) Delete(ctx context.Context, id string) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("deleting event: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			Operation:   audit.OpDelete,
			EntityKind:  audit.KindEvent,
			EntityID:    e.ID,
			EntityName:  e.Title,
			ProjectID:   e.ProjectID,
			Description: fmt.Sprintf("deleted event %q", e.Title),
		})
	}

	return nil
}

// TimelineForContact returns a contact's events, newest first.
func (s *Service) TimelineForContact(ctx context.Context, contactID string) ([]WithContacts, error) {
	return s.repo.ListForContact(ctx, contactID)
}

// TimelineForProject returns a project's events, newest first.
func (s *Service) TimelineForProject(ctx context.Context, projectID string) ([]WithContacts, error) {
	return s.repo.ListForProject(ctx, projectID)
}

// Timeline returns all events, newest first.
func (s *Service) Timeline(ctx context.Context) ([]WithContacts, error) {
	return s.repo.ListAll(ctx)
}

// ListRange returns events dated within [start, end] inclusive.
func (s *Service) ListRange(ctx context.Context, start, end time.Time) ([]WithContacts, error) {
	return s.repo.ListRange(ctx, start, end)
}

// UpdateReminder sets or clears an event's reminder time and resets the
// triggered latch.
func (s *Service) UpdateReminder(ctx context.Context, id string, reminderTime *time.Time) error {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	e := cur.Event
	e.ReminderTime = reminderTime
	e.ReminderTriggered = false
	e.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, &e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("updating reminder: %w", err)
	}
	return nil
}

// PendingReminders returns untriggered reminders that came due within the
// minute before now.
func (s *Service) PendingReminders(ctx context.Context, now time.Time) ([]Event, error) {
	return s.repo.PendingReminders(ctx, now.Add(-time.Minute), now)
}

// TodayReminders returns events whose reminder falls on the given day.
func (s *Service) TodayReminders(ctx context.Context, now time.Time) ([]Event, error) {
	return s.repo.ListRemindersForDay(ctx, now)
}

// MarkReminderTriggered latches a reminder as delivered so it won't fire
// again.
func (s *Service) MarkReminderTriggered(ctx context.Context, id string) error {
	if err := s.repo.MarkReminderTriggered(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("marking reminder triggered: %w", err)
	}
	return nil
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
