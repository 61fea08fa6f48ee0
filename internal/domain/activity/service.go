package activity

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

// Service handles activity business logic.
type Service struct {
	repo   Repository
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

// NewService creates a new activity service.
func NewService(repo Repository, audits AuditRepository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		audits: audits,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest describes an activity creation request.
type CreateRequest struct {
	ProjectID               string
	Name                    string
	Description             string
	EstimatedCompletionDate *time.Time
	ContactIDs              []string
}

// UpdateRequest describes an activity detail update.
type UpdateRequest struct {
	ID                      string
	Name                    string
	Description             string
	EstimatedCompletionDate *time.Time
}

// Create creates a new activity. Its initial status depends on whether any
// assignees are given.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*WithAssignees, error) {
	if strings.TrimSpace(req.ProjectID) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	now := s.now()
	a := &Activity{
		ID:                      uuid.NewString(),
		ProjectID:               req.ProjectID,
		Name:                    req.Name,
		Description:             req.Description,
		EstimatedCompletionDate: req.EstimatedCompletionDate,
		Status:                  InitialStatus(len(req.ContactIDs)),
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("creating activity: %w", err)
	}

	if len(req.ContactIDs) > 0 {
		if err := s.repo.AssignContacts(ctx, a.ID, req.ContactIDs); err != nil {
			return nil, fmt.Errorf("assigning contacts: %w", err)
		}
	}

	assignees, err := s.repo.ListAssignees(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("loading assignees: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			Operation:   audit.OpCreate,
			EntityKind:  audit.KindActivity,
			EntityID:    a.ID,
			EntityName:  a.Name,
			ProjectID:   &a.ProjectID,
			Description: fmt.Sprintf("created activity %q", a.Name),
		})
	}

	return &WithAssignees{Activity: *a, Assignees: assignees}, nil
}

// Update modifies an activity's name, description, and estimate. Status is
// never touched here; use the transition methods.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Activity, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	a, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	a.Name = req.Name
	a.Description = req.Description
	a.EstimatedCompletionDate = req.EstimatedCompletionDate
	a.UpdatedAt = s.now()

	if err := s.repo.UpdateDetails(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("updating activity: %w", err)
	}

	return a, nil
}

// Assign adds contacts as assignees. The first assignment promotes a
// pending activity to inactive; it never advances further.
func (s *Service) Assign(ctx context.Context, activityID string, contactIDs []string) error {
	if len(contactIDs) == 0 {
		return ErrInvalidInput
	}

	if _, err := s.Get(ctx, activityID); err != nil {
		return err
	}

	if err := s.repo.AssignContacts(ctx, activityID, contactIDs); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return ErrInvalidInput
		}
		return fmt.Errorf("assigning contacts: %w", err)
	}

	// Promote pending -> inactive. A conflict just means the activity was
	// already past pending.
	err := s.repo.UpdateStatus(ctx, activityID, StatusPending, StatusUpdate{Status: StatusInactive})
	if err != nil && !errors.Is(err, repository.ErrConflict) {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("promoting activity: %w", err)
	}

	return nil
}

// Unassign removes an assignee. The status is never demoted, even when the
// last assignee is removed.
func (s *Service) Unassign(ctx context.Context, activityID, contactID string) error {
	if err := s.repo.UnassignContact(ctx, activityID, contactID); err != nil {
		return fmt.Errorf("unassigning contact: %w", err)
	}
	return nil
}

// Activate starts or resumes an activity.
func (s *Service) Activate(ctx context.Context, id string) (*Activity, error) {
	return s.transition(ctx, id, ActionActivate)
}

// Pause suspends an in-progress activity.
func (s *Service) Pause(ctx context.Context, id string) (*Activity, error) {
	return s.transition(ctx, id, ActionPause)
}

// Complete finishes an in-progress activity. Completed is terminal.
func (s *Service) Complete(ctx context.Context, id string) (*Activity, error) {
	return s.transition(ctx, id, ActionComplete)
}

func (s *Service) transition(ctx context.Context, id string, action Action) (*Activity, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	upd, err := Transition(a.Status, action, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, a.Status, upd); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("applying %s: %w", action, err)
	}

	prior := a.Status
	s.logger.Debug("activity transition",
		"activity_id", a.ID,
		"from", prior,
		"to", upd.Status)
	a.Status = upd.Status
	if upd.ActivatedAt != nil {
		a.ActivatedAt = upd.ActivatedAt
	}
	if upd.PausedAt != nil {
		a.PausedAt = upd.PausedAt
	}
	if upd.CompletedAt != nil {
		a.CompletedAt = upd.CompletedAt
	}
	a.UpdatedAt = s.now()

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			Operation:   audit.OpTransition,
			EntityKind:  audit.KindActivity,
			EntityID:    a.ID,
			EntityName:  a.Name,
			ProjectID:   &a.ProjectID,
			Description: fmt.Sprintf("activity %q moved from %s to %s", a.Name, prior, a.Status),
		})
	}

	return a, nil
}

// Get returns an activity by ID.
func (s *Service) Get(ctx context.Context, id string) (*Activity, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("getting activity: %w", err)
	}
	return a, nil
}

// Delete removes an activity and its assignee links. Completed activities
// are immutable and cannot be deleted.
func (s *Service) Delete(ctx context.Context, id string) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if a.Status == StatusCompleted {
		return ErrInvalidTransition
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("deleting activity: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			Operation:   audit.OpDelete,
			EntityKind:  audit.KindActivity,
			EntityID:    a.ID,
			EntityName:  a.Name,
			ProjectID:   &a.ProjectID,
			Description: fmt.Sprintf("deleted activity %q", a.Name),
		})
	}

	return nil
}

// ListForProject returns a project's activities with their assignees,
// newest first.
func (s *Service) ListForProject(ctx context.Context, projectID string) ([]WithAssignees, error) {
	return s.repo.ListForProject(ctx, projectID)
}

// ListAll returns every activity with assignees and project names, grouped
// by project. Used for the gantt export.
func (s *Service) ListAll(ctx context.Context) ([]WithAssignees, error) {
	return s.repo.ListAll(ctx)
}
