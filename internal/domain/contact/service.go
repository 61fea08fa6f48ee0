package contact

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

// Service handles contact operations.
type Service struct {
	repo   Repository
	audits AuditRepository
	logger *slog.Logger
}

// NewService creates a new contact service.
func NewService(repo Repository, audits AuditRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, audits: audits, logger: logger}
}

// CreateRequest defines contact creation inputs.
type CreateRequest struct {
	Name    string
	Title   string
	Notes   string
	Tags    string
	Phone   string
	Email   string
	Address string
	Company string
}

// UpdateRequest defines contact update inputs.
type UpdateRequest struct {
	ID      string
	Name    string
	Title   string
	Notes   string
	Tags    string
	Phone   string
	Email   string
	Address string
	Company string
}

// Create creates a new contact.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Contact, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	c := &Contact{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Title:     req.Title,
		Notes:     req.Notes,
		Tags:      req.Tags,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		Company:   req.Company,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	if s.audits != nil {
		desc := fmt.Sprintf("created contact %q", c.Name)
		if c.Tags != "" {
			desc += fmt.Sprintf(" (tags: %s)", c.Tags)
		}
		_ = s.audits.Log(ctx, &audit.Entry{
			Operation:   audit.OpCreate,
			EntityKind:  audit.KindContact,
			EntityID:    c.ID,
			EntityName:  c.Name,
			Description: desc,
		})
	}

	return c, nil
}

// Update modifies a contact.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Contact, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	c, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	c.Name = req.Name
	c.Title = req.Title
	c.Notes = req.Notes
	c.Tags = req.Tags
	c.Phone = req.Phone
	c.Email = req.Email
	c.Address = req.Address
	c.Company = req.Company
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("updating contact: %w", err)
	}

	return c, nil
}

// Get fetches a contact by ID.
func (s *Service) Get(ctx context.Context, id string) (*Contact, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("getting contact: %w", err)
	}
	return c, nil
}

// List returns all contacts, most recently updated first.
func (s *Service) List(ctx context.Context) ([]Contact, error) {
	return s.repo.List(ctx)
}

// LinkToProject associates a contact with a project. Linking an already
// linked contact overwrites the role and notes.
func (s *Service) LinkToProject(ctx context.Context, projectID, contactID, role, notes string) error {
	if projectID == "" || contactID == "" {
		return ErrInvalidInput
	}
	if err := s.repo.LinkToProject(ctx, projectID, contactID, role, notes); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return ErrContactNotFound
		}
		return fmt.Errorf("linking contact to project: %w", err)
	}
	return nil
}

// UnlinkFromProject removes a contact's association with a project.
func (s *Service) UnlinkFromProject(ctx context.Context, projectID, contactID string) error {
	if err := s.repo.UnlinkFromProject(ctx, projectID, contactID); err != nil {
		return fmt.Errorf("unlinking contact from project: %w", err)
	}
	return nil
}

// ListForProject returns the contacts linked to a project with their roles.
func (s *Service) ListForProject(ctx context.Context, projectID string) ([]ProjectLink, error) {
	return s.repo.ListForProject(ctx, projectID)
}
