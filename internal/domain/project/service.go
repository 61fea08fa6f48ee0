package project

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

// Service handles project operations.
type Service struct {
	repo   Repository
	audits AuditRepository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, audits AuditRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, audits: audits, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name        string
	Description string
}

// UpdateRequest defines project update inputs.
type UpdateRequest struct {
	ID          string
	Name        string
	Description string
}

// Create creates a new project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	proj := &Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			Operation:   audit.OpCreate,
			EntityKind:  audit.KindProject,
			EntityID:    proj.ID,
			EntityName:  proj.Name,
			Description: fmt.Sprintf("created project %q", proj.Name),
		})
	}

	return proj, nil
}

// Update modifies a project's name and description.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	proj, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	proj.Name = req.Name
	proj.Description = req.Description
	proj.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, proj); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns all projects, most recently updated first.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}
