package project

import (
	"context"

	"github.com/lumeng/mindmirror/internal/domain/audit"
)

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, proj *Project) error
	List(ctx context.Context) ([]Project, error)
}

// AuditRepository logs project operations.
type AuditRepository interface {
	Log(ctx context.Context, entry *audit.Entry) error
}
