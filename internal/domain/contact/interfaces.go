package contact

import (
	"context"

	"github.com/lumeng/mindmirror/internal/domain/audit"
)

// Repository provides persistence for contacts and project links.
type Repository interface {
	Create(ctx context.Context, c *Contact) error
	Get(ctx context.Context, id string) (*Contact, error)
	Update(ctx context.Context, c *Contact) error
	List(ctx context.Context) ([]Contact, error)
	LinkToProject(ctx context.Context, projectID, contactID, role, notes string) error
	UnlinkFromProject(ctx context.Context, projectID, contactID string) error
	ListForProject(ctx context.Context, projectID string) ([]ProjectLink, error)
}

// AuditRepository logs contact operations.
type AuditRepository interface {
	Log(ctx context.Context, entry *audit.Entry) error
}
