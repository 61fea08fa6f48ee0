// Package mcp exposes the journal's operations as MCP tools.
package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/activity"
	"github.com/lumeng/mindmirror/internal/domain/audit"
	"github.com/lumeng/mindmirror/internal/domain/contact"
	"github.com/lumeng/mindmirror/internal/domain/event"
	"github.com/lumeng/mindmirror/internal/domain/project"
	"github.com/lumeng/mindmirror/internal/domain/summary"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `mindmirror is a personal project and relationship journal.
Projects hold activities (units of work with a lifecycle) and events (dated
interactions with contacts). Use the gantt tools to visualize activity
schedules and the summary tools to generate reports over event history.`

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Update(ctx context.Context, req project.UpdateRequest) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
}

// ContactService defines contact operations needed by MCP.
type ContactService interface {
	Create(ctx context.Context, req contact.CreateRequest) (*contact.Contact, error)
	Update(ctx context.Context, req contact.UpdateRequest) (*contact.Contact, error)
	Get(ctx context.Context, id string) (*contact.Contact, error)
	List(ctx context.Context) ([]contact.Contact, error)
	LinkToProject(ctx context.Context, projectID, contactID, role, notes string) error
	UnlinkFromProject(ctx context.Context, projectID, contactID string) error
	ListForProject(ctx context.Context, projectID string) ([]contact.ProjectLink, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	Create(ctx context.Context, req activity.CreateRequest) (*activity.WithAssignees, error)
	Update(ctx context.Context, req activity.UpdateRequest) (*activity.Activity, error)
	Assign(ctx context.Context, activityID string, contactIDs []string) error
	Unassign(ctx context.Context, activityID, contactID string) error
	Activate(ctx context.Context, id string) (*activity.Activity, error)
	Pause(ctx context.Context, id string) (*activity.Activity, error)
	Complete(ctx context.Context, id string) (*activity.Activity, error)
	Get(ctx context.Context, id string) (*activity.Activity, error)
	Delete(ctx context.Context, id string) error
	ListForProject(ctx context.Context, projectID string) ([]activity.WithAssignees, error)
	ListAll(ctx context.Context) ([]activity.WithAssignees, error)
}

// EventService defines event operations needed by MCP.
type EventService interface {
	Create(ctx context.Context, req event.CreateRequest) (*event.WithContacts, error)
	Update(ctx context.Context, req event.UpdateRequest) (*event.WithContacts, error)
	Get(ctx context.Context, id string) (*event.WithContacts, error)
	Delete(ctx context.Context, id string) error
	Timeline(ctx context.Context) ([]event.WithContacts, error)
	TimelineForContact(ctx context.Context, contactID string) ([]event.WithContacts, error)
	TimelineForProject(ctx context.Context, projectID string) ([]event.WithContacts, error)
	UpdateReminder(ctx context.Context, id string, reminderTime *time.Time) error
	TodayReminders(ctx context.Context, now time.Time) ([]event.Event, error)
}

// SummaryService defines summary operations needed by MCP.
type SummaryService interface {
	Generate(ctx context.Context, typ summary.Type, start, end time.Time) (*summary.Summary, error)
	Get(ctx context.Context, id string) (*summary.Summary, error)
	List(ctx context.Context) ([]summary.Summary, error)
	Delete(ctx context.Context, id string) error
}

// AuditService defines audit log operations needed by MCP.
type AuditService interface {
	Recent(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects   ProjectService
	Contacts   ContactService
	Activities ActivityService
	Events     EventService
	Summaries  SummaryService
	Audits     AuditService
}

// Config contains server configuration.
type Config struct {
	Services Services
	// ExportDir receives generated gantt workbooks.
	ExportDir string
	Logger    *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "mindmirror",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerProjectTools(server, cfg.Services)
	registerContactTools(server, cfg.Services)
	registerActivityTools(server, cfg.Services, cfg.ExportDir)
	registerEventTools(server, cfg.Services)
	registerSummaryTools(server, cfg.Services)
	registerAuditTools(server, cfg.Services)

	return server
}
