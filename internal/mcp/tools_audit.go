package mcp

import (
	"context"

	"github.com/lumeng/mindmirror/internal/domain/audit"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AuditRecentInput filters the operation journal.
type AuditRecentInput struct {
	EntityKind string `json:"entity_kind,omitempty" jsonschema:"optional filter: project, contact, event, activity, or summary"`
	ProjectID  string `json:"project_id,omitempty" jsonschema:"optional project filter"`
	Since      string `json:"since,omitempty" jsonschema:"optional lower bound, YYYY-MM-DD or RFC 3339"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum entries to return; defaults to 50"`
}

// AuditEntryResult is one journal entry.
type AuditEntryResult struct {
	Operation   string `json:"operation" jsonschema:"what happened"`
	EntityKind  string `json:"entity_kind" jsonschema:"which aggregate"`
	EntityID    string `json:"entity_id" jsonschema:"entity identifier"`
	EntityName  string `json:"entity_name" jsonschema:"entity name at the time"`
	ProjectName string `json:"project_name,omitempty" jsonschema:"related project name"`
	Description string `json:"description" jsonschema:"human-readable description"`
	CreatedAt   string `json:"created_at" jsonschema:"entry time, RFC 3339"`
}

// AuditRecentResult lists journal entries newest first.
type AuditRecentResult struct {
	Entries []AuditEntryResult `json:"entries"`
}

func auditRecentHandler(svc AuditService) sdkmcp.ToolHandlerFor[AuditRecentInput, AuditRecentResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input AuditRecentInput) (*sdkmcp.CallToolResult, AuditRecentResult, error) {
		since, err := parseOptionalDate(input.Since)
		if err != nil {
			return nil, AuditRecentResult{}, err
		}
		entries, err := svc.Recent(ctx, audit.ListOptions{
			EntityKind: audit.EntityKind(input.EntityKind),
			ProjectID:  input.ProjectID,
			Since:      since,
			Limit:      input.Limit,
		})
		if err != nil {
			return nil, AuditRecentResult{}, MapError(err)
		}
		result := AuditRecentResult{Entries: make([]AuditEntryResult, len(entries))}
		for i, e := range entries {
			entry := AuditEntryResult{
				Operation:   string(e.Operation),
				EntityKind:  string(e.EntityKind),
				EntityID:    e.EntityID,
				EntityName:  e.EntityName,
				Description: e.Description,
				CreatedAt:   formatTime(e.CreatedAt),
			}
			if e.ProjectName != nil {
				entry.ProjectName = *e.ProjectName
			}
			result.Entries[i] = entry
		}
		return nil, result, nil
	}
}

func registerAuditTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "journal_recent",
		Description: "Lists recent operations from the journal, newest first",
	}, auditRecentHandler(svcs.Audits))
}
