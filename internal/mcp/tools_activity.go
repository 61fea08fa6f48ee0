package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/activity"
	"github.com/lumeng/mindmirror/internal/export"
	"github.com/lumeng/mindmirror/internal/gantt"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ActivityResult represents an activity in tool output.
type ActivityResult struct {
	ID                      string   `json:"id" jsonschema:"activity identifier"`
	ProjectID               string   `json:"project_id" jsonschema:"owning project identifier"`
	ProjectName             string   `json:"project_name,omitempty" jsonschema:"owning project name"`
	Name                    string   `json:"name" jsonschema:"activity name"`
	Description             string   `json:"description,omitempty" jsonschema:"activity description"`
	Status                  string   `json:"status" jsonschema:"lifecycle status"`
	EstimatedCompletionDate string   `json:"estimated_completion_date,omitempty" jsonschema:"estimated completion, RFC 3339"`
	ActivatedAt             string   `json:"activated_at,omitempty" jsonschema:"last activation time, RFC 3339"`
	PausedAt                string   `json:"paused_at,omitempty" jsonschema:"last pause time, RFC 3339"`
	CompletedAt             string   `json:"completed_at,omitempty" jsonschema:"completion time, RFC 3339"`
	CreatedAt               string   `json:"created_at" jsonschema:"creation time, RFC 3339"`
	Assignees               []string `json:"assignees,omitempty" jsonschema:"assigned contact names"`
}

func toActivityResult(a *activity.Activity) ActivityResult {
	return ActivityResult{
		ID:                      a.ID,
		ProjectID:               a.ProjectID,
		Name:                    a.Name,
		Description:             a.Description,
		Status:                  string(a.Status),
		EstimatedCompletionDate: formatTimePtr(a.EstimatedCompletionDate),
		ActivatedAt:             formatTimePtr(a.ActivatedAt),
		PausedAt:                formatTimePtr(a.PausedAt),
		CompletedAt:             formatTimePtr(a.CompletedAt),
		CreatedAt:               formatTime(a.CreatedAt),
	}
}

func toActivityWithAssigneesResult(a *activity.WithAssignees) ActivityResult {
	result := toActivityResult(&a.Activity)
	result.ProjectName = a.ProjectName
	result.Assignees = make([]string, len(a.Assignees))
	for i, c := range a.Assignees {
		result.Assignees[i] = c.Name
	}
	return result
}

// ActivityCreateInput represents the MCP tool input for activity creation.
type ActivityCreateInput struct {
	ProjectID               string   `json:"project_id" jsonschema:"owning project identifier"`
	Name                    string   `json:"name" jsonschema:"activity name"`
	Description             string   `json:"description,omitempty" jsonschema:"optional description"`
	EstimatedCompletionDate string   `json:"estimated_completion_date,omitempty" jsonschema:"optional estimate, YYYY-MM-DD"`
	ContactIDs              []string `json:"contact_ids,omitempty" jsonschema:"initial assignee contact identifiers"`
}

// ActivityUpdateInput represents the MCP tool input for activity detail updates.
type ActivityUpdateInput struct {
	ID                      string `json:"id" jsonschema:"activity identifier"`
	Name                    string `json:"name" jsonschema:"activity name"`
	Description             string `json:"description,omitempty" jsonschema:"description"`
	EstimatedCompletionDate string `json:"estimated_completion_date,omitempty" jsonschema:"estimate, YYYY-MM-DD; empty clears it"`
}

// ActivityIDInput identifies a single activity.
type ActivityIDInput struct {
	ID string `json:"id" jsonschema:"activity identifier"`
}

// ActivityAssignInput adds assignees to an activity.
type ActivityAssignInput struct {
	ActivityID string   `json:"activity_id" jsonschema:"activity identifier"`
	ContactIDs []string `json:"contact_ids" jsonschema:"contact identifiers to assign"`
}

// ActivityUnassignInput removes one assignee from an activity.
type ActivityUnassignInput struct {
	ActivityID string `json:"activity_id" jsonschema:"activity identifier"`
	ContactID  string `json:"contact_id" jsonschema:"contact identifier to remove"`
}

// ActivityListInput optionally scopes the listing to one project.
type ActivityListInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"optional project identifier; omit for all projects"`
}

// ActivityListResult represents the MCP tool output for activity listings.
type ActivityListResult struct {
	Activities []ActivityResult `json:"activities"`
}

// GanttProjectInput optionally scopes the projection to one project.
type GanttProjectInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"optional project identifier; omit for all projects"`
}

// GanttProjectResult carries the day-indexed occupancy matrix.
type GanttProjectResult struct {
	Legend []string   `json:"legend" jsonschema:"marker legend"`
	Header []string   `json:"header" jsonschema:"column headers; metadata columns then one per day"`
	Rows   [][]string `json:"rows" jsonschema:"one row per activity"`
}

// GanttExportInput optionally scopes the export to one project.
type GanttExportInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"optional project identifier; omit for all projects"`
}

// GanttExportResult reports the written workbook.
type GanttExportResult struct {
	Path       string `json:"path" jsonschema:"path of the written .xlsx file"`
	Activities int    `json:"activities" jsonschema:"number of activities exported"`
}

func activityCreateHandler(svc ActivityService) sdkmcp.ToolHandlerFor[ActivityCreateInput, ActivityResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ActivityCreateInput) (*sdkmcp.CallToolResult, ActivityResult, error) {
		estimate, err := parseOptionalDate(input.EstimatedCompletionDate)
		if err != nil {
			return nil, ActivityResult{}, err
		}
		a, err := svc.Create(ctx, activity.CreateRequest{
			ProjectID:               input.ProjectID,
			Name:                    input.Name,
			Description:             input.Description,
			EstimatedCompletionDate: estimate,
			ContactIDs:              input.ContactIDs,
		})
		if err != nil {
			return nil, ActivityResult{}, MapError(err)
		}
		return nil, toActivityWithAssigneesResult(a), nil
	}
}

func activityUpdateHandler(svc ActivityService) sdkmcp.ToolHandlerFor[ActivityUpdateInput, ActivityResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ActivityUpdateInput) (*sdkmcp.CallToolResult, ActivityResult, error) {
		estimate, err := parseOptionalDate(input.EstimatedCompletionDate)
		if err != nil {
			return nil, ActivityResult{}, err
		}
		a, err := svc.Update(ctx, activity.UpdateRequest{
			ID:                      input.ID,
			Name:                    input.Name,
			Description:             input.Description,
			EstimatedCompletionDate: estimate,
		})
		if err != nil {
			return nil, ActivityResult{}, MapError(err)
		}
		return nil, toActivityResult(a), nil
	}
}

func activityAssignHandler(svc ActivityService) sdkmcp.ToolHandlerFor[ActivityAssignInput, LinkResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ActivityAssignInput) (*sdkmcp.CallToolResult, LinkResult, error) {
		if err := svc.Assign(ctx, input.ActivityID, input.ContactIDs); err != nil {
			return nil, LinkResult{}, MapError(err)
		}
		return nil, LinkResult{Status: "assigned"}, nil
	}
}

func activityUnassignHandler(svc ActivityService) sdkmcp.ToolHandlerFor[ActivityUnassignInput, LinkResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ActivityUnassignInput) (*sdkmcp.CallToolResult, LinkResult, error) {
		if err := svc.Unassign(ctx, input.ActivityID, input.ContactID); err != nil {
			return nil, LinkResult{}, MapError(err)
		}
		return nil, LinkResult{Status: "unassigned"}, nil
	}
}

func activityTransitionHandler(apply func(context.Context, string) (*activity.Activity, error)) sdkmcp.ToolHandlerFor[ActivityIDInput, ActivityResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ActivityIDInput) (*sdkmcp.CallToolResult, ActivityResult, error) {
		a, err := apply(ctx, input.ID)
		if err != nil {
			return nil, ActivityResult{}, MapError(err)
		}
		return nil, toActivityResult(a), nil
	}
}

func activityGetHandler(svc ActivityService) sdkmcp.ToolHandlerFor[ActivityIDInput, ActivityResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ActivityIDInput) (*sdkmcp.CallToolResult, ActivityResult, error) {
		a, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, ActivityResult{}, MapError(err)
		}
		return nil, toActivityResult(a), nil
	}
}

func activityDeleteHandler(svc ActivityService) sdkmcp.ToolHandlerFor[ActivityIDInput, LinkResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ActivityIDInput) (*sdkmcp.CallToolResult, LinkResult, error) {
		if err := svc.Delete(ctx, input.ID); err != nil {
			return nil, LinkResult{}, MapError(err)
		}
		return nil, LinkResult{Status: "deleted"}, nil
	}
}

func activityListHandler(svc ActivityService) sdkmcp.ToolHandlerFor[ActivityListInput, ActivityListResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ActivityListInput) (*sdkmcp.CallToolResult, ActivityListResult, error) {
		activities, err := listActivities(ctx, svc, input.ProjectID)
		if err != nil {
			return nil, ActivityListResult{}, MapError(err)
		}
		result := ActivityListResult{Activities: make([]ActivityResult, len(activities))}
		for i := range activities {
			result.Activities[i] = toActivityWithAssigneesResult(&activities[i])
		}
		return nil, result, nil
	}
}

func ganttProjectHandler(svc ActivityService) sdkmcp.ToolHandlerFor[GanttProjectInput, GanttProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input GanttProjectInput) (*sdkmcp.CallToolResult, GanttProjectResult, error) {
		activities, err := listActivities(ctx, svc, input.ProjectID)
		if err != nil {
			return nil, GanttProjectResult{}, MapError(err)
		}
		m := gantt.Project(activities, time.Now())
		header := m.Header
		if header == nil {
			header = []string{}
		}
		rows := m.Rows
		if rows == nil {
			rows = [][]string{}
		}
		return nil, GanttProjectResult{Legend: m.Legend, Header: header, Rows: rows}, nil
	}
}

func ganttExportHandler(svcs Services, exportDir string) sdkmcp.ToolHandlerFor[GanttExportInput, GanttExportResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input GanttExportInput) (*sdkmcp.CallToolResult, GanttExportResult, error) {
		name := "all_projects"
		if input.ProjectID != "" {
			p, err := svcs.Projects.Get(ctx, input.ProjectID)
			if err != nil {
				return nil, GanttExportResult{}, MapError(err)
			}
			name = p.Name
		}

		activities, err := listActivities(ctx, svcs.Activities, input.ProjectID)
		if err != nil {
			return nil, GanttExportResult{}, MapError(err)
		}

		now := time.Now()
		m := gantt.Project(activities, now)
		path := filepath.Join(exportDir, fmt.Sprintf("%s_gantt_%s.xlsx", sanitizeFilename(name), now.Format(dateLayout)))
		if err := export.WriteGantt(path, m); err != nil {
			return nil, GanttExportResult{}, err
		}
		return nil, GanttExportResult{Path: path, Activities: len(activities)}, nil
	}
}

func listActivities(ctx context.Context, svc ActivityService, projectID string) ([]activity.WithAssignees, error) {
	if projectID != "" {
		return svc.ListForProject(ctx, projectID)
	}
	return svc.ListAll(ctx)
}

// sanitizeFilename keeps workbook names portable across filesystems.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	name = replacer.Replace(name)
	if name == "" {
		name = "untitled"
	}
	return name
}

func registerActivityTools(server *sdkmcp.Server, svcs Services, exportDir string) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activity_create",
		Description: "Creates an activity in a project; starts pending without assignees, inactive with them",
	}, activityCreateHandler(svcs.Activities))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activity_update",
		Description: "Updates an activity's name, description, and estimate; never its status",
	}, activityUpdateHandler(svcs.Activities))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activity_assign",
		Description: "Assigns contacts to an activity; the first assignment promotes pending to inactive",
	}, activityAssignHandler(svcs.Activities))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activity_unassign",
		Description: "Removes an assignee from an activity; status is never demoted",
	}, activityUnassignHandler(svcs.Activities))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activity_activate",
		Description: "Starts or resumes an activity (inactive or paused to in_progress)",
	}, activityTransitionHandler(svcs.Activities.Activate))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activity_pause",
		Description: "Pauses an in-progress activity",
	}, activityTransitionHandler(svcs.Activities.Pause))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activity_complete",
		Description: "Completes an in-progress activity; completed is terminal",
	}, activityTransitionHandler(svcs.Activities.Complete))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activity_get",
		Description: "Returns a single activity by ID",
	}, activityGetHandler(svcs.Activities))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activity_delete",
		Description: "Deletes an activity; completed activities cannot be deleted",
	}, activityDeleteHandler(svcs.Activities))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activity_list",
		Description: "Lists activities with assignees, optionally scoped to a project",
	}, activityListHandler(svcs.Activities))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "gantt_project",
		Description: "Projects activities onto a day-indexed schedule matrix",
	}, ganttProjectHandler(svcs.Activities))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "gantt_export",
		Description: "Writes the schedule matrix to an .xlsx workbook and returns its path",
	}, ganttExportHandler(svcs, exportDir))
}
