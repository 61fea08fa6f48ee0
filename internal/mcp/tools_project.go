package mcp

import (
	"context"

	"github.com/lumeng/mindmirror/internal/domain/project"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProjectResult represents a project in tool output.
type ProjectResult struct {
	ID          string `json:"id" jsonschema:"project identifier"`
	Name        string `json:"name" jsonschema:"project name"`
	Description string `json:"description,omitempty" jsonschema:"project description"`
	CreatedAt   string `json:"created_at" jsonschema:"creation time, RFC 3339"`
	UpdatedAt   string `json:"updated_at" jsonschema:"last update time, RFC 3339"`
}

func toProjectResult(p *project.Project) ProjectResult {
	return ProjectResult{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

// ProjectCreateInput represents the MCP tool input for project creation.
type ProjectCreateInput struct {
	Name        string `json:"name" jsonschema:"project name"`
	Description string `json:"description,omitempty" jsonschema:"optional description"`
}

// ProjectUpdateInput represents the MCP tool input for project updates.
type ProjectUpdateInput struct {
	ID          string `json:"id" jsonschema:"project identifier"`
	Name        string `json:"name" jsonschema:"project name"`
	Description string `json:"description,omitempty" jsonschema:"optional description"`
}

// ProjectGetInput identifies a single project.
type ProjectGetInput struct {
	ID string `json:"id" jsonschema:"project identifier"`
}

// ProjectListInput has no parameters.
type ProjectListInput struct{}

// ProjectListResult represents the MCP tool output for project listings.
type ProjectListResult struct {
	Projects []ProjectResult `json:"projects"`
}

func projectCreateHandler(svc ProjectService) sdkmcp.ToolHandlerFor[ProjectCreateInput, ProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ProjectCreateInput) (*sdkmcp.CallToolResult, ProjectResult, error) {
		p, err := svc.Create(ctx, project.CreateRequest{
			Name:        input.Name,
			Description: input.Description,
		})
		if err != nil {
			return nil, ProjectResult{}, MapError(err)
		}
		return nil, toProjectResult(p), nil
	}
}

func projectUpdateHandler(svc ProjectService) sdkmcp.ToolHandlerFor[ProjectUpdateInput, ProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ProjectUpdateInput) (*sdkmcp.CallToolResult, ProjectResult, error) {
		p, err := svc.Update(ctx, project.UpdateRequest{
			ID:          input.ID,
			Name:        input.Name,
			Description: input.Description,
		})
		if err != nil {
			return nil, ProjectResult{}, MapError(err)
		}
		return nil, toProjectResult(p), nil
	}
}

func projectGetHandler(svc ProjectService) sdkmcp.ToolHandlerFor[ProjectGetInput, ProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ProjectGetInput) (*sdkmcp.CallToolResult, ProjectResult, error) {
		p, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, ProjectResult{}, MapError(err)
		}
		return nil, toProjectResult(p), nil
	}
}

func projectListHandler(svc ProjectService) sdkmcp.ToolHandlerFor[ProjectListInput, ProjectListResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ProjectListInput) (*sdkmcp.CallToolResult, ProjectListResult, error) {
		projects, err := svc.List(ctx)
		if err != nil {
			return nil, ProjectListResult{}, MapError(err)
		}
		result := ProjectListResult{Projects: make([]ProjectResult, len(projects))}
		for i := range projects {
			result.Projects[i] = toProjectResult(&projects[i])
		}
		return nil, result, nil
	}
}

func registerProjectTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "project_create",
		Description: "Creates a new project",
	}, projectCreateHandler(svcs.Projects))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "project_update",
		Description: "Updates a project's name and description",
	}, projectUpdateHandler(svcs.Projects))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "project_get",
		Description: "Returns a single project by ID",
	}, projectGetHandler(svcs.Projects))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "project_list",
		Description: "Lists all projects, newest first",
	}, projectListHandler(svcs.Projects))
}
