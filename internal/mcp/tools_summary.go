package mcp

import (
	"context"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/summary"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// SummaryResult represents a summary in tool output.
type SummaryResult struct {
	ID              string         `json:"id" jsonschema:"summary identifier"`
	Title           string         `json:"title" jsonschema:"display title"`
	Type            string         `json:"type" jsonschema:"summary type"`
	StartDate       string         `json:"start_date" jsonschema:"period start, YYYY-MM-DD"`
	EndDate         string         `json:"end_date" jsonschema:"period end, YYYY-MM-DD"`
	Content         string         `json:"content" jsonschema:"rendered markdown report"`
	TotalEvents     int            `json:"total_events" jsonschema:"events covered"`
	EventsByType    map[string]int `json:"events_by_type,omitempty" jsonschema:"event counts by type"`
	ProjectsTouched int            `json:"projects_touched" jsonschema:"distinct projects covered"`
	ContactsTouched int            `json:"contacts_touched" jsonschema:"distinct contacts covered"`
	IsAutoGenerated bool           `json:"is_auto_generated" jsonschema:"whether the schedule produced it"`
	CreatedAt       string         `json:"created_at" jsonschema:"generation time, RFC 3339"`
}

func toSummaryResult(s *summary.Summary) SummaryResult {
	return SummaryResult{
		ID:              s.ID,
		Title:           s.Title,
		Type:            string(s.Type),
		StartDate:       s.StartDate.Format(dateLayout),
		EndDate:         s.EndDate.Format(dateLayout),
		Content:         s.Content,
		TotalEvents:     s.Statistics.TotalEvents,
		EventsByType:    s.Statistics.EventsByType,
		ProjectsTouched: s.Statistics.ProjectsTouched,
		ContactsTouched: s.Statistics.ContactsTouched,
		IsAutoGenerated: s.IsAutoGenerated,
		CreatedAt:       formatTime(s.CreatedAt),
	}
}

// SummaryGenerateInput represents the MCP tool input for summary generation.
type SummaryGenerateInput struct {
	Type      string `json:"type" jsonschema:"summary type: daily, weekly, monthly, yearly, or custom"`
	StartDate string `json:"start_date,omitempty" jsonschema:"period start, YYYY-MM-DD; defaults by type"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"period end, YYYY-MM-DD; defaults by type"`
}

// SummaryIDInput identifies a single summary.
type SummaryIDInput struct {
	ID string `json:"id" jsonschema:"summary identifier"`
}

// SummaryListInput has no parameters.
type SummaryListInput struct{}

// SummaryListResult represents the MCP tool output for summary listings.
type SummaryListResult struct {
	Summaries []SummaryResult `json:"summaries"`
}

func summaryGenerateHandler(svc SummaryService) sdkmcp.ToolHandlerFor[SummaryGenerateInput, SummaryResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input SummaryGenerateInput) (*sdkmcp.CallToolResult, SummaryResult, error) {
		typ := summary.Type(input.Type)

		var start, end time.Time
		if input.StartDate == "" && input.EndDate == "" {
			var err error
			start, end, err = summary.DefaultRange(typ, time.Now())
			if err != nil {
				return nil, SummaryResult{}, MapError(err)
			}
		} else {
			var err error
			start, err = parseDate(input.StartDate)
			if err != nil {
				return nil, SummaryResult{}, err
			}
			end, err = parseDate(input.EndDate)
			if err != nil {
				return nil, SummaryResult{}, err
			}
		}

		s, err := svc.Generate(ctx, typ, start, end)
		if err != nil {
			return nil, SummaryResult{}, MapError(err)
		}
		return nil, toSummaryResult(s), nil
	}
}

func summaryGetHandler(svc SummaryService) sdkmcp.ToolHandlerFor[SummaryIDInput, SummaryResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input SummaryIDInput) (*sdkmcp.CallToolResult, SummaryResult, error) {
		s, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, SummaryResult{}, MapError(err)
		}
		return nil, toSummaryResult(s), nil
	}
}

func summaryListHandler(svc SummaryService) sdkmcp.ToolHandlerFor[SummaryListInput, SummaryListResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ SummaryListInput) (*sdkmcp.CallToolResult, SummaryListResult, error) {
		summaries, err := svc.List(ctx)
		if err != nil {
			return nil, SummaryListResult{}, MapError(err)
		}
		result := SummaryListResult{Summaries: make([]SummaryResult, len(summaries))}
		for i := range summaries {
			result.Summaries[i] = toSummaryResult(&summaries[i])
		}
		return nil, result, nil
	}
}

func summaryDeleteHandler(svc SummaryService) sdkmcp.ToolHandlerFor[SummaryIDInput, LinkResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input SummaryIDInput) (*sdkmcp.CallToolResult, LinkResult, error) {
		if err := svc.Delete(ctx, input.ID); err != nil {
			return nil, LinkResult{}, MapError(err)
		}
		return nil, LinkResult{Status: "deleted"}, nil
	}
}

func registerSummaryTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "summary_generate",
		Description: "Generates a report over a date range; omit dates to use the type's conventional period",
	}, summaryGenerateHandler(svcs.Summaries))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "summary_get",
		Description: "Returns a single summary by ID",
	}, summaryGetHandler(svcs.Summaries))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "summary_list",
		Description: "Lists all summaries, newest first",
	}, summaryListHandler(svcs.Summaries))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "summary_delete",
		Description: "Deletes a summary",
	}, summaryDeleteHandler(svcs.Summaries))
}
