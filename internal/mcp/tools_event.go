package mcp

import (
	"context"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/event"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// EventResult represents an event in tool output.
type EventResult struct {
	ID                string   `json:"id" jsonschema:"event identifier"`
	ProjectID         string   `json:"project_id,omitempty" jsonschema:"attached project identifier"`
	ProjectName       string   `json:"project_name,omitempty" jsonschema:"attached project name"`
	Title             string   `json:"title" jsonschema:"event title"`
	Description       string   `json:"description,omitempty" jsonschema:"event description"`
	EventDate         string   `json:"event_date" jsonschema:"event date, RFC 3339"`
	EventType         string   `json:"event_type,omitempty" jsonschema:"event type label"`
	ReminderTime      string   `json:"reminder_time,omitempty" jsonschema:"reminder time, RFC 3339"`
	ReminderTriggered bool     `json:"reminder_triggered" jsonschema:"whether the reminder already fired"`
	Contacts          []string `json:"contacts,omitempty" jsonschema:"linked contact names"`
}

func toEventResult(e *event.WithContacts) EventResult {
	result := EventResult{
		ID:                e.ID,
		Title:             e.Title,
		Description:       e.Description,
		EventDate:         formatTime(e.EventDate),
		EventType:         e.EventType,
		ReminderTime:      formatTimePtr(e.ReminderTime),
		ReminderTriggered: e.ReminderTriggered,
	}
	if e.ProjectID != nil {
		result.ProjectID = *e.ProjectID
	}
	if e.ProjectName != nil {
		result.ProjectName = *e.ProjectName
	}
	result.Contacts = make([]string, len(e.Contacts))
	for i, c := range e.Contacts {
		result.Contacts[i] = c.Name
	}
	return result
}

// EventCreateInput represents the MCP tool input for recording an event.
type EventCreateInput struct {
	Title        string   `json:"title" jsonschema:"event title"`
	Description  string   `json:"description,omitempty" jsonschema:"optional description"`
	EventDate    string   `json:"event_date" jsonschema:"event date, YYYY-MM-DD or RFC 3339"`
	EventType    string   `json:"event_type,omitempty" jsonschema:"optional type label (meeting, call, email, ...)"`
	ProjectID    string   `json:"project_id,omitempty" jsonschema:"optional project to attach the event to"`
	ReminderTime string   `json:"reminder_time,omitempty" jsonschema:"optional reminder time, RFC 3339"`
	ContactIDs   []string `json:"contact_ids" jsonschema:"linked contact identifiers; at least one"`
}

// EventUpdateInput represents the MCP tool input for event updates.
type EventUpdateInput struct {
	ID           string   `json:"id" jsonschema:"event identifier"`
	Title        string   `json:"title" jsonschema:"event title"`
	Description  string   `json:"description,omitempty" jsonschema:"description"`
	EventDate    string   `json:"event_date" jsonschema:"event date, YYYY-MM-DD or RFC 3339"`
	EventType    string   `json:"event_type,omitempty" jsonschema:"type label"`
	ProjectID    string   `json:"project_id,omitempty" jsonschema:"project to attach the event to; empty detaches"`
	ReminderTime string   `json:"reminder_time,omitempty" jsonschema:"reminder time, RFC 3339; empty clears it"`
	ContactIDs   []string `json:"contact_ids" jsonschema:"replacement contact identifiers; at least one"`
}

// EventIDInput identifies a single event.
type EventIDInput struct {
	ID string `json:"id" jsonschema:"event identifier"`
}

// EventTimelineInput optionally filters the timeline.
type EventTimelineInput struct {
	ContactID string `json:"contact_id,omitempty" jsonschema:"optional contact filter"`
	ProjectID string `json:"project_id,omitempty" jsonschema:"optional project filter"`
}

// EventTimelineResult lists events newest first.
type EventTimelineResult struct {
	Events []EventResult `json:"events"`
}

// ReminderUpdateInput sets or clears an event reminder.
type ReminderUpdateInput struct {
	ID           string `json:"id" jsonschema:"event identifier"`
	ReminderTime string `json:"reminder_time,omitempty" jsonschema:"reminder time, RFC 3339; empty clears it"`
}

// TodayRemindersInput has no parameters.
type TodayRemindersInput struct{}

// ReminderEntry is one reminder in the day view.
type ReminderEntry struct {
	EventID      string `json:"event_id" jsonschema:"event identifier"`
	Title        string `json:"title" jsonschema:"event title"`
	ReminderTime string `json:"reminder_time" jsonschema:"reminder time, RFC 3339"`
	Triggered    bool   `json:"triggered" jsonschema:"whether the reminder already fired"`
}

// TodayRemindersResult lists today's reminders.
type TodayRemindersResult struct {
	Reminders []ReminderEntry `json:"reminders"`
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func eventCreateHandler(svc EventService) sdkmcp.ToolHandlerFor[EventCreateInput, EventResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input EventCreateInput) (*sdkmcp.CallToolResult, EventResult, error) {
		eventDate, err := parseDate(input.EventDate)
		if err != nil {
			return nil, EventResult{}, err
		}
		reminder, err := parseOptionalDate(input.ReminderTime)
		if err != nil {
			return nil, EventResult{}, err
		}
		e, err := svc.Create(ctx, event.CreateRequest{
			Title:        input.Title,
			Description:  input.Description,
			EventDate:    eventDate,
			EventType:    input.EventType,
			ProjectID:    optionalID(input.ProjectID),
			ReminderTime: reminder,
			ContactIDs:   input.ContactIDs,
		})
		if err != nil {
			return nil, EventResult{}, MapError(err)
		}
		return nil, toEventResult(e), nil
	}
}

func eventUpdateHandler(svc EventService) sdkmcp.ToolHandlerFor[EventUpdateInput, EventResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input EventUpdateInput) (*sdkmcp.CallToolResult, EventResult, error) {
		eventDate, err := parseDate(input.EventDate)
		if err != nil {
			return nil, EventResult{}, err
		}
		reminder, err := parseOptionalDate(input.ReminderTime)
		if err != nil {
			return nil, EventResult{}, err
		}
		e, err := svc.Update(ctx, event.UpdateRequest{
			ID:           input.ID,
			Title:        input.Title,
			Description:  input.Description,
			EventDate:    eventDate,
			EventType:    input.EventType,
			ProjectID:    optionalID(input.ProjectID),
			ReminderTime: reminder,
			ContactIDs:   input.ContactIDs,
		})
		if err != nil {
			return nil, EventResult{}, MapError(err)
		}
		return nil, toEventResult(e), nil
	}
}

func eventGetHandler(svc EventService) sdkmcp.ToolHandlerFor[EventIDInput, EventResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input EventIDInput) (*sdkmcp.CallToolResult, EventResult, error) {
		e, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, EventResult{}, MapError(err)
		}
		return nil, toEventResult(e), nil
	}
}

func eventDeleteHandler(svc EventService) sdkmcp.ToolHandlerFor[EventIDInput, LinkResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input EventIDInput) (*sdkmcp.CallToolResult, LinkResult, error) {
		if err := svc.Delete(ctx, input.ID); err != nil {
			return nil, LinkResult{}, MapError(err)
		}
		return nil, LinkResult{Status: "deleted"}, nil
	}
}

func eventTimelineHandler(svc EventService) sdkmcp.ToolHandlerFor[EventTimelineInput, EventTimelineResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input EventTimelineInput) (*sdkmcp.CallToolResult, EventTimelineResult, error) {
		var (
			events []event.WithContacts
			err    error
		)
		switch {
		case input.ContactID != "":
			events, err = svc.TimelineForContact(ctx, input.ContactID)
		case input.ProjectID != "":
			events, err = svc.TimelineForProject(ctx, input.ProjectID)
		default:
			events, err = svc.Timeline(ctx)
		}
		if err != nil {
			return nil, EventTimelineResult{}, MapError(err)
		}
		result := EventTimelineResult{Events: make([]EventResult, len(events))}
		for i := range events {
			result.Events[i] = toEventResult(&events[i])
		}
		return nil, result, nil
	}
}

func reminderUpdateHandler(svc EventService) sdkmcp.ToolHandlerFor[ReminderUpdateInput, LinkResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ReminderUpdateInput) (*sdkmcp.CallToolResult, LinkResult, error) {
		reminder, err := parseOptionalDate(input.ReminderTime)
		if err != nil {
			return nil, LinkResult{}, err
		}
		if err := svc.UpdateReminder(ctx, input.ID, reminder); err != nil {
			return nil, LinkResult{}, MapError(err)
		}
		status := "reminder set"
		if reminder == nil {
			status = "reminder cleared"
		}
		return nil, LinkResult{Status: status}, nil
	}
}

func todayRemindersHandler(svc EventService) sdkmcp.ToolHandlerFor[TodayRemindersInput, TodayRemindersResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ TodayRemindersInput) (*sdkmcp.CallToolResult, TodayRemindersResult, error) {
		events, err := svc.TodayReminders(ctx, time.Now())
		if err != nil {
			return nil, TodayRemindersResult{}, MapError(err)
		}
		result := TodayRemindersResult{Reminders: make([]ReminderEntry, len(events))}
		for i, e := range events {
			result.Reminders[i] = ReminderEntry{
				EventID:      e.ID,
				Title:        e.Title,
				ReminderTime: formatTimePtr(e.ReminderTime),
				Triggered:    e.ReminderTriggered,
			}
		}
		return nil, result, nil
	}
}

func registerEventTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "event_create",
		Description: "Records an event linked to one or more contacts, optionally attached to a project",
	}, eventCreateHandler(svcs.Events))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "event_update",
		Description: "Updates an event and replaces its contact links",
	}, eventUpdateHandler(svcs.Events))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "event_get",
		Description: "Returns a single event by ID",
	}, eventGetHandler(svcs.Events))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "event_delete",
		Description: "Deletes an event",
	}, eventDeleteHandler(svcs.Events))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "event_timeline",
		Description: "Lists events newest first, optionally filtered by contact or project",
	}, eventTimelineHandler(svcs.Events))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "event_set_reminder",
		Description: "Sets or clears an event's reminder; changing it re-arms delivery",
	}, reminderUpdateHandler(svcs.Events))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reminders_today",
		Description: "Lists reminders scheduled for today",
	}, todayRemindersHandler(svcs.Events))
}
