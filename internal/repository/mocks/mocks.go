package mocks

import (
	"context"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/activity"
	"github.com/lumeng/mindmirror/internal/domain/audit"
	"github.com/lumeng/mindmirror/internal/domain/contact"
	"github.com/lumeng/mindmirror/internal/domain/event"
	"github.com/lumeng/mindmirror/internal/domain/project"
	"github.com/lumeng/mindmirror/internal/domain/summary"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ContactRepository is a mock for contact.Repository.
type ContactRepository struct {
	mock.Mock
}

func (m *ContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ContactRepository) Get(ctx context.Context, id string) (*contact.Contact, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*contact.Contact); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) Update(ctx context.Context, c *contact.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ContactRepository) List(ctx context.Context) ([]contact.Contact, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]contact.Contact); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) LinkToProject(ctx context.Context, projectID, contactID, role, notes string) error {
	args := m.Called(ctx, projectID, contactID, role, notes)
	return args.Error(0)
}

func (m *ContactRepository) UnlinkFromProject(ctx context.Context, projectID, contactID string) error {
	args := m.Called(ctx, projectID, contactID)
	return args.Error(0)
}

func (m *ContactRepository) ListForProject(ctx context.Context, projectID string) ([]contact.ProjectLink, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]contact.ProjectLink); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *ActivityRepository) Get(ctx context.Context, id string) (*activity.Activity, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*activity.Activity); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) UpdateDetails(ctx context.Context, a *activity.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *ActivityRepository) UpdateStatus(ctx context.Context, id string, expected activity.Status, upd activity.StatusUpdate) error {
	args := m.Called(ctx, id, expected, upd)
	return args.Error(0)
}

func (m *ActivityRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ActivityRepository) ListForProject(ctx context.Context, projectID string) ([]activity.WithAssignees, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]activity.WithAssignees); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) ListAll(ctx context.Context) ([]activity.WithAssignees, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]activity.WithAssignees); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) AssignContacts(ctx context.Context, activityID string, contactIDs []string) error {
	args := m.Called(ctx, activityID, contactIDs)
	return args.Error(0)
}

func (m *ActivityRepository) UnassignContact(ctx context.Context, activityID, contactID string) error {
	args := m.Called(ctx, activityID, contactID)
	return args.Error(0)
}

func (m *ActivityRepository) ListAssignees(ctx context.Context, activityID string) ([]contact.Contact, error) {
	args := m.Called(ctx, activityID)
	if list, ok := args.Get(0).([]contact.Contact); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// EventRepository is a mock for event.Repository.
type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Create(ctx context.Context, e *event.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EventRepository) Get(ctx context.Context, id string) (*event.WithContacts, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*event.WithContacts); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) Update(ctx context.Context, e *event.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EventRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EventRepository) LinkContacts(ctx context.Context, eventID string, contactIDs []string) error {
	args := m.Called(ctx, eventID, contactIDs)
	return args.Error(0)
}

func (m *EventRepository) UnlinkContacts(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *EventRepository) ListForContact(ctx context.Context, contactID string) ([]event.WithContacts, error) {
	args := m.Called(ctx, contactID)
	if list, ok := args.Get(0).([]event.WithContacts); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) ListForProject(ctx context.Context, projectID string) ([]event.WithContacts, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]event.WithContacts); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) ListAll(ctx context.Context) ([]event.WithContacts, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]event.WithContacts); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) ListRange(ctx context.Context, start, end time.Time) ([]event.WithContacts, error) {
	args := m.Called(ctx, start, end)
	if list, ok := args.Get(0).([]event.WithContacts); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) PendingReminders(ctx context.Context, since, until time.Time) ([]event.Event, error) {
	args := m.Called(ctx, since, until)
	if list, ok := args.Get(0).([]event.Event); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) ListRemindersForDay(ctx context.Context, day time.Time) ([]event.Event, error) {
	args := m.Called(ctx, day)
	if list, ok := args.Get(0).([]event.Event); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) MarkReminderTriggered(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

// SummaryRepository is a mock for summary.Repository.
type SummaryRepository struct {
	mock.Mock
}

func (m *SummaryRepository) Create(ctx context.Context, s *summary.Summary) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *SummaryRepository) Get(ctx context.Context, id string) (*summary.Summary, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*summary.Summary); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SummaryRepository) List(ctx context.Context) ([]summary.Summary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]summary.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SummaryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SummaryRepository) ExistsForPeriod(ctx context.Context, typ summary.Type, start time.Time) (bool, error) {
	args := m.Called(ctx, typ, start)
	return args.Bool(0), args.Error(1)
}

// AuditRepository is a mock for audit.Repository.
type AuditRepository struct {
	mock.Mock
}

func (m *AuditRepository) Log(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *AuditRepository) List(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]audit.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
