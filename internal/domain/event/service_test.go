package event_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/contact"
	"github.com/lumeng/mindmirror/internal/domain/event"
	"github.com/lumeng/mindmirror/internal/repository"
	"github.com/lumeng/mindmirror/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(repo *mocks.EventRepository, linker *mocks.ContactRepository, audits *mocks.AuditRepository, now time.Time) *event.Service {
	logger := slog.New(slog.DiscardHandler)
	return event.NewService(repo, linker, audits, logger, event.WithClock(func() time.Time { return now }))
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	projectID := "proj1"

	repo := &mocks.EventRepository{}
	linker := &mocks.ContactRepository{}
	audits := &mocks.AuditRepository{}

	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("LinkContacts", ctx, mock.Anything, []string{"c1", "c2"}).Return(nil)
	linker.On("LinkToProject", ctx, projectID, "c1", "", "").Return(nil)
	linker.On("LinkToProject", ctx, projectID, "c2", "", "").Return(nil)
	repo.On("Get", ctx, mock.Anything).Return(&event.WithContacts{
		Event:    event.Event{ID: "e1", Title: "kickoff call"},
		Contacts: []contact.Contact{{ID: "c1"}, {ID: "c2"}},
	}, nil)
	audits.On("Log", ctx, mock.Anything).Return(nil)

	svc := newTestService(repo, linker, audits, now)
	got, err := svc.Create(ctx, event.CreateRequest{
		Title:      "kickoff call",
		EventDate:  now,
		ProjectID:  &projectID,
		ContactIDs: []string{"c1", "c2"},
	})
	require.NoError(t, err)
	require.Len(t, got.Contacts, 2)
	linker.AssertExpectations(t)
}

func TestEventService_Create_RequiresContacts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&mocks.EventRepository{}, &mocks.ContactRepository{}, &mocks.AuditRepository{}, time.Now())

	_, err := svc.Create(ctx, event.CreateRequest{Title: "no one invited"})
	require.ErrorIs(t, err, event.ErrInvalidInput)

	_, err = svc.Create(ctx, event.CreateRequest{Title: " ", ContactIDs: []string{"c1"}})
	require.ErrorIs(t, err, event.ErrInvalidInput)
}

func TestEventService_Create_NoProjectSkipsAutoLink(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.EventRepository{}
	linker := &mocks.ContactRepository{}
	audits := &mocks.AuditRepository{}

	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("LinkContacts", ctx, mock.Anything, []string{"c1"}).Return(nil)
	repo.On("Get", ctx, mock.Anything).Return(&event.WithContacts{Event: event.Event{ID: "e1"}}, nil)
	audits.On("Log", ctx, mock.Anything).Return(nil)

	svc := newTestService(repo, linker, audits, time.Now())
	_, err := svc.Create(ctx, event.CreateRequest{
		Title:      "coffee",
		EventDate:  time.Now(),
		ContactIDs: []string{"c1"},
	})
	require.NoError(t, err)
	linker.AssertNotCalled(t, "LinkToProject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEventService_Update_ReminderChangeResetsLatch(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	oldReminder := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	newReminder := time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)

	repo := &mocks.EventRepository{}
	repo.On("Get", ctx, "e1").Return(&event.WithContacts{
		Event: event.Event{
			ID:                "e1",
			Title:             "follow up",
			ReminderTime:      &oldReminder,
			ReminderTriggered: true,
		},
	}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(e *event.Event) bool {
		return !e.ReminderTriggered && e.ReminderTime.Equal(newReminder)
	})).Return(nil)
	repo.On("UnlinkContacts", ctx, "e1").Return(nil)
	repo.On("LinkContacts", ctx, "e1", []string{"c1"}).Return(nil)

	svc := newTestService(repo, &mocks.ContactRepository{}, &mocks.AuditRepository{}, now)
	_, err := svc.Update(ctx, event.UpdateRequest{
		ID:           "e1",
		Title:        "follow up",
		EventDate:    now,
		ReminderTime: &newReminder,
		ContactIDs:   []string{"c1"},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestEventService_PendingReminders_WindowIsOneMinute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	repo := &mocks.EventRepository{}
	repo.On("PendingReminders", ctx, now.Add(-time.Minute), now).Return([]event.Event{{ID: "e1"}}, nil)

	svc := newTestService(repo, &mocks.ContactRepository{}, &mocks.AuditRepository{}, now)
	due, err := svc.PendingReminders(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	repo.AssertExpectations(t)
}

func TestEventService_Get_NotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.EventRepository{}
	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	svc := newTestService(repo, &mocks.ContactRepository{}, &mocks.AuditRepository{}, time.Now())
	_, err := svc.Get(ctx, "missing")
	require.ErrorIs(t, err, event.ErrEventNotFound)
}
