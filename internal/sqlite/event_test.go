package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumeng/mindmirror/internal/domain/event"
	"github.com/lumeng/mindmirror/internal/repository"
	"github.com/stretchr/testify/require"
)

func createTestEvent(t *testing.T, db *DB, projectID *string, date time.Time, contactIDs ...string) *event.Event {
	t.Helper()
	ctx := context.Background()
	repo := NewEventRepository(db)

	now := time.Now().UTC()
	e := &event.Event{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Title:     "test event",
		EventDate: date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, e))
	if len(contactIDs) > 0 {
		require.NoError(t, repo.LinkContacts(ctx, e.ID, contactIDs))
	}
	return e
}

func TestEventRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEventRepository(db)

	proj := createTestProject(t, db, "Apollo")
	c := createTestContact(t, db, "Ada")
	e := createTestEvent(t, db, &proj.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), c.ID)

	got, err := repo.Get(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, "test event", got.Title)
	require.NotNil(t, got.ProjectID)
	require.NotNil(t, got.ProjectName)
	require.Equal(t, "Apollo", *got.ProjectName)
	require.Len(t, got.Contacts, 1)
	require.False(t, got.ReminderTriggered)
}

func TestEventRepository_ListRange(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEventRepository(db)

	c := createTestContact(t, db, "Ada")
	createTestEvent(t, db, nil, time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC), c.ID)
	createTestEvent(t, db, nil, time.Date(2024, 2, 7, 23, 30, 0, 0, time.UTC), c.ID)
	createTestEvent(t, db, nil, time.Date(2024, 2, 8, 0, 30, 0, 0, time.UTC), c.ID)

	list, err := repo.ListRange(ctx,
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	// End date is inclusive for the whole day; the Feb 8 event is out.
	require.Len(t, list, 2)
}

func TestEventRepository_Reminders(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEventRepository(db)

	c := createTestContact(t, db, "Ada")
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	due := createTestEvent(t, db, nil, now)
	reminderAt := now.Add(-30 * time.Second)
	dueEvt, err := repo.Get(ctx, due.ID)
	require.NoError(t, err)
	e := dueEvt.Event
	e.ReminderTime = &reminderAt
	require.NoError(t, repo.Update(ctx, &e))

	farOff := createTestEvent(t, db, nil, now, c.ID)
	farReminder := now.Add(2 * time.Hour)
	farEvt, err := repo.Get(ctx, farOff.ID)
	require.NoError(t, err)
	f := farEvt.Event
	f.ReminderTime = &farReminder
	require.NoError(t, repo.Update(ctx, &f))

	pending, err := repo.PendingReminders(ctx, now.Add(-time.Minute), now)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, due.ID, pending[0].ID)

	// Triggered reminders stop showing up.
	require.NoError(t, repo.MarkReminderTriggered(ctx, due.ID))
	pending, err = repo.PendingReminders(ctx, now.Add(-time.Minute), now)
	require.NoError(t, err)
	require.Empty(t, pending)

	// But the day view still lists them.
	today, err := repo.ListRemindersForDay(ctx, now)
	require.NoError(t, err)
	require.Len(t, today, 2)

	require.ErrorIs(t, repo.MarkReminderTriggered(ctx, "missing"), repository.ErrNotFound)
}

func TestEventRepository_DeleteCascadesLinks(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEventRepository(db)

	c := createTestContact(t, db, "Ada")
	e := createTestEvent(t, db, nil, time.Now().UTC(), c.ID)

	require.NoError(t, repo.Delete(ctx, e.ID))

	var links int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM events_contacts WHERE event_id = ?", e.ID).Scan(&links))
	require.Zero(t, links)
}

func TestEventRepository_ListForContact(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEventRepository(db)

	ada := createTestContact(t, db, "Ada")
	grace := createTestContact(t, db, "Grace")
	createTestEvent(t, db, nil, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ada.ID)
	createTestEvent(t, db, nil, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ada.ID, grace.ID)

	list, err := repo.ListForContact(ctx, ada.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Newest first.
	require.True(t, list[0].EventDate.After(list[1].EventDate))

	list, err = repo.ListForContact(ctx, grace.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Contacts, 2)
}
