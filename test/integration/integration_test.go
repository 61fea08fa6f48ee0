package integration_test

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/activity"
	"github.com/lumeng/mindmirror/internal/domain/contact"
	"github.com/lumeng/mindmirror/internal/domain/event"
	"github.com/lumeng/mindmirror/internal/domain/project"
	"github.com/lumeng/mindmirror/internal/domain/summary"
	"github.com/lumeng/mindmirror/internal/gantt"
	"github.com/lumeng/mindmirror/internal/reminder"
	"github.com/lumeng/mindmirror/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db *sqlite.DB

	projectSvc  *project.Service
	contactSvc  *contact.Service
	activitySvc *activity.Service
	eventSvc    *event.Service
	summarySvc  *summary.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.DiscardHandler)
	projectRepo := sqlite.NewProjectRepository(db)
	contactRepo := sqlite.NewContactRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	eventRepo := sqlite.NewEventRepository(db)
	summaryRepo := sqlite.NewSummaryRepository(db)
	auditRepo := sqlite.NewAuditRepository(db)

	return &testEnv{
		db:          db,
		projectSvc:  project.NewService(projectRepo, auditRepo, logger),
		contactSvc:  contact.NewService(contactRepo, auditRepo, logger),
		activitySvc: activity.NewService(activityRepo, auditRepo, logger),
		eventSvc:    event.NewService(eventRepo, contactRepo, auditRepo, logger),
		summarySvc:  summary.NewService(summaryRepo, eventRepo, auditRepo, logger),
	}
}

func TestIntegration_ActivityWorkflow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.projectSvc.Create(ctx, project.CreateRequest{Name: "Apollo"})
	require.NoError(t, err)
	ada, err := env.contactSvc.Create(ctx, contact.CreateRequest{Name: "Ada"})
	require.NoError(t, err)

	created, err := env.activitySvc.Create(ctx, activity.CreateRequest{
		ProjectID: proj.ID,
		Name:      "Design review",
	})
	require.NoError(t, err)
	require.Equal(t, activity.StatusPending, created.Status)

	// Assigning the first contact promotes pending to inactive.
	require.NoError(t, env.activitySvc.Assign(ctx, created.ID, []string{ada.ID}))
	got, err := env.activitySvc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, activity.StatusInactive, got.Status)

	// Removing the only assignee keeps the status; the promotion is a ratchet.
	require.NoError(t, env.activitySvc.Unassign(ctx, created.ID, ada.ID))
	got, err = env.activitySvc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, activity.StatusInactive, got.Status)

	started, err := env.activitySvc.Activate(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, activity.StatusInProgress, started.Status)
	require.NotNil(t, started.ActivatedAt)

	paused, err := env.activitySvc.Pause(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, activity.StatusPaused, paused.Status)

	resumed, err := env.activitySvc.Activate(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, activity.StatusInProgress, resumed.Status)

	done, err := env.activitySvc.Complete(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, activity.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	_, err = env.activitySvc.Activate(ctx, created.ID)
	require.ErrorIs(t, err, activity.ErrInvalidTransition)
	require.ErrorIs(t, env.activitySvc.Delete(ctx, created.ID), activity.ErrInvalidTransition)

	matrix := gantt.Project([]activity.WithAssignees{{Activity: *done}}, time.Now())
	require.Len(t, matrix.Rows, 1)
	require.Contains(t, matrix.Rows[0], gantt.MarkerCompleted)
}

func TestIntegration_EventToSummaryWorkflow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj, err := env.projectSvc.Create(ctx, project.CreateRequest{Name: "Apollo"})
	require.NoError(t, err)
	ada, err := env.contactSvc.Create(ctx, contact.CreateRequest{Name: "Ada"})
	require.NoError(t, err)
	grace, err := env.contactSvc.Create(ctx, contact.CreateRequest{Name: "Grace"})
	require.NoError(t, err)

	_, err = env.eventSvc.Create(ctx, event.CreateRequest{
		Title:      "Kickoff",
		EventDate:  time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		EventType:  "meeting",
		ProjectID:  &proj.ID,
		ContactIDs: []string{ada.ID, grace.ID},
	})
	require.NoError(t, err)
	_, err = env.eventSvc.Create(ctx, event.CreateRequest{
		Title:      "Follow-up call",
		EventDate:  time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC),
		EventType:  "call",
		ContactIDs: []string{ada.ID},
	})
	require.NoError(t, err)

	// Project events auto-link their contacts to the project.
	links, err := env.contactSvc.ListForProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)

	sum, err := env.summarySvc.Generate(ctx, summary.TypeWeekly,
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 2, sum.Statistics.TotalEvents)
	require.Equal(t, 1, sum.Statistics.ProjectsTouched)
	require.Equal(t, 2, sum.Statistics.ContactsTouched)
	require.Contains(t, sum.Content, "Kickoff")
	require.Contains(t, sum.Content, "Follow-up call")
	require.Contains(t, sum.Content, "(Apollo)")
}

type captureNotifier struct {
	delivered []event.Event
}

func (n *captureNotifier) Notify(_ context.Context, e event.Event) {
	n.delivered = append(n.delivered, e)
}

func TestIntegration_ReminderPollDeliversOnce(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	ada, err := env.contactSvc.Create(ctx, contact.CreateRequest{Name: "Ada"})
	require.NoError(t, err)

	now := time.Now().UTC()
	remindAt := now.Add(-30 * time.Second)
	created, err := env.eventSvc.Create(ctx, event.CreateRequest{
		Title:        "Send proposal",
		EventDate:    now,
		ReminderTime: &remindAt,
		ContactIDs:   []string{ada.ID},
	})
	require.NoError(t, err)

	notifier := &captureNotifier{}
	poller := reminder.NewPoller(env.eventSvc, env.summarySvc, notifier, time.Minute, slog.New(slog.DiscardHandler))

	poller.Poll(ctx)
	require.Len(t, notifier.delivered, 1)
	require.Equal(t, created.ID, notifier.delivered[0].ID)

	// The latch keeps a delivered reminder from firing again.
	poller.Poll(ctx)
	require.Len(t, notifier.delivered, 1)

	// The scheduler pass generated yesterday's daily summary exactly once.
	summaries, err := env.summarySvc.List(ctx)
	require.NoError(t, err)
	var daily int
	for _, s := range summaries {
		if s.Type == summary.TypeDaily && s.IsAutoGenerated {
			daily++
		}
	}
	require.Equal(t, 1, daily)
}
