package reminder_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/event"
	"github.com/lumeng/mindmirror/internal/reminder"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	pending    []event.Event
	pendingErr error
	marked     []string
	markErr    error
}

func (f *fakeSource) PendingReminders(_ context.Context, _ time.Time) ([]event.Event, error) {
	return f.pending, f.pendingErr
}

func (f *fakeSource) MarkReminderTriggered(_ context.Context, id string) error {
	f.marked = append(f.marked, id)
	return f.markErr
}

type fakeScheduler struct {
	calls int
	err   error
}

func (f *fakeScheduler) GenerateDue(_ context.Context, _ time.Time) error {
	f.calls++
	return f.err
}

type fakeNotifier struct {
	notified []string
}

func (f *fakeNotifier) Notify(_ context.Context, e event.Event) {
	f.notified = append(f.notified, e.ID)
}

func newTestPoller(src *fakeSource, sched *fakeScheduler, n *fakeNotifier) *reminder.Poller {
	logger := slog.New(slog.DiscardHandler)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return reminder.NewPoller(src, sched, n, time.Minute, logger,
		reminder.WithClock(func() time.Time { return now }))
}

func TestPoller_DeliversAndMarks(t *testing.T) {
	src := &fakeSource{pending: []event.Event{{ID: "e1"}, {ID: "e2"}}}
	sched := &fakeScheduler{}
	n := &fakeNotifier{}

	newTestPoller(src, sched, n).Poll(context.Background())

	require.Equal(t, []string{"e1", "e2"}, n.notified)
	require.Equal(t, []string{"e1", "e2"}, src.marked)
	require.Equal(t, 1, sched.calls)
}

func TestPoller_SourceErrorStillRunsScheduler(t *testing.T) {
	src := &fakeSource{pendingErr: errors.New("db locked")}
	sched := &fakeScheduler{}
	n := &fakeNotifier{}

	newTestPoller(src, sched, n).Poll(context.Background())

	require.Empty(t, n.notified)
	require.Equal(t, 1, sched.calls)
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	src := &fakeSource{}
	sched := &fakeScheduler{}
	n := &fakeNotifier{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		newTestPoller(src, sched, n).Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancel")
	}
	// The immediate first poll ran.
	require.GreaterOrEqual(t, sched.calls, 1)
}
