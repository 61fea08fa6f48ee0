// Package reminder runs the periodic background poll: due event reminders
// are delivered and scheduled summaries generated.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/event"
)

// Notifier delivers a due reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, e event.Event)
}

// Source yields due reminders and latches delivered ones. Satisfied by the
// event service.
type Source interface {
	PendingReminders(ctx context.Context, now time.Time) ([]event.Event, error)
	MarkReminderTriggered(ctx context.Context, id string) error
}

// Scheduler generates any summaries that are due. Satisfied by the summary
// service.
type Scheduler interface {
	GenerateDue(ctx context.Context, now time.Time) error
}

// LogNotifier logs due reminders. The default delivery channel; MCP
// clients read reminders through the today-reminders tool instead of
// receiving a push.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(_ context.Context, e event.Event) {
	n.Logger.Info("reminder due",
		"event_id", e.ID,
		"title", e.Title,
		"reminder_time", e.ReminderTime)
}

// Poller periodically checks for due reminders and scheduled summaries.
type Poller struct {
	source    Source
	scheduler Scheduler
	notifier  Notifier
	interval  time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Poller.
type Option func(*Poller)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

// NewPoller creates a new Poller ticking at the given interval.
func NewPoller(source Source, scheduler Scheduler, notifier Notifier, interval time.Duration, logger *slog.Logger, opts ...Option) *Poller {
	p := &Poller{
		source:    source,
		scheduler: scheduler,
		notifier:  notifier,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until ctx is cancelled. An immediate first poll runs before
// the ticker starts.
func (p *Poller) Run(ctx context.Context) {
	p.Poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll performs a single pass: deliver due reminders, then generate any
// scheduled summaries. Errors are logged, not returned; the next tick
// retries.
func (p *Poller) Poll(ctx context.Context) {
	now := p.now()

	due, err := p.source.PendingReminders(ctx, now)
	if err != nil {
		p.logger.Error("checking reminders failed", "error", err)
	} else {
		for _, e := range due {
			p.notifier.Notify(ctx, e)
			if err := p.source.MarkReminderTriggered(ctx, e.ID); err != nil {
				p.logger.Error("marking reminder triggered failed",
					"event_id", e.ID,
					"error", err)
			}
		}
	}

	if err := p.scheduler.GenerateDue(ctx, now); err != nil {
		p.logger.Error("generating scheduled summaries failed", "error", err)
	}
}
