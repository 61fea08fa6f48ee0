package summary_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/event"
	"github.com/lumeng/mindmirror/internal/domain/summary"
	"github.com/lumeng/mindmirror/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(repo *mocks.SummaryRepository, events *mocks.EventRepository, now time.Time) *summary.Service {
	logger := slog.New(slog.DiscardHandler)
	audits := &mocks.AuditRepository{}
	audits.On("Log", mock.Anything, mock.Anything).Return(nil)
	return summary.NewService(repo, events, audits, logger, summary.WithClock(func() time.Time { return now }))
}

func TestSummaryService_Generate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	start := date(2024, 2, 1)
	end := date(2024, 2, 7)

	repo := &mocks.SummaryRepository{}
	events := &mocks.EventRepository{}

	events.On("ListRange", ctx, start, end).Return(sampleEvents(), nil)
	repo.On("Create", ctx, mock.MatchedBy(func(s *summary.Summary) bool {
		return s.Type == summary.TypeWeekly &&
			!s.IsAutoGenerated &&
			s.Statistics.TotalEvents == 3 &&
			s.Content != ""
	})).Return(nil)

	svc := newTestService(repo, events, now)
	got, err := svc.Generate(ctx, summary.TypeWeekly, start, end)
	require.NoError(t, err)
	require.Equal(t, "Weekly Summary 2024-02-01 to 2024-02-07", got.Title)
	require.Equal(t, now, got.CreatedAt)
	repo.AssertExpectations(t)
}

func TestSummaryService_Generate_InvalidRange(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&mocks.SummaryRepository{}, &mocks.EventRepository{}, time.Now())

	_, err := svc.Generate(ctx, summary.TypeCustom, date(2024, 2, 1), date(2024, 1, 1))
	require.ErrorIs(t, err, summary.ErrInvalidRange)
}

func TestSummaryService_Generate_InvalidType(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&mocks.SummaryRepository{}, &mocks.EventRepository{}, time.Now())

	_, err := svc.Generate(ctx, summary.Type("quarterly"), date(2024, 1, 1), date(2024, 3, 31))
	require.ErrorIs(t, err, summary.ErrInvalidType)
}

// Two generations over the same unchanged range yield equal content and
// statistics but distinct records.
func TestSummaryService_Generate_IndependentRecords(t *testing.T) {
	ctx := context.Background()
	start := date(2024, 2, 1)
	end := date(2024, 2, 7)

	repo := &mocks.SummaryRepository{}
	events := &mocks.EventRepository{}
	events.On("ListRange", ctx, start, end).Return(sampleEvents(), nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := newTestService(repo, events, time.Now())
	first, err := svc.Generate(ctx, summary.TypeWeekly, start, end)
	require.NoError(t, err)
	second, err := svc.Generate(ctx, summary.TypeWeekly, start, end)
	require.NoError(t, err)

	require.Equal(t, first.Content, second.Content)
	require.Equal(t, first.Statistics, second.Statistics)
	require.NotEqual(t, first.ID, second.ID)
}

func TestSummaryService_GenerateDue_WeekdayOnlyDaily(t *testing.T) {
	ctx := context.Background()
	// A Thursday, not the 1st: only the daily summary is due.
	now := time.Date(2024, 3, 14, 0, 10, 0, 0, time.UTC)
	yesterday := date(2024, 3, 13)

	repo := &mocks.SummaryRepository{}
	events := &mocks.EventRepository{}

	repo.On("ExistsForPeriod", ctx, summary.TypeDaily, yesterday).Return(false, nil)
	events.On("ListRange", ctx, yesterday, yesterday).Return([]event.WithContacts{}, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(s *summary.Summary) bool {
		return s.Type == summary.TypeDaily && s.IsAutoGenerated
	})).Return(nil)

	svc := newTestService(repo, events, now)
	require.NoError(t, svc.GenerateDue(ctx, now))
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "ExistsForPeriod", ctx, summary.TypeWeekly, mock.Anything)
	repo.AssertNotCalled(t, "ExistsForPeriod", ctx, summary.TypeMonthly, mock.Anything)
}

func TestSummaryService_GenerateDue_MondayAddsWeekly(t *testing.T) {
	ctx := context.Background()
	// Monday 2024-04-01: daily, weekly, and monthly all due.
	now := time.Date(2024, 4, 1, 0, 10, 0, 0, time.UTC)

	repo := &mocks.SummaryRepository{}
	events := &mocks.EventRepository{}

	repo.On("ExistsForPeriod", ctx, summary.TypeDaily, date(2024, 3, 31)).Return(false, nil)
	repo.On("ExistsForPeriod", ctx, summary.TypeWeekly, date(2024, 3, 25)).Return(false, nil)
	repo.On("ExistsForPeriod", ctx, summary.TypeMonthly, date(2024, 3, 1)).Return(false, nil)
	events.On("ListRange", ctx, mock.Anything, mock.Anything).Return([]event.WithContacts{}, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := newTestService(repo, events, now)
	require.NoError(t, svc.GenerateDue(ctx, now))
	repo.AssertExpectations(t)
}

func TestSummaryService_GenerateDue_SkipsExisting(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)

	repo := &mocks.SummaryRepository{}
	events := &mocks.EventRepository{}
	repo.On("ExistsForPeriod", ctx, summary.TypeDaily, date(2024, 3, 13)).Return(true, nil)

	svc := newTestService(repo, events, now)
	require.NoError(t, svc.GenerateDue(ctx, now))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
