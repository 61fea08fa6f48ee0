package summary_test

import (
	"strings"
	"testing"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/contact"
	"github.com/lumeng/mindmirror/internal/domain/event"
	"github.com/lumeng/mindmirror/internal/domain/summary"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleEvents() []event.WithContacts {
	p1 := "proj1"
	p1Name := "Apollo"
	return []event.WithContacts{
		{
			Event:       event.Event{Title: "kickoff call", EventType: "meeting", EventDate: date(2024, 2, 1), ProjectID: &p1},
			ProjectName: &p1Name,
			Contacts:    []contact.Contact{{ID: "c1", Name: "Ada"}},
		},
		{
			Event:    event.Event{Title: "sent proposal", EventType: "email", EventDate: date(2024, 2, 1)},
			Contacts: []contact.Contact{{ID: "c2", Name: "Grace"}},
		},
		{
			Event:       event.Event{Title: "design review", EventType: "meeting", EventDate: date(2024, 2, 3), ProjectID: &p1},
			ProjectName: &p1Name,
			Contacts:    []contact.Contact{{ID: "c1", Name: "Ada"}, {ID: "c2", Name: "Grace"}},
		},
	}
}

func TestAggregate(t *testing.T) {
	stats := summary.Aggregate(sampleEvents())

	require.Equal(t, 3, stats.TotalEvents)
	require.Equal(t, 2, stats.EventsByType["meeting"])
	require.Equal(t, 1, stats.EventsByType["email"])
	require.Equal(t, 1, stats.ProjectsTouched)
	require.Equal(t, 2, stats.ContactsTouched)
}

func TestAggregate_Empty(t *testing.T) {
	stats := summary.Aggregate(nil)
	require.Zero(t, stats.TotalEvents)
	require.Zero(t, stats.ProjectsTouched)
	require.Zero(t, stats.ContactsTouched)
}

func TestRender_GroupsByDay(t *testing.T) {
	content := summary.Render(summary.TypeWeekly, date(2024, 2, 1), date(2024, 2, 7), sampleEvents())

	require.Contains(t, content, "# Weekly Summary 2024-02-01 to 2024-02-07")
	require.Contains(t, content, "## 2024-02-01")
	require.Contains(t, content, "## 2024-02-03")
	require.Contains(t, content, "[meeting] kickoff call (Apollo) with Ada")
	require.Contains(t, content, "[email] sent proposal with Grace")
	require.Contains(t, content, "3 event(s) across 1 project(s) and 2 contact(s).")

	// Day sections come out in ascending order.
	require.Less(t, strings.Index(content, "## 2024-02-01"), strings.Index(content, "## 2024-02-03"))
}

func TestRender_NoEvents(t *testing.T) {
	content := summary.Render(summary.TypeDaily, date(2024, 2, 1), date(2024, 2, 1), nil)
	require.Contains(t, content, "# Daily Summary 2024-02-01")
	require.Contains(t, content, "No events recorded")
}

func TestRender_Deterministic(t *testing.T) {
	a := summary.Render(summary.TypeWeekly, date(2024, 2, 1), date(2024, 2, 7), sampleEvents())
	b := summary.Render(summary.TypeWeekly, date(2024, 2, 1), date(2024, 2, 7), sampleEvents())
	require.Equal(t, a, b)
}

func TestDefaultRange(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	start, end, err := summary.DefaultRange(summary.TypeDaily, now)
	require.NoError(t, err)
	require.Equal(t, date(2024, 3, 14), start)
	require.Equal(t, date(2024, 3, 14), end)

	start, end, err = summary.DefaultRange(summary.TypeWeekly, now)
	require.NoError(t, err)
	require.Equal(t, date(2024, 3, 8), start)
	require.Equal(t, date(2024, 3, 14), end)

	start, end, err = summary.DefaultRange(summary.TypeMonthly, now)
	require.NoError(t, err)
	require.Equal(t, date(2024, 2, 1), start)
	require.Equal(t, date(2024, 2, 29), end)

	start, end, err = summary.DefaultRange(summary.TypeYearly, now)
	require.NoError(t, err)
	require.Equal(t, date(2023, 1, 1), start)
	require.Equal(t, date(2023, 12, 31), end)

	_, _, err = summary.DefaultRange(summary.TypeCustom, now)
	require.ErrorIs(t, err, summary.ErrInvalidRange)
}
