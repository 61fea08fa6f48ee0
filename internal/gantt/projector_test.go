package gantt_test

import (
	"testing"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/activity"
	"github.com/lumeng/mindmirror/internal/domain/contact"
	"github.com/lumeng/mindmirror/internal/gantt"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProject_SingleInProgressActivity(t *testing.T) {
	today := date(2024, 1, 15)
	acts := []activity.WithAssignees{{
		Activity: activity.Activity{
			Name:      "design review",
			Status:    activity.StatusInProgress,
			CreatedAt: date(2024, 1, 10),
		},
		Assignees: []contact.Contact{{Name: "Ada"}, {Name: "Grace"}},
	}}

	m := gantt.Project(acts, today)

	// 7-day padding on both sides of 2024-01-10..2024-01-15.
	require.Len(t, m.Days, 20)
	require.Equal(t, date(2024, 1, 3), m.Days[0])
	require.Equal(t, date(2024, 1, 22), m.Days[len(m.Days)-1])

	require.Len(t, m.Rows, 1)
	row := m.Rows[0]
	require.Equal(t, "design review", row[0])
	require.Equal(t, "in_progress", row[1])
	require.Equal(t, "Ada, Grace", row[2])

	cells := row[7:]
	require.Len(t, cells, 20)
	for i, d := range m.Days {
		if !d.Before(date(2024, 1, 10)) && !d.After(date(2024, 1, 15)) {
			require.Equal(t, gantt.MarkerInProgress, cells[i], "day %s", d)
		} else {
			require.Empty(t, cells[i], "day %s", d)
		}
	}
}

func TestProject_EmptyList(t *testing.T) {
	m := gantt.Project(nil, date(2024, 1, 15))

	require.Len(t, m.Legend, 4)
	require.NotEmpty(t, m.Header)
	require.Empty(t, m.Days)
	require.Empty(t, m.Rows)
}

func TestProject_CompletedBoundsInterval(t *testing.T) {
	completed := date(2024, 1, 12)
	estimated := date(2024, 1, 20)
	acts := []activity.WithAssignees{{
		Activity: activity.Activity{
			Name:                    "ship release",
			Status:                  activity.StatusCompleted,
			CreatedAt:               date(2024, 1, 8),
			EstimatedCompletionDate: &estimated,
			CompletedAt:             &completed,
		},
	}}

	m := gantt.Project(acts, date(2024, 2, 1))

	// Estimated date still widens the column range even though the
	// occupancy interval ends at the completion date.
	require.Equal(t, date(2024, 1, 1), m.Days[0])
	require.Equal(t, date(2024, 1, 27), m.Days[len(m.Days)-1])

	cells := m.Rows[0][7:]
	for i, d := range m.Days {
		if !d.Before(date(2024, 1, 8)) && !d.After(completed) {
			require.Equal(t, gantt.MarkerCompleted, cells[i], "day %s", d)
		} else {
			require.Empty(t, cells[i], "day %s", d)
		}
	}
}

func TestProject_MarkersByStatus(t *testing.T) {
	acts := []activity.WithAssignees{
		{Activity: activity.Activity{Name: "a", Status: activity.StatusPending, CreatedAt: date(2024, 3, 1)}},
		{Activity: activity.Activity{Name: "b", Status: activity.StatusInactive, CreatedAt: date(2024, 3, 1)}},
		{Activity: activity.Activity{Name: "c", Status: activity.StatusInProgress, CreatedAt: date(2024, 3, 1)}},
		{Activity: activity.Activity{Name: "d", Status: activity.StatusPaused, CreatedAt: date(2024, 3, 1)}},
	}

	m := gantt.Project(acts, date(2024, 3, 2))

	first := len(m.Days) - 1
	for i, d := range m.Days {
		if d.Equal(date(2024, 3, 1)) {
			first = i
			break
		}
	}

	require.Equal(t, gantt.MarkerScheduled, m.Rows[0][7+first])
	require.Equal(t, gantt.MarkerScheduled, m.Rows[1][7+first])
	require.Equal(t, gantt.MarkerInProgress, m.Rows[2][7+first])
	require.Equal(t, gantt.MarkerPaused, m.Rows[3][7+first])
}

func TestProject_TimeOfDayIgnored(t *testing.T) {
	acts := []activity.WithAssignees{{
		Activity: activity.Activity{
			Name:      "late start",
			Status:    activity.StatusInProgress,
			CreatedAt: time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC),
		},
	}}

	m := gantt.Project(acts, time.Date(2024, 1, 10, 0, 1, 0, 0, time.UTC))

	cells := m.Rows[0][7:]
	var marked int
	for _, c := range cells {
		if c != "" {
			marked++
		}
	}
	require.Equal(t, 1, marked)
}
