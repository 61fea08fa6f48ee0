// Package gantt projects activities onto a day-indexed occupancy matrix.
// The projection is pure: its only inputs are the activity list and the
// date of the run.
package gantt

import (
	"strings"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/activity"
)

// Day markers by activity status.
const (
	MarkerScheduled  = "■" // pending or inactive
	MarkerInProgress = "●"
	MarkerPaused     = "◆"
	MarkerCompleted  = "★"
)

// Padding applied on both sides of the observed date range, in days.
// Fixed policy, not configurable.
const paddingDays = 7

const dateLayout = "2006-01-02"

// Matrix is the projector output. Rows align with Header; day columns
// start after the metadata columns.
type Matrix struct {
	Legend []string
	Days   []time.Time
	Header []string
	Rows   [][]string
}

var metaColumns = []string{
	"Activity", "Status", "Assignees", "Created", "Estimated", "Activated", "Completed",
}

// Project computes the occupancy matrix for the given activities. An empty
// list yields a matrix with the legend and header only, zero day columns,
// zero data rows.
func Project(activities []activity.WithAssignees, today time.Time) Matrix {
	m := Matrix{
		Legend: []string{
			MarkerScheduled + " pending/inactive",
			MarkerInProgress + " in progress",
			MarkerPaused + " paused",
			MarkerCompleted + " completed",
		},
		Header: append([]string{}, metaColumns...),
	}
	if len(activities) == 0 {
		return m
	}

	today = dateOnly(today)

	type interval struct {
		start, end time.Time
	}
	intervals := make([]interval, len(activities))

	var minDate, maxDate time.Time
	observe := func(d time.Time) {
		if minDate.IsZero() || d.Before(minDate) {
			minDate = d
		}
		if maxDate.IsZero() || d.After(maxDate) {
			maxDate = d
		}
	}

	for i, a := range activities {
		start := dateOnly(a.CreatedAt)
		end := today
		if a.CompletedAt != nil {
			end = dateOnly(*a.CompletedAt)
		} else if a.EstimatedCompletionDate != nil {
			end = dateOnly(*a.EstimatedCompletionDate)
		}
		intervals[i] = interval{start: start, end: end}

		observe(start)
		observe(end)
		if a.EstimatedCompletionDate != nil {
			observe(dateOnly(*a.EstimatedCompletionDate))
		}
		if a.CompletedAt != nil {
			observe(dateOnly(*a.CompletedAt))
		}
	}

	minDate = minDate.AddDate(0, 0, -paddingDays)
	maxDate = maxDate.AddDate(0, 0, paddingDays)

	for d := minDate; !d.After(maxDate); d = d.AddDate(0, 0, 1) {
		m.Days = append(m.Days, d)
		m.Header = append(m.Header, d.Format(dateLayout))
	}

	for i, a := range activities {
		row := make([]string, 0, len(m.Header))
		row = append(row,
			a.Name,
			string(a.Status),
			assigneeNames(a),
			a.CreatedAt.Format(dateLayout),
			formatDate(a.EstimatedCompletionDate),
			formatDate(a.ActivatedAt),
			formatDate(a.CompletedAt),
		)

		marker := statusMarker(a.Status)
		iv := intervals[i]
		for _, d := range m.Days {
			if !d.Before(iv.start) && !d.After(iv.end) {
				row = append(row, marker)
			} else {
				row = append(row, "")
			}
		}
		m.Rows = append(m.Rows, row)
	}

	return m
}

func statusMarker(s activity.Status) string {
	switch s {
	case activity.StatusInProgress:
		return MarkerInProgress
	case activity.StatusPaused:
		return MarkerPaused
	case activity.StatusCompleted:
		return MarkerCompleted
	}
	return MarkerScheduled
}

func assigneeNames(a activity.WithAssignees) string {
	names := make([]string, len(a.Assignees))
	for i, c := range a.Assignees {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// dateOnly discards the time of day. All dates are treated as
// timezone-naive calendar days.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
