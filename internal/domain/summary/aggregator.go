package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lumeng/mindmirror/internal/domain/event"
)

const dateLayout = "2006-01-02"

// Aggregate computes the structured counts for a set of events. Pure.
func Aggregate(events []event.WithContacts) Statistics {
	stats := Statistics{
		EventsByType: map[string]int{},
	}

	projects := map[string]struct{}{}
	contacts := map[string]struct{}{}

	for _, e := range events {
		stats.TotalEvents++
		typ := e.EventType
		if typ == "" {
			typ = "other"
		}
		stats.EventsByType[typ]++
		if e.ProjectID != nil {
			projects[*e.ProjectID] = struct{}{}
		}
		for _, c := range e.Contacts {
			contacts[c.ID] = struct{}{}
		}
	}

	stats.ProjectsTouched = len(projects)
	stats.ContactsTouched = len(contacts)
	return stats
}

// Render produces the human-readable report for events in [start, end].
// Pure: output depends only on the arguments. Events are grouped by day in
// ascending order.
func Render(typ Type, start, end time.Time, events []event.WithContacts) string {
	stats := Aggregate(events)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Title(typ, start, end))

	if stats.TotalEvents == 0 {
		b.WriteString("No events recorded in this period.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%d event(s) across %d project(s) and %d contact(s).\n",
		stats.TotalEvents, stats.ProjectsTouched, stats.ContactsTouched)

	byDay := map[string][]event.WithContacts{}
	for _, e := range events {
		day := e.EventDate.Format(dateLayout)
		byDay[day] = append(byDay[day], e)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		fmt.Fprintf(&b, "\n## %s\n", day)
		for _, e := range byDay[day] {
			b.WriteString("- ")
			if e.EventType != "" {
				fmt.Fprintf(&b, "[%s] ", e.EventType)
			}
			b.WriteString(e.Title)
			if e.ProjectName != nil {
				fmt.Fprintf(&b, " (%s)", *e.ProjectName)
			}
			if names := contactNames(e); names != "" {
				fmt.Fprintf(&b, " with %s", names)
			}
			b.WriteString("\n")
		}
	}

	if len(stats.EventsByType) > 1 {
		b.WriteString("\n## By type\n")
		types := make([]string, 0, len(stats.EventsByType))
		for t := range stats.EventsByType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(&b, "- %s: %d\n", t, stats.EventsByType[t])
		}
	}

	return b.String()
}

// Title builds the display title for a summary period.
func Title(typ Type, start, end time.Time) string {
	label := map[Type]string{
		TypeDaily:   "Daily Summary",
		TypeWeekly:  "Weekly Summary",
		TypeMonthly: "Monthly Summary",
		TypeYearly:  "Yearly Summary",
		TypeCustom:  "Summary",
	}[typ]

	if sameDay(start, end) {
		return fmt.Sprintf("%s %s", label, start.Format(dateLayout))
	}
	return fmt.Sprintf("%s %s to %s", label, start.Format(dateLayout), end.Format(dateLayout))
}

// DefaultRange derives the conventional range for a summary type relative
// to now: yesterday for daily, the last 7 days for weekly, the previous
// calendar month for monthly, the previous calendar year for yearly.
// Custom has no default and returns ErrInvalidRange.
func DefaultRange(typ Type, now time.Time) (time.Time, time.Time, error) {
	today := dateOnly(now)
	switch typ {
	case TypeDaily:
		y := today.AddDate(0, 0, -1)
		return y, y, nil
	case TypeWeekly:
		return today.AddDate(0, 0, -7), today.AddDate(0, 0, -1), nil
	case TypeMonthly:
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		firstOfPrev := firstOfThis.AddDate(0, -1, 0)
		return firstOfPrev, firstOfThis.AddDate(0, 0, -1), nil
	case TypeYearly:
		return time.Date(today.Year()-1, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(today.Year()-1, 12, 31, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, time.Time{}, ErrInvalidRange
}

func contactNames(e event.WithContacts) string {
	names := make([]string, len(e.Contacts))
	for i, c := range e.Contacts {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
