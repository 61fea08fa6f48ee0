package summary

import "time"

// Type is the summary period kind
type Type string

const (
	TypeDaily   Type = "daily"
	TypeWeekly  Type = "weekly"
	TypeMonthly Type = "monthly"
	TypeYearly  Type = "yearly"
	TypeCustom  Type = "custom"
)

// Valid reports whether t is one of the enumerated types.
func (t Type) Valid() bool {
	switch t {
	case TypeDaily, TypeWeekly, TypeMonthly, TypeYearly, TypeCustom:
		return true
	}
	return false
}

// Statistics holds the structured counts computed alongside the rendered
// content. Persisted as JSON.
type Statistics struct {
	TotalEvents     int            `json:"total_events"`
	EventsByType    map[string]int `json:"events_by_type"`
	ProjectsTouched int            `json:"projects_touched"`
	ContactsTouched int            `json:"contacts_touched"`
}

// Summary is a generated report over a date range. Summaries are
// append-only history: generating twice for the same range yields two
// records.
type Summary struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Type            Type       `json:"type"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	Content         string     `json:"content"`
	Statistics      Statistics `json:"statistics"`
	IsAutoGenerated bool       `json:"is_auto_generated"`
	CreatedAt       time.Time  `json:"created_at"`
}
