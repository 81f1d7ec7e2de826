// Package stats computes the dashboard projections over a fetched activity
// list. Everything here is a pure function; nothing is persisted.
package stats

import (
	"time"

	"fittrack/internal/model"
)

type Summary struct {
	TotalActivities int `json:"totalActivities"`
	TotalMinutes    int `json:"totalMinutes"`
	ActiveDays      int `json:"activeDays"`
}

// Summarize recomputes the dashboard numbers from scratch. Active days are
// counted by the calendar date portion in loc, so the same instant can fall
// on different days for viewers in different zones.
func Summarize(activities []model.Activity, loc *time.Location) Summary {
	if loc == nil {
		loc = time.UTC
	}

	summary := Summary{TotalActivities: len(activities)}
	days := make(map[string]struct{}, len(activities))
	for _, activity := range activities {
		summary.TotalMinutes += activity.DurationMinutes
		days[activity.Date.In(loc).Format("2006-01-02")] = struct{}{}
	}
	summary.ActiveDays = len(days)
	return summary
}
