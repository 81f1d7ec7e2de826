// Package events defines the payloads published to the activity event queue.
package events

import (
	"time"

	"github.com/google/uuid"

	"fittrack/internal/model"
)

const ActionActivityCreated = "activity.created"

// ActivityCreated is emitted after an activity row has been persisted.
type ActivityCreated struct {
	EventID         string    `json:"event_id"`
	Action          string    `json:"action"`
	ActivityID      uint      `json:"activity_id"`
	UserID          uint      `json:"user_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Date            time.Time `json:"date"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func NewActivityCreated(activity model.Activity) ActivityCreated {
	return ActivityCreated{
		EventID:         uuid.NewString(),
		Action:          ActionActivityCreated,
		ActivityID:      activity.ID,
		UserID:          activity.UserID,
		Name:            activity.Name,
		DurationMinutes: activity.DurationMinutes,
		Date:            activity.Date,
		OccurredAt:      time.Now(),
	}
}
