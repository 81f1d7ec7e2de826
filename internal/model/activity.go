package model

import "time"

// Activity is one logged exercise session. JSON names follow the public
// API contract (camelCase), which predates this service.
type Activity struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"userId"`
	Name            string    `gorm:"size:64;not null" json:"name"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`
	Date            time.Time `gorm:"not null;index" json:"date"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
