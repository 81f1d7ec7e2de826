package model

import "time"

// ActivityLog is an audit row written asynchronously from activity events.
// It is internal bookkeeping and never leaves the server.
type ActivityLog struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Action          string    `gorm:"size:32;not null" json:"action"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	ActivityID      uint      `gorm:"not null;index" json:"activity_id"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	LoggedAt        time.Time `gorm:"autoCreateTime" json:"logged_at"`
}
