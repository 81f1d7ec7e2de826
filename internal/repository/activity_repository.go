package repository

import (
	"fmt"

	"gorm.io/gorm"

	"fittrack/internal/model"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(activity *model.Activity) error {
	if err := r.db.Create(activity).Error; err != nil {
		return fmt.Errorf("create activity failed: %w", err)
	}
	return nil
}

// ListByUserID returns the caller's activities newest first. The id
// tiebreaker keeps back-to-back entries with equal dates in a stable order.
func (r *ActivityRepository) ListByUserID(userID uint) ([]model.Activity, error) {
	var activities []model.Activity
	if err := r.db.Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities failed: %w", err)
	}
	return activities, nil
}
