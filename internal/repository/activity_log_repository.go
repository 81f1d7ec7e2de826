package repository

import (
	"fmt"

	"gorm.io/gorm"

	"fittrack/internal/model"
)

type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

func (r *ActivityLogRepository) Create(entry *model.ActivityLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("create activity log failed: %w", err)
	}
	return nil
}
