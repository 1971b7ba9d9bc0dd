package sql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tiendax/internal/entity"
)

// CreateActivity appends an activity log entry.
func (r *GormRepository) CreateActivity(ctx context.Context, activity *entity.DbActivity) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if activity == nil {
		return fmt.Errorf("activity is nil")
	}
	return r.db.WithContext(ctx).Create(activity).Error
}

// ListActivities returns the most recent entries, newest first.
func (r *GormRepository) ListActivities(ctx context.Context, limit int) ([]entity.DbActivity, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if limit <= 0 {
		limit = 100
	}
	var activities []entity.DbActivity
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// CountActivities returns the total number of stored entries.
func (r *GormRepository) CountActivities(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbActivity{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TrimActivities evicts the oldest entries so at most keep remain.
func (r *GormRepository) TrimActivities(ctx context.Context, keep int) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if keep <= 0 {
		return fmt.Errorf("invalid keep count")
	}

	var cutoff entity.DbActivity
	err := r.db.WithContext(ctx).Order("id DESC").Offset(keep - 1).Limit(1).Take(&cutoff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Fewer than keep entries exist, nothing to trim.
		return nil
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id < ?", cutoff.ID).Delete(&entity.DbActivity{}).Error
}
