package sql

import (
	"context"
	"fmt"

	"tiendax/internal/entity"
)

const emailConfigRowID = 1

// GetEmailConfig loads the single mail configuration row.
func (r *GormRepository) GetEmailConfig(ctx context.Context) (*entity.DbEmailConfig, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var cfg entity.DbEmailConfig
	if err := r.db.WithContext(ctx).First(&cfg, emailConfigRowID).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveEmailConfig overwrites the configuration row wholesale.
func (r *GormRepository) SaveEmailConfig(ctx context.Context, cfg *entity.DbEmailConfig) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	cfg.ID = emailConfigRowID
	return r.db.WithContext(ctx).Save(cfg).Error
}
