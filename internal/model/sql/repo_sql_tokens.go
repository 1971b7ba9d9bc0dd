package sql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tiendax/internal/entity"

	"gorm.io/gorm"
)

// CreateAuthToken persists a one-time token record.
func (r *GormRepository) CreateAuthToken(ctx context.Context, token *entity.DbAuthToken) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if token == nil {
		return fmt.Errorf("token is nil")
	}
	return r.db.WithContext(ctx).Create(token).Error
}

// GetAuthTokenByHash loads a token record by its storage hash.
func (r *GormRepository) GetAuthTokenByHash(ctx context.Context, hash string) (*entity.DbAuthToken, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(hash)
	if trimmed == "" {
		return nil, fmt.Errorf("token hash is empty")
	}
	var token entity.DbAuthToken
	if err := r.db.WithContext(ctx).Where("token_hash = ?", trimmed).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// ConsumeAuthToken marks a token as used. A token can only be consumed once.
func (r *GormRepository) ConsumeAuthToken(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid token id")
	}
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&entity.DbAuthToken{}).
		Where("id = ? AND consumed_at IS NULL", id).
		Update("consumed_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteExpiredAuthTokens removes tokens past their expiry.
func (r *GormRepository) DeleteExpiredAuthTokens(ctx context.Context) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&entity.DbAuthToken{}).Error
}
