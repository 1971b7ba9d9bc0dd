package sql

import (
	"context"
	"fmt"

	"tiendax/internal/entity"

	"gorm.io/gorm"
)

// ListCartItems returns all cart lines for a user in insertion order.
func (r *GormRepository) ListCartItems(ctx context.Context, userID uint) ([]entity.DbCartItem, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var items []entity.DbCartItem
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetCartItem loads the line for a (user, product) pair.
func (r *GormRepository) GetCartItem(ctx context.Context, userID, productID uint) (*entity.DbCartItem, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 || productID == 0 {
		return nil, fmt.Errorf("invalid cart item key")
	}
	var item entity.DbCartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateCartItem appends a new cart line.
func (r *GormRepository) CreateCartItem(ctx context.Context, item *entity.DbCartItem) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if item == nil {
		return fmt.Errorf("cart item is nil")
	}
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateCartItemQuantity sets the quantity of an existing line.
func (r *GormRepository) UpdateCartItemQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if userID == 0 || productID == 0 {
		return fmt.Errorf("invalid cart item key")
	}
	result := r.db.WithContext(ctx).Model(&entity.DbCartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCartItem removes one line.
func (r *GormRepository) DeleteCartItem(ctx context.Context, userID, productID uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if userID == 0 || productID == 0 {
		return fmt.Errorf("invalid cart item key")
	}
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&entity.DbCartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearCart removes all lines for a user.
func (r *GormRepository) ClearCart(ctx context.Context, userID uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return fmt.Errorf("invalid user id")
	}
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.DbCartItem{}).Error
}
