package sql

import (
	"context"
	"fmt"

	"tiendax/internal/entity"
)

// CreateOrder persists a checkout snapshot.
func (r *GormRepository) CreateOrder(ctx context.Context, order *entity.DbOrder) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if order == nil {
		return fmt.Errorf("order is nil")
	}
	return r.db.WithContext(ctx).Create(order).Error
}

// ListOrders returns paginated orders, newest first.
func (r *GormRepository) ListOrders(ctx context.Context, params *entity.OrderQuery) ([]entity.DbOrder, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbOrder{})
	if params != nil && params.UserID != 0 {
		query = query.Where("user_id = ?", params.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page := 1
	pageSize := 20
	if params != nil {
		if params.Page > 0 {
			page = int(params.Page)
		}
		if params.PageSize > 0 {
			pageSize = int(params.PageSize)
		}
	}

	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}

	var orders []entity.DbOrder
	if err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&orders).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return orders, meta, nil
}
