package sql

import (
	"context"
	"fmt"
	"strings"

	"tiendax/internal/entity"

	"gorm.io/gorm"
)

// CreateProduct persists a new product.
func (r *GormRepository) CreateProduct(ctx context.Context, product *entity.DbProduct) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if product == nil {
		return fmt.Errorf("product is nil")
	}
	return r.db.WithContext(ctx).Create(product).Error
}

// UpdateProduct updates an existing product entry.
func (r *GormRepository) UpdateProduct(ctx context.Context, id uint, updates entity.ProductUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid product id")
	}
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbProduct{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteProduct removes a product by ID.
func (r *GormRepository) DeleteProduct(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid product id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbProduct{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetProduct loads a product by ID.
func (r *GormRepository) GetProduct(ctx context.Context, id uint) (*entity.DbProduct, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid product id")
	}
	var product entity.DbProduct
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns paginated products in insertion order.
func (r *GormRepository) ListProducts(ctx context.Context, params *entity.ProductQuery) ([]entity.DbProduct, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbProduct{})
	if params != nil {
		if category := strings.TrimSpace(params.Category); category != "" {
			query = query.Where("category = ?", category)
		}
		if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
			kw := "%" + strings.ToLower(keyword) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", kw, kw)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page := 1
	pageSize := 100
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

	var products []entity.DbProduct
	if err := query.Order("id ASC").Offset(offset).Limit(pageSize).Find(&products).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return products, meta, nil
}

// MaxProductID returns the highest assigned product id, zero when empty.
func (r *GormRepository) MaxProductID(ctx context.Context) (uint, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var maxID *uint
	if err := r.db.WithContext(ctx).Model(&entity.DbProduct{}).Select("MAX(id)").Scan(&maxID).Error; err != nil {
		return 0, err
	}
	if maxID == nil {
		return 0, nil
	}
	return *maxID, nil
}

// IncrementProductViews bumps the view counter by one.
func (r *GormRepository) IncrementProductViews(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid product id")
	}
	result := r.db.WithContext(ctx).Model(&entity.DbProduct{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MostViewedProducts returns up to limit products ranked by view count,
// ties broken by ascending id. Ranking happens in SQL so the result covers
// the whole catalog, not a single page.
func (r *GormRepository) MostViewedProducts(ctx context.Context, limit int) ([]entity.DbProduct, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if limit <= 0 {
		limit = 4
	}
	var products []entity.DbProduct
	if err := r.db.WithContext(ctx).Order("views DESC, id ASC").Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
