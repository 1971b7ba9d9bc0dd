package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tiendax/internal/entity"
	"tiendax/internal/model"
)

// CatalogService owns the product catalog.
type CatalogService struct {
	repo     model.Repository
	activity *ActivityService
}

func NewCatalogService(repo model.Repository, activity *ActivityService) *CatalogService {
	return &CatalogService{repo: repo, activity: activity}
}

// List returns products matching the query in ascending id order.
func (s *CatalogService) List(ctx context.Context, params *entity.ProductQuery) (*entity.ProductListResponse, error) {
	products, meta, err := s.repo.ListProducts(ctx, params)
	if err != nil {
		return nil, err
	}
	return &entity.ProductListResponse{Products: products, Meta: meta}, nil
}

// Get returns one product by id.
func (s *CatalogService) Get(ctx context.Context, id uint) (*entity.DbProduct, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// Create adds a product. Ids continue from the highest existing id so the
// seeded catalog keeps its numbering.
func (s *CatalogService) Create(ctx context.Context, actor *entity.DbUser, req *entity.ProductCreateRequest) (*entity.DbProduct, error) {
	maxID, err := s.repo.MaxProductID(ctx)
	if err != nil {
		return nil, err
	}
	product := &entity.DbProduct{
		ID:          maxID + 1,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Shade:       req.Shade,
		Discount:    req.Discount,
		Colors:      entity.ProductColors(req.Colors),
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	s.logAs(ctx, actor, "Producto creado", product.Name)
	return product, nil
}

// Update applies a partial update to a product.
func (s *CatalogService) Update(ctx context.Context, actor *entity.DbUser, id uint, req *entity.ProductUpdateRequest) (*entity.DbProduct, error) {
	updates := entity.ProductUpdates{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrValidation
		}
		updates["price"] = *req.Price
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Shade != nil {
		updates["shade"] = *req.Shade
	}
	if req.Discount != nil {
		if *req.Discount < 0 || *req.Discount >= 100 {
			return nil, ErrValidation
		}
		updates["discount"] = *req.Discount
	}
	if req.Colors != nil {
		updates["colors"] = entity.ProductColors(*req.Colors)
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}
	if err := s.repo.UpdateProduct(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logAs(ctx, actor, "Producto actualizado", product.Name)
	return product, nil
}

// Delete removes a product from the catalog.
func (s *CatalogService) Delete(ctx context.Context, actor *entity.DbUser, id uint) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.logAs(ctx, actor, "Producto eliminado", product.Name)
	return nil
}

// RecordView bumps a product's view counter. Missing products are ignored so
// a stale client cannot surface errors here.
func (s *CatalogService) RecordView(ctx context.Context, id uint) error {
	if err := s.repo.IncrementProductViews(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// MostViewed returns up to limit products ordered by view count, ties broken
// by ascending id so the ordering is stable across calls. The repository
// ranks over the whole catalog, not a products page.
func (s *CatalogService) MostViewed(ctx context.Context, limit int) ([]entity.DbProduct, error) {
	if limit <= 0 {
		limit = 4
	}
	return s.repo.MostViewedProducts(ctx, limit)
}

func (s *CatalogService) logAs(ctx context.Context, actor *entity.DbUser, action, details string) {
	var id uint
	var name string
	if actor != nil {
		id = actor.ID
		name = actor.Name
	}
	s.activity.Log(ctx, id, name, action, details)
}
