package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tiendax/internal/entity"
	"tiendax/internal/model"
)

// ListProducts returns catalog products, optionally filtered by category or
// keyword.
func (h *HTTPHandler) ListProducts(c *gin.Context) {
	var query entity.ProductQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.catalogService.List(ctx, &query)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProduct returns one product by id.
func (h *HTTPHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.catalogService.Get(ctx, id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// MostViewedProducts returns the products with the highest view counts.
func (h *HTTPHandler) MostViewedProducts(c *gin.Context) {
	limit := 4
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 50 {
			BadRequest(c, ErrCodeInvalidRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := h.catalogService.MostViewed(ctx, limit)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// RecordProductView bumps a product's view counter.
func (h *HTTPHandler) RecordProductView(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.catalogService.RecordView(ctx, id); err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Response{Success: true})
}

// CreateProduct adds a product to the catalog.
func (h *HTTPHandler) CreateProduct(c *gin.Context) {
	var req entity.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.catalogService.Create(ctx, CurrentUser(c), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct applies a partial update to a product.
func (h *HTTPHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.catalogService.Update(ctx, CurrentUser(c), id, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// SeedDemoData restores the demo catalog when the product table is empty.
func (h *HTTPHandler) SeedDemoData(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := model.SeedDemoProducts(ctx, h.repo); err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Response{Success: true, Message: "demo catalog seeded"})
}

// DeleteProduct removes a product from the catalog.
func (h *HTTPHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.catalogService.Delete(ctx, CurrentUser(c), id); err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Response{Success: true})
}
