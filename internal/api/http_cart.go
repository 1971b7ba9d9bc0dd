package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiendax/internal/entity"
)

// GetCart returns the signed-in user's cart with totals.
func (h *HTTPHandler) GetCart(c *gin.Context) {
	user := CurrentUser(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	summary, err := h.cartService.Summary(ctx, user.ID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// AddCartItem puts a product in the cart, merging with an existing line.
func (h *HTTPHandler) AddCartItem(c *gin.Context) {
	user := CurrentUser(c)

	var req entity.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.catalogService.Get(ctx, req.ProductID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	if err := h.cartService.AddItem(ctx, user.ID, product, req.Quantity); err != nil {
		ServiceError(c, err)
		return
	}

	summary, err := h.cartService.Summary(ctx, user.ID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// UpdateCartItem sets a line's quantity; zero or less removes the line.
func (h *HTTPHandler) UpdateCartItem(c *gin.Context) {
	user := CurrentUser(c)
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.cartService.SetQuantity(ctx, user.ID, productID, req.Quantity); err != nil {
		ServiceError(c, err)
		return
	}

	summary, err := h.cartService.Summary(ctx, user.ID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DeleteCartItem removes one line from the cart.
func (h *HTTPHandler) DeleteCartItem(c *gin.Context) {
	user := CurrentUser(c)
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.cartService.RemoveItem(ctx, user.ID, productID); err != nil {
		ServiceError(c, err)
		return
	}

	summary, err := h.cartService.Summary(ctx, user.ID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ClearCart empties the cart.
func (h *HTTPHandler) ClearCart(c *gin.Context) {
	user := CurrentUser(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.cartService.Clear(ctx, user.ID); err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Response{Success: true})
}

// Checkout snapshots the cart into an order and returns the WhatsApp
// handoff link.
func (h *HTTPHandler) Checkout(c *gin.Context) {
	user := CurrentUser(c)

	var req entity.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.cartService.Checkout(ctx, user, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListOrders returns stored orders. Admins see every order; customers only
// their own.
func (h *HTTPHandler) ListOrders(c *gin.Context) {
	user := CurrentUser(c)

	var query entity.OrderQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	if !user.IsAdmin() {
		query.UserID = user.ID
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.cartService.ListOrders(ctx, &query)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
