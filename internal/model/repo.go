package model

import (
	"context"

	"tiendax/internal/entity"
)

// Repository is the persistence port for the storefront. Business logic only
// talks to this interface so a different data store can be substituted
// without touching the services.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error)
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)

	// Activity log
	CreateActivity(ctx context.Context, activity *entity.DbActivity) error
	ListActivities(ctx context.Context, limit int) ([]entity.DbActivity, error)
	CountActivities(ctx context.Context) (int64, error)
	TrimActivities(ctx context.Context, keep int) error

	// Products
	CreateProduct(ctx context.Context, product *entity.DbProduct) error
	UpdateProduct(ctx context.Context, id uint, updates entity.ProductUpdates) error
	DeleteProduct(ctx context.Context, id uint) error
	GetProduct(ctx context.Context, id uint) (*entity.DbProduct, error)
	ListProducts(ctx context.Context, params *entity.ProductQuery) ([]entity.DbProduct, *entity.Meta, error)
	MaxProductID(ctx context.Context) (uint, error)
	IncrementProductViews(ctx context.Context, id uint) error
	MostViewedProducts(ctx context.Context, limit int) ([]entity.DbProduct, error)

	// Cart
	ListCartItems(ctx context.Context, userID uint) ([]entity.DbCartItem, error)
	GetCartItem(ctx context.Context, userID, productID uint) (*entity.DbCartItem, error)
	CreateCartItem(ctx context.Context, item *entity.DbCartItem) error
	UpdateCartItemQuantity(ctx context.Context, userID, productID uint, quantity int) error
	DeleteCartItem(ctx context.Context, userID, productID uint) error
	ClearCart(ctx context.Context, userID uint) error

	// Orders
	CreateOrder(ctx context.Context, order *entity.DbOrder) error
	ListOrders(ctx context.Context, params *entity.OrderQuery) ([]entity.DbOrder, *entity.Meta, error)

	// One-time auth tokens
	CreateAuthToken(ctx context.Context, token *entity.DbAuthToken) error
	GetAuthTokenByHash(ctx context.Context, hash string) (*entity.DbAuthToken, error)
	ConsumeAuthToken(ctx context.Context, id uint) error
	DeleteExpiredAuthTokens(ctx context.Context) error

	// Email configuration (single row)
	GetEmailConfig(ctx context.Context) (*entity.DbEmailConfig, error)
	SaveEmailConfig(ctx context.Context, cfg *entity.DbEmailConfig) error
}
