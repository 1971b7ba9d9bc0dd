package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"tiendax/internal/entity"
)

// fakeRepo is an in-memory Repository used by the service tests.
type fakeRepo struct {
	users      map[uint]*entity.DbUser
	activities []entity.DbActivity
	products   map[uint]*entity.DbProduct
	cartItems  []entity.DbCartItem
	orders     []entity.DbOrder
	tokens     map[uint]*entity.DbAuthToken
	emailCfg   *entity.DbEmailConfig

	updateUserErr error

	nextUserID     uint
	nextActivityID uint
	nextCartID     uint
	nextOrderID    uint
	nextTokenID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    map[uint]*entity.DbUser{},
		products: map[uint]*entity.DbProduct{},
		tokens:   map[uint]*entity.DbAuthToken{},
	}
}

func (f *fakeRepo) CreateUser(_ context.Context, user *entity.DbUser) error {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextUserID++
	user.ID = f.nextUserID
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeRepo) UpdateUser(_ context.Context, id uint, updates entity.UserUpdates) error {
	if f.updateUserErr != nil {
		return f.updateUserErr
	}
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for col, val := range updates {
		switch col {
		case "name":
			user.Name = val.(string)
		case "role":
			user.Role = val.(string)
		case "password_hash":
			user.PasswordHash = val.(string)
		case "email_verified":
			user.EmailVerified = val.(bool)
		}
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*entity.DbUser, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uint) (*entity.DbUser, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) ListUsers(_ context.Context, _ *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error) {
	out := make([]entity.DbUser, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, &entity.Meta{Total: int64(len(out)), Page: 1, PageSize: int64(len(out))}, nil
}

func (f *fakeRepo) DeleteUser(_ context.Context, id uint) error {
	if _, ok := f.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) CountUsers(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeRepo) CreateActivity(_ context.Context, activity *entity.DbActivity) error {
	f.nextActivityID++
	activity.ID = f.nextActivityID
	activity.CreatedAt = time.Now()
	f.activities = append(f.activities, *activity)
	return nil
}

func (f *fakeRepo) ListActivities(_ context.Context, limit int) ([]entity.DbActivity, error) {
	out := make([]entity.DbActivity, len(f.activities))
	copy(out, f.activities)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) CountActivities(_ context.Context) (int64, error) {
	return int64(len(f.activities)), nil
}

func (f *fakeRepo) TrimActivities(_ context.Context, keep int) error {
	if len(f.activities) <= keep {
		return nil
	}
	sort.Slice(f.activities, func(i, j int) bool { return f.activities[i].ID > f.activities[j].ID })
	f.activities = f.activities[:keep]
	return nil
}

func (f *fakeRepo) CreateProduct(_ context.Context, product *entity.DbProduct) error {
	if _, ok := f.products[product.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	product.CreatedAt = time.Now()
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeRepo) UpdateProduct(_ context.Context, id uint, updates entity.ProductUpdates) error {
	product, ok := f.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for col, val := range updates {
		switch col {
		case "name":
			product.Name = val.(string)
		case "description":
			product.Description = val.(string)
		case "price":
			product.Price = val.(float64)
		case "image_url":
			product.ImageURL = val.(string)
		case "category":
			product.Category = val.(string)
		case "shade":
			product.Shade = val.(string)
		case "discount":
			product.Discount = val.(float64)
		case "colors":
			product.Colors = val.(entity.ProductColors)
		}
	}
	product.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRepo) DeleteProduct(_ context.Context, id uint) error {
	if _, ok := f.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeRepo) GetProduct(_ context.Context, id uint) (*entity.DbProduct, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeRepo) ListProducts(_ context.Context, _ *entity.ProductQuery) ([]entity.DbProduct, *entity.Meta, error) {
	out := make([]entity.DbProduct, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, &entity.Meta{Total: int64(len(out)), Page: 1, PageSize: int64(len(out))}, nil
}

func (f *fakeRepo) MaxProductID(_ context.Context) (uint, error) {
	var max uint
	for id := range f.products {
		if id > max {
			max = id
		}
	}
	return max, nil
}

func (f *fakeRepo) IncrementProductViews(_ context.Context, id uint) error {
	p, ok := f.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Views++
	return nil
}

func (f *fakeRepo) MostViewedProducts(_ context.Context, limit int) ([]entity.DbProduct, error) {
	out := make([]entity.DbProduct, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Views != out[j].Views {
			return out[i].Views > out[j].Views
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) ListCartItems(_ context.Context, userID uint) ([]entity.DbCartItem, error) {
	var out []entity.DbCartItem
	for _, item := range f.cartItems {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) GetCartItem(_ context.Context, userID, productID uint) (*entity.DbCartItem, error) {
	for i := range f.cartItems {
		if f.cartItems[i].UserID == userID && f.cartItems[i].ProductID == productID {
			copied := f.cartItems[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateCartItem(_ context.Context, item *entity.DbCartItem) error {
	f.nextCartID++
	item.ID = f.nextCartID
	item.CreatedAt = time.Now()
	f.cartItems = append(f.cartItems, *item)
	return nil
}

func (f *fakeRepo) UpdateCartItemQuantity(_ context.Context, userID, productID uint, quantity int) error {
	for i := range f.cartItems {
		if f.cartItems[i].UserID == userID && f.cartItems[i].ProductID == productID {
			f.cartItems[i].Quantity = quantity
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) DeleteCartItem(_ context.Context, userID, productID uint) error {
	for i := range f.cartItems {
		if f.cartItems[i].UserID == userID && f.cartItems[i].ProductID == productID {
			f.cartItems = append(f.cartItems[:i], f.cartItems[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) ClearCart(_ context.Context, userID uint) error {
	kept := f.cartItems[:0]
	for _, item := range f.cartItems {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	f.cartItems = kept
	return nil
}

func (f *fakeRepo) CreateOrder(_ context.Context, order *entity.DbOrder) error {
	f.nextOrderID++
	order.ID = f.nextOrderID
	order.CreatedAt = time.Now()
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeRepo) ListOrders(_ context.Context, params *entity.OrderQuery) ([]entity.DbOrder, *entity.Meta, error) {
	var out []entity.DbOrder
	for _, o := range f.orders {
		if params != nil && params.UserID != 0 && o.UserID != params.UserID {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, &entity.Meta{Total: int64(len(out)), Page: 1, PageSize: int64(len(out))}, nil
}

func (f *fakeRepo) CreateAuthToken(_ context.Context, token *entity.DbAuthToken) error {
	for _, t := range f.tokens {
		if t.TokenHash == token.TokenHash {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextTokenID++
	token.ID = f.nextTokenID
	token.CreatedAt = time.Now()
	copied := *token
	f.tokens[token.ID] = &copied
	return nil
}

func (f *fakeRepo) GetAuthTokenByHash(_ context.Context, hash string) (*entity.DbAuthToken, error) {
	for _, t := range f.tokens {
		if t.TokenHash == hash {
			copied := *t
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ConsumeAuthToken(_ context.Context, id uint) error {
	t, ok := f.tokens[id]
	if !ok || t.ConsumedAt != nil {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	t.ConsumedAt = &now
	return nil
}

func (f *fakeRepo) DeleteExpiredAuthTokens(_ context.Context) error {
	now := time.Now()
	for id, t := range f.tokens {
		if t.ExpiresAt.Before(now) {
			delete(f.tokens, id)
		}
	}
	return nil
}

func (f *fakeRepo) GetEmailConfig(_ context.Context) (*entity.DbEmailConfig, error) {
	if f.emailCfg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *f.emailCfg
	return &copied, nil
}

func (f *fakeRepo) SaveEmailConfig(_ context.Context, cfg *entity.DbEmailConfig) error {
	copied := *cfg
	copied.ID = 1
	f.emailCfg = &copied
	return nil
}
