package entity

import "time"

// DbCartItem is one cart line. There is at most one line per (user, product);
// adding the same product again increments the quantity instead.
type DbCartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"column:user_id;uniqueIndex:idx_cart_user_product;not null" json:"user_id"`
	ProductID uint      `gorm:"column:product_id;uniqueIndex:idx_cart_user_product;not null" json:"product_id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	UnitPrice float64   `gorm:"column:unit_price;not null" json:"unit_price"`
	ImageURL  string    `gorm:"column:image_url;type:varchar(1024)" json:"imageUrl"`
	Shade     string    `gorm:"column:shade;type:varchar(100)" json:"shade,omitempty"`
	Discount  float64   `gorm:"column:discount;not null;default:0" json:"discount,omitempty"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
}

// TableName overrides default pluralised name.
func (DbCartItem) TableName() string {
	return "cart_items"
}

// EffectiveUnitPrice returns the unit price with any discount applied.
func (i *DbCartItem) EffectiveUnitPrice() float64 {
	if i == nil {
		return 0
	}
	if i.Discount > 0 {
		return i.UnitPrice * (1 - i.Discount/100)
	}
	return i.UnitPrice
}

// LineTotal returns the discounted price multiplied by the quantity.
func (i *DbCartItem) LineTotal() float64 {
	if i == nil {
		return 0
	}
	return i.EffectiveUnitPrice() * float64(i.Quantity)
}

type CartAddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartSummary is the cart with its derived totals, recomputed on every read.
type CartSummary struct {
	Items      []DbCartItem `json:"items"`
	TotalItems int          `json:"total_items"`
	Subtotal   float64      `json:"subtotal"`
	Shipping   float64      `json:"shipping"`
	Total      float64      `json:"total"`
}

type CheckoutRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
}
