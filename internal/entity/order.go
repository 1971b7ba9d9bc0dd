package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	OrderStatusSubmitted = "submitted"
)

// OrderLine is an immutable snapshot of a cart line at checkout time.
type OrderLine struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Shade     string  `json:"shade,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// OrderLines stores the line snapshot as a JSON column.
type OrderLines []OrderLine

// Value implements driver.Valuer.
func (l OrderLines) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal([]OrderLine(l))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (l *OrderLines) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			*l = OrderLines{}
			return nil
		}
		return json.Unmarshal(v, (*[]OrderLine)(l))
	case string:
		if v == "" {
			*l = OrderLines{}
			return nil
		}
		return json.Unmarshal([]byte(v), (*[]OrderLine)(l))
	default:
		return fmt.Errorf("unsupported type for OrderLines: %T", value)
	}
}

// DbOrder is the persisted result of a checkout. Fulfilment happens over
// WhatsApp, so the order also carries the rendered handoff message.
type DbOrder struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	UserID        uint       `gorm:"column:user_id;index;not null" json:"user_id"`
	CustomerName  string     `gorm:"column:customer_name;type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string     `gorm:"column:customer_phone;type:varchar(50)" json:"customer_phone,omitempty"`
	Lines         OrderLines `gorm:"column:lines;type:text" json:"lines"`
	Subtotal      float64    `gorm:"column:subtotal;not null" json:"subtotal"`
	Shipping      float64    `gorm:"column:shipping;not null" json:"shipping"`
	Total         float64    `gorm:"column:total;not null" json:"total"`
	Status        string     `gorm:"column:status;type:varchar(50);index;not null" json:"status"`
}

// TableName overrides default pluralised name.
func (DbOrder) TableName() string {
	return "orders"
}

// CheckoutResponse returns the stored order together with the messaging
// handoff the client opens to submit it.
type CheckoutResponse struct {
	Order       DbOrder `json:"order"`
	Message     string  `json:"message"`
	WhatsAppURL string  `json:"whatsapp_url"`
}

type OrderListResponse struct {
	Orders []DbOrder `json:"orders"`
	Meta   *Meta     `json:"meta"`
}

type OrderQuery struct {
	BaseParams
	UserID uint `json:"user_id" form:"user_id" query:"user_id"`
}
