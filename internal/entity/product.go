package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ProductColor is a shade swatch embedded in a product. Color ids are only
// unique within the owning product's color list.
type ProductColor struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ColorCode string `json:"colorCode"`
}

// ProductColors stores a color list as a JSON column.
type ProductColors []ProductColor

// Value implements driver.Valuer.
func (c ProductColors) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal([]ProductColor(c))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (c *ProductColors) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			*c = ProductColors{}
			return nil
		}
		return json.Unmarshal(v, (*[]ProductColor)(c))
	case string:
		if v == "" {
			*c = ProductColors{}
			return nil
		}
		return json.Unmarshal([]byte(v), (*[]ProductColor)(c))
	default:
		return fmt.Errorf("unsupported type for ProductColors: %T", value)
	}
}

// DbProduct represents a catalog product. Prices and discounts follow the
// storefront's rules: Discount is a percentage, zero meaning none.
type DbProduct struct {
	ID          uint          `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Name        string        `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string        `gorm:"column:description;type:text" json:"description"`
	Price       float64       `gorm:"column:price;not null" json:"price"`
	ImageURL    string        `gorm:"column:image_url;type:varchar(1024)" json:"imageUrl"`
	Category    string        `gorm:"column:category;type:varchar(100);index" json:"category"`
	Shade       string        `gorm:"column:shade;type:varchar(100)" json:"shade,omitempty"`
	Discount    float64       `gorm:"column:discount;not null;default:0" json:"discount,omitempty"`
	Colors      ProductColors `gorm:"column:colors;type:text" json:"colors"`
	Views       uint64        `gorm:"column:views;not null;default:0" json:"views"`
}

// TableName overrides default pluralised name.
func (DbProduct) TableName() string {
	return "products"
}

// EffectivePrice returns the unit price with any discount applied.
func (p *DbProduct) EffectivePrice() float64 {
	if p == nil {
		return 0
	}
	if p.Discount > 0 {
		return p.Price * (1 - p.Discount/100)
	}
	return p.Price
}

// ProductUpdates is a partial set of column updates for a product.
type ProductUpdates = map[string]interface{}

type ProductCreateRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Price       float64        `json:"price" binding:"required,gt=0"`
	ImageURL    string         `json:"imageUrl"`
	Category    string         `json:"category" binding:"required"`
	Shade       string         `json:"shade"`
	Discount    float64        `json:"discount"`
	Colors      []ProductColor `json:"colors"`
}

type ProductUpdateRequest struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Price       *float64        `json:"price,omitempty"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	Category    *string         `json:"category,omitempty"`
	Shade       *string         `json:"shade,omitempty"`
	Discount    *float64        `json:"discount,omitempty"`
	Colors      *[]ProductColor `json:"colors,omitempty"`
}

type ProductQuery struct {
	BaseParams
	Category string `json:"category" form:"category" query:"category"`
	Keyword  string `json:"keyword" form:"keyword" query:"keyword"`
}

type ProductListResponse struct {
	Products []DbProduct `json:"products"`
	Meta     *Meta       `json:"meta"`
}
