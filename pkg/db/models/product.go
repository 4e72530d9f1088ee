package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a storefront listing whose OnStock column is the shared
// stock pool drawn down by every open cart.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string          `gorm:"column:title;not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(8,2);not null"`
	OnStock     int             `gorm:"column:on_stock;not null;default:0"`
	IsAvailable bool            `gorm:"column:is_available;not null;default:true"`
	Categories  []Category      `gorm:"many2many:product_categories;"`
	Promotions  []Promotion     `gorm:"many2many:product_promotions;"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
