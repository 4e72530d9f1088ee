package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a single product line within a cart. One row per
// (cart_id, product_id), quantity always positive.
type CartItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CartID    uuid.UUID `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:uq_cart_items_cart_product"`
	ProductID int64     `gorm:"column:product_id;not null;uniqueIndex:uq_cart_items_cart_product"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	Quantity  int       `gorm:"column:quantity;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
