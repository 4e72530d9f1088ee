package models

import "time"

// Category groups products for storefront browsing.
type Category struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null;default:''"`
	Products    []Product `gorm:"many2many:product_categories;"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
