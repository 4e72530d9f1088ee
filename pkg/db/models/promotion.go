package models

import "time"

// Promotion applies a percentage discount to the products it is attached to.
// Start and end dates are informational; the pricing path applies the best
// attached discount regardless of the window.
type Promotion struct {
	ID                 int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Title              string     `gorm:"column:title;not null"`
	Description        string     `gorm:"column:description;not null;default:''"`
	StartDate          *time.Time `gorm:"column:start_date"`
	EndDate            *time.Time `gorm:"column:end_date"`
	DiscountPercentage int        `gorm:"column:discount_percentage;not null;default:0"`
	Products           []Product  `gorm:"many2many:product_promotions;"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
