package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is a user-scoped container of line items. At most one open
// (is_completed = false) cart exists per user, enforced by a partial unique
// index.
type Cart struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null"`
	IsCompleted bool       `gorm:"column:is_completed;not null;default:false"`
	Items       []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
