package cart

import (
	"time"

	"github.com/google/uuid"
)

// MutationInput is the validated payload of a cart mutation.
type MutationInput struct {
	ProductID int64
	Quantity  int
}

// CartLineView is the priced projection of a single cart line.
type CartLineView struct {
	ProductID         int64    `json:"product_id"`
	ProductTitle      string   `json:"product_title"`
	ProductUnitPrice  string   `json:"product_unit_price"`
	ProductPromotions []string `json:"product_promotions"`
	Quantity          int      `json:"quantity"`
	TotalPrice        string   `json:"total_price"`
}

// CartView is the priced projection of a whole cart.
type CartView struct {
	ID          uuid.UUID      `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	IsCompleted bool           `json:"is_completed"`
	Items       []CartLineView `json:"cart_items"`
	TotalPrice  string         `json:"cart_total_cost"`
}

// CartSummary is a history entry for a closed cart.
type CartSummary struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	IsCompleted bool      `json:"is_completed"`
}
