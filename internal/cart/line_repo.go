package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoppu-io/shoppu-backend/pkg/db/models"
)

// CartLineRepository manages the one-row-per-(cart, product) line items.
type CartLineRepository struct {
	db *gorm.DB
}

// NewCartLineRepository binds the repository to the provided DB handle.
func NewCartLineRepository(db *gorm.DB) *CartLineRepository {
	return &CartLineRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *CartLineRepository) WithTx(tx *gorm.DB) *CartLineRepository {
	if tx == nil {
		return r
	}
	return &CartLineRepository{db: tx}
}

// Find returns the line for the (cart, product) pair, or gorm.ErrRecordNotFound.
func (r *CartLineRepository) Find(ctx context.Context, cartID uuid.UUID, productID int64) (*models.CartItem, error) {
	var line models.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// Create inserts a new line.
func (r *CartLineRepository) Create(ctx context.Context, line *models.CartItem) (*models.CartItem, error) {
	if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateQuantity sets the quantity of an existing line.
func (r *CartLineRepository) UpdateQuantity(ctx context.Context, lineID int64, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", lineID).
		Update("quantity", quantity).Error
}

// Delete removes the line by ID.
func (r *CartLineRepository) Delete(ctx context.Context, lineID int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", lineID).
		Delete(&models.CartItem{}).Error
}
