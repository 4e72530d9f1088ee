package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoppu-io/shoppu-backend/pkg/db"
	"github.com/shoppu-io/shoppu-backend/pkg/db/models"
)

// openCartIndex is the partial unique index guaranteeing one open cart per user.
const openCartIndex = "uq_carts_one_open_per_user"

// CartRepository encapsulates cart header persistence.
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository binds the repository to the provided GORM handle.
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *CartRepository) WithTx(tx *gorm.DB) *CartRepository {
	if tx == nil {
		return r
	}
	return &CartRepository{db: tx}
}

// FindOpenByUser returns the user's open cart without items.
func (r *CartRepository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_completed = ?", userID, false).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindByIDWithItems loads a cart with its lines and the line products,
// including the promotions needed for pricing.
func (r *CartRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC, cart_items.id ASC")
		}).
		Preload("Items.Product").
		Preload("Items.Product.Promotions").
		First(&cart, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ResolveOpen returns the user's open cart, creating one when none exists.
// Concurrent creation converges on the partial unique index: the loser of
// the insert race re-reads the winner's row.
func (r *CartRepository) ResolveOpen(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := r.FindOpenByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
	}
	createErr := r.db.WithContext(ctx).Create(fresh).Error
	if createErr == nil {
		return fresh, nil
	}
	if db.IsUniqueViolation(createErr, openCartIndex) {
		return r.FindOpenByUser(ctx, userID)
	}
	return nil, createErr
}

// ListCompletedByUser returns the user's closed carts, newest first.
func (r *CartRepository) ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]models.Cart, error) {
	var carts []models.Cart
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Order("created_at DESC").
		Find(&carts).Error
	return carts, err
}

// MarkCompleted closes the cart so a fresh open cart can be resolved.
func (r *CartRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", id).
		Update("is_completed", true).Error
}
