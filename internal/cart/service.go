package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoppu-io/shoppu-backend/pkg/config"
	"github.com/shoppu-io/shoppu-backend/pkg/db"
	"github.com/shoppu-io/shoppu-backend/pkg/db/models"
	pkgerrors "github.com/shoppu-io/shoppu-backend/pkg/errors"
)

// Service exposes the cart operations of the storefront.
type Service interface {
	ApplyCartMutation(ctx context.Context, userID uuid.UUID, input MutationInput) (*CartView, error)
	GetCurrentCart(ctx context.Context, userID uuid.UUID) (*CartView, error)
	ListCompletedCarts(ctx context.Context, userID uuid.UUID) ([]CartSummary, error)
}

type service struct {
	carts    *CartRepository
	lines    *CartLineRepository
	stock    *ProductStockRepository
	dbClient *db.Client
	cartCfg  config.CartConfig
}

// NewService constructs the cart service.
func NewService(carts *CartRepository, lines *CartLineRepository, stock *ProductStockRepository, dbClient *db.Client, cartCfg config.CartConfig) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if lines == nil {
		return nil, fmt.Errorf("cart line repository required")
	}
	if stock == nil {
		return nil, fmt.Errorf("product stock repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		carts:    carts,
		lines:    lines,
		stock:    stock,
		dbClient: dbClient,
		cartCfg:  cartCfg,
	}, nil
}

// ApplyCartMutation sets the quantity of one product line in the user's open
// cart, moving the difference through the product's shared stock pool. The
// whole mutation runs in one transaction; the stock write is guarded by the
// value read at decision time so concurrent mutations fail fast with a
// retryable conflict instead of overselling.
func (s *service) ApplyCartMutation(ctx context.Context, userID uuid.UUID, input MutationInput) (*CartView, error) {
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id must be positive")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	if max := s.cartCfg.MaxLineQuantity; max > 0 && input.Quantity > max {
		return nil, pkgerrors.
			New(pkgerrors.CodeValidation, "quantity exceeds the per-line maximum").
			WithDetails(map[string]any{"max_quantity": max})
	}

	var cartID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		lines := s.lines.WithTx(tx)
		stock := s.stock.WithTx(tx)

		cart, err := carts.ResolveOpen(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve open cart")
		}
		cartID = cart.ID

		product, err := stock.FindProduct(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}
		if !product.IsAvailable {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}

		existingQty := 0
		var line *models.CartItem
		line, err = lines.Find(ctx, cart.ID, product.ID)
		switch {
		case err == nil:
			existingQty = line.Quantity
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = nil
		default:
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart line")
		}

		decision, err := DecideStock(product.OnStock, existingQty, input.Quantity)
		if err != nil {
			return err
		}

		if decision.NewStock != product.OnStock {
			swapped, err := stock.CompareAndSwapStock(ctx, product.ID, product.OnStock, decision.NewStock)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: write product stock")
			}
			if !swapped {
				return pkgerrors.New(pkgerrors.CodeConflict, "product stock changed concurrently")
			}
		}

		switch decision.Action {
		case StockActionCreate:
			_, err = lines.Create(ctx, &models.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  decision.LineQty,
			})
		case StockActionUpdate:
			err = lines.UpdateQuantity(ctx, line.ID, decision.LineQty)
		case StockActionDelete:
			err = lines.Delete(ctx, line.ID)
		case StockActionNone:
			// nothing to persist
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: write cart line")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply cart mutation")
	}

	return s.loadView(ctx, cartID)
}

// GetCurrentCart returns the priced view of the user's open cart, creating
// an empty cart when the user has none.
func (s *service) GetCurrentCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	cart, err := s.carts.ResolveOpen(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve open cart")
	}
	return s.loadView(ctx, cart.ID)
}

// ListCompletedCarts returns the user's closed carts, newest first.
func (s *service) ListCompletedCarts(ctx context.Context, userID uuid.UUID) ([]CartSummary, error) {
	carts, err := s.carts.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list completed carts")
	}
	summaries := make([]CartSummary, 0, len(carts))
	for _, cart := range carts {
		summaries = append(summaries, CartSummary{
			ID:          cart.ID,
			CreatedAt:   cart.CreatedAt,
			IsCompleted: cart.IsCompleted,
		})
	}
	return summaries, nil
}

func (s *service) loadView(ctx context.Context, cartID uuid.UUID) (*CartView, error) {
	cart, err := s.carts.FindByIDWithItems(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart view")
	}
	return ProjectCartView(cart), nil
}
