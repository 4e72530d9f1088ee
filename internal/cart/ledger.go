package cart

import (
	pkgerrors "github.com/shoppu-io/shoppu-backend/pkg/errors"
)

// StockAction describes how a cart line must change to honor a quantity request.
type StockAction string

const (
	StockActionNone   StockAction = "none"
	StockActionCreate StockAction = "create"
	StockActionUpdate StockAction = "update"
	StockActionDelete StockAction = "delete"
)

// StockDecision is the outcome of reconciling a requested line quantity
// against the product's shared stock pool.
type StockDecision struct {
	Action   StockAction
	LineQty  int
	NewStock int
}

// DecideStock reconciles a requested quantity against the product stock,
// crediting back whatever the cart already holds. The invariant is that
// stock plus the sum of all line quantities is conserved and stock never
// goes negative.
//
// currentStock is the product's on_stock value, existingQty the quantity
// already held by this cart's line (0 when no line exists).
func DecideStock(currentStock, existingQty, requestedQty int) (StockDecision, error) {
	if currentStock < 0 {
		return StockDecision{}, pkgerrors.New(pkgerrors.CodeInternal, "product stock is negative")
	}
	if existingQty < 0 {
		return StockDecision{}, pkgerrors.New(pkgerrors.CodeInternal, "cart line quantity is negative")
	}
	if requestedQty < 0 {
		return StockDecision{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	// The cart's current holding is returned to the pool before the new
	// request draws from it.
	effectiveAvailable := currentStock + existingQty

	if requestedQty > effectiveAvailable {
		return StockDecision{}, pkgerrors.
			New(pkgerrors.CodeInsufficientStock, "requested quantity exceeds available stock").
			WithDetails(map[string]any{
				"requested": requestedQty,
				"available": effectiveAvailable,
			})
	}

	decision := StockDecision{
		LineQty:  requestedQty,
		NewStock: effectiveAvailable - requestedQty,
	}

	switch {
	case requestedQty == 0 && existingQty == 0:
		decision.Action = StockActionNone
	case requestedQty == 0:
		decision.Action = StockActionDelete
	case existingQty == 0:
		decision.Action = StockActionCreate
	default:
		decision.Action = StockActionUpdate
	}

	return decision, nil
}
