package cart

import (
	"github.com/shopspring/decimal"

	"github.com/shoppu-io/shoppu-backend/pkg/db/models"
)

var oneHundred = decimal.NewFromInt(100)

// BestDiscountPercent picks the highest discount percentage among the
// attached promotions. Promotion date windows are deliberately ignored;
// attaching a promotion is what activates it.
func BestDiscountPercent(promotions []models.Promotion) int {
	best := 0
	for _, promo := range promotions {
		if promo.DiscountPercentage > best {
			best = promo.DiscountPercentage
		}
	}
	return best
}

// DiscountedUnitPrice applies the discount percentage to the unit price and
// rounds half-up to two decimal places. This per-unit rounding feeds the
// catalog discount_price field only; cart line totals round once, at the end,
// via LineTotal.
func DiscountedUnitPrice(unitPrice decimal.Decimal, discountPercent int) decimal.Decimal {
	if discountPercent <= 0 {
		return unitPrice.Round(2)
	}
	remaining := oneHundred.Sub(decimal.NewFromInt(int64(discountPercent)))
	return unitPrice.Mul(remaining).Div(oneHundred).Round(2)
}

// LineTotal prices quantity units after the discount. The product of unit
// price, discount multiplier and quantity is rounded as a whole so repeated
// per-unit rounding error never accumulates across a line.
func LineTotal(unitPrice decimal.Decimal, discountPercent, quantity int) decimal.Decimal {
	qty := decimal.NewFromInt(int64(quantity))
	if discountPercent <= 0 {
		return unitPrice.Mul(qty).Round(2)
	}
	remaining := oneHundred.Sub(decimal.NewFromInt(int64(discountPercent)))
	return unitPrice.Mul(remaining).Div(oneHundred).Mul(qty).Round(2)
}

// ProjectCartView prices every line of the loaded cart and totals them.
// Lines require Product and Product.Promotions to be preloaded.
func ProjectCartView(cart *models.Cart) *CartView {
	view := &CartView{
		ID:          cart.ID,
		CreatedAt:   cart.CreatedAt,
		IsCompleted: cart.IsCompleted,
		Items:       make([]CartLineView, 0, len(cart.Items)),
		TotalPrice:  decimal.Zero.StringFixed(2),
	}

	total := decimal.Zero
	for _, item := range cart.Items {
		if item.Product == nil {
			continue
		}
		line := projectLine(item)
		total = total.Add(mustDecimal(line.TotalPrice))
		view.Items = append(view.Items, line)
	}

	view.TotalPrice = total.Round(2).StringFixed(2)
	return view
}

func projectLine(item models.CartItem) CartLineView {
	product := item.Product
	best := BestDiscountPercent(product.Promotions)
	lineTotal := LineTotal(product.UnitPrice, best, item.Quantity)

	promoTitles := make([]string, 0, len(product.Promotions))
	for _, promo := range product.Promotions {
		promoTitles = append(promoTitles, promo.Title)
	}

	return CartLineView{
		ProductID:         product.ID,
		ProductTitle:      product.Title,
		ProductUnitPrice:  product.UnitPrice.Round(2).StringFixed(2),
		ProductPromotions: promoTitles,
		Quantity:          item.Quantity,
		TotalPrice:        lineTotal.StringFixed(2),
	}
}

func mustDecimal(value string) decimal.Decimal {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return parsed
}
