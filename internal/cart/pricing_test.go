package cart

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoppu-io/shoppu-backend/pkg/db/models"
)

func TestBestDiscountPercent(t *testing.T) {
	promos := []models.Promotion{
		{Title: "spring", DiscountPercentage: 10},
		{Title: "clearance", DiscountPercentage: 25},
		{Title: "flash", DiscountPercentage: 5},
	}
	if got := BestDiscountPercent(promos); got != 25 {
		t.Fatalf("expected best discount 25, got %d", got)
	}
	if got := BestDiscountPercent(nil); got != 0 {
		t.Fatalf("expected 0 for no promotions, got %d", got)
	}
}

func TestDiscountedUnitPrice(t *testing.T) {
	tests := []struct {
		unit     string
		discount int
		want     string
	}{
		{unit: "19.99", discount: 0, want: "19.99"},
		{unit: "19.99", discount: 15, want: "16.99"},
		{unit: "10.00", discount: 25, want: "7.50"},
		{unit: "0.10", discount: 25, want: "0.08"}, // 0.075 rounds up
		{unit: "100.00", discount: 100, want: "0.00"},
	}
	for _, tt := range tests {
		unit := decimal.RequireFromString(tt.unit)
		got := DiscountedUnitPrice(unit, tt.discount)
		if got.StringFixed(2) != tt.want {
			t.Fatalf("unit %s discount %d: expected %s, got %s",
				tt.unit, tt.discount, tt.want, got.StringFixed(2))
		}
	}
}

func TestLineTotalRoundsOnce(t *testing.T) {
	tests := []struct {
		unit     string
		discount int
		quantity int
		want     string
	}{
		// 0.99 * 0.67 = 0.6633; rounding the unit first would give 0.66 * 100 = 66.00
		{unit: "0.99", discount: 33, quantity: 100, want: "66.33"},
		{unit: "19.99", discount: 15, quantity: 2, want: "33.98"},
		{unit: "2.50", discount: 0, quantity: 4, want: "10.00"},
		{unit: "10.00", discount: 100, quantity: 3, want: "0.00"},
		{unit: "1.00", discount: 0, quantity: 0, want: "0.00"},
	}
	for _, tt := range tests {
		unit := decimal.RequireFromString(tt.unit)
		got := LineTotal(unit, tt.discount, tt.quantity)
		if got.StringFixed(2) != tt.want {
			t.Fatalf("unit %s discount %d qty %d: expected %s, got %s",
				tt.unit, tt.discount, tt.quantity, tt.want, got.StringFixed(2))
		}
	}
}

func TestProjectCartView(t *testing.T) {
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	productA := &models.Product{
		ID:        11,
		Title:     "Desk Lamp",
		UnitPrice: decimal.RequireFromString("19.99"),
		Promotions: []models.Promotion{
			{Title: "spring", DiscountPercentage: 10},
			{Title: "clearance", DiscountPercentage: 15},
		},
	}
	productB := &models.Product{
		ID:        12,
		Title:     "Notebook",
		UnitPrice: decimal.RequireFromString("2.50"),
	}

	cart := &models.Cart{
		ID:        uuid.New(),
		CreatedAt: created,
		Items: []models.CartItem{
			{ProductID: 11, Product: productA, Quantity: 2},
			{ProductID: 12, Product: productB, Quantity: 4},
		},
	}

	view := ProjectCartView(cart)
	if len(view.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(view.Items))
	}

	lamp := view.Items[0]
	if lamp.ProductTitle != "Desk Lamp" {
		t.Fatalf("unexpected title %q", lamp.ProductTitle)
	}
	if lamp.ProductUnitPrice != "19.99" {
		t.Fatalf("unit price should be undiscounted, got %s", lamp.ProductUnitPrice)
	}
	// 19.99 * 0.85 * 2 = 33.983 -> 33.98
	if lamp.TotalPrice != "33.98" {
		t.Fatalf("expected lamp total 33.98, got %s", lamp.TotalPrice)
	}
	if len(lamp.ProductPromotions) != 2 || lamp.ProductPromotions[0] != "spring" {
		t.Fatalf("unexpected promotions %v", lamp.ProductPromotions)
	}

	notebook := view.Items[1]
	if notebook.TotalPrice != "10.00" {
		t.Fatalf("expected notebook total 10.00, got %s", notebook.TotalPrice)
	}

	if view.TotalPrice != "43.98" {
		t.Fatalf("expected cart total 43.98, got %s", view.TotalPrice)
	}
	if !view.CreatedAt.Equal(created) {
		t.Fatalf("created_at not preserved")
	}
}

func TestProjectCartViewHighQuantityDiscount(t *testing.T) {
	product := &models.Product{
		ID:        21,
		Title:     "Sticker",
		UnitPrice: decimal.RequireFromString("0.99"),
		Promotions: []models.Promotion{
			{Title: "bulk", DiscountPercentage: 33},
		},
	}
	cart := &models.Cart{
		ID:    uuid.New(),
		Items: []models.CartItem{{ProductID: 21, Product: product, Quantity: 100}},
	}

	view := ProjectCartView(cart)
	if view.Items[0].TotalPrice != "66.33" {
		t.Fatalf("expected line total 66.33, got %s", view.Items[0].TotalPrice)
	}
	if view.TotalPrice != "66.33" {
		t.Fatalf("expected cart total 66.33, got %s", view.TotalPrice)
	}
}

func TestProjectCartViewEmptyCart(t *testing.T) {
	view := ProjectCartView(&models.Cart{ID: uuid.New()})
	if len(view.Items) != 0 {
		t.Fatalf("expected no lines")
	}
	if view.TotalPrice != "0.00" {
		t.Fatalf("expected total 0.00, got %s", view.TotalPrice)
	}
}
