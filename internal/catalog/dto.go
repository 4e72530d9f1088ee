package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoppu-io/shoppu-backend/internal/cart"
	"github.com/shoppu-io/shoppu-backend/pkg/db/models"
)

// CategoryDTO is the transport shape for a category. ProductsCount is
// annotated by the list query.
type CategoryDTO struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ProductsCount int64     `json:"products_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PromotionDTO is the transport shape for a promotion.
type PromotionDTO struct {
	ID                 int64      `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	DiscountPercentage int        `json:"discount_percentage"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ProductDTO is the transport shape for a product. DiscountPrice reflects the
// best attached promotion; it equals UnitPrice when none apply.
type ProductDTO struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	UnitPrice     string    `json:"unit_price"`
	DiscountPrice string    `json:"discount_price"`
	OnStock       int       `json:"on_stock"`
	IsAvailable   bool      `json:"is_available"`
	Categories    []string  `json:"categories"`
	Promotions    []string  `json:"promotions"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Title       string
	Description string
}

// UpdateCategoryInput holds optional mutation values for a category.
type UpdateCategoryInput struct {
	Title       *string
	Description *string
}

// CreatePromotionInput holds the validated payload to create a promotion.
type CreatePromotionInput struct {
	Title              string
	Description        string
	StartDate          *time.Time
	EndDate            *time.Time
	DiscountPercentage int
}

// UpdatePromotionInput holds optional mutation values for a promotion.
type UpdatePromotionInput struct {
	Title              *string
	Description        *string
	StartDate          *time.Time
	EndDate            *time.Time
	DiscountPercentage *int
}

// CreateProductInput holds the validated payload to create a product.
// At least one category id is required.
type CreateProductInput struct {
	Title        string
	Description  string
	UnitPrice    decimal.Decimal
	OnStock      int
	IsAvailable  *bool
	CategoryIDs  []int64
	PromotionIDs []int64
}

// UpdateProductInput holds optional mutation values for a product. Slice
// fields replace the full association set when provided.
type UpdateProductInput struct {
	Title        *string
	Description  *string
	UnitPrice    *decimal.Decimal
	OnStock      *int
	IsAvailable  *bool
	CategoryIDs  *[]int64
	PromotionIDs *[]int64
}

// NewCategoryDTO maps a category row and its product count.
func NewCategoryDTO(category *models.Category, productsCount int64) *CategoryDTO {
	return &CategoryDTO{
		ID:            category.ID,
		Title:         category.Title,
		Description:   category.Description,
		ProductsCount: productsCount,
		CreatedAt:     category.CreatedAt,
		UpdatedAt:     category.UpdatedAt,
	}
}

// NewPromotionDTO maps a promotion row.
func NewPromotionDTO(promotion *models.Promotion) *PromotionDTO {
	return &PromotionDTO{
		ID:                 promotion.ID,
		Title:              promotion.Title,
		Description:        promotion.Description,
		StartDate:          promotion.StartDate,
		EndDate:            promotion.EndDate,
		DiscountPercentage: promotion.DiscountPercentage,
		CreatedAt:          promotion.CreatedAt,
		UpdatedAt:          promotion.UpdatedAt,
	}
}

// NewProductDTO maps a product row with preloaded categories and promotions.
func NewProductDTO(product *models.Product) *ProductDTO {
	best := cart.BestDiscountPercent(product.Promotions)

	categories := make([]string, 0, len(product.Categories))
	for _, category := range product.Categories {
		categories = append(categories, category.Title)
	}
	promotions := make([]string, 0, len(product.Promotions))
	for _, promotion := range product.Promotions {
		promotions = append(promotions, promotion.Title)
	}

	return &ProductDTO{
		ID:            product.ID,
		Title:         product.Title,
		Description:   product.Description,
		UnitPrice:     product.UnitPrice.Round(2).StringFixed(2),
		DiscountPrice: cart.DiscountedUnitPrice(product.UnitPrice, best).StringFixed(2),
		OnStock:       product.OnStock,
		IsAvailable:   product.IsAvailable,
		Categories:    categories,
		Promotions:    promotions,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}
