package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shoppu-io/shoppu-backend/pkg/db"
	"github.com/shoppu-io/shoppu-backend/pkg/db/models"
	pkgerrors "github.com/shoppu-io/shoppu-backend/pkg/errors"
)

// Service exposes catalog management for categories, products, and promotions.
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	GetCategory(ctx context.Context, id int64) (*CategoryDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	UpdateCategory(ctx context.Context, id int64, input UpdateCategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreatePromotion(ctx context.Context, input CreatePromotionInput) (*PromotionDTO, error)
	GetPromotion(ctx context.Context, id int64) (*PromotionDTO, error)
	ListPromotions(ctx context.Context) ([]PromotionDTO, error)
	UpdatePromotion(ctx context.Context, id int64, input UpdatePromotionInput) (*PromotionDTO, error)
	DeletePromotion(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateCategory creates a category from the validated input.
func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	category, err := s.repo.CreateCategory(ctx, &models.Category{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	return NewCategoryDTO(category, 0), nil
}

// GetCategory loads a single category with its product count.
func (s *service) GetCategory(ctx context.Context, id int64) (*CategoryDTO, error) {
	row, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return NewCategoryDTO(&row.Category, row.ProductsCount), nil
}

// ListCategories returns every category annotated with products_count.
func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	dtos := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewCategoryDTO(&rows[i].Category, rows[i].ProductsCount))
	}
	return dtos, nil
}

// UpdateCategory applies the provided fields to an existing category.
func (s *service) UpdateCategory(ctx context.Context, id int64, input UpdateCategoryInput) (*CategoryDTO, error) {
	row, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}

	category := row.Category
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		category.Title = title
	}
	if input.Description != nil {
		category.Description = strings.TrimSpace(*input.Description)
	}

	updated, err := s.repo.UpdateCategory(ctx, &category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}
	return NewCategoryDTO(updated, row.ProductsCount), nil
}

// DeleteCategory removes a category along with its product associations.
func (s *service) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.repo.FindCategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
	}
	return nil
}

// CreatePromotion creates a promotion from the validated input.
func (s *service) CreatePromotion(ctx context.Context, input CreatePromotionInput) (*PromotionDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if err := validateDiscountPercentage(input.DiscountPercentage); err != nil {
		return nil, err
	}
	if err := validateDateWindow(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	promotion, err := s.repo.CreatePromotion(ctx, &models.Promotion{
		Title:              title,
		Description:        strings.TrimSpace(input.Description),
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		DiscountPercentage: input.DiscountPercentage,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert promotion")
	}
	return NewPromotionDTO(promotion), nil
}

// GetPromotion loads a single promotion.
func (s *service) GetPromotion(ctx context.Context, id int64) (*PromotionDTO, error) {
	promotion, err := s.repo.FindPromotionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load promotion")
	}
	return NewPromotionDTO(promotion), nil
}

// ListPromotions returns every promotion.
func (s *service) ListPromotions(ctx context.Context) ([]PromotionDTO, error) {
	rows, err := s.repo.ListPromotions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list promotions")
	}
	dtos := make([]PromotionDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewPromotionDTO(&rows[i]))
	}
	return dtos, nil
}

// UpdatePromotion applies the provided fields to an existing promotion.
func (s *service) UpdatePromotion(ctx context.Context, id int64, input UpdatePromotionInput) (*PromotionDTO, error) {
	promotion, err := s.repo.FindPromotionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load promotion")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		promotion.Title = title
	}
	if input.Description != nil {
		promotion.Description = strings.TrimSpace(*input.Description)
	}
	if input.StartDate != nil {
		promotion.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		promotion.EndDate = input.EndDate
	}
	if input.DiscountPercentage != nil {
		if err := validateDiscountPercentage(*input.DiscountPercentage); err != nil {
			return nil, err
		}
		promotion.DiscountPercentage = *input.DiscountPercentage
	}
	if err := validateDateWindow(promotion.StartDate, promotion.EndDate); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdatePromotion(ctx, promotion)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update promotion")
	}
	return NewPromotionDTO(updated), nil
}

// DeletePromotion removes a promotion along with its product associations.
func (s *service) DeletePromotion(ctx context.Context, id int64) error {
	if _, err := s.repo.FindPromotionByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load promotion")
	}
	if err := s.repo.DeletePromotion(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete promotion")
	}
	return nil
}

// CreateProduct creates a product with its category and promotion sets.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.UnitPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit_price must be non-negative")
	}
	if input.OnStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "on_stock must be non-negative")
	}
	if len(input.CategoryIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one category is required")
	}

	isAvailable := true
	if input.IsAvailable != nil {
		isAvailable = *input.IsAvailable
	}

	var createdID int64
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		categories, err := s.resolveCategories(ctx, txRepo, input.CategoryIDs)
		if err != nil {
			return err
		}
		promotions, err := s.resolvePromotions(ctx, txRepo, input.PromotionIDs)
		if err != nil {
			return err
		}

		product := &models.Product{
			Title:       title,
			Description: strings.TrimSpace(input.Description),
			UnitPrice:   input.UnitPrice.Round(2),
			OnStock:     input.OnStock,
			IsAvailable: isAvailable,
		}
		if _, err := txRepo.CreateProduct(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		if err := txRepo.ReplaceProductCategories(ctx, product, categories); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: attach categories")
		}
		if len(promotions) > 0 {
			if err := txRepo.ReplaceProductPromotions(ctx, product, promotions); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: attach promotions")
			}
		}
		createdID = product.ID
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.GetProduct(ctx, createdID)
}

// GetProduct loads a product with priced output.
func (s *service) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return NewProductDTO(product), nil
}

// ListProducts returns every product with priced output.
func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewProductDTO(&rows[i]))
	}
	return dtos, nil
}

// UpdateProduct applies the provided fields and association sets.
func (s *service) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error) {
	if input.UnitPrice != nil && input.UnitPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit_price must be non-negative")
	}
	if input.OnStock != nil && *input.OnStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "on_stock must be non-negative")
	}
	if input.CategoryIDs != nil && len(*input.CategoryIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one category is required")
	}

	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		applyUpdateToProduct(product, input)
		if _, err := txRepo.UpdateProduct(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}

		if input.CategoryIDs != nil {
			categories, err := s.resolveCategories(ctx, txRepo, *input.CategoryIDs)
			if err != nil {
				return err
			}
			if err := txRepo.ReplaceProductCategories(ctx, product, categories); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace categories")
			}
		}
		if input.PromotionIDs != nil {
			promotions, err := s.resolvePromotions(ctx, txRepo, *input.PromotionIDs)
			if err != nil {
				return err
			}
			if err := txRepo.ReplaceProductPromotions(ctx, product, promotions); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace promotions")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product along with its association rows.
func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.repo.FindProductByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func (s *service) resolveCategories(ctx context.Context, repo *Repository, ids []int64) ([]models.Category, error) {
	ids = dedupeIDs(ids)
	rows, err := repo.FindCategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load categories")
	}
	if len(rows) != len(ids) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "one or more categories do not exist")
	}
	return rows, nil
}

func (s *service) resolvePromotions(ctx context.Context, repo *Repository, ids []int64) ([]models.Promotion, error) {
	ids = dedupeIDs(ids)
	rows, err := repo.FindPromotionsByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load promotions")
	}
	if len(rows) != len(ids) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "one or more promotions do not exist")
	}
	return rows, nil
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.Title != nil {
		product.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.UnitPrice != nil {
		product.UnitPrice = input.UnitPrice.Round(2)
	}
	if input.OnStock != nil {
		product.OnStock = *input.OnStock
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
}

func validateDiscountPercentage(value int) error {
	if value < 0 || value > 100 {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount_percentage must be between 0 and 100")
	}
	return nil
}

func validateDateWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end_date cannot precede start_date")
	}
	return nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
