package catalog

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shoppu-io/shoppu-backend/pkg/db/models"
)

// Repository wires together catalog persistence for categories, products,
// and promotions.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CategoryRow carries a category with its annotated product count.
type CategoryRow struct {
	Category      models.Category `gorm:"embedded"`
	ProductsCount int64
}

const productsCountSelect = "categories.*, " +
	"(SELECT COUNT(*) FROM product_categories pc WHERE pc.category_id = categories.id) AS products_count"

// CreateCategory inserts a new category row.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindCategoryByID loads a category with its product count annotated.
func (r *Repository) FindCategoryByID(ctx context.Context, id int64) (*CategoryRow, error) {
	var row CategoryRow
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select(productsCountSelect).
		Where("categories.id = ?", id).
		Take(&row).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListCategories returns all categories with product counts, oldest first.
func (r *Repository) ListCategories(ctx context.Context) ([]CategoryRow, error) {
	var rows []CategoryRow
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select(productsCountSelect).
		Order("categories.id ASC").
		Find(&rows).
		Error
	return rows, err
}

// UpdateCategory persists the full category row.
func (r *Repository) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category and its join rows.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&models.Category{ID: id}).
		Error
}

// FindCategoriesByIDs loads the categories matching the provided ids.
func (r *Repository) FindCategoriesByIDs(ctx context.Context, ids []int64) ([]models.Category, error) {
	var rows []models.Category
	if len(ids) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).
		Error
	return rows, err
}

// CreatePromotion inserts a new promotion row.
func (r *Repository) CreatePromotion(ctx context.Context, promotion *models.Promotion) (*models.Promotion, error) {
	if err := r.db.WithContext(ctx).Create(promotion).Error; err != nil {
		return nil, err
	}
	return promotion, nil
}

// FindPromotionByID loads a promotion by primary key.
func (r *Repository) FindPromotionByID(ctx context.Context, id int64) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.WithContext(ctx).First(&promotion, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &promotion, nil
}

// ListPromotions returns all promotions, oldest first.
func (r *Repository) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	var rows []models.Promotion
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// UpdatePromotion persists the full promotion row.
func (r *Repository) UpdatePromotion(ctx context.Context, promotion *models.Promotion) (*models.Promotion, error) {
	if err := r.db.WithContext(ctx).Save(promotion).Error; err != nil {
		return nil, err
	}
	return promotion, nil
}

// DeletePromotion removes a promotion and its join rows.
func (r *Repository) DeletePromotion(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&models.Promotion{ID: id}).
		Error
}

// FindPromotionsByIDs loads the promotions matching the provided ids.
func (r *Repository) FindPromotionsByIDs(ctx context.Context, ids []int64) ([]models.Promotion, error) {
	var rows []models.Promotion
	if len(ids) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).
		Error
	return rows, err
}

// CreateProduct inserts a product row without touching associations.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindProductByID loads a product with categories and promotions preloaded.
func (r *Repository) FindProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Promotions").
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns all products with associations preloaded, oldest first.
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Promotions").
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// UpdateProduct persists the product row without touching associations.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product and its join rows.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&models.Product{ID: id}).
		Error
}

// ReplaceProductCategories swaps the product's category set.
func (r *Repository) ReplaceProductCategories(ctx context.Context, product *models.Product, categories []models.Category) error {
	return r.db.WithContext(ctx).
		Model(product).
		Association("Categories").
		Replace(&categories)
}

// ReplaceProductPromotions swaps the product's promotion set.
func (r *Repository) ReplaceProductPromotions(ctx context.Context, product *models.Product, promotions []models.Promotion) error {
	return r.db.WithContext(ctx).
		Model(product).
		Association("Promotions").
		Replace(&promotions)
}
