package cart

import (
	"context"

	"gorm.io/gorm"

	"github.com/shoppu-io/shoppu-backend/pkg/db/models"
)

// ProductStockRepository is the ledger's persistence arm over the shared
// product stock pool.
type ProductStockRepository struct {
	db *gorm.DB
}

// NewProductStockRepository binds the repository to the provided DB handle.
func NewProductStockRepository(db *gorm.DB) *ProductStockRepository {
	return &ProductStockRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *ProductStockRepository) WithTx(tx *gorm.DB) *ProductStockRepository {
	if tx == nil {
		return r
	}
	return &ProductStockRepository{db: tx}
}

// FindProduct loads the product row backing a cart mutation.
func (r *ProductStockRepository) FindProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CompareAndSwapStock moves on_stock from oldStock to newStock, guarded by
// the value read at decision time. A false return means another writer got
// there first and the caller must retry against fresh state.
func (r *ProductStockRepository) CompareAndSwapStock(ctx context.Context, productID int64, oldStock, newStock int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND on_stock = ?", productID, oldStock).
		Update("on_stock", newStock)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
