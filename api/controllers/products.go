package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/shoppu-io/shoppu-backend/api/responses"
	"github.com/shoppu-io/shoppu-backend/api/validators"
	"github.com/shoppu-io/shoppu-backend/internal/catalog"
	"github.com/shoppu-io/shoppu-backend/pkg/logger"
)

type createProductRequest struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description"`
	UnitPrice    string  `json:"unit_price" validate:"required"`
	OnStock      int     `json:"on_stock" validate:"gte=0"`
	IsAvailable  *bool   `json:"is_available"`
	CategoryIDs  []int64 `json:"category_ids" validate:"required,min=1"`
	PromotionIDs []int64 `json:"promotion_ids"`
}

type updateProductRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	UnitPrice    *string  `json:"unit_price"`
	OnStock      *int     `json:"on_stock"`
	IsAvailable  *bool    `json:"is_available"`
	CategoryIDs  *[]int64 `json:"category_ids"`
	PromotionIDs *[]int64 `json:"promotion_ids"`
}

// ProductList returns every product with priced output.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// ProductDetail returns a single product with priced output.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductCreate creates a product with its category and promotion sets.
func ProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		unitPrice, err := parsePrice(payload.UnitPrice)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.CreateProduct(r.Context(), catalog.CreateProductInput{
			Title:        payload.Title,
			Description:  payload.Description,
			UnitPrice:    unitPrice,
			OnStock:      payload.OnStock,
			IsAvailable:  payload.IsAvailable,
			CategoryIDs:  payload.CategoryIDs,
			PromotionIDs: payload.PromotionIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductUpdate patches the provided product fields and association sets.
func ProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var unitPrice *decimal.Decimal
		if payload.UnitPrice != nil {
			parsed, err := parsePrice(*payload.UnitPrice)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			unitPrice = &parsed
		}

		product, err := svc.UpdateProduct(r.Context(), id, catalog.UpdateProductInput{
			Title:        payload.Title,
			Description:  payload.Description,
			UnitPrice:    unitPrice,
			OnStock:      payload.OnStock,
			IsAvailable:  payload.IsAvailable,
			CategoryIDs:  payload.CategoryIDs,
			PromotionIDs: payload.PromotionIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductDelete removes a product.
func ProductDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
