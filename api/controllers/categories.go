package controllers

import (
	"net/http"

	"github.com/shoppu-io/shoppu-backend/api/responses"
	"github.com/shoppu-io/shoppu-backend/api/validators"
	"github.com/shoppu-io/shoppu-backend/internal/catalog"
	"github.com/shoppu-io/shoppu-backend/pkg/logger"
)

type createCategoryRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// CategoryList returns every category with its product count.
func CategoryList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// CategoryDetail returns a single category.
func CategoryDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.GetCategory(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// CategoryCreate creates a category.
func CategoryCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.CreateCategory(r.Context(), catalog.CreateCategoryInput{
			Title:       payload.Title,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// CategoryUpdate patches the provided category fields.
func CategoryUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.UpdateCategory(r.Context(), id, catalog.UpdateCategoryInput{
			Title:       payload.Title,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// CategoryDelete removes a category.
func CategoryDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
