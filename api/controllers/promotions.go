package controllers

import (
	"net/http"
	"time"

	"github.com/shoppu-io/shoppu-backend/api/responses"
	"github.com/shoppu-io/shoppu-backend/api/validators"
	"github.com/shoppu-io/shoppu-backend/internal/catalog"
	"github.com/shoppu-io/shoppu-backend/pkg/logger"
)

type createPromotionRequest struct {
	Title              string     `json:"title" validate:"required"`
	Description        string     `json:"description"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	DiscountPercentage int        `json:"discount_percentage" validate:"gte=0,lte=100"`
}

type updatePromotionRequest struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	DiscountPercentage *int       `json:"discount_percentage"`
}

// PromotionList returns every promotion.
func PromotionList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promotions, err := svc.ListPromotions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, promotions)
	}
}

// PromotionDetail returns a single promotion.
func PromotionDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "promotionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		promotion, err := svc.GetPromotion(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, promotion)
	}
}

// PromotionCreate creates a promotion.
func PromotionCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPromotionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		promotion, err := svc.CreatePromotion(r.Context(), catalog.CreatePromotionInput{
			Title:              payload.Title,
			Description:        payload.Description,
			StartDate:          payload.StartDate,
			EndDate:            payload.EndDate,
			DiscountPercentage: payload.DiscountPercentage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, promotion)
	}
}

// PromotionUpdate patches the provided promotion fields.
func PromotionUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "promotionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updatePromotionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		promotion, err := svc.UpdatePromotion(r.Context(), id, catalog.UpdatePromotionInput{
			Title:              payload.Title,
			Description:        payload.Description,
			StartDate:          payload.StartDate,
			EndDate:            payload.EndDate,
			DiscountPercentage: payload.DiscountPercentage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, promotion)
	}
}

// PromotionDelete removes a promotion.
func PromotionDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "promotionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeletePromotion(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
