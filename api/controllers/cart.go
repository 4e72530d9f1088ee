package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/shoppu-io/shoppu-backend/api/middleware"
	"github.com/shoppu-io/shoppu-backend/api/responses"
	"github.com/shoppu-io/shoppu-backend/api/validators"
	cartsvc "github.com/shoppu-io/shoppu-backend/internal/cart"
	pkgerrors "github.com/shoppu-io/shoppu-backend/pkg/errors"
	"github.com/shoppu-io/shoppu-backend/pkg/logger"
)

type cartMutationRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  *int  `json:"quantity" validate:"required,gte=0"`
}

// CartMutate applies a single line mutation to the caller's open cart.
func CartMutate(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartMutationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.ApplyCartMutation(r.Context(), userID, cartsvc.MutationInput{
			ProductID: payload.ProductID,
			Quantity:  *payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartFetch returns the caller's open cart, creating it on first access.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.GetCurrentCart(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartHistory lists the caller's completed carts, newest first.
func CartHistory(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history, err := svc.ListCompletedCarts(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, history)
	}
}

func userIDFromContext(r *http.Request) (uuid.UUID, error) {
	if r == nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, nil
}
