package controllers

import (
	"net/http"

	"github.com/shoppu-io/shoppu-backend/api/responses"
	"github.com/shoppu-io/shoppu-backend/api/validators"
	authsvc "github.com/shoppu-io/shoppu-backend/internal/auth"
	pkgerrors "github.com/shoppu-io/shoppu-backend/pkg/errors"
	"github.com/shoppu-io/shoppu-backend/pkg/logger"
)

// AuthRegister creates a customer account.
func AuthRegister(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload authsvc.RegisterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// AuthLogin verifies credentials and returns an access token.
func AuthLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload authsvc.LoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}
