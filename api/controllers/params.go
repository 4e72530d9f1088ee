package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/shoppu-io/shoppu-backend/pkg/errors"
)

func int64Param(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name)
	}
	return value, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit_price")
	}
	return value, nil
}
