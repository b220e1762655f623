package controllers

import (
	"net/http"

	"github.com/sharlabs/shar-backend/api/responses"
	"github.com/sharlabs/shar-backend/internal/rates"
	"github.com/sharlabs/shar-backend/pkg/logger"
)

// RatesLatest serves the latest MMK exchange rate table.
func RatesLatest(svc rates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := svc.Latest(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}
