package controllers

import (
	"net/http"

	"github.com/sharlabs/shar-backend/api/responses"
	"github.com/sharlabs/shar-backend/internal/auth"
	"github.com/sharlabs/shar-backend/internal/entitlement"
	"github.com/sharlabs/shar-backend/pkg/logger"
)

// SurvivalPackConfirm activates a fresh Survival Pack window for the caller
// and returns the updated profile.
func SurvivalPackConfirm(svc entitlement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Activate(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, auth.ProfileFromModel(profile))
	}
}

// SurvivalPackStatus reports the caller's current entitlement window.
func SurvivalPackStatus(svc entitlement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := svc.StatusFor(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, status)
	}
}
