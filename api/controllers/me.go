package controllers

import (
	"net/http"

	"github.com/sharlabs/shar-backend/api/responses"
	"github.com/sharlabs/shar-backend/internal/auth"
	"github.com/sharlabs/shar-backend/internal/entitlement"
	"github.com/sharlabs/shar-backend/internal/profiles"
	"github.com/sharlabs/shar-backend/internal/quota"
	"github.com/sharlabs/shar-backend/pkg/logger"
)

// Me returns the caller's profile together with the entitlement and quota view.
func Me(profilesSvc profiles.Service, entitlements entitlement.Service, quotas quota.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := profilesSvc.GetByID(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := entitlements.StatusFor(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		usage, err := quotas.UsageFor(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"profile":       auth.ProfileFromModel(profile),
			"survival_pack": status,
			"quota":         usage,
		})
	}
}
