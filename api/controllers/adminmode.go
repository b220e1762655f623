package controllers

import (
	"errors"
	"net/http"

	"github.com/sharlabs/shar-backend/api/middleware"
	"github.com/sharlabs/shar-backend/api/responses"
	"github.com/sharlabs/shar-backend/internal/adminmode"
	"github.com/sharlabs/shar-backend/pkg/enums"
	pkgerrors "github.com/sharlabs/shar-backend/pkg/errors"
	"github.com/sharlabs/shar-backend/pkg/logger"
)

// AdminModeTap registers one tap of the hidden unlock sequence.
func AdminModeTap(gate *adminmode.Gate, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := currentSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := gate.Tap(sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "tap"))
			return
		}

		responses.WriteSuccess(w, state)
	}
}

// AdminModeEnter switches the session into admin mode. Admin-role callers
// enter directly; everyone else must have completed the tap sequence first.
func AdminModeEnter(gate *adminmode.Gate, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := currentSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var state *adminmode.TapState
		if middleware.RoleFromContext(r.Context()) == string(enums.UserRoleAdmin) {
			state, err = gate.EnterPrivileged(sessionID)
		} else {
			state, err = gate.Enter(sessionID)
		}
		if err != nil {
			if errors.Is(err, adminmode.ErrGateLocked) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin mode is locked"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "enter admin mode"))
			return
		}

		responses.WriteSuccess(w, state)
	}
}

// AdminModeExit leaves admin mode. The unlock survives so the user can
// re-enter without tapping again.
func AdminModeExit(gate *adminmode.Gate, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := currentSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		gate.Exit(sessionID)
		responses.WriteSuccess(w, map[string]bool{"active": gate.Active(sessionID)})
	}
}
