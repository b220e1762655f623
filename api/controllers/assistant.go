package controllers

import (
	"net/http"

	"github.com/sharlabs/shar-backend/api/responses"
	"github.com/sharlabs/shar-backend/api/validators"
	"github.com/sharlabs/shar-backend/internal/assistant"
	"github.com/sharlabs/shar-backend/pkg/logger"
)

// AssistantAskRequest carries a single question for the AI assistant.
type AssistantAskRequest struct {
	Question string `json:"question" validate:"required,max=4000"`
}

// AssistantAsk runs one quota-gated assistant turn for the caller.
func AssistantAsk(svc assistant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body AssistantAskRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		answer, err := svc.Ask(r.Context(), userID, validators.SanitizeString(body.Question, 4000))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, answer)
	}
}
