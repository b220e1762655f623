package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sharlabs/shar-backend/api/middleware"
	"github.com/sharlabs/shar-backend/api/responses"
	"github.com/sharlabs/shar-backend/api/validators"
	"github.com/sharlabs/shar-backend/internal/content"
	"github.com/sharlabs/shar-backend/internal/entitlement"
	"github.com/sharlabs/shar-backend/pkg/enums"
	pkgerrors "github.com/sharlabs/shar-backend/pkg/errors"
	"github.com/sharlabs/shar-backend/pkg/logger"
)

// CreateAgentRequest is the CMS payload for listing a new agent.
type CreateAgentRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Specialty   string  `json:"specialty"`
	Location    string  `json:"location"`
	TrustScore  int     `json:"trust_score" validate:"min=0,max=100"`
	Description string  `json:"description"`
	IsVerified  bool    `json:"is_verified"`
	Phone       *string `json:"phone"`
	LineID      *string `json:"line_id"`
}

// UpdateAgentRequest carries partial agent updates; absent fields are untouched.
type UpdateAgentRequest struct {
	Name        *string `json:"name"`
	Specialty   *string `json:"specialty"`
	Location    *string `json:"location"`
	TrustScore  *int    `json:"trust_score"`
	Description *string `json:"description"`
	IsVerified  *bool   `json:"is_verified"`
	Phone       *string `json:"phone"`
	LineID      *string `json:"line_id"`
}

// CreateDailyUpdateRequest is the CMS payload for a news item.
type CreateDailyUpdateRequest struct {
	Title    string    `json:"title" validate:"required"`
	Content  string    `json:"content" validate:"required"`
	ImageURL string    `json:"image_url"`
	Date     time.Time `json:"date"`
}

// CreateAlertRequest is the CMS payload for a safety alert.
type CreateAlertRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Priority    string    `json:"priority" validate:"required"`
	Date        time.Time `json:"date"`
}

// CreateKnowledgeItemRequest is the CMS payload for a guide article.
type CreateKnowledgeItemRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// ContentListAgents serves the agent directory. Anonymous and base-tier
// callers get contact fields stripped.
func ContentListAgents(svc content.Service, entitlements entitlement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var category *enums.AgentCategory
		if raw := r.URL.Query().Get("category"); raw != "" {
			parsed, err := enums.ParseAgentCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid agent category"))
				return
			}
			category = &parsed
		}

		entitled := callerEntitled(r, entitlements, logg)

		views, err := svc.ListAgents(r.Context(), category, entitled)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// ContentListDailyUpdates serves the daily news feed.
func ContentListDailyUpdates(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updates, err := svc.ListDailyUpdates(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updates)
	}
}

// ContentListAlerts serves the safety alert feed.
func ContentListAlerts(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alerts, err := svc.ListAlerts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, alerts)
	}
}

// ContentListKnowledge serves the knowledge base, optionally filtered by
// category.
func ContentListKnowledge(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListKnowledgeItems(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// AdminCreateAgent lists a new agent in the directory.
func AdminCreateAgent(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateAgentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseAgentCategory(body.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid agent category"))
			return
		}

		agent, err := svc.CreateAgent(r.Context(), content.CreateAgentInput{
			Name:        body.Name,
			Category:    category,
			Specialty:   body.Specialty,
			Location:    body.Location,
			TrustScore:  body.TrustScore,
			Description: body.Description,
			IsVerified:  body.IsVerified,
			Phone:       body.Phone,
			LineID:      body.LineID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, agent)
	}
}

// AdminUpdateAgent applies a partial update to an agent.
func AdminUpdateAgent(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body UpdateAgentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateAgent(r.Context(), id, content.UpdateAgentInput{
			Name:        body.Name,
			Specialty:   body.Specialty,
			Location:    body.Location,
			TrustScore:  body.TrustScore,
			Description: body.Description,
			IsVerified:  body.IsVerified,
			Phone:       body.Phone,
			LineID:      body.LineID,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// AdminDeleteAgent removes an agent from the directory.
func AdminDeleteAgent(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteByID(logg, svc.DeleteAgent)
}

// AdminCreateDailyUpdate publishes a news item.
func AdminCreateDailyUpdate(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateDailyUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		update, err := svc.CreateDailyUpdate(r.Context(), content.CreateDailyUpdateInput{
			Title:    body.Title,
			Content:  body.Content,
			ImageURL: body.ImageURL,
			Date:     defaultDate(body.Date),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, update)
	}
}

// AdminDeleteDailyUpdate removes a news item.
func AdminDeleteDailyUpdate(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteByID(logg, svc.DeleteDailyUpdate)
}

// AdminCreateAlert publishes a safety alert.
func AdminCreateAlert(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateAlertRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		alert, err := svc.CreateAlert(r.Context(), content.CreateAlertInput{
			Title:       body.Title,
			Description: body.Description,
			Priority:    enums.AlertPriority(body.Priority),
			Date:        defaultDate(body.Date),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, alert)
	}
}

// AdminDeleteAlert removes a safety alert.
func AdminDeleteAlert(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteByID(logg, svc.DeleteAlert)
}

// AdminCreateKnowledgeItem publishes a guide article.
func AdminCreateKnowledgeItem(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateKnowledgeItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CreateKnowledgeItem(r.Context(), content.CreateKnowledgeItemInput{
			Title:    body.Title,
			Content:  body.Content,
			Category: body.Category,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// AdminDeleteKnowledgeItem removes a guide article.
func AdminDeleteKnowledgeItem(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteByID(logg, svc.DeleteKnowledgeItem)
}

// callerEntitled resolves the entitlement tier for an optionally-authenticated
// request. Anonymous callers and lookup failures read as not entitled.
func callerEntitled(r *http.Request, entitlements entitlement.Service, logg *logger.Logger) bool {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" || entitlements == nil {
		return false
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return false
	}
	status, err := entitlements.StatusFor(r.Context(), userID)
	if err != nil {
		if logg != nil {
			logg.Warn(r.Context(), "entitlement lookup failed: "+err.Error())
		}
		return false
	}
	return status.Entitled
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id")
	}
	return id, nil
}

func deleteByID(logg *logger.Logger, del func(ctx context.Context, id uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := del(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func defaultDate(date time.Time) time.Time {
	if date.IsZero() {
		return time.Now().UTC()
	}
	return date
}
