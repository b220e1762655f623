package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/sharlabs/shar-backend/pkg/db/models"
	"github.com/sharlabs/shar-backend/pkg/enums"
)

// RegisterRequest captures the credentials for a new account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the expired access token together with its refresh
// token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ProfileDTO is the client-facing projection of a profile.
type ProfileDTO struct {
	ID                 uuid.UUID      `json:"id"`
	Email              string         `json:"email"`
	Role               enums.UserRole `json:"role"`
	HasSurvivalPack    bool           `json:"has_survival_pack"`
	SurvivalPackExpiry *time.Time     `json:"survival_pack_expiry,omitempty"`
}

// TokenResponse contains the access/refresh pair plus the profile.
type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *ProfileDTO `json:"user"`
}

// RefreshResponse contains the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ProfileFromModel maps the persistence model to the client projection.
func ProfileFromModel(profile *models.Profile) *ProfileDTO {
	if profile == nil {
		return nil
	}
	return &ProfileDTO{
		ID:                 profile.ID,
		Email:              profile.Email,
		Role:               profile.Role,
		HasSurvivalPack:    profile.HasSurvivalPack,
		SurvivalPackExpiry: profile.SurvivalPackExpiry,
	}
}
