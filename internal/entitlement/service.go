package entitlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sharlabs/shar-backend/pkg/config"
	dbpkg "github.com/sharlabs/shar-backend/pkg/db"
	"github.com/sharlabs/shar-backend/pkg/db/models"
	pkgerrors "github.com/sharlabs/shar-backend/pkg/errors"
)

type entitlementRepository interface {
	ActivatePack(ctx context.Context, userID uuid.UUID, expiry time.Time, now time.Time) (dbpkg.WriteOutcome, error)
}

type profilesService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// Status is the entitlement view returned to clients.
type Status struct {
	Entitled bool       `json:"entitled"`
	Expiry   *time.Time `json:"expiry,omitempty"`
}

// Service exposes Survival Pack activation and status checks.
type Service interface {
	Activate(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	StatusFor(ctx context.Context, userID uuid.UUID) (*Status, error)
}

type service struct {
	repo     entitlementRepository
	profiles profilesService
	duration time.Duration
	now      func() time.Time
}

// NewService builds an entitlement service with the configured pack duration.
func NewService(repo entitlementRepository, profiles profilesService, cfg config.SurvivalPackConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("entitlement repository required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profiles service required")
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("survival pack duration must be positive")
	}
	return &service{
		repo:     repo,
		profiles: profiles,
		duration: cfg.Duration,
		now:      time.Now,
	}, nil
}

// Activate stamps a fresh entitlement window on the profile. Re-activation
// replaces the current expiry rather than extending it.
func (s *service) Activate(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}

	now := s.now().UTC()
	expiry := now.Add(s.duration)

	outcome, err := s.repo.ActivatePack(ctx, userID, expiry, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "activating survival pack")
	}
	switch outcome {
	case dbpkg.WriteApplied:
		return s.profiles.GetByID(ctx, userID)
	case dbpkg.WriteDenied:
		return nil, pkgerrors.New(pkgerrors.CodeWriteDenied, "survival pack activation touched no rows")
	default:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "survival pack activation failed")
	}
}

// StatusFor evaluates the authoritative expiry timestamp against the clock.
func (s *service) StatusFor(ctx context.Context, userID uuid.UUID) (*Status, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Status{
		Entitled: IsEntitled(profile.SurvivalPackExpiry, s.now().UTC()),
		Expiry:   profile.SurvivalPackExpiry,
	}, nil
}
