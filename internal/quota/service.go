package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sharlabs/shar-backend/internal/entitlement"
	"github.com/sharlabs/shar-backend/pkg/config"
	dbpkg "github.com/sharlabs/shar-backend/pkg/db"
	"github.com/sharlabs/shar-backend/pkg/db/models"
	pkgerrors "github.com/sharlabs/shar-backend/pkg/errors"
)

type quotaRepository interface {
	Admit(ctx context.Context, userID uuid.UUID, today string, limit int, now time.Time) (dbpkg.WriteOutcome, error)
}

type profilesService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// Usage is the quota view for a single user and day.
type Usage struct {
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Day       string `json:"day"`
	Entitled  bool   `json:"entitled"`
}

// Service admits assistant requests against the per-day ceiling.
type Service interface {
	Admit(ctx context.Context, userID uuid.UUID) (*Usage, error)
	UsageFor(ctx context.Context, userID uuid.UUID) (*Usage, error)
}

type service struct {
	repo     quotaRepository
	profiles profilesService
	cfg      config.QuotaConfig
	now      func() time.Time
}

// NewService builds the quota service with the configured tier limits.
func NewService(repo quotaRepository, profiles profilesService, cfg config.QuotaConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quota repository required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profiles service required")
	}
	if cfg.BaseDailyLimit <= 0 || cfg.EntitledDailyLimit <= 0 {
		return nil, fmt.Errorf("quota limits must be positive")
	}
	return &service{
		repo:     repo,
		profiles: profiles,
		cfg:      cfg,
		now:      time.Now,
	}, nil
}

// Admit consumes one slot before the downstream call is made. The slot is
// spent even if the downstream call later fails; there is no rollback path.
func (s *service) Admit(ctx context.Context, userID uuid.UUID) (*Usage, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		// A caller without a profile row is treated as not signed in, not
		// as a missing resource.
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in required")
		}
		return nil, err
	}

	now := s.now().UTC()
	today := DayKey(now)
	entitled := entitlement.IsEntitled(profile.SurvivalPackExpiry, now)
	limit := LimitFor(entitled, s.cfg)

	outcome, err := s.repo.Admit(ctx, userID, today, limit, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "admitting quota slot")
	}

	switch outcome {
	case dbpkg.WriteApplied:
		used := EffectiveCount(profile, today) + 1
		if used > limit {
			used = limit
		}
		return &Usage{
			Used:      used,
			Limit:     limit,
			Remaining: limit - used,
			Day:       today,
			Entitled:  entitled,
		}, nil
	case dbpkg.WriteDenied:
		return nil, pkgerrors.New(pkgerrors.CodeQuotaExceeded, "daily chat limit reached").
			WithDetails(map[string]any{"limit": limit, "day": today})
	default:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "quota admission failed")
	}
}

// UsageFor reports consumption without consuming a slot.
func (s *service) UsageFor(ctx context.Context, userID uuid.UUID) (*Usage, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	today := DayKey(now)
	entitled := entitlement.IsEntitled(profile.SurvivalPackExpiry, now)
	limit := LimitFor(entitled, s.cfg)
	used := EffectiveCount(profile, today)

	return &Usage{
		Used:      used,
		Limit:     limit,
		Remaining: Remaining(profile, today, limit),
		Day:       today,
		Entitled:  entitled,
	}, nil
}
