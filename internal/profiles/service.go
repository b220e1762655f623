package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	dbpkg "github.com/sharlabs/shar-backend/pkg/db"
	"github.com/sharlabs/shar-backend/pkg/db/models"
	"github.com/sharlabs/shar-backend/pkg/enums"
	pkgerrors "github.com/sharlabs/shar-backend/pkg/errors"
	"gorm.io/gorm"
)

type profilesRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)
}

// EnsureInput carries the identity attributes used when a profile has to be
// created on first touch.
type EnsureInput struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         enums.UserRole
}

// Service exposes profile lookup and idempotent creation semantics.
type Service interface {
	Ensure(ctx context.Context, input EnsureInput) (*models.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
}

type service struct {
	repo profilesRepository
}

// NewService builds a profile service backed by the provided repository.
func NewService(repo profilesRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profile repository required")
	}
	return &service{repo: repo}, nil
}

// Ensure returns the profile for the given identity, creating a default row
// when none exists yet. Concurrent first-touch races resolve via the unique
// constraint: the loser re-fetches the winner's row instead of failing.
func (s *service) Ensure(ctx context.Context, input EnsureInput) (*models.Profile, error) {
	if input.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile identity missing")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile email missing")
	}

	existing, err := s.repo.FindByID(ctx, input.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading profile")
	}

	role := input.Role
	if !role.IsValid() {
		role = enums.UserRoleUser
	}

	created, err := s.repo.Create(ctx, &models.Profile{
		ID:           input.ID,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: input.PasswordHash,
		Role:         role,
	})
	if err == nil {
		return created, nil
	}

	if dbpkg.IsUniqueViolation(err, "") {
		refetched, refetchErr := s.repo.FindByID(ctx, input.ID)
		if refetchErr == nil {
			return refetched, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, refetchErr, "re-fetching profile after create race")
	}

	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating profile")
}

// GetByID loads the profile or returns a typed not-found error.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile identity missing")
	}
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading profile")
	}
	return profile, nil
}

// GetByEmail loads the profile for a login attempt.
func (s *service) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	if strings.TrimSpace(email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	profile, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading profile")
	}
	return profile, nil
}
