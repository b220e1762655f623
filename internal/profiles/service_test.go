package profiles

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sharlabs/shar-backend/pkg/db/models"
	"github.com/sharlabs/shar-backend/pkg/enums"
	pkgerrors "github.com/sharlabs/shar-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubRepo struct {
	byID      map[uuid.UUID]*models.Profile
	createErr error
	created   []*models.Profile
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[uuid.UUID]*models.Profile{}}
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindByEmail(_ context.Context, email string) (*models.Profile, error) {
	for _, p := range s.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) Create(_ context.Context, profile *models.Profile) (*models.Profile, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.byID[profile.ID] = profile
	s.created = append(s.created, profile)
	return profile, nil
}

func TestEnsureReturnsExistingProfile(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()
	repo.byID[id] = &models.Profile{ID: id, Email: "aye@example.com", DailyChatCount: 3}

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	got, err := svc.Ensure(context.Background(), EnsureInput{ID: id, Email: "aye@example.com"})
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if got.DailyChatCount != 3 {
		t.Fatalf("expected existing row untouched, got count %d", got.DailyChatCount)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected no create call, got %d", len(repo.created))
	}
}

func TestEnsureCreatesDefaultProfile(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)
	id := uuid.New()

	got, err := svc.Ensure(context.Background(), EnsureInput{ID: id, Email: "Thiri@Example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if got.Email != "thiri@example.com" {
		t.Fatalf("expected normalized email, got %q", got.Email)
	}
	if got.Role != enums.UserRoleUser {
		t.Fatalf("expected default role user, got %q", got.Role)
	}
	if got.HasSurvivalPack || got.SurvivalPackExpiry != nil {
		t.Fatal("new profile must start without an entitlement")
	}
	if got.DailyChatCount != 0 {
		t.Fatalf("new profile must start at zero chats, got %d", got.DailyChatCount)
	}
}

func TestEnsureRefetchesAfterCreateRace(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()

	// Simulate a concurrent winner: the initial lookup misses, the create
	// fails with a unique violation, and the row exists on re-fetch.
	winner := &models.Profile{ID: id, Email: "win@example.com", DailyChatCount: 1}
	repo.createErr = errors.New("ERROR: duplicate key value violates unique constraint \"profiles_pkey\" (SQLSTATE 23505)")
	repo.byID[id] = winner
	missOnce := &missOnceRepo{stubRepo: repo, missID: id}

	svc, err := NewService(missOnce)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	got, err := svc.Ensure(context.Background(), EnsureInput{ID: id, Email: "win@example.com"})
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if got != winner {
		t.Fatal("expected the winner's row to be returned after the race")
	}
}

func TestEnsureRejectsMissingIdentity(t *testing.T) {
	svc, _ := NewService(newStubRepo())

	_, err := svc.Ensure(context.Background(), EnsureInput{Email: "x@example.com"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetByIDMapsNotFound(t *testing.T) {
	svc, _ := NewService(newStubRepo())

	_, err := svc.GetByID(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

// missOnceRepo misses the first FindByID for missID, then delegates.
type missOnceRepo struct {
	*stubRepo
	missID uuid.UUID
	missed bool
}

func (m *missOnceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	if id == m.missID && !m.missed {
		m.missed = true
		return nil, gorm.ErrRecordNotFound
	}
	return m.stubRepo.FindByID(ctx, id)
}
