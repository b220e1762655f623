package entitlement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sharlabs/shar-backend/pkg/config"
	dbpkg "github.com/sharlabs/shar-backend/pkg/db"
	"github.com/sharlabs/shar-backend/pkg/db/models"
	pkgerrors "github.com/sharlabs/shar-backend/pkg/errors"
)

func TestIsEntitledBoundary(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		expiry *time.Time
		want   bool
	}{
		{name: "nil expiry", expiry: nil, want: false},
		{name: "expiry in the past", expiry: timePtr(now.Add(-time.Minute)), want: false},
		{name: "expiry exactly now", expiry: timePtr(now), want: false},
		{name: "expiry one second ahead", expiry: timePtr(now.Add(time.Second)), want: true},
		{name: "expiry a week ahead", expiry: timePtr(now.Add(7 * 24 * time.Hour)), want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsEntitled(tc.expiry, now); got != tc.want {
				t.Fatalf("IsEntitled(%v) = %v, want %v", tc.expiry, got, tc.want)
			}
		})
	}
}

type stubEntitlementRepo struct {
	outcome    dbpkg.WriteOutcome
	err        error
	gotExpiry  time.Time
	gotUserID  uuid.UUID
	callsCount int
}

func (s *stubEntitlementRepo) ActivatePack(_ context.Context, userID uuid.UUID, expiry time.Time, _ time.Time) (dbpkg.WriteOutcome, error) {
	s.callsCount++
	s.gotUserID = userID
	s.gotExpiry = expiry
	return s.outcome, s.err
}

type stubProfiles struct {
	profile *models.Profile
	err     error
}

func (s *stubProfiles) GetByID(_ context.Context, _ uuid.UUID) (*models.Profile, error) {
	return s.profile, s.err
}

func newTestService(t *testing.T, repo *stubEntitlementRepo, profiles *stubProfiles, now time.Time) Service {
	t.Helper()
	svc, err := NewService(repo, profiles, config.SurvivalPackConfig{Duration: 168 * time.Hour})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	svc.(*service).now = func() time.Time { return now }
	return svc
}

func TestActivateStampsSevenDayWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.New()
	repo := &stubEntitlementRepo{outcome: dbpkg.WriteApplied}
	profiles := &stubProfiles{profile: &models.Profile{ID: id}}

	svc := newTestService(t, repo, profiles, now)

	if _, err := svc.Activate(context.Background(), id); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	want := now.Add(168 * time.Hour)
	if !repo.gotExpiry.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, repo.gotExpiry)
	}
}

func TestActivateReplacesExistingWindow(t *testing.T) {
	// A profile with four days left re-activates; the stamp is a full week
	// from now, not eleven days.
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.New()
	existing := now.Add(4 * 24 * time.Hour)
	repo := &stubEntitlementRepo{outcome: dbpkg.WriteApplied}
	profiles := &stubProfiles{profile: &models.Profile{ID: id, SurvivalPackExpiry: &existing}}

	svc := newTestService(t, repo, profiles, now)

	if _, err := svc.Activate(context.Background(), id); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	want := now.Add(7 * 24 * time.Hour)
	if !repo.gotExpiry.Equal(want) {
		t.Fatalf("expected replacement expiry %v, got %v", want, repo.gotExpiry)
	}
}

func TestActivateZeroRowsIsWriteDenied(t *testing.T) {
	repo := &stubEntitlementRepo{outcome: dbpkg.WriteDenied}
	svc := newTestService(t, repo, &stubProfiles{}, time.Now())

	_, err := svc.Activate(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeWriteDenied {
		t.Fatalf("expected WRITE_DENIED, got %v", err)
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
