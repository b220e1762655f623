package quota

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	dbpkg "github.com/sharlabs/shar-backend/pkg/db"
	"github.com/sharlabs/shar-backend/pkg/db/models"
	pkgerrors "github.com/sharlabs/shar-backend/pkg/errors"
)

type stubQuotaRepo struct {
	outcome  dbpkg.WriteOutcome
	err      error
	gotLimit int
	gotDay   string
	calls    int
}

func (s *stubQuotaRepo) Admit(_ context.Context, _ uuid.UUID, today string, limit int, _ time.Time) (dbpkg.WriteOutcome, error) {
	s.calls++
	s.gotDay = today
	s.gotLimit = limit
	return s.outcome, s.err
}

type stubProfilesSvc struct {
	profile *models.Profile
	err     error
}

func (s *stubProfilesSvc) GetByID(_ context.Context, _ uuid.UUID) (*models.Profile, error) {
	return s.profile, s.err
}

func newQuotaService(t *testing.T, repo *stubQuotaRepo, profiles *stubProfilesSvc, now time.Time) Service {
	t.Helper()
	svc, err := NewService(repo, profiles, testCfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	svc.(*service).now = func() time.Time { return now }
	return svc
}

func TestAdmitUsesEntitledLimit(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	expiry := now.Add(time.Hour)
	repo := &stubQuotaRepo{outcome: dbpkg.WriteApplied}
	profiles := &stubProfilesSvc{profile: &models.Profile{ID: uuid.New(), SurvivalPackExpiry: &expiry}}

	svc := newQuotaService(t, repo, profiles, now)

	usage, err := svc.Admit(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if repo.gotLimit != 20 {
		t.Fatalf("expected entitled limit 20, got %d", repo.gotLimit)
	}
	if !usage.Entitled {
		t.Fatal("expected entitled usage")
	}
	if usage.Used != 1 || usage.Remaining != 19 {
		t.Fatalf("unexpected usage %+v", usage)
	}
}

func TestAdmitExpiredPackFallsBackToBaseLimit(t *testing.T) {
	// An expiry equal to now is already expired.
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	expiry := now
	repo := &stubQuotaRepo{outcome: dbpkg.WriteApplied}
	profiles := &stubProfilesSvc{profile: &models.Profile{ID: uuid.New(), SurvivalPackExpiry: &expiry}}

	svc := newQuotaService(t, repo, profiles, now)

	usage, err := svc.Admit(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if repo.gotLimit != 5 {
		t.Fatalf("expected base limit 5, got %d", repo.gotLimit)
	}
	if usage.Entitled {
		t.Fatal("expected non-entitled usage")
	}
}

func TestAdmitDeniedMapsToQuotaExceeded(t *testing.T) {
	repo := &stubQuotaRepo{outcome: dbpkg.WriteDenied}
	profiles := &stubProfilesSvc{profile: &models.Profile{ID: uuid.New()}}
	svc := newQuotaService(t, repo, profiles, time.Now())

	_, err := svc.Admit(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeQuotaExceeded {
		t.Fatalf("expected QUOTA_EXCEEDED, got %v", err)
	}
}

func TestAdmitMissingProfileIsUnauthorized(t *testing.T) {
	repo := &stubQuotaRepo{}
	profiles := &stubProfilesSvc{err: pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")}
	svc := newQuotaService(t, repo, profiles, time.Now())

	_, err := svc.Admit(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED for missing profile, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("refusal must not touch the counter, got %d admit calls", repo.calls)
	}
}

func TestUsageForDoesNotConsume(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	today := DayKey(now)
	repo := &stubQuotaRepo{}
	profiles := &stubProfilesSvc{profile: &models.Profile{ID: uuid.New(), DailyChatCount: 2, LastChatReset: &today}}

	svc := newQuotaService(t, repo, profiles, now)

	usage, err := svc.UsageFor(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("UsageFor: %v", err)
	}
	if usage.Used != 2 || usage.Remaining != 3 {
		t.Fatalf("unexpected usage %+v", usage)
	}
	if repo.calls != 0 {
		t.Fatalf("UsageFor must not admit, got %d calls", repo.calls)
	}
}
