package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sharlabs/shar-backend/internal/profiles"
	pkgAuth "github.com/sharlabs/shar-backend/pkg/auth"
	"github.com/sharlabs/shar-backend/pkg/auth/session"
	"github.com/sharlabs/shar-backend/pkg/config"
	"github.com/sharlabs/shar-backend/pkg/db/models"
	"github.com/sharlabs/shar-backend/pkg/enums"
	pkgerrors "github.com/sharlabs/shar-backend/pkg/errors"
	"github.com/sharlabs/shar-backend/pkg/security"
)

var testJWTCfg = config.JWTConfig{
	Secret:                 "test-secret-test-secret-test-1234",
	Issuer:                 "shar-test",
	ExpirationMinutes:      15,
	RefreshTokenTTLMinutes: 60,
}

var testPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

type stubProfiles struct {
	byEmail map[string]*models.Profile
	ensured []profiles.EnsureInput
}

func newStubProfiles() *stubProfiles {
	return &stubProfiles{byEmail: map[string]*models.Profile{}}
}

func (s *stubProfiles) Ensure(_ context.Context, input profiles.EnsureInput) (*models.Profile, error) {
	s.ensured = append(s.ensured, input)
	if existing, ok := s.byEmail[input.Email]; ok {
		return existing, nil
	}
	profile := &models.Profile{
		ID:           input.ID,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
	}
	s.byEmail[input.Email] = profile
	return profile, nil
}

func (s *stubProfiles) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	if p, ok := s.byEmail[email]; ok {
		return p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
}

type stubSessions struct {
	generated map[string]string
	revoked   []string
	rotateErr error
}

func newStubSessions() *stubSessions {
	return &stubSessions{generated: map[string]string{}}
}

func (s *stubSessions) Generate(_ context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	s.generated[accessID] = token
	return token, nil
}

func (s *stubSessions) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	stored, ok := s.generated[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.generated, oldAccessID)
	newID := session.NewAccessID()
	s.generated[newID] = "refresh-" + newID
	return newID, "refresh-" + newID, nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	delete(s.generated, accessID)
	return nil
}

type stubGate struct {
	cleared []string
}

func (s *stubGate) Clear(sessionID string) {
	s.cleared = append(s.cleared, sessionID)
}

func newAuthService(t *testing.T, profilesSvc profilesService, sessions sessionManager, gate gateClearer) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Profiles:       profilesSvc,
		SessionManager: sessions,
		AdminGate:      gate,
		JWTConfig:      testJWTCfg,
		PasswordConfig: testPasswordCfg,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestRegisterIssuesTokens(t *testing.T) {
	profilesSvc := newStubProfiles()
	sessions := newStubSessions()
	svc := newAuthService(t, profilesSvc, sessions, nil)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "New@Example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.User.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %q", resp.User.Email)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.Role != enums.UserRoleUser {
		t.Fatalf("expected user role claim, got %q", claims.Role)
	}
	if _, ok := sessions.generated[claims.ID]; !ok {
		t.Fatal("expected refresh session keyed by jti")
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	profilesSvc := newStubProfiles()
	profilesSvc.byEmail["dup@example.com"] = &models.Profile{ID: uuid.New(), Email: "dup@example.com"}
	svc := newAuthService(t, profilesSvc, newStubSessions(), nil)

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "dup@example.com", Password: "s3cret-pass"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestLoginVerifiesPasswordAndEnsuresProfile(t *testing.T) {
	hash, err := security.HashPassword("s3cret-pass", testPasswordCfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	profilesSvc := newStubProfiles()
	profilesSvc.byEmail["mya@example.com"] = &models.Profile{
		ID:           uuid.New(),
		Email:        "mya@example.com",
		PasswordHash: hash,
		Role:         enums.UserRoleUser,
	}
	svc := newAuthService(t, profilesSvc, newStubSessions(), nil)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "mya@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.User == nil || resp.User.Email != "mya@example.com" {
		t.Fatalf("unexpected user %+v", resp.User)
	}
	if len(profilesSvc.ensured) != 1 {
		t.Fatalf("expected login to ensure the profile, got %d calls", len(profilesSvc.ensured))
	}
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	hash, _ := security.HashPassword("right-password", testPasswordCfg)
	profilesSvc := newStubProfiles()
	profilesSvc.byEmail["mya@example.com"] = &models.Profile{ID: uuid.New(), Email: "mya@example.com", PasswordHash: hash}
	svc := newAuthService(t, profilesSvc, newStubSessions(), nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "mya@example.com", Password: "wrong-password"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	svc := newAuthService(t, newStubProfiles(), newStubSessions(), nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	profilesSvc := newStubProfiles()
	sessions := newStubSessions()
	svc := newAuthService(t, profilesSvc, sessions, nil)

	registered, err := svc.Register(context.Background(), RegisterRequest{Email: "rotate@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  registered.AccessToken,
		RefreshToken: registered.RefreshToken,
	})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.AccessToken == registered.AccessToken {
		t.Fatal("expected a new access token")
	}

	// The old pair is burned.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  registered.AccessToken,
		RefreshToken: registered.RefreshToken,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED on replay, got %v", err)
	}
}

func TestLogoutRevokesSessionAndClearsGate(t *testing.T) {
	sessions := newStubSessions()
	gate := &stubGate{}
	svc := newAuthService(t, newStubProfiles(), sessions, gate)

	accessID := session.NewAccessID()
	if _, err := sessions.Generate(context.Background(), accessID); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if err := svc.Logout(context.Background(), accessID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != accessID {
		t.Fatalf("expected session revoked, got %v", sessions.revoked)
	}
	if len(gate.cleared) != 1 || gate.cleared[0] != accessID {
		t.Fatalf("expected gate cleared, got %v", gate.cleared)
	}
}
