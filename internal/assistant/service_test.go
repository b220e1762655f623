package assistant

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sharlabs/shar-backend/internal/quota"
	pkgerrors "github.com/sharlabs/shar-backend/pkg/errors"
	"github.com/sharlabs/shar-backend/pkg/gemini"
)

type stubQuota struct {
	usage *quota.Usage
	err   error
	calls int
}

func (s *stubQuota) Admit(_ context.Context, _ uuid.UUID) (*quota.Usage, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.usage, nil
}

type stubAI struct {
	answer string
	calls  int
}

func (s *stubAI) Ask(_ context.Context, _ string) string {
	s.calls++
	return s.answer
}

func TestAskAdmitsBeforeModelCall(t *testing.T) {
	quotaSvc := &stubQuota{usage: &quota.Usage{Remaining: 4, Limit: 5}}
	ai := &stubAI{answer: "မင်္ဂလာပါ"}

	svc, err := NewService(quotaSvc, ai, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	answer, err := svc.Ask(context.Background(), uuid.New(), "visa renewal?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer.Text != "မင်္ဂလာပါ" {
		t.Fatalf("unexpected answer %q", answer.Text)
	}
	if answer.Remaining != 4 || answer.Limit != 5 {
		t.Fatalf("unexpected quota view %+v", answer)
	}
	if quotaSvc.calls != 1 || ai.calls != 1 {
		t.Fatalf("expected one admit and one model call, got %d/%d", quotaSvc.calls, ai.calls)
	}
}

func TestAskQuotaRefusalSkipsModel(t *testing.T) {
	quotaSvc := &stubQuota{err: pkgerrors.New(pkgerrors.CodeQuotaExceeded, "daily chat limit reached")}
	ai := &stubAI{answer: "should not run"}

	svc, _ := NewService(quotaSvc, ai, nil)

	_, err := svc.Ask(context.Background(), uuid.New(), "question")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeQuotaExceeded {
		t.Fatalf("expected QUOTA_EXCEEDED, got %v", err)
	}
	if ai.calls != 0 {
		t.Fatal("model must not be called when quota refuses")
	}
}

func TestAskSlotSpentEvenWhenModelFallsBack(t *testing.T) {
	// The fallback apology is a successful response from the caller's view;
	// the quota slot stays consumed.
	quotaSvc := &stubQuota{usage: &quota.Usage{Remaining: 0, Limit: 5}}
	ai := &stubAI{answer: gemini.FallbackAnswer}

	svc, _ := NewService(quotaSvc, ai, nil)

	answer, err := svc.Ask(context.Background(), uuid.New(), "question")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer.Text != gemini.FallbackAnswer {
		t.Fatalf("expected fallback answer, got %q", answer.Text)
	}
	if quotaSvc.calls != 1 {
		t.Fatalf("expected the slot to be consumed, got %d calls", quotaSvc.calls)
	}
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	quotaSvc := &stubQuota{usage: &quota.Usage{}}
	svc, _ := NewService(quotaSvc, &stubAI{}, nil)

	_, err := svc.Ask(context.Background(), uuid.New(), "   ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if quotaSvc.calls != 0 {
		t.Fatal("invalid question must not consume quota")
	}
}
