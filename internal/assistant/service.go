package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sharlabs/shar-backend/internal/quota"
	pkgerrors "github.com/sharlabs/shar-backend/pkg/errors"
	"github.com/sharlabs/shar-backend/pkg/gemini"
	"github.com/sharlabs/shar-backend/pkg/metrics"
)

const maxQuestionLen = 4000

type quotaService interface {
	Admit(ctx context.Context, userID uuid.UUID) (*quota.Usage, error)
}

type aiClient interface {
	Ask(ctx context.Context, prompt string) string
}

// Answer is the assistant response together with the post-admission quota view.
type Answer struct {
	Text      string `json:"text"`
	Remaining int    `json:"remaining"`
	Limit     int    `json:"limit"`
}

// Service runs quota-gated assistant conversations.
type Service interface {
	Ask(ctx context.Context, userID uuid.UUID, question string) (*Answer, error)
}

type service struct {
	quota   quotaService
	ai      aiClient
	metrics *metrics.AssistantMetrics
}

// NewService builds the assistant service. Metrics may be nil-valued (no-op)
// but the quota gate and AI client are mandatory.
func NewService(quotaSvc quotaService, ai aiClient, m *metrics.AssistantMetrics) (Service, error) {
	if quotaSvc == nil {
		return nil, fmt.Errorf("quota service required")
	}
	if ai == nil {
		return nil, fmt.Errorf("ai client required")
	}
	return &service{quota: quotaSvc, ai: ai, metrics: m}, nil
}

// Ask admits the request against the daily quota and only then calls the
// model. The slot is consumed before the call and is not refunded when the
// model falls back to the apology answer.
func (s *service) Ask(ctx context.Context, userID uuid.UUID, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "question is required")
	}
	if len(question) > maxQuestionLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "question is too long")
	}

	usage, err := s.quota.Admit(ctx, userID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeQuotaExceeded {
			s.metrics.IncAdmission("refused")
		}
		return nil, err
	}
	s.metrics.IncAdmission("admitted")

	started := time.Now()
	text := s.ai.Ask(ctx, question)
	s.metrics.ObserveModelLatency(time.Since(started))
	if text == gemini.FallbackAnswer {
		s.metrics.IncFallback()
	}

	return &Answer{
		Text:      text,
		Remaining: usage.Remaining,
		Limit:     usage.Limit,
	}, nil
}
