package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AssistantMetrics records quota admissions and model latency for the chat
// assistant.
type AssistantMetrics struct {
	admissions *prometheus.CounterVec
	fallbacks  prometheus.Counter
	latency    prometheus.Histogram
}

// NewAssistantMetrics registers the assistant metrics on the provided registerer.
func NewAssistantMetrics(reg prometheus.Registerer) *AssistantMetrics {
	if reg == nil {
		return &AssistantMetrics{}
	}
	admissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_admissions",
		Help: "Quota admission decisions for assistant requests.",
	}, []string{"outcome"})
	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assistant_fallback_answers",
		Help: "Assistant responses served with the fallback apology.",
	})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "assistant_model_latency_seconds",
		Help:    "Latency of upstream model calls in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(admissions, fallbacks, latency)
	return &AssistantMetrics{
		admissions: admissions,
		fallbacks:  fallbacks,
		latency:    latency,
	}
}

// IncAdmission increments the admission counter for the given outcome
// ("admitted" or "refused").
func (a *AssistantMetrics) IncAdmission(outcome string) {
	if a == nil || a.admissions == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	a.admissions.WithLabelValues(outcome).Inc()
}

// IncFallback increments the fallback answer counter.
func (a *AssistantMetrics) IncFallback() {
	if a == nil || a.fallbacks == nil {
		return
	}
	a.fallbacks.Inc()
}

// ObserveModelLatency records how long the upstream model call took.
func (a *AssistantMetrics) ObserveModelLatency(duration time.Duration) {
	if a == nil || a.latency == nil {
		return
	}
	a.latency.Observe(duration.Seconds())
}
