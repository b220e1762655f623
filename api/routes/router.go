package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sharlabs/shar-backend/api/controllers"
	"github.com/sharlabs/shar-backend/api/middleware"
	"github.com/sharlabs/shar-backend/internal/adminmode"
	"github.com/sharlabs/shar-backend/internal/assistant"
	"github.com/sharlabs/shar-backend/internal/auth"
	"github.com/sharlabs/shar-backend/internal/content"
	"github.com/sharlabs/shar-backend/internal/entitlement"
	"github.com/sharlabs/shar-backend/internal/profiles"
	"github.com/sharlabs/shar-backend/internal/quota"
	"github.com/sharlabs/shar-backend/internal/rates"
	"github.com/sharlabs/shar-backend/pkg/auth/session"
	"github.com/sharlabs/shar-backend/pkg/config"
	"github.com/sharlabs/shar-backend/pkg/db"
	"github.com/sharlabs/shar-backend/pkg/logger"
	"github.com/sharlabs/shar-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	Sessions        session.AccessSessionChecker
	AdminGate       *adminmode.Gate
	Auth            auth.Service
	Profiles        profiles.Service
	Entitlements    entitlement.Service
	Quotas          quota.Service
	Assistant       assistant.Service
	Content         content.Service
	Rates           rates.Service
	MetricsGatherer prometheus.Gatherer
}

// NewRouter wires the public, authenticated and admin route groups.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).Post("/logout", controllers.AuthLogout(deps.Auth, logg))
	})

	// Public reads. Agents carry an optional token so entitled callers see
	// contact fields.
	r.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.OptionalAuth(cfg.JWT, logg)).Get("/agents", controllers.ContentListAgents(deps.Content, deps.Entitlements, logg))
		r.Get("/updates", controllers.ContentListDailyUpdates(deps.Content, logg))
		r.Get("/alerts", controllers.ContentListAlerts(deps.Content, logg))
		r.Get("/knowledge", controllers.ContentListKnowledge(deps.Content, logg))
		r.Get("/rates", controllers.RatesLatest(deps.Rates, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Get("/me", controllers.Me(deps.Profiles, deps.Entitlements, deps.Quotas, logg))

			r.Post("/assistant/ask", controllers.AssistantAsk(deps.Assistant, logg))

			r.Route("/survival-pack", func(r chi.Router) {
				r.Get("/", controllers.SurvivalPackStatus(deps.Entitlements, logg))
				r.Post("/confirm", controllers.SurvivalPackConfirm(deps.Entitlements, logg))
			})

			r.Route("/admin-mode", func(r chi.Router) {
				r.Post("/tap", controllers.AdminModeTap(deps.AdminGate, logg))
				r.Post("/enter", controllers.AdminModeEnter(deps.AdminGate, logg))
				r.Post("/exit", controllers.AdminModeExit(deps.AdminGate, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole("admin", logg))

		r.Route("/agents", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateAgent(deps.Content, logg))
			r.Patch("/{id}", controllers.AdminUpdateAgent(deps.Content, logg))
			r.Delete("/{id}", controllers.AdminDeleteAgent(deps.Content, logg))
		})
		r.Route("/updates", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateDailyUpdate(deps.Content, logg))
			r.Delete("/{id}", controllers.AdminDeleteDailyUpdate(deps.Content, logg))
		})
		r.Route("/alerts", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateAlert(deps.Content, logg))
			r.Delete("/{id}", controllers.AdminDeleteAlert(deps.Content, logg))
		})
		r.Route("/knowledge", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateKnowledgeItem(deps.Content, logg))
			r.Delete("/{id}", controllers.AdminDeleteKnowledgeItem(deps.Content, logg))
		})
	})

	return r
}
