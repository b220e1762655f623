package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sharlabs/shar-backend/api/routes"
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
	"github.com/sharlabs/shar-backend/pkg/currency"
	"github.com/sharlabs/shar-backend/pkg/db"
	"github.com/sharlabs/shar-backend/pkg/gemini"
	"github.com/sharlabs/shar-backend/pkg/logger"
	"github.com/sharlabs/shar-backend/pkg/metrics"
	"github.com/sharlabs/shar-backend/pkg/migrate"
	"github.com/sharlabs/shar-backend/pkg/pubsub"
	"github.com/sharlabs/shar-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	var alertEvents *content.AlertEvents
	if cfg.GCP.ProjectID != "" {
		pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		alertEvents = content.NewAlertEvents(pubsubClient.AlertsPublisher())
	}

	geminiClient, err := gemini.NewClient(cfg.Gemini, gemini.WithLogger(logg))
	if err != nil {
		logg.Error(context.Background(), "failed to create gemini client", err)
		os.Exit(1)
	}

	currencyClient, err := currency.NewClient(cfg.Rates)
	if err != nil {
		logg.Error(context.Background(), "failed to create currency client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	assistantMetrics := metrics.NewAssistantMetrics(registry)

	profilesSvc, err := profiles.NewService(profiles.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create profiles service", err)
		os.Exit(1)
	}

	entitlementSvc, err := entitlement.NewService(entitlement.NewRepository(dbClient.DB()), profilesSvc, cfg.SurvivalPack)
	if err != nil {
		logg.Error(context.Background(), "failed to create entitlement service", err)
		os.Exit(1)
	}

	quotaSvc, err := quota.NewService(quota.NewRepository(dbClient.DB()), profilesSvc, cfg.Quota)
	if err != nil {
		logg.Error(context.Background(), "failed to create quota service", err)
		os.Exit(1)
	}

	assistantSvc, err := assistant.NewService(quotaSvc, geminiClient, assistantMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create assistant service", err)
		os.Exit(1)
	}

	contentSvc, err := content.NewService(content.NewRepository(dbClient.DB()), alertEvents, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create content service", err)
		os.Exit(1)
	}

	ratesSvc, err := rates.NewService(currencyClient, redisClient, cfg.Rates)
	if err != nil {
		logg.Error(context.Background(), "failed to create rates service", err)
		os.Exit(1)
	}

	adminGate := adminmode.NewGate()

	authSvc, err := auth.NewService(auth.ServiceParams{
		Profiles:       profilesSvc,
		SessionManager: sessionManager,
		AdminGate:      adminGate,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			Sessions:        sessionManager,
			AdminGate:       adminGate,
			Auth:            authSvc,
			Profiles:        profilesSvc,
			Entitlements:    entitlementSvc,
			Quotas:          quotaSvc,
			Assistant:       assistantSvc,
			Content:         contentSvc,
			Rates:           ratesSvc,
			MetricsGatherer: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
