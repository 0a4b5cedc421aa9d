package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/dentassist/dentsync/config"
	"github.com/dentassist/dentsync/internal/ai"
	"github.com/dentassist/dentsync/internal/email"
	appointmentHandler "github.com/dentassist/dentsync/internal/handler/appointment"
	assistantHandler "github.com/dentassist/dentsync/internal/handler/assistant"
	authHandler "github.com/dentassist/dentsync/internal/handler/auth"
	clinicHandler "github.com/dentassist/dentsync/internal/handler/clinic"
	exportHandler "github.com/dentassist/dentsync/internal/handler/export"
	financeHandler "github.com/dentassist/dentsync/internal/handler/finance"
	healthHandler "github.com/dentassist/dentsync/internal/handler/health"
	patientHandler "github.com/dentassist/dentsync/internal/handler/patient"
	reportHandler "github.com/dentassist/dentsync/internal/handler/report"
	shortcutHandler "github.com/dentassist/dentsync/internal/handler/shortcut"
	"github.com/dentassist/dentsync/internal/middleware"
	"github.com/dentassist/dentsync/internal/report"
	"github.com/dentassist/dentsync/internal/router"
	assistantService "github.com/dentassist/dentsync/internal/service/assistant"
	authService "github.com/dentassist/dentsync/internal/service/auth"
	clinicService "github.com/dentassist/dentsync/internal/service/clinic"
	exporterService "github.com/dentassist/dentsync/internal/service/exporter"
	"github.com/dentassist/dentsync/internal/snapshot"
	"github.com/dentassist/dentsync/internal/store"
	"github.com/dentassist/dentsync/pkg/auth"
	"github.com/dentassist/dentsync/pkg/logger"
	"github.com/dentassist/dentsync/pkg/metrics"
	"github.com/dentassist/dentsync/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	m := metrics.NewMetrics("dentsync")

	if err := validator.RegisterValidations(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	snap, err := newSnapshotter(cfg.Snapshot)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open snapshot backend")
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	initial, err := snap.Load(loadCtx)
	cancelLoad()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load state snapshot")
	}

	st := store.New(initial)

	persister := snapshot.NewPersister(snap, appLogger, m)
	st.Subscribe(persister.Listener())

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := authService.NewService(cfg.Admin, jwtSvc)
	clinicSvc := clinicService.NewService(st, m)
	reportSvc := report.NewService(st)

	var mailSvc email.Service
	if cfg.SMTP.Host != "" {
		mailSvc = email.NewService(cfg.SMTP)
	}
	exporterSvc := exporterService.NewService(st, mailSvc)

	aiClient := ai.NewClient(cfg.Assistant)
	assistantSvc := assistantService.NewService(aiClient, appLogger, m)

	authMw := middleware.NewAuthMiddleware(authSvc)

	rateLimit := rate.Limit(cfg.RateLimit.RequestsPerSecond)
	if !cfg.RateLimit.Enabled {
		rateLimit = rate.Inf
	}

	r := router.NewRouter(
		authMw,
		m,
		healthHandler.NewHandler(st),
		[]router.Handler{
			authHandler.NewHandler(authSvc),
		},
		[]router.Handler{
			clinicHandler.NewHandler(clinicSvc),
			patientHandler.NewHandler(clinicSvc),
			appointmentHandler.NewHandler(clinicSvc),
			financeHandler.NewHandler(clinicSvc),
			shortcutHandler.NewHandler(clinicSvc),
			reportHandler.NewHandler(reportSvc),
			exportHandler.NewHandler(exporterSvc),
			assistantHandler.NewHandler(assistantSvc),
		},
		router.Config{
			RateLimit:  rateLimit,
			RateBurst:  cfg.RateLimit.Burst,
			Timeout:    cfg.Server.RequestTimeout,
			CORSConfig: middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	// Final snapshot so nothing dispatched since the last save is lost.
	if err := snap.Save(ctx, st.State()); err != nil {
		log.Error().Err(err).Msg("final snapshot save failed")
	}
}

func newSnapshotter(cfg config.SnapshotConfig) (snapshot.Snapshotter, error) {
	switch cfg.Backend {
	case "file", "":
		return snapshot.NewFileStore(cfg.Path), nil
	case "redis":
		return snapshot.NewRedisStore(cfg.RedisURL)
	case "postgres":
		return snapshot.NewPostgresStore(cfg.Postgres)
	case "memory":
		return snapshot.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend: %s", cfg.Backend)
	}
}
