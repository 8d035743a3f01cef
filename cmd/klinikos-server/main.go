package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/klinikos/klinikos/internal/config"
	"github.com/klinikos/klinikos/internal/domain/billing"
	"github.com/klinikos/klinikos/internal/domain/emergency"
	"github.com/klinikos/klinikos/internal/domain/identity"
	"github.com/klinikos/klinikos/internal/domain/labs"
	"github.com/klinikos/klinikos/internal/domain/medication"
	"github.com/klinikos/klinikos/internal/domain/patient"
	"github.com/klinikos/klinikos/internal/domain/scheduling"
	"github.com/klinikos/klinikos/internal/domain/settings"
	"github.com/klinikos/klinikos/internal/domain/task"
	"github.com/klinikos/klinikos/internal/platform/auth"
	"github.com/klinikos/klinikos/internal/platform/kvstore"
	"github.com/klinikos/klinikos/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "klinikos-server",
		Short: "Hospital administration API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Initialize the local data store with default settings and demo accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}
}

// runSeed forces the persisted aggregates into existence: opening the
// services seeds defaults when the store is empty, and closing the store
// flushes the write-behind queue.
func runSeed() error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	kv, err := kvstore.Open(cfg.DataPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DataPath).Msg("failed to open data store")
	}

	issuer := auth.NewTokenIssuer(cfg.ResolvedJWTSecret(), time.Duration(cfg.JWTTTLHours)*time.Hour)
	settingsSvc := settings.NewService(kv, logger)
	identitySvc := identity.NewService(kv, issuer, logger)

	// An empty merge persists whatever is current, defaults included.
	ctx := context.Background()
	current := settingsSvc.Apply(ctx, settings.Update{})
	logger.Info().
		Str("hospital", current.Name).
		Int("users", len(identitySvc.List(ctx, "", ""))).
		Msg("store initialized")

	if err := kv.Close(); err != nil {
		return err
	}
	logger.Info().Str("path", cfg.DataPath).Msg("seed complete")
	return nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Durable key-value store
	kv, err := kvstore.Open(cfg.DataPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DataPath).Msg("failed to open data store")
	}
	defer kv.Close()
	logger.Info().Str("path", cfg.DataPath).Msg("opened data store")

	// Services
	issuer := auth.NewTokenIssuer(cfg.ResolvedJWTSecret(), time.Duration(cfg.JWTTTLHours)*time.Hour)

	settingsSvc := settings.NewService(kv, logger)
	identitySvc := identity.NewService(kv, issuer, logger)
	patientSvc := patient.NewService(patient.NewMemPatientRepository(), patient.NewMemVisitRepository(), patient.NewMemFileRepository())
	schedulingSvc := scheduling.NewService(scheduling.NewMemRepository())
	medicationSvc := medication.NewService(medication.NewMemRegistryRepository(), medication.NewMemPrescriptionRepository())
	billingSvc := billing.NewService(billing.NewMemRepository(),
		&prescriptionAdapter{med: medicationSvc},
		&priceListAdapter{med: medicationSvc})
	emergencySvc := emergency.NewService(emergency.NewMemRepository())
	labsSvc := labs.NewService(labs.NewMemRepository())
	taskSvc := task.NewService(task.NewMemRepository(), task.NewMemNotificationRepository())

	if cfg.SeedDemoData {
		seedDemoData(context.Background(), logger, patientSvc, schedulingSvc, medicationSvc, billingSvc)
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	metrics := middleware.NewMetricsCollector()

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(metrics.Middleware())
	e.Use(middleware.SecurityHeaders())

	// Health and metrics stay outside the auth gate
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/metrics", metrics.Handler())

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Handlers
	identityHandler := identity.NewHandler(identitySvc)
	identityHandler.RegisterPublicRoutes(apiV1)

	authed := apiV1.Group("", auth.Middleware(issuer))
	identityHandler.RegisterRoutes(authed)
	patient.NewHandler(patientSvc).RegisterRoutes(authed)
	scheduling.NewHandler(schedulingSvc).RegisterRoutes(authed)
	medication.NewHandler(medicationSvc).RegisterRoutes(authed)
	billing.NewHandler(billingSvc, &letterheadAdapter{settings: settingsSvc}).RegisterRoutes(authed)
	emergency.NewHandler(emergencySvc).RegisterRoutes(authed)
	labs.NewHandler(labsSvc).RegisterRoutes(authed)
	task.NewHandler(taskSvc).RegisterRoutes(authed)
	settings.NewHandler(settingsSvc).RegisterRoutes(authed)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
