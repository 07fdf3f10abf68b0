package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-access-gateway/config"
	httpHandler "campus-access-gateway/internal/adapter/http/handler"
	"campus-access-gateway/internal/adapter/http/middleware"
	pgStorage "campus-access-gateway/internal/adapter/storage/postgres"
	redisStorage "campus-access-gateway/internal/adapter/storage/redis"
	"campus-access-gateway/internal/core/domain"
	"campus-access-gateway/internal/core/ports"
	"campus-access-gateway/internal/service"
	"campus-access-gateway/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Campus Access Gateway")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	if err := pgStorage.EnsureSchema(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database schema")
	}
	if cfg.Tap.SeedDemoData {
		if err := pgStorage.SeedDemoData(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	// Redis is optional: without it the gateway runs with rate limiting
	// disabled and a degraded health report.
	var rateLimitStore *redisStorage.RateLimitStore
	healthCheckers := []ports.HealthChecker{pgStorage.NewHealthCheck(pool)}

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, tap rate limiting disabled")
	} else {
		defer rdb.Close()
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
		log.Info().Msg("Redis connected")
	}

	// Initialize repositories
	identityRepo := pgStorage.NewIdentityRepo(pool)
	policyRepo := pgStorage.NewPolicyRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize business services
	policySvc := service.NewPolicyService(policyRepo, domain.DefaultPolicySet(), log)
	tapSvc := service.NewTapService(identityRepo, policySvc, walletRepo, txRepo, transactor, log)
	reportingSvc := service.NewReportingService(identityRepo, txRepo, log)
	adminSvc := service.NewAdminService(walletRepo, txRepo, transactor, log)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		TapSvc:         tapSvc,
		PolicySvc:      policySvc,
		ReportingSvc:   reportingSvc,
		AdminSvc:       adminSvc,
		RateLimitStore: rateLimitStore,
		TapRateLimit: middleware.RateLimitRule{
			Limit:  cfg.Tap.RateLimit,
			Window: cfg.Tap.RateLimitWindow,
		},
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
