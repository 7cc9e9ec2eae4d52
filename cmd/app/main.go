// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-tracker/internal/config"
	"job-tracker/internal/infra/api"
	"job-tracker/internal/infra/db"
	"job-tracker/internal/infra/logging"
	"job-tracker/internal/infra/metrics"
	red "job-tracker/internal/infra/redis"
	"job-tracker/internal/infra/sched"
	"job-tracker/internal/infra/web"
	"job-tracker/internal/usecase"
)

// Set with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file (optional)")
	devMode := flag.Bool("dev", false, "enable developer mode (error details in 500 responses)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("[DEV MODE] Enabled")
	}

	// ---- Store ----
	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer store.Close()
	logger.Info().Str("driver", store.Driver).Msg("Connected to job store")

	// ---- Metrics ----
	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit, store.Driver)
	poolWorker := sched.NewPoolStatsWorker(15*time.Second, store.Driver, store.PoolStats, logger)
	go func() { _ = poolWorker.Run(ctx) }()

	// ---- Redis (optional) ----
	var limiter api.Limiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
		rl := red.NewRateLimiter(redisClient, cfg.RateLimit.RequestsPerMinute, time.Minute)
		limiter = rl
		logger.Info().Int("rpm", rl.Limit()).Msg("Rate limiting enabled")
	}

	// ---- Use cases ----
	jobUC := usecase.NewJobUseCase(store.Jobs, store.Tx, logger)
	statsUC := usecase.NewStatsUseCase(store.Jobs, logger)

	// ---- HTTP ----
	srv := web.NewServer(jobUC, statsUC, web.Options{
		CORSOrigin:     cfg.CORS.AllowedOrigin,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		Limiter:        limiter,
		Dev:            cfg.Runtime.Dev,
		TrustProxy:     cfg.HTTP.TrustProxy,
	}, logger)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown completed with error")
	} else {
		logger.Info().Msg("graceful shutdown completed")
	}
	cancel()
}
