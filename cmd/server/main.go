package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shamanic-technologies/email-sending-service/internal/auth"
	"github.com/shamanic-technologies/email-sending-service/internal/config"
	"github.com/shamanic-technologies/email-sending-service/internal/database"
	"github.com/shamanic-technologies/email-sending-service/internal/handler"
	"github.com/shamanic-technologies/email-sending-service/internal/idempotency"
	"github.com/shamanic-technologies/email-sending-service/internal/logger"
	"github.com/shamanic-technologies/email-sending-service/internal/middleware"
	"github.com/shamanic-technologies/email-sending-service/internal/provider"
	"github.com/shamanic-technologies/email-sending-service/internal/router"
	"github.com/shamanic-technologies/email-sending-service/internal/service"
	"github.com/shamanic-technologies/email-sending-service/internal/signature"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", "0.1.0").Msg("starting email gateway")

	// Connect to Redis (rate limit counters)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("connected to Redis")

	// Initialize token service
	tokenSvc, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token service")
	}

	// Initialize provider clients
	transactional := provider.NewTransactionalClient(cfg.Providers.Transactional)
	broadcast := provider.NewBroadcastClient(cfg.Providers.Broadcast)
	brands := provider.NewBrandDirectoryClient(cfg.Providers.BrandDirectory)
	log.Info().
		Str("transactional", cfg.Providers.Transactional.BaseURL).
		Str("broadcast", cfg.Providers.Broadcast.BaseURL).
		Str("brand_directory", cfg.Providers.BrandDirectory.BaseURL).
		Msg("provider clients initialized")

	// Initialize idempotency cache and its background sweep
	cache := idempotency.New(
		idempotency.WithTTL(cfg.Idempotency.TTL),
		idempotency.WithSweepInterval(cfg.Idempotency.SweepInterval),
	)
	cache.Start()
	defer cache.Stop()
	log.Info().
		Dur("ttl", cfg.Idempotency.TTL).
		Dur("sweep_interval", cfg.Idempotency.SweepInterval).
		Msg("idempotency cache started")

	// Initialize services
	composer := signature.Composer{HouseApp: cfg.Signature.HouseApp}
	sendSvc := service.NewSendService(transactional, broadcast, brands, cache, composer, cfg, log)
	statsSvc := service.NewStatsService(transactional, broadcast, log)
	statusSvc := service.NewStatusService(transactional, broadcast, log)

	// Initialize handlers and middleware
	h := handler.New(rdb, log, cfg, sendSvc, statsSvc, statusSvc)
	mw := middleware.New(rdb, log, cfg)

	// Set up router
	r := router.New(h, mw, log, tokenSvc)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
