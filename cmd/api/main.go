package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movie-wallet/config"
	httpHandler "movie-wallet/internal/adapter/http/handler"
	"movie-wallet/internal/adapter/storage"
	redisStorage "movie-wallet/internal/adapter/storage/redis"
	"movie-wallet/internal/core/domain"
	"movie-wallet/internal/core/ports"
	"movie-wallet/internal/service"
	"movie-wallet/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("MVW_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("store", cfg.Store.Driver).
		Msg("Starting Movie Wallet")

	ctx := context.Background()

	// Document store and the connections behind it
	backend, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open document store")
	}
	defer backend.Close()
	docs := storage.NewTransactor(backend.store)

	// Ledger events go to a Redis stream when enabled. Leave the interface nil otherwise.
	var events ports.EventPublisher
	if cfg.Events.Enabled {
		rdb, err := backend.redisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis for ledger events")
		}
		events = redisStorage.NewEventPublisher(rdb, cfg.Events.Stream)
		log.Info().Str("stream", cfg.Events.Stream).Msg("Ledger events enabled")
	}

	// Scheduler for transfer settlement and catalog reshuffles
	scheduler, err := service.NewJobScheduler(log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	scheduler.Start()

	// Core services
	seed := uint64(time.Now().UnixNano())
	catalogSvc := service.NewCatalogService(rand.New(rand.NewPCG(seed, seed>>1)))
	catalogSvc.Shuffle()
	if err := scheduler.Every("shuffle-catalog", cfg.Catalog.ShuffleInterval, catalogSvc.Shuffle); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule catalog shuffle")
	}

	tokenSvc := service.NewJWTTokenService(cfg.Session.Secret, cfg.Session.Expiry, cfg.Session.Issuer)
	authn := service.NewStaticCredentialAuthenticator(docs, domain.AdminCredentials{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
	})
	if err := authn.EnsureCredentials(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admin credentials")
	}
	authSvc := service.NewAuthService(authn, tokenSvc, log)

	ledgerSvc := service.NewLedgerService(docs, catalogSvc, events, cfg.Ledger.RewardAmount, log)
	transferSvc := service.NewTransferService(docs, scheduler, events, cfg.Transfer.SettleDelay, log)
	userSvc := service.NewUserService(docs, log)
	deviceSvc := service.NewDeviceService(docs, cfg.Device.DefaultOwner, rand.New(rand.NewPCG(seed>>2, seed>>3)))
	reportingSvc := service.NewReportingService(docs, catalogSvc)

	// Transfers still processing from a previous run settle again
	resumed, err := transferSvc.ResumePending(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resume pending transfers")
	} else if resumed > 0 {
		log.Info().Int("count", resumed).Msg("Resumed pending transfers")
	}

	// Setup Gin router with all routes
	gin.SetMode(cfg.Server.Mode)
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		TokenSvc:       tokenSvc,
		LedgerSvc:      ledgerSvc,
		TransferSvc:    transferSvc,
		UserSvc:        userSvc,
		DeviceSvc:      deviceSvc,
		CatalogSvc:     catalogSvc,
		ReportingSvc:   reportingSvc,
		HealthCheckers: backend.health,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	if err := scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Scheduler shutdown failed")
	}

	log.Info().Msg("Server exited")
}
