package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-yield-ledger/internal/adapter"
	"github.com/feral-file/ff-yield-ledger/internal/api/middleware"
	"github.com/feral-file/ff-yield-ledger/internal/api/server"
	"github.com/feral-file/ff-yield-ledger/internal/app"
	"github.com/feral-file/ff-yield-ledger/internal/config"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/ratelimit"
	"github.com/feral-file/ff-yield-ledger/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		Environment:     cfg.Environment,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ledger-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Yield Ledger API",
		zap.String("commission_mode", string(cfg.Ledger.Commission.Mode)),
	)

	dataStore, err := app.OpenStore(ctx, cfg.Database)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to open store", zap.Error(err))
	}

	clock := adapter.NewClock()

	redisClient, err := app.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Redis", zap.Error(err))
	}
	if redisClient != nil {
		defer func() {
			_ = redisClient.Close()
		}()
	}

	publisher, err := app.ConnectPublisher(ctx, cfg.NATS, "api")
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
	}
	if publisher != nil {
		defer publisher.Close()
	}

	opts := app.LedgerOptions{
		Config:    cfg.Ledger,
		Cache:     app.BalanceCache(redisClient, cfg.Redis),
		Publisher: publisher,
		Clock:     clock,
	}

	// Temporal is only needed to start commission workflows
	if cfg.Ledger.Commission.Mode == domain.CommissionModeDeferred {
		temporalClient, err := app.DialTemporal(ctx, cfg.Temporal)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err))
		}
		defer temporalClient.Close()
		opts.Orchestrator = temporalClient
		opts.CommissionTaskQueue = cfg.Temporal.CommissionTaskQueue
	}

	components, err := app.BuildLedger(dataStore, opts)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to build ledger", zap.Error(err))
	}

	var limiter ratelimit.Limiter
	if cfg.Server.RateLimit.RequestsPerSecond > 0 {
		var distributed adapter.RedisRateLimiter
		if redisClient != nil {
			distributed = redisClient.NewRateLimiter()
		}
		limiter, err = ratelimit.NewLimiter(cfg.Server.RateLimit, distributed, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
		}
	} else {
		logger.WarnCtx(ctx, "Rate limiting disabled")
	}

	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	srv := server.New(serverConfig, components.Ledger, sweeper.NewHealthStore(dataStore), limiter)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
