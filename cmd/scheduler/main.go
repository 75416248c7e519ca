package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-yield-ledger/internal/adapter"
	"github.com/feral-file/ff-yield-ledger/internal/app"
	"github.com/feral-file/ff-yield-ledger/internal/config"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/metrics"
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
	cfg, err := config.LoadSchedulerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		Environment:     cfg.Environment,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "scheduler",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Scheduler")

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

	publisher, err := app.ConnectPublisher(ctx, cfg.NATS, "scheduler")
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
	}
	if publisher != nil {
		defer publisher.Close()
	}

	opts := app.LedgerOptions{
		Config:             cfg.Ledger,
		Cache:              app.BalanceCache(redisClient, cfg.Redis),
		Publisher:          publisher,
		Clock:              clock,
		AccrualUnitTimeout: cfg.Accrual.UnitTimeout,
	}
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

	health := sweeper.NewHealthStore(dataStore)

	sweepers := []sweeper.Sweeper{
		sweeper.NewAccrualSweeper(sweeper.AccrualSweeperConfig{
			Schedule:        cfg.Accrual.Schedule,
			BatchSize:       cfg.Accrual.BatchSize,
			WorkerPoolSize:  cfg.Accrual.Worker.WorkerPoolSize,
			WorkerQueueSize: cfg.Accrual.Worker.WorkerQueueSize,
		}, dataStore, components.Accruer, health, clock),
	}
	logger.InfoCtx(ctx, "Initialized accrual sweeper",
		zap.String("schedule", cfg.Accrual.Schedule),
		zap.Int("batch_size", cfg.Accrual.BatchSize),
		zap.Int("worker_pool_size", cfg.Accrual.Worker.WorkerPoolSize),
	)

	if cfg.Reconciliation.Enabled {
		sweepers = append(sweepers, sweeper.NewReconciliationSweeper(sweeper.ReconciliationSweeperConfig{
			Schedule:        cfg.Reconciliation.Schedule,
			BatchSize:       cfg.Reconciliation.BatchSize,
			Timeout:         cfg.Reconciliation.Timeout,
			WorkerPoolSize:  cfg.Reconciliation.Worker.WorkerPoolSize,
			WorkerQueueSize: cfg.Reconciliation.Worker.WorkerQueueSize,
		}, dataStore, components.Ledger, health, clock))
		logger.InfoCtx(ctx, "Initialized reconciliation sweeper", zap.String("schedule", cfg.Reconciliation.Schedule))
	}

	errChan := make(chan error, len(sweepers)+1)

	metricsServer := metrics.NewServer(cfg.Metrics.Address)
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	var wg sync.WaitGroup
	for _, s := range sweepers {
		wg.Add(1)
		go func(s sweeper.Sweeper) {
			defer wg.Done()
			if err := s.Start(ctx); err != nil {
				errChan <- fmt.Errorf("%s: %w", s.Name(), err)
			}
		}(s)
	}

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop waits for in-flight ticks before the context is canceled
	for _, s := range sweepers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.ErrorCtx(shutdownCtx, err, zap.String("sweeper", s.Name()))
		}
	}
	cancel()
	wg.Wait()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, zap.String("component", "metrics"))
	}

	logger.InfoCtx(shutdownCtx, "Scheduler stopped")
}
