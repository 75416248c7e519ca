// Package app assembles the ledger components shared by every binary
package app

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-yield-ledger/internal/accrual"
	"github.com/feral-file/ff-yield-ledger/internal/adapter"
	"github.com/feral-file/ff-yield-ledger/internal/cache"
	"github.com/feral-file/ff-yield-ledger/internal/commission"
	"github.com/feral-file/ff-yield-ledger/internal/config"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/ledger"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/messaging"
	"github.com/feral-file/ff-yield-ledger/internal/providers/jetstream"
	"github.com/feral-file/ff-yield-ledger/internal/providers/temporal"
	"github.com/feral-file/ff-yield-ledger/internal/referral"
	"github.com/feral-file/ff-yield-ledger/internal/store"
	"github.com/feral-file/ff-yield-ledger/internal/workflows"
)

// LedgerOptions holds what BuildLedger needs beyond the store
type LedgerOptions struct {
	Config config.LedgerConfig
	// Orchestrator starts commission workflows; required in deferred mode
	Orchestrator        temporal.TemporalOrchestrator
	CommissionTaskQueue string
	// Cache and Publisher are optional
	Cache              cache.BalanceCache
	Publisher          messaging.Publisher
	Clock              adapter.Clock
	AccrualUnitTimeout time.Duration
}

// Components are the assembled ledger and the parts binaries use directly
type Components struct {
	Ledger  ledger.Ledger
	Accruer accrual.Accruer
	Trigger *commission.Trigger
	Scales  domain.CurrencyScales
}

// BuildLedger wires the referral, commission and accrual components into a ledger service
func BuildLedger(st store.Store, opts LedgerOptions) (*Components, error) {
	scales, err := opts.Config.CurrencyScales()
	if err != nil {
		return nil, fmt.Errorf("invalid currencies: %w", err)
	}
	rates, err := opts.Config.CommissionRates()
	if err != nil {
		return nil, fmt.Errorf("invalid commission rates: %w", err)
	}
	products, err := opts.Config.FarmingCatalog()
	if err != nil {
		return nil, fmt.Errorf("invalid farming products: %w", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = adapter.NewClock()
	}
	balanceCache := opts.Cache
	if balanceCache == nil {
		balanceCache = cache.NewNoopBalanceCache()
	}

	var deferrer commission.Deferrer
	if opts.Config.Commission.Mode == domain.CommissionModeDeferred {
		if opts.Orchestrator == nil || opts.CommissionTaskQueue == "" {
			return nil, fmt.Errorf("deferred commission mode requires temporal and a commission task queue")
		}
		deferrer = workflows.NewCommissionDeferrer(opts.Orchestrator, opts.CommissionTaskQueue)
	}

	propagator := commission.NewPropagator(st, rates, scales)
	trigger, err := commission.NewTrigger(opts.Config.Commission.Mode, propagator, deferrer)
	if err != nil {
		return nil, err
	}
	accruer := accrual.NewAccruer(st, scales, clock, trigger, balanceCache, opts.AccrualUnitTimeout)

	l, err := ledger.NewService(ledger.Deps{
		Store:      st,
		ChainIndex: referral.NewChainIndex(st, nil),
		Propagator: propagator,
		Trigger:    trigger,
		Accruer:    accruer,
		Cache:      balanceCache,
		Publisher:  opts.Publisher,
		Clock:      clock,
		Scales:     scales,
		Products:   products,
	})
	if err != nil {
		return nil, err
	}

	return &Components{
		Ledger:  l,
		Accruer: accruer,
		Trigger: trigger,
		Scales:  scales,
	}, nil
}

// OpenStore connects to postgres and configures the connection pool
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (store.Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := store.ConfigureConnectionPool(db, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime); err != nil {
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.String("host", cfg.Host),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)

	return store.NewPGStore(db), nil
}

// ConnectRedis returns a connected client, or nil when redis.addr is empty
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (adapter.RedisClient, error) {
	if cfg.Addr == "" {
		logger.WarnCtx(ctx, "Redis not configured, balance cache disabled")
		return nil, nil
	}

	rc := adapter.NewRedisClient(cfg.Addr, cfg.Password, cfg.DB)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	logger.InfoCtx(ctx, "Connected to Redis", zap.String("addr", cfg.Addr))
	return rc, nil
}

// BalanceCache returns the redis cache for a connected client and the no-op cache otherwise
func BalanceCache(rc adapter.RedisClient, cfg config.RedisConfig) cache.BalanceCache {
	if rc == nil {
		return cache.NewNoopBalanceCache()
	}
	return cache.NewRedisBalanceCache(rc, cfg.BalanceTTL)
}

// ConnectPublisher returns a JetStream publisher, or nil when nats.url is empty
func ConnectPublisher(ctx context.Context, cfg config.NATSConfig, service string) (messaging.Publisher, error) {
	if cfg.URL == "" {
		logger.WarnCtx(ctx, "NATS not configured, divergence alerts will only be logged")
		return nil, nil
	}

	name := cfg.ConnectionName
	if name == "" {
		name = "ff-yield-ledger-" + service
	}
	publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
		URL:            cfg.URL,
		StreamName:     cfg.StreamName,
		MaxReconnects:  cfg.MaxReconnects,
		ReconnectWait:  cfg.ReconnectWait,
		ConnectionName: name,
		PublishRetries: 3,
	}, adapter.NewNatsJetStream())
	if err != nil {
		return nil, err
	}
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.URL), zap.String("stream", cfg.StreamName))
	return publisher, nil
}

// DialTemporal connects to Temporal with the zap logger adapter
func DialTemporal(ctx context.Context, cfg config.TemporalConfig) (client.Client, error) {
	c, err := client.Dial(client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
		Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to temporal: %w", err)
	}
	logger.InfoCtx(ctx, "Connected to Temporal",
		zap.String("host_port", cfg.HostPort),
		zap.String("namespace", cfg.Namespace),
	)
	return c, nil
}
