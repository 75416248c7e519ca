package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/adapter"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/ledger"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/metrics"
	"github.com/feral-file/ff-yield-ledger/internal/store"
)

// ReconciliationSweeperName names the reconciliation sweeper in logs and health snapshots
const ReconciliationSweeperName = "reconciliation"

// Reconciliation results
const (
	reconciliationOK       = "ok"
	reconciliationDiverged = "diverged"
	reconciliationFailed   = "failed"
)

// ReconciliationSweeperConfig holds configuration for the reconciliation sweeper
type ReconciliationSweeperConfig struct {
	Schedule        string
	BatchSize       int           // balances fetched per page
	Timeout         time.Duration // per-balance audit deadline
	WorkerPoolSize  int
	WorkerQueueSize int
}

type reconciliationSweeper struct {
	*scheduled
	config ReconciliationSweeperConfig
	store  store.Store
	ledger ledger.Ledger
}

// NewReconciliationSweeper creates the sweeper that audits every materialized balance against the ledger.
// Divergence is reported by the ledger's audit; nothing is corrected here.
func NewReconciliationSweeper(
	cfg ReconciliationSweeperConfig,
	st store.Store,
	l ledger.Ledger,
	health HealthStore,
	clock adapter.Clock,
) Sweeper {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}
	if cfg.WorkerQueueSize <= 0 {
		cfg.WorkerQueueSize = cfg.BatchSize
	}

	s := &reconciliationSweeper{
		config: cfg,
		store:  st,
		ledger: l,
	}
	s.scheduled = newScheduled(ReconciliationSweeperName, cfg.Schedule, s.sweep, health, clock)
	return s
}

func (s *reconciliationSweeper) sweep(ctx context.Context, tickID string, counters *tickCounters) error {
	pool := pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.WorkerQueueSize),
		pond.WithContext(ctx),
	)

	var cursor *store.BalanceCursor
	for {
		balances, err := s.store.ListBalances(ctx, cursor, s.config.BatchSize)
		if err != nil {
			pool.StopAndWait()
			return fmt.Errorf("failed to list balances: %w", err)
		}

		for _, b := range balances {
			userID, currency := b.UserID, b.Currency
			pool.Submit(func() {
				s.audit(ctx, tickID, userID, currency, counters)
			})
		}

		if len(balances) < s.config.BatchSize {
			break
		}
		last := balances[len(balances)-1]
		cursor = &store.BalanceCursor{UserID: last.UserID, Currency: last.Currency}
	}

	pool.StopAndWait()
	return nil
}

func (s *reconciliationSweeper) audit(ctx context.Context, tickID string, userID uint64, currency domain.Currency, counters *tickCounters) {
	counters.processed.Add(1)

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	result, err := s.ledger.Audit(ctx, userID, currency)
	if err != nil {
		counters.failed.Add(1)
		metrics.ReconciliationRunsTotal.WithLabelValues(reconciliationFailed).Inc()
		logger.ErrorCtx(ctx, err,
			zap.String("tickID", tickID),
			zap.Uint64("userID", userID),
			zap.String("currency", string(currency)))
		return
	}

	if result.Diverged {
		counters.diverged.Add(1)
		metrics.ReconciliationRunsTotal.WithLabelValues(reconciliationDiverged).Inc()
		return
	}
	metrics.ReconciliationRunsTotal.WithLabelValues(reconciliationOK).Inc()
}
