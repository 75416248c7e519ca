package sweeper

import (
	"context"
	"fmt"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/accrual"
	"github.com/feral-file/ff-yield-ledger/internal/adapter"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/metrics"
	"github.com/feral-file/ff-yield-ledger/internal/store"
)

// AccrualSweeperName names the accrual sweeper in logs and health snapshots
const AccrualSweeperName = "accrual"

// AccrualSweeperConfig holds configuration for the accrual sweeper
type AccrualSweeperConfig struct {
	Schedule        string // cron spec, e.g. "@every 5m"
	BatchSize       int    // position IDs fetched per page
	WorkerPoolSize  int    // concurrent positions
	WorkerQueueSize int
}

type accrualSweeper struct {
	*scheduled
	config  AccrualSweeperConfig
	store   store.Store
	accruer accrual.Accruer
	clock   adapter.Clock
}

// NewAccrualSweeper creates the sweeper that credits farming yield on every accruable position
func NewAccrualSweeper(
	cfg AccrualSweeperConfig,
	st store.Store,
	accruer accrual.Accruer,
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

	s := &accrualSweeper{
		config:  cfg,
		store:   st,
		accruer: accruer,
		clock:   clock,
	}
	s.scheduled = newScheduled(AccrualSweeperName, cfg.Schedule, s.sweep, health, clock)
	return s
}

// sweep pages through accruable positions and accrues each on the worker pool.
// A failed position is counted and left for the next tick.
func (s *accrualSweeper) sweep(ctx context.Context, tickID string, counters *tickCounters) error {
	startTime := s.clock.Now()
	defer func() {
		metrics.ObserveAccrualTick(s.clock.Since(startTime))
	}()

	pool := pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.WorkerQueueSize),
		pond.WithContext(ctx),
	)

	var afterID uint64
	for {
		ids, err := s.store.ListAccruablePositionIDs(ctx, afterID, s.config.BatchSize)
		if err != nil {
			pool.StopAndWait()
			return fmt.Errorf("failed to list accruable positions after %d: %w", afterID, err)
		}

		for _, id := range ids {
			positionID := id
			pool.Submit(func() {
				s.accruePosition(ctx, tickID, positionID, counters)
			})
		}

		if len(ids) < s.config.BatchSize {
			break
		}
		afterID = ids[len(ids)-1]
	}

	pool.StopAndWait()
	return nil
}

func (s *accrualSweeper) accruePosition(ctx context.Context, tickID string, positionID uint64, counters *tickCounters) {
	counters.processed.Add(1)

	outcome, err := s.accruer.AccruePosition(ctx, positionID)
	if err != nil {
		counters.failed.Add(1)
		metrics.AccrualPositionsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		logger.ErrorCtx(ctx, err, zap.String("tickID", tickID), zap.Uint64("positionID", positionID))
		return
	}

	metrics.AccrualPositionsTotal.WithLabelValues(string(outcome.Status)).Inc()
	switch outcome.Status {
	case accrual.StatusAccrued:
		counters.accrued.Add(1)
	case accrual.StatusSkipped:
		counters.skipped.Add(1)
		logger.DebugCtx(ctx, "Accrual below minimum unit", zap.Uint64("positionID", positionID))
	case accrual.StatusLocked:
		counters.locked.Add(1)
		logger.DebugCtx(ctx, "Position locked elsewhere", zap.Uint64("positionID", positionID))
	}
}
