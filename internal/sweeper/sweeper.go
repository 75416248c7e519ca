package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/robfig/cron"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/adapter"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
)

// Sweeper defines the interface for sweeper implementations
// Sweepers are long-running background tasks that perform periodic maintenance
type Sweeper interface {
	// Start schedules the sweeper on its cron cadence
	// This is a blocking call that runs until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop gracefully stops the sweeper
	// This should wait for any in-progress work to complete
	Stop(ctx context.Context) error

	// Tick runs one sweep immediately. It returns an error without sweeping if a tick is in flight.
	Tick(ctx context.Context) (*SchedulerHealth, error)

	// Name returns the sweeper's name for logging and identification
	Name() string
}

const (
	defaultBatchSize      = 500
	defaultWorkerPoolSize = 8
)

// ErrTickInFlight is returned by Tick when the previous tick has not finished
var ErrTickInFlight = errors.New("tick already in flight")

// sweepFunc runs one sweep and fills the counters
type sweepFunc func(ctx context.Context, tickID string, counters *tickCounters) error

// scheduled runs a sweepFunc on a cron schedule and records a health snapshot after every tick
type scheduled struct {
	name     string
	schedule string
	sweep    sweepFunc
	health   HealthStore
	clock    adapter.Clock

	running  atomic.Bool
	inFlight atomic.Bool
	ticks    sync.WaitGroup
	stopCh   chan struct{}
	stopped  chan struct{}
}

func newScheduled(name, schedule string, sweep sweepFunc, health HealthStore, clock adapter.Clock) *scheduled {
	return &scheduled{
		name:     name,
		schedule: schedule,
		sweep:    sweep,
		health:   health,
		clock:    clock,
		stopCh:   make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (s *scheduled) Name() string {
	return s.name
}

func (s *scheduled) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper %s already running", s.name)
	}
	defer close(s.stopped)

	c := cron.NewWithLocation(time.UTC)
	if err := c.AddFunc(s.schedule, func() {
		if _, err := s.Tick(ctx); err != nil && !errors.Is(err, ErrTickInFlight) {
			logger.ErrorCtx(ctx, err, zap.String("sweeper", s.name))
		}
	}); err != nil {
		s.running.Store(false)
		return fmt.Errorf("invalid schedule %q for %s: %w", s.schedule, s.name, err)
	}

	logger.InfoCtx(ctx, "Starting sweeper", zap.String("sweeper", s.name), zap.String("schedule", s.schedule))
	c.Start()

	select {
	case <-ctx.Done():
		logger.InfoCtx(ctx, "Sweeper stopping due to context cancellation", zap.String("sweeper", s.name))
	case <-s.stopCh:
		logger.InfoCtx(ctx, "Sweeper stop requested", zap.String("sweeper", s.name))
	}

	c.Stop()
	s.ticks.Wait()
	s.running.Store(false)
	return nil
}

func (s *scheduled) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	select {
	case <-s.stopped:
		logger.InfoCtx(ctx, "Sweeper stopped gracefully", zap.String("sweeper", s.name))
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Sweeper stop interrupted by context timeout", zap.String("sweeper", s.name))
		return ctx.Err()
	}
}

func (s *scheduled) Tick(ctx context.Context) (*SchedulerHealth, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		logger.WarnCtx(ctx, "Previous tick still running, skipping", zap.String("sweeper", s.name))
		return nil, ErrTickInFlight
	}
	s.ticks.Add(1)
	defer func() {
		s.inFlight.Store(false)
		s.ticks.Done()
	}()

	tickID := ulid.Make().String()
	startedAt := s.clock.Now()
	counters := &tickCounters{}

	logger.InfoCtx(ctx, "Starting tick", zap.String("sweeper", s.name), zap.String("tickID", tickID))
	sweepErr := s.sweep(ctx, tickID, counters)

	report := TickReport{
		TickID:    tickID,
		StartedAt: startedAt,
		Duration:  s.clock.Since(startedAt),
		Stats:     counters.snapshot(),
		Err:       sweepErr,
	}

	logger.InfoCtx(ctx, "Tick completed",
		zap.String("sweeper", s.name),
		zap.String("tickID", tickID),
		zap.Duration("duration", report.Duration),
		zap.Int64("processed", report.Stats.Processed),
		zap.Int64("accrued", report.Stats.Accrued),
		zap.Int64("skipped", report.Stats.Skipped),
		zap.Int64("locked", report.Stats.Locked),
		zap.Int64("failed", report.Stats.Failed),
		zap.Int64("diverged", report.Stats.Diverged))

	// The snapshot is best effort; the sweep result stands either way
	health, err := s.health.RecordTick(ctx, s.name, report)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to record %s health: %w", s.name, err), zap.String("tickID", tickID))
	}

	if sweepErr != nil {
		return health, fmt.Errorf("%s tick %s failed: %w", s.name, tickID, sweepErr)
	}
	return health, nil
}

// tickCounters is shared by the workers of one tick
type tickCounters struct {
	processed atomic.Int64
	accrued   atomic.Int64
	skipped   atomic.Int64
	locked    atomic.Int64
	failed    atomic.Int64
	diverged  atomic.Int64
}

func (c *tickCounters) snapshot() TickStats {
	return TickStats{
		Processed: c.processed.Load(),
		Accrued:   c.accrued.Load(),
		Skipped:   c.skipped.Load(),
		Locked:    c.locked.Load(),
		Failed:    c.failed.Load(),
		Diverged:  c.diverged.Load(),
	}
}
