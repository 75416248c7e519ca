package sweeper

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/store"
)

const (
	healthKeyPrefix = "scheduler_health:"

	// healthWriteRetries bounds the snapshot write; a lost snapshot is replaced by the next tick
	healthWriteRetries = 3
)

// TickStats counts what one tick did
type TickStats struct {
	Processed int64 `json:"processed"`
	Accrued   int64 `json:"accrued"`
	Skipped   int64 `json:"skipped"`
	Locked    int64 `json:"locked"`
	Failed    int64 `json:"failed"`
	Diverged  int64 `json:"diverged"`
}

func (s TickStats) add(o TickStats) TickStats {
	return TickStats{
		Processed: s.Processed + o.Processed,
		Accrued:   s.Accrued + o.Accrued,
		Skipped:   s.Skipped + o.Skipped,
		Locked:    s.Locked + o.Locked,
		Failed:    s.Failed + o.Failed,
		Diverged:  s.Diverged + o.Diverged,
	}
}

// TickReport is the result of one tick
type TickReport struct {
	TickID    string
	StartedAt time.Time
	Duration  time.Duration
	Stats     TickStats
	Err       error
}

// succeeded reports whether the tick completed without any failed unit
func (r TickReport) succeeded() bool {
	return r.Err == nil && r.Stats.Failed == 0
}

// SchedulerHealth is the persisted snapshot of a sweeper's recent activity
type SchedulerHealth struct {
	Name           string     `json:"name"`
	LastTickID     string     `json:"last_tick_id"`
	LastTickAt     *time.Time `json:"last_tick_at"`
	LastSuccessAt  *time.Time `json:"last_success_at"`
	LastDurationMs int64      `json:"last_duration_ms"`
	LastError      string     `json:"last_error,omitempty"`
	Last           TickStats  `json:"last"`
	TotalTicks     int64      `json:"total_ticks"`
	Totals         TickStats  `json:"totals"`
}

// HealthReader reads scheduler health snapshots
//
//go:generate mockgen -source=health.go -destination=../mocks/health.go -package=mocks -mock_names=HealthReader=MockHealthReader,HealthStore=MockHealthStore
type HealthReader interface {
	// GetSchedulerHealth returns the latest snapshot of the named sweeper, or nil if it never ticked
	GetSchedulerHealth(ctx context.Context, name string) (*SchedulerHealth, error)
}

// HealthStore persists scheduler health snapshots
type HealthStore interface {
	HealthReader
	// RecordTick folds a tick into the named sweeper's snapshot and saves it
	RecordTick(ctx context.Context, name string, report TickReport) (*SchedulerHealth, error)
}

type kvHealthStore struct {
	store store.Store
}

// NewHealthStore creates a health store backed by the key-value table
func NewHealthStore(st store.Store) HealthStore {
	return &kvHealthStore{store: st}
}

func healthKey(name string) string {
	return healthKeyPrefix + name
}

func (h *kvHealthStore) GetSchedulerHealth(ctx context.Context, name string) (*SchedulerHealth, error) {
	value, err := h.store.GetKeyValue(ctx, healthKey(name))
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}

	var health SchedulerHealth
	if err := json.Unmarshal([]byte(value), &health); err != nil {
		return nil, fmt.Errorf("failed to decode %s health: %w", name, err)
	}
	return &health, nil
}

func (h *kvHealthStore) RecordTick(ctx context.Context, name string, report TickReport) (*SchedulerHealth, error) {
	health, err := h.GetSchedulerHealth(ctx, name)
	if err != nil {
		// Start over rather than lose the current tick
		logger.WarnCtx(ctx, "Discarding unreadable health snapshot", zap.String("sweeper", name), zap.Error(err))
		health = nil
	}
	if health == nil {
		health = &SchedulerHealth{Name: name}
	}

	tickAt := report.StartedAt
	health.LastTickID = report.TickID
	health.LastTickAt = &tickAt
	health.LastDurationMs = report.Duration.Milliseconds()
	health.Last = report.Stats
	health.TotalTicks++
	health.Totals = health.Totals.add(report.Stats)
	health.LastError = ""
	if report.Err != nil {
		health.LastError = report.Err.Error()
	}
	if report.succeeded() {
		health.LastSuccessAt = &tickAt
	}

	data, err := json.Marshal(health)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s health: %w", name, err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), healthWriteRetries), ctx)
	operation := func() error {
		return h.store.SetKeyValue(ctx, healthKey(name), string(data))
	}
	notify := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Health snapshot write failed, retrying",
			zap.String("sweeper", name),
			zap.Error(err),
			zap.Duration("next_retry_in", next))
	}
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		return health, err
	}
	return health, nil
}
