package accrual

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/adapter"
	"github.com/feral-file/ff-yield-ledger/internal/cache"
	"github.com/feral-file/ff-yield-ledger/internal/commission"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/metrics"
	"github.com/feral-file/ff-yield-ledger/internal/store"
	"github.com/feral-file/ff-yield-ledger/internal/store/schema"
)

// Metadata keys written on yield rows
const (
	MetadataPositionID    = "position_id"
	MetadataProductID     = "product_id"
	MetadataAccruedFrom   = "accrued_from"
	MetadataAccruedTo     = "accrued_to"
	MetadataRate          = "rate"
	MetadataDepositAmount = "deposit_amount"
)

// Status is the outcome of accruing one position
type Status string

const (
	// StatusAccrued means a yield row was written, or already existed for the same interval
	StatusAccrued Status = metrics.OutcomeAccrued
	// StatusSkipped means the accrual truncated to zero; last_accrual_at was left untouched
	StatusSkipped Status = metrics.OutcomeSkipped
	// StatusLocked means another transaction holds the position, or it is no longer accruable
	StatusLocked Status = metrics.OutcomeLocked
)

// Outcome describes what accruing a position did
type Outcome struct {
	Status      Status
	Amount      decimal.Decimal
	Transaction *schema.Transaction
	// Created is false when the yield row for this interval already existed
	Created bool
}

// Accruer credits farming yield
//
//go:generate mockgen -source=accruer.go -destination=../mocks/accruer.go -package=mocks -mock_names=Accruer=MockAccruer
type Accruer interface {
	// AccruePosition runs one position's read-compute-write cycle in its own database transaction
	AccruePosition(ctx context.Context, positionID uint64) (*Outcome, error)
	// Settle credits the accrual of a position the caller already locked, up to now.
	// It must run inside the caller's transaction; a zero accrual writes nothing.
	Settle(ctx context.Context, position *schema.FarmingPosition, now time.Time) (*Outcome, error)
}

type accruer struct {
	store       store.Store
	scales      domain.CurrencyScales
	clock       adapter.Clock
	trigger     *commission.Trigger
	cache       cache.BalanceCache
	unitTimeout time.Duration
}

// NewAccruer creates an accruer. A zero unitTimeout disables the per-position deadline.
func NewAccruer(
	st store.Store,
	scales domain.CurrencyScales,
	clock adapter.Clock,
	trigger *commission.Trigger,
	balanceCache cache.BalanceCache,
	unitTimeout time.Duration,
) Accruer {
	if balanceCache == nil {
		balanceCache = cache.NewNoopBalanceCache()
	}
	return &accruer{
		store:       st,
		scales:      scales,
		clock:       clock,
		trigger:     trigger,
		cache:       balanceCache,
		unitTimeout: unitTimeout,
	}
}

func (a *accruer) AccruePosition(ctx context.Context, positionID uint64) (*Outcome, error) {
	if a.unitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.unitTimeout)
		defer cancel()
	}

	now := a.clock.Now()

	var (
		outcome    *Outcome
		propagated *commission.Result
	)
	err := a.store.Transaction(ctx, func(ctx context.Context) error {
		position, err := a.store.LockAccruablePosition(ctx, positionID)
		if err != nil {
			return err
		}
		if position == nil {
			outcome = &Outcome{Status: StatusLocked}
			return nil
		}

		outcome, err = a.Settle(ctx, position, now)
		if err != nil {
			return err
		}
		if outcome.Status != StatusAccrued {
			return nil
		}

		if err := a.store.UpdateFarmingPosition(ctx, position.ID, store.FarmingPositionUpdate{
			LastAccrualAt: &now,
		}); err != nil {
			return err
		}

		if outcome.Created {
			propagated, err = a.trigger.InTransaction(ctx, outcome.Transaction)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to accrue position %d: %w", positionID, err)
	}

	if outcome.Status == StatusAccrued && outcome.Created {
		metrics.LedgerTransactionsTotal.WithLabelValues(string(domain.TransactionKindYieldReward), string(outcome.Transaction.Currency)).Inc()
		a.invalidate(ctx, outcome.Transaction.UserID, outcome.Transaction.Currency)
		if propagated != nil {
			for _, userID := range propagated.Credited {
				a.invalidate(ctx, userID, outcome.Transaction.Currency)
			}
		}
		a.trigger.AfterCommit(ctx, outcome.Transaction)
	}

	return outcome, nil
}

func (a *accruer) Settle(ctx context.Context, position *schema.FarmingPosition, now time.Time) (*Outcome, error) {
	scale, err := a.scales.Scale(position.Currency)
	if err != nil {
		return nil, err
	}

	amount := Calculate(position, now, scale)
	if !amount.IsPositive() {
		logger.DebugCtx(ctx, "Accrual truncated to zero, skipping position",
			zap.Uint64("positionID", position.ID),
			zap.Duration("elapsed", now.Sub(position.LastAccrualAt)))
		return &Outcome{Status: StatusSkipped, Amount: decimal.Zero}, nil
	}

	key := domain.YieldKey(position.ID, position.LastAccrualAt)
	res, err := a.store.InsertTransaction(ctx, store.InsertTransactionInput{
		UserID:         position.UserID,
		Kind:           domain.TransactionKindYieldReward,
		Currency:       position.Currency,
		Amount:         amount,
		Status:         domain.TransactionStatusCompleted,
		IdempotencyKey: &key,
		Metadata: map[string]interface{}{
			MetadataPositionID:    position.ID,
			MetadataProductID:     position.ProductID,
			MetadataAccruedFrom:   position.LastAccrualAt.UTC().Format(time.RFC3339Nano),
			MetadataAccruedTo:     now.UTC().Format(time.RFC3339Nano),
			MetadataRate:          position.Rate.String(),
			MetadataDepositAmount: position.DepositAmount.String(),
		},
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if !res.Created {
		logger.WarnCtx(ctx, "Yield for interval already credited",
			zap.Uint64("positionID", position.ID),
			zap.String("key", key))
	}

	return &Outcome{
		Status:      StatusAccrued,
		Amount:      res.Transaction.Amount,
		Transaction: res.Transaction,
		Created:     res.Created,
	}, nil
}

func (a *accruer) invalidate(ctx context.Context, userID uint64, currency domain.Currency) {
	if err := a.cache.Invalidate(ctx, userID, currency); err != nil {
		logger.WarnCtx(ctx, "Failed to invalidate cached balance",
			zap.Uint64("userID", userID),
			zap.String("currency", string(currency)),
			zap.Error(err))
	}
}
