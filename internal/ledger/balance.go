package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/metrics"
)

var errBalanceDiverged = errors.New("materialized balance diverged from ledger")

// GetBalance serves the materialized balance, through the cache when one is configured
func (s *service) GetBalance(ctx context.Context, userID uint64, currency domain.Currency) (decimal.Decimal, error) {
	if _, err := s.Scales.Scale(currency); err != nil {
		return decimal.Zero, err
	}

	lookup, err := s.Cache.Get(ctx, userID, currency)
	cacheable := err == nil
	if err != nil {
		logger.WarnCtx(ctx, "Balance cache unavailable, reading from database", zap.Error(err))
	} else if lookup.Found {
		return lookup.Amount, nil
	}

	key := fmt.Sprintf("%d:%s", userID, currency)
	v, err, _ := s.balanceGroup.Do(key, func() (interface{}, error) {
		balance, err := s.Store.GetBalance(ctx, userID, currency)
		if err != nil {
			return nil, err
		}
		amount := decimal.Zero
		if balance != nil {
			amount = balance.Amount
		}

		// Set is a no-op if the key was invalidated after the generation was read
		if cacheable {
			if err := s.Cache.Set(ctx, userID, currency, amount, lookup.Generation); err != nil {
				logger.WarnCtx(ctx, "Failed to cache balance", zap.Error(err))
			}
		}
		return amount, nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return v.(decimal.Decimal), nil
}

// Reconcile replays the ledger: the sum of completed rows
func (s *service) Reconcile(ctx context.Context, userID uint64, currency domain.Currency) (decimal.Decimal, error) {
	if _, err := s.Scales.Scale(currency); err != nil {
		return decimal.Zero, err
	}
	return s.Store.SumCompletedTransactions(ctx, userID, currency)
}

// Audit compares the materialized balance with the ledger replay under the balance row lock,
// so no writer can commit between the two reads. It never writes to either side.
func (s *service) Audit(ctx context.Context, userID uint64, currency domain.Currency) (*AuditResult, error) {
	if _, err := s.Scales.Scale(currency); err != nil {
		return nil, err
	}

	result := &AuditResult{UserID: userID, Currency: currency}
	err := s.Store.Transaction(ctx, func(ctx context.Context) error {
		balance, err := s.Store.LockBalance(ctx, userID, currency)
		if err != nil {
			return err
		}

		result.Ledger, err = s.Store.SumCompletedTransactions(ctx, userID, currency)
		if err != nil {
			return err
		}

		// Without a row there was nothing to lock; a first write may have landed in between
		if balance == nil && !result.Ledger.IsZero() {
			balance, err = s.Store.GetBalance(ctx, userID, currency)
			if err != nil {
				return err
			}
		}
		if balance != nil {
			result.Materialized = balance.Amount
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to audit balance: %w", err)
	}

	result.Diverged = !result.Materialized.Equal(result.Ledger)
	if result.Diverged {
		s.raiseDivergence(ctx, result)
	}
	return result, nil
}

func (s *service) raiseDivergence(ctx context.Context, result *AuditResult) {
	alert := &domain.DivergenceAlert{
		ID:           ulid.Make().String(),
		UserID:       result.UserID,
		Currency:     result.Currency,
		Materialized: result.Materialized,
		Ledger:       result.Ledger,
		Difference:   result.Materialized.Sub(result.Ledger),
		DetectedAt:   s.now(),
	}

	metrics.BalanceDivergenceTotal.WithLabelValues(string(result.Currency)).Inc()
	logger.ErrorCtx(ctx, errBalanceDiverged,
		zap.String("alertID", alert.ID),
		zap.Uint64("userID", alert.UserID),
		zap.String("currency", string(alert.Currency)),
		zap.String("materialized", alert.Materialized.String()),
		zap.String("ledger", alert.Ledger.String()),
		zap.String("difference", alert.Difference.String()))

	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishDivergence(ctx, alert); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to publish divergence alert: %w", err), zap.String("alertID", alert.ID))
	}
}
