package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/commission"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/metrics"
	"github.com/feral-file/ff-yield-ledger/internal/store"
	"github.com/feral-file/ff-yield-ledger/internal/store/schema"
)

// availableBalance locks the balance row and returns balance + pending debits.
// Must run inside a transaction.
func (s *service) availableBalance(ctx context.Context, userID uint64, currency domain.Currency) (decimal.Decimal, error) {
	balance, err := s.Store.LockBalance(ctx, userID, currency)
	if err != nil {
		return decimal.Zero, err
	}
	pending, err := s.Store.SumPendingDebits(ctx, userID, currency)
	if err != nil {
		return decimal.Zero, err
	}

	available := pending
	if balance != nil {
		available = balance.Amount.Add(pending)
	}
	return available, nil
}

// RequestWithdrawal inserts a pending WITHDRAWAL of -amount. It has no balance effect until
// completed, but reserves the amount against later debits.
func (s *service) RequestWithdrawal(ctx context.Context, userID uint64, currency domain.Currency, amount decimal.Decimal, idempotencyKey string) (*WriteResult, error) {
	key := strings.TrimSpace(idempotencyKey)
	if key == "" {
		return nil, domain.ErrMissingIdempotencyKey
	}
	if err := s.Scales.ValidateAmount(currency, amount); err != nil {
		return nil, err
	}

	var result *WriteResult
	err := s.Store.Transaction(ctx, func(ctx context.Context) error {
		available, err := s.availableBalance(ctx, userID, currency)
		if err != nil {
			return err
		}

		// A retry must not be judged against its own reservation
		existing, err := s.existingWrite(ctx, key, userID, domain.TransactionKindWithdrawal, currency)
		if err != nil {
			return err
		}
		if existing != nil {
			result = &WriteResult{Transaction: existing, Created: false}
			return nil
		}

		if available.LessThan(amount) {
			return fmt.Errorf("%w: available %s, requested %s", domain.ErrInsufficientBalance, available.String(), amount.String())
		}

		res, err := s.Store.InsertTransaction(ctx, store.InsertTransactionInput{
			UserID:         userID,
			Kind:           domain.TransactionKindWithdrawal,
			Currency:       currency,
			Amount:         amount.Neg(),
			Status:         domain.TransactionStatusPending,
			IdempotencyKey: &key,
			CreatedAt:      s.now(),
		})
		if err != nil {
			return err
		}
		result = &WriteResult{Transaction: res.Transaction, Created: res.Created}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request withdrawal: %w", err)
	}

	if result.Created {
		metrics.LedgerTransactionsTotal.WithLabelValues(string(domain.TransactionKindWithdrawal), string(currency)).Inc()
		logger.InfoCtx(ctx, "Requested withdrawal",
			zap.Uint64("userID", userID),
			zap.String("currency", string(currency)),
			zap.String("amount", amount.String()),
			zap.Uint64("transactionID", result.Transaction.ID))
	} else {
		metrics.LedgerDuplicatesTotal.WithLabelValues(string(domain.TransactionKindWithdrawal)).Inc()
	}
	return result, nil
}

// CompleteTransaction moves a pending row to completed exactly once. Completing an already
// completed row returns it unchanged.
func (s *service) CompleteTransaction(ctx context.Context, id uint64) (*schema.Transaction, error) {
	var (
		row         *schema.Transaction
		changed     bool
		commissions *commission.Result
	)
	err := s.Store.Transaction(ctx, func(ctx context.Context) error {
		var err error
		row, changed, err = s.Store.CompleteTransaction(ctx, id, s.now())
		if err != nil {
			return err
		}
		if changed {
			commissions, err = s.Trigger.InTransaction(ctx, row)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete transaction %d: %w", id, err)
	}

	if changed {
		s.afterCommit(ctx, row, commissions)
		logger.InfoCtx(ctx, "Completed transaction",
			zap.Uint64("transactionID", row.ID),
			zap.String("kind", string(row.Kind)))
	}
	return row, nil
}

// CancelTransaction moves a pending row to cancelled; it stays as history and is excluded from balances
func (s *service) CancelTransaction(ctx context.Context, id uint64) (*schema.Transaction, error) {
	row, changed, err := s.Store.CancelTransaction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel transaction %d: %w", id, err)
	}
	if changed {
		logger.InfoCtx(ctx, "Cancelled transaction",
			zap.Uint64("transactionID", row.ID),
			zap.String("kind", string(row.Kind)))
	}
	return row, nil
}
