package ledger

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/commission"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/metrics"
	"github.com/feral-file/ff-yield-ledger/internal/store"
)

// CreditExternalDeposit credits a confirmed deposit. Resubmitting the same idempotency key
// returns the first transaction with Created=false and has no balance effect.
func (s *service) CreditExternalDeposit(ctx context.Context, input CreditDepositInput) (*CreditResult, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" {
		return nil, domain.ErrMissingIdempotencyKey
	}
	if err := s.Scales.ValidateAmount(input.Currency, input.Amount); err != nil {
		return nil, err
	}

	user, err := s.Store.GetUserByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrUserNotFound, input.UserID)
	}

	metadata := make(map[string]interface{}, len(input.Metadata)+2)
	maps.Copy(metadata, input.Metadata)

	flagged, reason := domain.CheckKeyStrength(key)
	if flagged {
		metadata[domain.METADATA_KEY_FLAGGED] = true
		metadata[domain.METADATA_KEY_FLAG_REASON] = reason
	}

	var result *CreditResult
	err = s.Store.Transaction(ctx, func(ctx context.Context) error {
		res, err := s.Store.InsertTransaction(ctx, store.InsertTransactionInput{
			UserID:         input.UserID,
			Kind:           domain.TransactionKindDeposit,
			Currency:       input.Currency,
			Amount:         input.Amount,
			Status:         domain.TransactionStatusCompleted,
			IdempotencyKey: &key,
			Metadata:       metadata,
			CreatedAt:      s.now(),
		})
		if err != nil {
			return err
		}

		result = &CreditResult{
			WriteResult: WriteResult{Transaction: res.Transaction, Created: res.Created},
			KeyFlagged:  flagged,
		}
		if !res.Created {
			return nil
		}

		result.Commissions, err = s.Trigger.InTransaction(ctx, res.Transaction)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to credit deposit: %w", err)
	}

	if !result.Created {
		metrics.LedgerDuplicatesTotal.WithLabelValues(string(domain.TransactionKindDeposit)).Inc()
		logger.InfoCtx(ctx, "Duplicate deposit submission",
			zap.String("key", key),
			zap.Uint64("transactionID", result.Transaction.ID))
		return result, nil
	}

	if flagged {
		metrics.LedgerFlaggedKeysTotal.Inc()
		logger.WarnCtx(ctx, "Accepted deposit with weak idempotency key",
			zap.String("key", key),
			zap.String("reason", reason),
			zap.Uint64("transactionID", result.Transaction.ID))
	}

	metrics.LedgerTransactionsTotal.WithLabelValues(string(domain.TransactionKindDeposit), string(input.Currency)).Inc()
	s.afterCommit(ctx, result.Transaction, result.Commissions)

	logger.InfoCtx(ctx, "Credited deposit",
		zap.Uint64("userID", input.UserID),
		zap.String("currency", string(input.Currency)),
		zap.String("amount", input.Amount.String()),
		zap.Uint64("transactionID", result.Transaction.ID),
		zap.Int("commissions", commissionCount(result.Commissions)))

	return result, nil
}

func commissionCount(r *commission.Result) int {
	if r == nil {
		return 0
	}
	return r.Created
}
