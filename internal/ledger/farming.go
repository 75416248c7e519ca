package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/accrual"
	"github.com/feral-file/ff-yield-ledger/internal/commission"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/metrics"
	"github.com/feral-file/ff-yield-ledger/internal/store"
	"github.com/feral-file/ff-yield-ledger/internal/store/schema"
)

const metadataPurpose = "purpose"

// errWriteRecorded rolls back a farming change whose idempotency key was taken concurrently
var errWriteRecorded = errors.New("farming write already recorded")

// settlement is the yield credited while a position was locked for a change
type settlement struct {
	outcome     *accrual.Outcome
	commissions *commission.Result
}

func (st *settlement) transaction() *schema.Transaction {
	if st == nil || st.outcome == nil || !st.outcome.Created {
		return nil
	}
	return st.outcome.Transaction
}

// settle credits accrual on a locked, active position up to now. Must run inside a transaction.
func (s *service) settle(ctx context.Context, position *schema.FarmingPosition, now time.Time) (*settlement, error) {
	if !position.Active || !position.DepositAmount.IsPositive() {
		return &settlement{}, nil
	}

	outcome, err := s.Accruer.Settle(ctx, position, now)
	if err != nil {
		return nil, err
	}

	st := &settlement{outcome: outcome}
	if outcome.Created {
		st.commissions, err = s.Trigger.InTransaction(ctx, outcome.Transaction)
		if err != nil {
			return nil, err
		}
	}
	return st, nil
}

// settleTime is the instant a locked position is settled up to. It never moves last_accrual_at backwards.
func (s *service) settleTime(position *schema.FarmingPosition) time.Time {
	now := s.now()
	if now.Before(position.LastAccrualAt) {
		return position.LastAccrualAt
	}
	return now
}

// existingFarmingWrite returns the row already written under key for the same product
func (s *service) existingFarmingWrite(ctx context.Context, key string, userID uint64, kind domain.TransactionKind, currency domain.Currency, productID string) (*schema.Transaction, error) {
	existing, err := s.existingWrite(ctx, key, userID, kind, currency)
	if err != nil || existing == nil {
		return existing, err
	}
	if id, _ := existing.MetadataMap()[accrual.MetadataProductID].(string); id != productID {
		return nil, fmt.Errorf("%w: key %q belongs to product %q", domain.ErrIdempotencyKeyConflict, key, id)
	}
	return existing, nil
}

// DepositToFarming debits the balance with a PURCHASE and adds the amount to the user's position in a product.
// Accrual on the previous principal is settled first, so new principal earns from now on.
func (s *service) DepositToFarming(ctx context.Context, userID uint64, productID string, amount decimal.Decimal, idempotencyKey string) (*FarmingResult, error) {
	key := strings.TrimSpace(idempotencyKey)
	if key == "" {
		return nil, domain.ErrMissingIdempotencyKey
	}
	product, err := s.Products.Product(productID)
	if err != nil {
		return nil, err
	}
	if err := product.ValidateDeposit(amount, s.Scales); err != nil {
		return nil, err
	}

	var (
		result  *FarmingResult
		settled *settlement
	)
	err = s.Store.Transaction(ctx, func(ctx context.Context) error {
		// The position row is locked before the balance row, the same order accrual takes them in
		if _, err := s.Store.CreateFarmingPosition(ctx, store.CreateFarmingPositionInput{
			UserID:        userID,
			ProductID:     product.ID,
			Currency:      product.Currency,
			Rate:          product.DailyRate,
			LastAccrualAt: s.now(),
		}); err != nil {
			return err
		}
		position, err := s.Store.LockFarmingPosition(ctx, userID, product.ID)
		if err != nil {
			return err
		}
		if position == nil {
			return fmt.Errorf("%w: user %d in %s", domain.ErrPositionNotFound, userID, product.ID)
		}

		existing, err := s.existingFarmingWrite(ctx, key, userID, domain.TransactionKindPurchase, product.Currency, product.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = &FarmingResult{WriteResult: WriteResult{Transaction: existing}, Position: position}
			return nil
		}

		available, err := s.availableBalance(ctx, userID, product.Currency)
		if err != nil {
			return err
		}
		if available.LessThan(amount) {
			return fmt.Errorf("%w: available %s, requested %s", domain.ErrInsufficientBalance, available.String(), amount.String())
		}

		now := s.settleTime(position)
		purchase, err := s.Store.InsertTransaction(ctx, store.InsertTransactionInput{
			UserID:         userID,
			Kind:           domain.TransactionKindPurchase,
			Currency:       product.Currency,
			Amount:         amount.Neg(),
			Status:         domain.TransactionStatusCompleted,
			IdempotencyKey: &key,
			Metadata: map[string]interface{}{
				metadataPurpose:            "farming_deposit",
				accrual.MetadataPositionID: position.ID,
				accrual.MetadataProductID:  product.ID,
			},
			CreatedAt: now,
		})
		if err != nil {
			return err
		}
		if !purchase.Created {
			result = &FarmingResult{WriteResult: WriteResult{Transaction: purchase.Transaction}, Position: position}
			return errWriteRecorded
		}

		settled, err = s.settle(ctx, position, now)
		if err != nil {
			return err
		}

		deposit := position.DepositAmount
		if !position.Active {
			deposit = decimal.Zero
		}
		deposit = deposit.Add(amount)
		active := true
		if err := s.Store.UpdateFarmingPosition(ctx, position.ID, store.FarmingPositionUpdate{
			DepositAmount: &deposit,
			Rate:          &product.DailyRate,
			LastAccrualAt: &now,
			Active:        &active,
		}); err != nil {
			return err
		}

		position.DepositAmount = deposit
		position.Rate = product.DailyRate
		position.LastAccrualAt = now
		position.Active = true

		result = &FarmingResult{
			WriteResult: WriteResult{Transaction: purchase.Transaction, Created: true},
			Position:    position,
			Settled:     settled.transaction(),
		}
		return nil
	})
	if errors.Is(err, errWriteRecorded) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to deposit to farming: %w", err)
	}

	s.afterFarmingChange(ctx, result, settled)
	if result.Created {
		metrics.LedgerTransactionsTotal.WithLabelValues(string(domain.TransactionKindPurchase), string(product.Currency)).Inc()
		logger.InfoCtx(ctx, "Deposited to farming",
			zap.Uint64("userID", userID),
			zap.String("productID", product.ID),
			zap.String("amount", amount.String()),
			zap.String("principal", result.Position.DepositAmount.String()))
	}
	return result, nil
}

// CloseFarmingPosition settles the final accrual, refunds the principal and deactivates the position.
// Positions stay closable after their product leaves the catalogue.
func (s *service) CloseFarmingPosition(ctx context.Context, userID uint64, productID string, idempotencyKey string) (*FarmingResult, error) {
	key := strings.TrimSpace(idempotencyKey)
	if key == "" {
		return nil, domain.ErrMissingIdempotencyKey
	}
	if strings.TrimSpace(productID) == "" {
		return nil, fmt.Errorf("%w: empty product id", domain.ErrUnknownFarmingProduct)
	}

	var (
		result  *FarmingResult
		settled *settlement
	)
	err := s.Store.Transaction(ctx, func(ctx context.Context) error {
		position, err := s.Store.LockFarmingPosition(ctx, userID, productID)
		if err != nil {
			return err
		}
		if position == nil {
			return fmt.Errorf("%w: user %d has no %s position", domain.ErrPositionNotFound, userID, productID)
		}

		existing, err := s.existingFarmingWrite(ctx, key, userID, domain.TransactionKindRefund, position.Currency, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = &FarmingResult{WriteResult: WriteResult{Transaction: existing}, Position: position}
			return nil
		}

		if !position.Active || !position.DepositAmount.IsPositive() {
			return fmt.Errorf("%w: user %d has no open %s position", domain.ErrPositionNotFound, userID, productID)
		}

		now := s.settleTime(position)
		settled, err = s.settle(ctx, position, now)
		if err != nil {
			return err
		}

		principal := position.DepositAmount
		refund, err := s.Store.InsertTransaction(ctx, store.InsertTransactionInput{
			UserID:         userID,
			Kind:           domain.TransactionKindRefund,
			Currency:       position.Currency,
			Amount:         principal,
			Status:         domain.TransactionStatusCompleted,
			IdempotencyKey: &key,
			Metadata: map[string]interface{}{
				metadataPurpose:            "farming_close",
				accrual.MetadataPositionID: position.ID,
				accrual.MetadataProductID:  productID,
			},
			CreatedAt: now,
		})
		if err != nil {
			return err
		}
		if !refund.Created {
			result = &FarmingResult{WriteResult: WriteResult{Transaction: refund.Transaction}, Position: position}
			return errWriteRecorded
		}

		zero := decimal.Zero
		inactive := false
		if err := s.Store.UpdateFarmingPosition(ctx, position.ID, store.FarmingPositionUpdate{
			DepositAmount: &zero,
			LastAccrualAt: &now,
			Active:        &inactive,
		}); err != nil {
			return err
		}

		position.DepositAmount = zero
		position.LastAccrualAt = now
		position.Active = false

		result = &FarmingResult{
			WriteResult: WriteResult{Transaction: refund.Transaction, Created: true},
			Position:    position,
			Settled:     settled.transaction(),
		}
		return nil
	})
	if errors.Is(err, errWriteRecorded) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to close farming position: %w", err)
	}

	s.afterFarmingChange(ctx, result, settled)
	if result.Created {
		metrics.LedgerTransactionsTotal.WithLabelValues(string(domain.TransactionKindRefund), string(result.Transaction.Currency)).Inc()
		logger.InfoCtx(ctx, "Closed farming position",
			zap.Uint64("userID", userID),
			zap.String("productID", productID),
			zap.String("refunded", result.Transaction.Amount.String()))
	}
	return result, nil
}

func (s *service) afterFarmingChange(ctx context.Context, result *FarmingResult, settled *settlement) {
	if result.Created {
		s.invalidate(ctx, result.Transaction.Currency, result.Transaction.UserID)
	}
	if tx := settled.transaction(); tx != nil {
		metrics.LedgerTransactionsTotal.WithLabelValues(string(domain.TransactionKindYieldReward), string(tx.Currency)).Inc()
		s.afterCommit(ctx, tx, settled.commissions)
	}
}
