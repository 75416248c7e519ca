package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/feral-file/ff-yield-ledger/internal/accrual"
	"github.com/feral-file/ff-yield-ledger/internal/adapter"
	"github.com/feral-file/ff-yield-ledger/internal/cache"
	"github.com/feral-file/ff-yield-ledger/internal/commission"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/messaging"
	"github.com/feral-file/ff-yield-ledger/internal/referral"
	"github.com/feral-file/ff-yield-ledger/internal/store"
	"github.com/feral-file/ff-yield-ledger/internal/store/schema"
)

// CreditDepositInput is an externally confirmed deposit
type CreditDepositInput struct {
	UserID         uint64
	Currency       domain.Currency
	Amount         decimal.Decimal
	IdempotencyKey string
	Metadata       map[string]interface{}
}

// WriteResult is the outcome of an idempotent ledger write
type WriteResult struct {
	Transaction *schema.Transaction
	// Created is false when the idempotency key was already used; nothing was written
	Created bool
}

// CreditResult is the outcome of crediting an external deposit
type CreditResult struct {
	WriteResult
	// KeyFlagged is true when the idempotency key is not a transaction hash
	KeyFlagged bool
	// Commissions is set when commissions were written in the same database transaction
	Commissions *commission.Result
}

// FarmingResult is the outcome of a farming deposit or close
type FarmingResult struct {
	WriteResult
	Position *schema.FarmingPosition
	// Settled is the yield credited up to the moment the position changed, if any
	Settled *schema.Transaction
}

// AuditResult compares the materialized balance with the ledger replay
type AuditResult struct {
	UserID       uint64
	Currency     domain.Currency
	Materialized decimal.Decimal
	Ledger       decimal.Decimal
	Diverged     bool
}

// Ledger is the entry point for every balance-changing operation
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// RegisterUser creates a user and materializes its referral chain
	RegisterUser(ctx context.Context, userID uint64, inviterCode *string) (*schema.User, error)
	// CreditExternalDeposit credits a confirmed deposit exactly once per idempotency key
	CreditExternalDeposit(ctx context.Context, input CreditDepositInput) (*CreditResult, error)
	// GetBalance returns the materialized balance
	GetBalance(ctx context.Context, userID uint64, currency domain.Currency) (decimal.Decimal, error)
	// Reconcile replays the ledger and returns the sum of completed rows
	Reconcile(ctx context.Context, userID uint64, currency domain.Currency) (decimal.Decimal, error)
	// Audit compares GetBalance with Reconcile and raises an alert on divergence
	Audit(ctx context.Context, userID uint64, currency domain.Currency) (*AuditResult, error)
	// ListTransactions lists ledger rows with the total matching count
	ListTransactions(ctx context.Context, filter store.TransactionFilter) ([]schema.Transaction, uint64, error)
	// RequestWithdrawal reserves funds with a pending WITHDRAWAL
	RequestWithdrawal(ctx context.Context, userID uint64, currency domain.Currency, amount decimal.Decimal, idempotencyKey string) (*WriteResult, error)
	// CompleteTransaction moves a pending row to completed and applies its balance effect
	CompleteTransaction(ctx context.Context, id uint64) (*schema.Transaction, error)
	// CancelTransaction moves a pending row to cancelled
	CancelTransaction(ctx context.Context, id uint64) (*schema.Transaction, error)
	// FarmingProducts lists the farming catalogue ordered by id
	FarmingProducts() []domain.FarmingProduct
	// DepositToFarming moves balance into the user's position in a farming product
	DepositToFarming(ctx context.Context, userID uint64, productID string, amount decimal.Decimal, idempotencyKey string) (*FarmingResult, error)
	// CloseFarmingPosition settles and refunds the user's position in a farming product
	CloseFarmingPosition(ctx context.Context, userID uint64, productID string, idempotencyKey string) (*FarmingResult, error)
	// PropagateCommissions re-runs commission propagation for a source transaction
	PropagateCommissions(ctx context.Context, sourceTransactionID uint64) (*commission.Result, error)
}

// Deps holds the collaborators of the ledger service
type Deps struct {
	Store      store.Store
	ChainIndex referral.ChainIndex
	Propagator commission.Propagator
	Trigger    *commission.Trigger
	Accruer    accrual.Accruer
	Cache      cache.BalanceCache
	Publisher  messaging.Publisher
	Clock      adapter.Clock
	Scales     domain.CurrencyScales
	Products   domain.FarmingCatalog
}

type service struct {
	Deps
	balanceGroup singleflight.Group
}

// NewService creates the ledger service. Cache and Publisher are optional.
func NewService(deps Deps) (Ledger, error) {
	switch {
	case deps.Store == nil:
		return nil, fmt.Errorf("ledger requires a store")
	case deps.ChainIndex == nil, deps.Propagator == nil, deps.Trigger == nil, deps.Accruer == nil:
		return nil, fmt.Errorf("ledger requires referral, commission and accrual components")
	case deps.Clock == nil:
		return nil, fmt.Errorf("ledger requires a clock")
	case len(deps.Scales) == 0:
		return nil, fmt.Errorf("ledger requires currency scales")
	case len(deps.Products) == 0:
		return nil, fmt.Errorf("ledger requires a farming catalogue")
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewNoopBalanceCache()
	}
	return &service{Deps: deps}, nil
}

func (s *service) RegisterUser(ctx context.Context, userID uint64, inviterCode *string) (*schema.User, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user id is required")
	}
	return s.ChainIndex.Register(ctx, userID, inviterCode)
}

func (s *service) FarmingProducts() []domain.FarmingProduct {
	return s.Products.Products()
}

func (s *service) ListTransactions(ctx context.Context, filter store.TransactionFilter) ([]schema.Transaction, uint64, error) {
	return s.Store.ListTransactions(ctx, filter)
}

func (s *service) PropagateCommissions(ctx context.Context, sourceTransactionID uint64) (*commission.Result, error) {
	result, err := s.Propagator.Resume(ctx, sourceTransactionID)
	if err != nil {
		return nil, err
	}

	if len(result.Credited) > 0 {
		source, err := s.Store.GetTransactionByID(ctx, sourceTransactionID)
		if err == nil && source != nil {
			s.invalidate(ctx, source.Currency, result.Credited...)
		}
	}
	return result, nil
}

// afterCommit runs the effects of a committed write that must not roll it back
func (s *service) afterCommit(ctx context.Context, tx *schema.Transaction, commissions *commission.Result) {
	s.invalidate(ctx, tx.Currency, tx.UserID)
	if commissions != nil {
		s.invalidate(ctx, tx.Currency, commissions.Credited...)
	}
	s.Trigger.AfterCommit(ctx, tx)
}

func (s *service) invalidate(ctx context.Context, currency domain.Currency, userIDs ...uint64) {
	for _, userID := range userIDs {
		if err := s.Cache.Invalidate(ctx, userID, currency); err != nil {
			logger.WarnCtx(ctx, "Failed to invalidate cached balance",
				zap.Uint64("userID", userID),
				zap.String("currency", string(currency)),
				zap.Error(err))
		}
	}
}

func (s *service) now() time.Time {
	return s.Clock.Now()
}

// existingWrite returns the row already written under key, checking it belongs to the same operation
func (s *service) existingWrite(ctx context.Context, key string, userID uint64, kind domain.TransactionKind, currency domain.Currency) (*schema.Transaction, error) {
	existing, err := s.Store.GetTransactionByIdempotencyKey(ctx, key)
	if err != nil || existing == nil {
		return nil, err
	}
	if existing.UserID != userID || existing.Kind != kind || existing.Currency != currency {
		return nil, fmt.Errorf("%w: key %q belongs to transaction %d", domain.ErrIdempotencyKeyConflict, key, existing.ID)
	}
	return existing, nil
}
