package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/store/schema"
)

// CreateUserInput represents the data needed to register a user
type CreateUserInput struct {
	ID            uint64
	ReferralCode  string
	InviterCode   *string
	InviterID     *uint64
	AncestorChain []uint64
}

// InsertTransactionInput represents a ledger row to insert
type InsertTransactionInput struct {
	UserID              uint64
	Kind                domain.TransactionKind
	Currency            domain.Currency
	Amount              decimal.Decimal
	Status              domain.TransactionStatus
	IdempotencyKey      *string
	SourceTransactionID *uint64
	Metadata            map[string]interface{}
	// CreatedAt defaults to the database clock when zero
	CreatedAt time.Time
}

// InsertTransactionResult is the outcome of an idempotent insert
type InsertTransactionResult struct {
	Transaction *schema.Transaction
	// Created is false when a row with the same idempotency key already existed.
	// In that case nothing was written.
	Created bool
}

// TransactionFilter represents filters for listing ledger rows
type TransactionFilter struct {
	UserID              *uint64
	Kinds               []domain.TransactionKind
	Currency            *domain.Currency
	Status              *domain.TransactionStatus
	SourceTransactionID *uint64
	CreatedAfter        *time.Time
	CreatedBefore       *time.Time
	Limit               int
	Offset              uint64
}

// BalanceCursor is the keyset position for paging through balances
type BalanceCursor struct {
	UserID   uint64
	Currency domain.Currency
}

// CreateFarmingPositionInput represents a new farming position
type CreateFarmingPositionInput struct {
	UserID        uint64
	ProductID     string
	Currency      domain.Currency
	Rate          decimal.Decimal
	LastAccrualAt time.Time
}

// FarmingPositionUpdate holds the fields to change on a farming position; nil fields are left untouched
type FarmingPositionUpdate struct {
	DepositAmount *decimal.Decimal
	Rate          *decimal.Decimal
	LastAccrualAt *time.Time
	Active        *bool
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// Transaction runs fn in a database transaction. Store calls made with the context passed
	// to fn join that transaction; if ctx already carries one, fn joins it.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	// CreateUser inserts a user, or returns the existing one unchanged with created=false
	CreateUser(ctx context.Context, input CreateUserInput) (user *schema.User, created bool, err error)
	// GetUserByID retrieves a user by ID
	GetUserByID(ctx context.Context, id uint64) (*schema.User, error)
	// GetUserByReferralCode retrieves a user by referral code
	GetUserByReferralCode(ctx context.Context, code string) (*schema.User, error)

	// InsertTransaction inserts a ledger row unless its idempotency key exists. A created
	// completed row changes the balance in the same database transaction.
	InsertTransaction(ctx context.Context, input InsertTransactionInput) (*InsertTransactionResult, error)
	// GetTransactionByID retrieves a ledger row by ID
	GetTransactionByID(ctx context.Context, id uint64) (*schema.Transaction, error)
	// GetTransactionByIdempotencyKey retrieves a ledger row by idempotency key
	GetTransactionByIdempotencyKey(ctx context.Context, key string) (*schema.Transaction, error)
	// ListTransactions retrieves ledger rows matching the filter, newest first, with the total count
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]schema.Transaction, uint64, error)
	// CompleteTransaction moves a pending row to completed and applies its balance effect.
	// changed is false if the row was already completed.
	CompleteTransaction(ctx context.Context, id uint64, completedAt time.Time) (tx *schema.Transaction, changed bool, err error)
	// CancelTransaction moves a pending row to cancelled. changed is false if it was already cancelled.
	CancelTransaction(ctx context.Context, id uint64) (tx *schema.Transaction, changed bool, err error)
	// SumCompletedTransactions replays the ledger for a user and currency
	SumCompletedTransactions(ctx context.Context, userID uint64, currency domain.Currency) (decimal.Decimal, error)
	// SumPendingDebits sums pending negative rows; the result is zero or negative
	SumPendingDebits(ctx context.Context, userID uint64, currency domain.Currency) (decimal.Decimal, error)

	// GetBalance retrieves the materialized balance row
	GetBalance(ctx context.Context, userID uint64, currency domain.Currency) (*schema.Balance, error)
	// LockBalance retrieves the materialized balance row with a row lock held until the transaction ends
	LockBalance(ctx context.Context, userID uint64, currency domain.Currency) (*schema.Balance, error)
	// ListBalances pages through balance rows in (user_id, currency) order, starting after cursor
	ListBalances(ctx context.Context, after *BalanceCursor, limit int) ([]schema.Balance, error)

	// GetFarmingPosition retrieves a user's position in a farming product
	GetFarmingPosition(ctx context.Context, userID uint64, productID string) (*schema.FarmingPosition, error)
	// ListAccruablePositionIDs pages through IDs of active positions with a positive deposit
	ListAccruablePositionIDs(ctx context.Context, afterID uint64, limit int) ([]uint64, error)
	// LockAccruablePosition locks an accruable position, skipping it if another transaction holds it.
	// Returns nil if the position is locked elsewhere or not accruable.
	LockAccruablePosition(ctx context.Context, id uint64) (*schema.FarmingPosition, error)
	// LockFarmingPosition locks a user's position in a farming product, waiting for other holders
	LockFarmingPosition(ctx context.Context, userID uint64, productID string) (*schema.FarmingPosition, error)
	// CreateFarmingPosition inserts an empty position, or returns the existing one
	CreateFarmingPosition(ctx context.Context, input CreateFarmingPositionInput) (*schema.FarmingPosition, error)
	// UpdateFarmingPosition applies the non-nil fields of update
	UpdateFarmingPosition(ctx context.Context, id uint64, update FarmingPositionUpdate) error

	// SetKeyValue stores a key-value pair
	SetKeyValue(ctx context.Context, key string, value string) error
	// GetKeyValue retrieves a value by key, or "" if absent
	GetKeyValue(ctx context.Context, key string) (string, error)
}
