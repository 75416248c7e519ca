package domain

import "errors"

var (
	// ErrInvalidAmount is returned when an amount is zero, negative or more precise than the currency allows
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrUnsupportedCurrency is returned for currencies the ledger does not know
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrInsufficientBalance is returned when a debit exceeds the available balance
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrUserNotFound is returned when a user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when a ledger transaction does not exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionState is returned when a transaction cannot move to the requested status
	ErrInvalidTransactionState = errors.New("invalid transaction state")

	// ErrPositionNotFound is returned when a farming position does not exist or is inactive
	ErrPositionNotFound = errors.New("farming position not found")

	// ErrUnknownFarmingProduct is returned for a product id missing from the catalogue
	ErrUnknownFarmingProduct = errors.New("unknown farming product")

	// ErrBelowMinimumAmount is returned when a farming deposit is smaller than the product allows
	ErrBelowMinimumAmount = errors.New("amount below product minimum")

	// ErrMissingIdempotencyKey is returned when an external write carries no idempotency key
	ErrMissingIdempotencyKey = errors.New("missing idempotency key")

	// ErrIdempotencyKeyConflict is returned when a key is reused for a different kind of operation
	ErrIdempotencyKeyConflict = errors.New("idempotency key already used for a different operation")

	// ErrNotPropagatable is returned when commissions are requested for a transaction that cannot source them
	ErrNotPropagatable = errors.New("transaction does not produce commissions")
)
