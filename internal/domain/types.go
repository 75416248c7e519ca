package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency is the ledger currency code
type Currency string

const (
	CurrencyTON Currency = "TON"
	CurrencyUNI Currency = "UNI"
)

// DefaultCurrencyScales holds the number of decimal places of each currency's minimum unit
var DefaultCurrencyScales = map[Currency]int32{
	CurrencyTON: 9,
	CurrencyUNI: 6,
}

// ParseCurrency normalizes and validates a currency code
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := DefaultCurrencyScales[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, s)
	}
	return c, nil
}

// TransactionKind is the kind of a ledger transaction
type TransactionKind string

const (
	TransactionKindDeposit     TransactionKind = "DEPOSIT"
	TransactionKindYieldReward TransactionKind = "YIELD_REWARD"
	TransactionKindCommission  TransactionKind = "COMMISSION"
	TransactionKindWithdrawal  TransactionKind = "WITHDRAWAL"
	TransactionKindPurchase    TransactionKind = "PURCHASE"
	TransactionKindRefund      TransactionKind = "REFUND"
)

// IsValidTransactionKind checks if a kind is known
func IsValidTransactionKind(kind TransactionKind) bool {
	switch kind {
	case TransactionKindDeposit,
		TransactionKindYieldReward,
		TransactionKindCommission,
		TransactionKindWithdrawal,
		TransactionKindPurchase,
		TransactionKindRefund:
		return true
	}
	return false
}

// ProducesCommission reports whether a completed transaction of this kind fans out referral commissions
func (k TransactionKind) ProducesCommission() bool {
	return k == TransactionKindDeposit || k == TransactionKindYieldReward
}

// TransactionStatus is the lifecycle status of a ledger transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// IsValidTransactionStatus checks if a status is known
func IsValidTransactionStatus(status TransactionStatus) bool {
	return status == TransactionStatusPending ||
		status == TransactionStatusCompleted ||
		status == TransactionStatusCancelled
}

// DepositConfirmedEvent is the payload of an externally confirmed deposit
type DepositConfirmedEvent struct {
	UserID         uint64                 `json:"user_id"`
	Currency       Currency               `json:"currency"`
	Amount         decimal.Decimal        `json:"amount"`
	IdempotencyKey string                 `json:"idempotency_key"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// DivergenceAlert is published when the materialized balance disagrees with the ledger
type DivergenceAlert struct {
	ID           string          `json:"id"`
	UserID       uint64          `json:"user_id"`
	Currency     Currency        `json:"currency"`
	Materialized decimal.Decimal `json:"materialized"`
	Ledger       decimal.Decimal `json:"ledger"`
	Difference   decimal.Decimal `json:"difference"`
	DetectedAt   time.Time       `json:"detected_at"`
}

// DepositSubject returns the NATS subject deposit confirmations for a currency are published on
func DepositSubject(currency Currency) string {
	return fmt.Sprintf("%s.%s", DEPOSIT_CONFIRMED_SUBJECT_PREFIX, strings.ToLower(string(currency)))
}
