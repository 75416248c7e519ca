package dto

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// RegisterUserRequest represents the request body for registering a user
type RegisterUserRequest struct {
	UserID      uint64  `json:"user_id"`
	InviterCode *string `json:"inviter_code"`
}

// Validate validates the request body
func (r *RegisterUserRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("user_id is required")
	}
	return nil
}

// CreditDepositRequest represents a confirmed external deposit
type CreditDepositRequest struct {
	UserID         uint64                 `json:"user_id"`
	Currency       string                 `json:"currency"`
	Amount         decimal.Decimal        `json:"amount"`
	IdempotencyKey string                 `json:"idempotency_key"`
	Metadata       map[string]interface{} `json:"metadata"`
}

// Validate validates the request body. Amount and currency rules are enforced by the ledger.
func (r *CreditDepositRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("user_id is required")
	}
	if strings.TrimSpace(r.Currency) == "" {
		return errors.New("currency is required")
	}
	return nil
}

// WithdrawalRequest represents the request body for a withdrawal
type WithdrawalRequest struct {
	Currency       string          `json:"currency"`
	Amount         decimal.Decimal `json:"amount"`
	IdempotencyKey string          `json:"idempotency_key"`
}

// Validate validates the request body
func (r *WithdrawalRequest) Validate() error {
	if strings.TrimSpace(r.Currency) == "" {
		return errors.New("currency is required")
	}
	return nil
}

// FarmingDepositRequest represents the request body for moving balance into farming
type FarmingDepositRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	IdempotencyKey string          `json:"idempotency_key"`
}

// FarmingCloseRequest represents the request body for closing a farming position
type FarmingCloseRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
}
