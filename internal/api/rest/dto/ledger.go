package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-yield-ledger/internal/commission"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/ledger"
	"github.com/feral-file/ff-yield-ledger/internal/store/schema"
)

// UserResponse represents a registered user and its referral chain
type UserResponse struct {
	ID            uint64    `json:"id"`
	ReferralCode  string    `json:"referral_code"`
	InviterCode   *string   `json:"inviter_code,omitempty"`
	InviterID     *uint64   `json:"inviter_id,omitempty"`
	AncestorChain []uint64  `json:"ancestor_chain"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransactionResponse represents one ledger row
type TransactionResponse struct {
	ID                  uint64                   `json:"id"`
	UserID              uint64                   `json:"user_id"`
	Kind                domain.TransactionKind   `json:"kind"`
	Currency            domain.Currency          `json:"currency"`
	Amount              decimal.Decimal          `json:"amount"`
	Status              domain.TransactionStatus `json:"status"`
	IdempotencyKey      *string                  `json:"idempotency_key,omitempty"`
	SourceTransactionID *uint64                  `json:"source_transaction_id,omitempty"`
	Metadata            map[string]interface{}   `json:"metadata,omitempty"`
	CreatedAt           time.Time                `json:"created_at"`
	CompletedAt         *time.Time               `json:"completed_at,omitempty"`
}

// TransactionListResponse represents a page of ledger rows
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        uint64                `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       uint64                `json:"offset"`
}

// WriteResponse represents the outcome of an idempotent write.
// Created is false when the idempotency key was already used and the existing row is returned.
type WriteResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Created     bool                `json:"created"`
}

// CommissionSummary counts the commission rows of one propagation run
type CommissionSummary struct {
	Created  int      `json:"created"`
	Existing int      `json:"existing"`
	Skipped  int      `json:"skipped"`
	Credited []uint64 `json:"credited,omitempty"`
}

// DepositResponse represents a credited external deposit
type DepositResponse struct {
	WriteResponse
	KeyFlagged  bool               `json:"key_flagged"`
	Commissions *CommissionSummary `json:"commissions,omitempty"`
}

// FarmingPositionResponse represents a farming position
type FarmingPositionResponse struct {
	ID            uint64          `json:"id"`
	UserID        uint64          `json:"user_id"`
	ProductID     string          `json:"product_id"`
	Currency      domain.Currency `json:"currency"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	Rate          decimal.Decimal `json:"rate"`
	LastAccrualAt time.Time       `json:"last_accrual_at"`
	Active        bool            `json:"active"`
}

// FarmingProductResponse represents a farming product on offer
type FarmingProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Currency  domain.Currency `json:"currency"`
	DailyRate decimal.Decimal `json:"daily_rate"`
	MinAmount decimal.Decimal `json:"min_amount"`
}

// FarmingResponse represents a farming deposit or close
type FarmingResponse struct {
	WriteResponse
	Position *FarmingPositionResponse `json:"position,omitempty"`
	Settled  *TransactionResponse     `json:"settled,omitempty"`
}

// BalanceResponse represents a materialized balance
type BalanceResponse struct {
	UserID   uint64          `json:"user_id"`
	Currency domain.Currency `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

// ReconcileResponse compares the materialized balance with the ledger replay
type ReconcileResponse struct {
	UserID       uint64          `json:"user_id"`
	Currency     domain.Currency `json:"currency"`
	Materialized decimal.Decimal `json:"materialized"`
	Ledger       decimal.Decimal `json:"ledger"`
	Diverged     bool            `json:"diverged"`
}

// MapUser converts a user row
func MapUser(u *schema.User) (*UserResponse, error) {
	ancestors, err := u.Ancestors()
	if err != nil {
		return nil, err
	}
	if ancestors == nil {
		ancestors = []uint64{}
	}
	return &UserResponse{
		ID:            u.ID,
		ReferralCode:  u.ReferralCode,
		InviterCode:   u.InviterCode,
		InviterID:     u.InviterID,
		AncestorChain: ancestors,
		CreatedAt:     u.CreatedAt,
	}, nil
}

// MapTransaction converts a ledger row
func MapTransaction(t *schema.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                  t.ID,
		UserID:              t.UserID,
		Kind:                t.Kind,
		Currency:            t.Currency,
		Amount:              t.Amount,
		Status:              t.Status,
		IdempotencyKey:      t.IdempotencyKey,
		SourceTransactionID: t.SourceTransactionID,
		CreatedAt:           t.CreatedAt,
		CompletedAt:         t.CompletedAt,
	}
	if m := t.MetadataMap(); len(m) > 0 {
		resp.Metadata = m
	}
	return resp
}

// MapTransactions converts a page of ledger rows
func MapTransactions(rows []schema.Transaction, total uint64, limit int, offset uint64) TransactionListResponse {
	resp := TransactionListResponse{
		Transactions: make([]TransactionResponse, 0, len(rows)),
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}
	for i := range rows {
		resp.Transactions = append(resp.Transactions, MapTransaction(&rows[i]))
	}
	return resp
}

// MapWrite converts an idempotent write result
func MapWrite(w *ledger.WriteResult) WriteResponse {
	return WriteResponse{
		Transaction: MapTransaction(w.Transaction),
		Created:     w.Created,
	}
}

// MapCommissions converts a propagation result
func MapCommissions(r *commission.Result) *CommissionSummary {
	if r == nil {
		return nil
	}
	return &CommissionSummary{
		Created:  r.Created,
		Existing: r.Existing,
		Skipped:  r.Skipped,
		Credited: r.Credited,
	}
}

// MapDeposit converts a credited deposit
func MapDeposit(r *ledger.CreditResult) DepositResponse {
	return DepositResponse{
		WriteResponse: MapWrite(&r.WriteResult),
		KeyFlagged:    r.KeyFlagged,
		Commissions:   MapCommissions(r.Commissions),
	}
}

// MapFarming converts a farming deposit or close
func MapFarming(r *ledger.FarmingResult) FarmingResponse {
	resp := FarmingResponse{WriteResponse: MapWrite(&r.WriteResult)}
	if p := r.Position; p != nil {
		resp.Position = &FarmingPositionResponse{
			ID:            p.ID,
			UserID:        p.UserID,
			ProductID:     p.ProductID,
			Currency:      p.Currency,
			DepositAmount: p.DepositAmount,
			Rate:          p.Rate,
			LastAccrualAt: p.LastAccrualAt,
			Active:        p.Active,
		}
	}
	if r.Settled != nil {
		settled := MapTransaction(r.Settled)
		resp.Settled = &settled
	}
	return resp
}

// MapFarmingProducts converts the farming catalogue
func MapFarmingProducts(products []domain.FarmingProduct) []FarmingProductResponse {
	resp := make([]FarmingProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, FarmingProductResponse{
			ID:        p.ID,
			Name:      p.Name,
			Currency:  p.Currency,
			DailyRate: p.DailyRate,
			MinAmount: p.MinAmount,
		})
	}
	return resp
}

// MapAudit converts an audit result
func MapAudit(r *ledger.AuditResult) ReconcileResponse {
	return ReconcileResponse{
		UserID:       r.UserID,
		Currency:     r.Currency,
		Materialized: r.Materialized,
		Ledger:       r.Ledger,
		Diverged:     r.Diverged,
	}
}
