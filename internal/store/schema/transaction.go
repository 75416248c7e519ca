package schema

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
)

// Transaction represents the transactions table - the append-only ledger every balance is derived from
type Transaction struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// UserID references the user whose balance the row affects
	UserID uint64 `gorm:"column:user_id;not null;index:idx_transactions_user_currency,priority:1"`
	// Kind is the business meaning of the row (DEPOSIT, YIELD_REWARD, COMMISSION, ...)
	Kind domain.TransactionKind `gorm:"column:kind;not null;type:text"`
	// Currency is the currency of the amount
	Currency domain.Currency `gorm:"column:currency;not null;type:text;index:idx_transactions_user_currency,priority:2"`
	// Amount is the signed balance effect; debits are negative
	Amount decimal.Decimal `gorm:"column:amount;not null;type:numeric(36,18)"`
	// Status is the lifecycle status; only completed rows count towards balances
	Status domain.TransactionStatus `gorm:"column:status;not null;type:text"`
	// IdempotencyKey deduplicates writes; unique when present
	IdempotencyKey *string `gorm:"column:idempotency_key;type:text;uniqueIndex"`
	// SourceTransactionID references the transaction a commission was derived from
	SourceTransactionID *uint64 `gorm:"column:source_transaction_id;index"`
	// Metadata holds free-form context such as commission level or key flags
	Metadata datatypes.JSON `gorm:"column:metadata;not null;type:jsonb;default:'{}'"`
	// CreatedAt is the timestamp when the row was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// CompletedAt is the timestamp when the row reached completed status
	CompletedAt *time.Time `gorm:"column:completed_at;type:timestamptz"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// MetadataMap decodes the metadata column; an empty or invalid column yields an empty map
func (t *Transaction) MetadataMap() map[string]interface{} {
	m := map[string]interface{}{}
	if len(t.Metadata) > 0 {
		_ = json.Unmarshal(t.Metadata, &m)
	}
	return m
}
