package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
)

// Balance represents the balances table - the materialized sum of completed ledger rows per user and currency
type Balance struct {
	// UserID references the owning user
	UserID uint64 `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	// Currency is the balance currency
	Currency domain.Currency `gorm:"column:currency;primaryKey;type:text"`
	// Amount is the current balance
	Amount decimal.Decimal `gorm:"column:amount;not null;type:numeric(36,18);default:0"`
	// UpdatedAt is the timestamp of the last ledger row applied
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Balance model
func (Balance) TableName() string {
	return "balances"
}
