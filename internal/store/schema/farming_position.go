package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
)

// FarmingPosition represents the farming_positions table - a user's yield-bearing deposit in one farming product
type FarmingPosition struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// UserID references the owner of the position
	UserID uint64 `gorm:"column:user_id;not null;uniqueIndex:idx_farming_positions_user_product,priority:1;index:idx_farming_positions_user_currency,priority:1"`
	// ProductID is the catalogue product the position was opened in
	ProductID string `gorm:"column:product_id;not null;type:text;uniqueIndex:idx_farming_positions_user_product,priority:2"`
	// Currency is the product's currency, copied when the position is opened
	Currency domain.Currency `gorm:"column:currency;not null;type:text;index:idx_farming_positions_user_currency,priority:2"`
	// DepositAmount is the principal currently earning yield
	DepositAmount decimal.Decimal `gorm:"column:deposit_amount;not null;type:numeric(36,18);default:0"`
	// Rate is the yield fraction earned per 24 hours
	Rate decimal.Decimal `gorm:"column:rate;not null;type:numeric(36,18);default:0"`
	// LastAccrualAt is the instant yield has been credited up to
	LastAccrualAt time.Time `gorm:"column:last_accrual_at;not null;type:timestamptz"`
	// Active indicates whether the scheduler should accrue this position
	Active bool `gorm:"column:active;not null;default:true"`
	// CreatedAt is the timestamp when this position was opened
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this position was last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the FarmingPosition model
func (FarmingPosition) TableName() string {
	return "farming_positions"
}
