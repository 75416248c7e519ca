package accrual

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/store/schema"
)

var periodNanos = decimal.NewFromInt(int64(domain.AccrualPeriod))

// Calculate returns deposit * rate * elapsed/24h for the time since the position's
// last accrual, truncated to scale decimal places. It is zero when no time elapsed.
func Calculate(position *schema.FarmingPosition, now time.Time, scale int32) decimal.Decimal {
	elapsed := now.Sub(position.LastAccrualAt)
	if elapsed <= 0 || !position.DepositAmount.IsPositive() || !position.Rate.IsPositive() {
		return decimal.Zero
	}

	numerator := position.DepositAmount.
		Mul(position.Rate).
		Mul(decimal.NewFromInt(elapsed.Nanoseconds()))

	// QuoRem truncates the quotient at scale instead of rounding it
	quotient, _ := numerator.QuoRem(periodNanos, scale)
	return quotient
}
