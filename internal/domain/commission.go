package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CommissionRates is the per-level commission schedule; index 0 is level 1
type CommissionRates []decimal.Decimal

// DefaultCommissionRates returns the standard schedule: level 1 pays the full base,
// level L in 2..20 pays max(2, 22-L) percent of it.
func DefaultCommissionRates() CommissionRates {
	rates := make(CommissionRates, MaxReferralDepth)
	rates[0] = decimal.NewFromInt(1)
	for level := 2; level <= MaxReferralDepth; level++ {
		pct := int64(max(2, 22-level))
		rates[level-1] = decimal.New(pct, -2)
	}
	return rates
}

// ParseCommissionRates builds a schedule from decimal strings, level 1 first
func ParseCommissionRates(values []string) (CommissionRates, error) {
	if len(values) == 0 {
		return DefaultCommissionRates(), nil
	}
	if len(values) > MaxReferralDepth {
		return nil, fmt.Errorf("commission schedule has %d levels, max is %d", len(values), MaxReferralDepth)
	}

	rates := make(CommissionRates, len(values))
	for i, v := range values {
		r, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid commission rate for level %d: %w", i+1, err)
		}
		if r.IsNegative() {
			return nil, fmt.Errorf("negative commission rate for level %d", i+1)
		}
		rates[i] = r
	}
	return rates, nil
}

// Rate returns the rate of a 1-indexed level. ok is false if the level has no configured rate.
func (r CommissionRates) Rate(level int) (decimal.Decimal, bool) {
	if level < 1 || level > len(r) {
		return decimal.Zero, false
	}
	rate := r[level-1]
	if !rate.IsPositive() {
		return decimal.Zero, false
	}
	return rate, true
}

// Levels returns the number of configured levels
func (r CommissionRates) Levels() int {
	return len(r)
}

// CommissionMode selects when referral commissions are written relative to their source
type CommissionMode string

const (
	// CommissionModeAtomic writes commissions inside the source transaction's database transaction
	CommissionModeAtomic CommissionMode = "atomic"
	// CommissionModeDeferred writes commissions from a workflow started after the source commits
	CommissionModeDeferred CommissionMode = "deferred"
)

// IsValidCommissionMode checks if a mode is known
func IsValidCommissionMode(mode CommissionMode) bool {
	return mode == CommissionModeAtomic || mode == CommissionModeDeferred
}
