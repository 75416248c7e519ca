package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CurrencyScales maps a currency to the decimal places of its minimum unit
type CurrencyScales map[Currency]int32

// NewCurrencyScales merges overrides into the default scales
func NewCurrencyScales(overrides map[string]int32) (CurrencyScales, error) {
	scales := make(CurrencyScales, len(DefaultCurrencyScales))
	for c, s := range DefaultCurrencyScales {
		scales[c] = s
	}
	for code, scale := range overrides {
		c, err := ParseCurrency(code)
		if err != nil {
			return nil, err
		}
		if scale < 0 || scale > 18 {
			return nil, fmt.Errorf("invalid scale %d for currency %s", scale, c)
		}
		scales[c] = scale
	}
	return scales, nil
}

// Scale returns the scale of a currency
func (s CurrencyScales) Scale(c Currency) (int32, error) {
	scale, ok := s[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, c)
	}
	return scale, nil
}

// Truncate cuts a computed amount down to the currency's minimum unit
func (s CurrencyScales) Truncate(c Currency, amount decimal.Decimal) (decimal.Decimal, error) {
	scale, err := s.Scale(c)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Truncate(scale), nil
}

// ValidateAmount checks an externally supplied amount is positive and representable in the currency
func (s CurrencyScales) ValidateAmount(c Currency, amount decimal.Decimal) error {
	scale, err := s.Scale(c)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	}
	if !amount.Equal(amount.Truncate(scale)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, amount.String(), scale)
	}
	return nil
}
