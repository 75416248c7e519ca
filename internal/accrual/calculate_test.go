package accrual

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-yield-ledger/internal/store/schema"
)

func TestCalculate(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	position := func(deposit, rate string) *schema.FarmingPosition {
		return &schema.FarmingPosition{
			DepositAmount: decimal.RequireFromString(deposit),
			Rate:          decimal.RequireFromString(rate),
			LastAccrualAt: start,
		}
	}

	tests := []struct {
		name     string
		position *schema.FarmingPosition
		now      time.Time
		scale    int32
		expected string
	}{
		{
			name:     "one day at one percent",
			position: position("100", "0.01"),
			now:      start.Add(24 * time.Hour),
			scale:    9,
			expected: "1",
		},
		{
			name:     "ten five-minute ticks",
			position: position("100", "0.01"),
			now:      start.Add(50 * time.Minute),
			scale:    9,
			expected: "0.034722222",
		},
		{
			name:     "truncates instead of rounding",
			position: position("1", "0.01"),
			now:      start.Add(2 * time.Hour),
			scale:    6,
			expected: "0.000833",
		},
		{
			name:     "below the minimum unit is zero",
			position: position("0.001", "0.01"),
			now:      start.Add(time.Minute),
			scale:    6,
			expected: "0",
		},
		{
			name:     "no elapsed time",
			position: position("100", "0.01"),
			now:      start,
			scale:    9,
			expected: "0",
		},
		{
			name:     "clock behind last accrual",
			position: position("100", "0.01"),
			now:      start.Add(-time.Hour),
			scale:    9,
			expected: "0",
		},
		{
			name:     "empty deposit",
			position: position("0", "0.01"),
			now:      start.Add(24 * time.Hour),
			scale:    9,
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.position, tt.now, tt.scale)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

// Splitting an interval across ticks never credits more than one accrual over the whole interval
func TestCalculate_TicksDoNotExceedSingleAccrual(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &schema.FarmingPosition{
		DepositAmount: decimal.RequireFromString("123.456789"),
		Rate:          decimal.RequireFromString("0.0137"),
		LastAccrualAt: start,
	}

	single := Calculate(p, start.Add(50*time.Minute), 9)

	total := decimal.Zero
	for i := 1; i <= 10; i++ {
		now := start.Add(time.Duration(i) * 5 * time.Minute)
		total = total.Add(Calculate(p, now, 9))
		p.LastAccrualAt = now
	}

	assert.True(t, total.LessThanOrEqual(single))
	// each tick loses less than one unit
	assert.True(t, single.Sub(total).LessThan(decimal.New(10, -9)))
}
