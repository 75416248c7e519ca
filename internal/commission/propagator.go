package commission

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/metrics"
	"github.com/feral-file/ff-yield-ledger/internal/store"
	"github.com/feral-file/ff-yield-ledger/internal/store/schema"
)

// Metadata keys written on commission rows
const (
	MetadataLevel        = "level"
	MetadataRate         = "rate"
	MetadataSourceUserID = "source_user_id"
)

// Result summarizes one propagation run
type Result struct {
	// Created counts commission rows written by this run
	Created int
	// Existing counts levels whose commission was already written by an earlier run
	Existing int
	// Skipped counts levels without a rate or with an amount truncated to zero
	Skipped int
	// Credited lists the ancestors credited by rows this run created
	Credited []uint64
}

// Propagator fans out referral commissions for a completed source transaction
//
//go:generate mockgen -source=propagator.go -destination=../mocks/propagator.go -package=mocks -mock_names=Propagator=MockPropagator
type Propagator interface {
	// Propagate writes one COMMISSION per eligible ancestor of the source's user. Re-running it creates nothing new.
	Propagate(ctx context.Context, source *schema.Transaction) (*Result, error)
	// Resume reloads a source transaction and propagates it
	Resume(ctx context.Context, sourceTransactionID uint64) (*Result, error)
}

type propagator struct {
	store  store.Store
	rates  domain.CommissionRates
	scales domain.CurrencyScales
}

// NewPropagator creates a commission propagator
func NewPropagator(st store.Store, rates domain.CommissionRates, scales domain.CurrencyScales) Propagator {
	return &propagator{
		store:  st,
		rates:  rates,
		scales: scales,
	}
}

func (p *propagator) Propagate(ctx context.Context, source *schema.Transaction) (*Result, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: nil source", domain.ErrTransactionNotFound)
	}
	if !source.Kind.ProducesCommission() || source.Status != domain.TransactionStatusCompleted {
		return nil, fmt.Errorf("%w: transaction %d is %s %s", domain.ErrNotPropagatable, source.ID, source.Status, source.Kind)
	}
	if !source.Amount.IsPositive() {
		return &Result{}, nil
	}

	result := &Result{}
	var createdLevels []int
	err := p.store.Transaction(ctx, func(ctx context.Context) error {
		user, err := p.store.GetUserByID(ctx, source.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("%w: %d", domain.ErrUserNotFound, source.UserID)
		}

		ancestors, err := user.Ancestors()
		if err != nil {
			return err
		}

		for i, ancestorID := range ancestors {
			level := i + 1
			if level > domain.MaxReferralDepth {
				break
			}

			amount, ok, err := p.amountFor(source, level)
			if err != nil {
				return err
			}
			if !ok {
				result.Skipped++
				continue
			}

			rate, _ := p.rates.Rate(level)
			key := domain.CommissionKey(source.ID, level)
			res, err := p.store.InsertTransaction(ctx, store.InsertTransactionInput{
				UserID:              ancestorID,
				Kind:                domain.TransactionKindCommission,
				Currency:            source.Currency,
				Amount:              amount,
				Status:              domain.TransactionStatusCompleted,
				IdempotencyKey:      &key,
				SourceTransactionID: &source.ID,
				Metadata: map[string]interface{}{
					MetadataLevel:        level,
					MetadataRate:         rate.String(),
					MetadataSourceUserID: source.UserID,
				},
			})
			if err != nil {
				return fmt.Errorf("failed to write level %d commission for transaction %d: %w", level, source.ID, err)
			}

			if res.Created {
				result.Created++
				createdLevels = append(createdLevels, level)
				result.Credited = append(result.Credited, ancestorID)
			} else {
				result.Existing++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Recorded only once every level was written
	for _, level := range createdLevels {
		metrics.CommissionsTotal.WithLabelValues(strconv.Itoa(level)).Inc()
	}
	if result.Created > 0 {
		metrics.LedgerTransactionsTotal.WithLabelValues(string(domain.TransactionKindCommission), string(source.Currency)).Add(float64(result.Created))
	}

	logger.DebugCtx(ctx, "Propagated commissions",
		zap.Uint64("sourceTransactionID", source.ID),
		zap.Int("created", result.Created),
		zap.Int("existing", result.Existing),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

// amountFor returns the truncated commission of a level, or ok=false if nothing is owed
func (p *propagator) amountFor(source *schema.Transaction, level int) (decimal.Decimal, bool, error) {
	rate, ok := p.rates.Rate(level)
	if !ok {
		return decimal.Zero, false, nil
	}

	amount, err := p.scales.Truncate(source.Currency, source.Amount.Mul(rate))
	if err != nil {
		return decimal.Zero, false, err
	}
	if !amount.IsPositive() {
		return decimal.Zero, false, nil
	}

	return amount, true, nil
}

func (p *propagator) Resume(ctx context.Context, sourceTransactionID uint64) (*Result, error) {
	source, err := p.store.GetTransactionByID(ctx, sourceTransactionID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrTransactionNotFound, sourceTransactionID)
	}
	return p.Propagate(ctx, source)
}
