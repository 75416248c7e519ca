package commission

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/store/schema"
)

// Deferrer schedules propagation of a committed source transaction outside the request path
//
//go:generate mockgen -source=trigger.go -destination=../mocks/commission_deferrer.go -package=mocks -mock_names=Deferrer=MockCommissionDeferrer
type Deferrer interface {
	DeferPropagation(ctx context.Context, sourceTransactionID uint64) error
}

// Trigger runs propagation according to the configured commission mode.
// Callers invoke InTransaction inside the database transaction that wrote the source
// and AfterCommit once it committed; exactly one of the two does work.
type Trigger struct {
	mode       domain.CommissionMode
	propagator Propagator
	deferrer   Deferrer
}

// NewTrigger creates a trigger. deferrer may be nil in atomic mode.
func NewTrigger(mode domain.CommissionMode, propagator Propagator, deferrer Deferrer) (*Trigger, error) {
	if !domain.IsValidCommissionMode(mode) {
		return nil, fmt.Errorf("invalid commission mode: %s", mode)
	}
	if mode == domain.CommissionModeDeferred && deferrer == nil {
		return nil, fmt.Errorf("deferred commission mode requires a deferrer")
	}
	return &Trigger{mode: mode, propagator: propagator, deferrer: deferrer}, nil
}

// Mode returns the configured commission mode
func (t *Trigger) Mode() domain.CommissionMode {
	return t.mode
}

// InTransaction propagates inside the caller's database transaction in atomic mode
func (t *Trigger) InTransaction(ctx context.Context, source *schema.Transaction) (*Result, error) {
	if t.mode != domain.CommissionModeAtomic || !source.Kind.ProducesCommission() {
		return &Result{}, nil
	}
	return t.propagator.Propagate(ctx, source)
}

// AfterCommit hands the source to the deferrer in deferred mode. A failure is logged,
// not returned: the source is already committed and propagation can be resumed by id.
func (t *Trigger) AfterCommit(ctx context.Context, source *schema.Transaction) {
	if t.mode != domain.CommissionModeDeferred || !source.Kind.ProducesCommission() {
		return
	}
	if err := t.deferrer.DeferPropagation(ctx, source.ID); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to defer commission propagation: %w", err),
			zap.Uint64("sourceTransactionID", source.ID))
	}
}
