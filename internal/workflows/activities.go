package workflows

import (
	"context"
	"errors"

	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/commission"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/ledger"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
)

// Non-retryable activity error types
const (
	ErrTypeSourceNotFound    = "SourceTransactionNotFound"
	ErrTypeNotPropagatable   = "NotPropagatable"
	ErrTypeSourceUserMissing = "SourceUserNotFound"
)

// CoreExecutor defines the activities run by the worker
//
//go:generate mockgen -source=activities.go -destination=../mocks/activities.go -package=mocks -mock_names=CoreExecutor=MockCoreExecutor
type CoreExecutor interface {
	// ResumeCommissionPropagation writes the missing commissions of a source transaction
	ResumeCommissionPropagation(ctx context.Context, sourceTransactionID uint64) (*commission.Result, error)
}

type executor struct {
	ledger ledger.Ledger
}

// NewExecutor creates a new executor instance
func NewExecutor(l ledger.Ledger) CoreExecutor {
	return &executor{ledger: l}
}

func (e *executor) ResumeCommissionPropagation(ctx context.Context, sourceTransactionID uint64) (*commission.Result, error) {
	result, err := e.ledger.PropagateCommissions(ctx, sourceTransactionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeSourceNotFound, err)
		case errors.Is(err, domain.ErrNotPropagatable):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeNotPropagatable, err)
		case errors.Is(err, domain.ErrUserNotFound):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeSourceUserMissing, err)
		}
		return nil, err
	}

	logger.InfoCtx(ctx, "Commission propagation resumed",
		zap.Uint64("sourceTransactionID", sourceTransactionID),
		zap.Int("created", result.Created),
		zap.Int("existing", result.Existing),
		zap.Int("skipped", result.Skipped))
	return result, nil
}
