package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/commission"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
)

// CommissionWorkflowID is the workflow ID of a source transaction's propagation.
// One ID per source keeps concurrent deferrals of the same transaction to a single run.
func CommissionWorkflowID(sourceTransactionID uint64) string {
	return fmt.Sprintf("commission-propagation-%d", sourceTransactionID)
}

// PropagateCommissions resumes propagation until every level is written. The activity is
// idempotent per level, so retries after a partial write only fill the gaps.
func (w *workerCore) PropagateCommissions(ctx workflow.Context, sourceTransactionID uint64) (*commission.Result, error) {
	logger.InfoWf(ctx, "Starting commission propagation",
		zap.Uint64("sourceTransactionID", sourceTransactionID))

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: w.config.ActivityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    5 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Minute,
			MaximumAttempts:    w.config.MaxAttempts,
			NonRetryableErrorTypes: []string{
				ErrTypeSourceNotFound,
				ErrTypeNotPropagatable,
				ErrTypeSourceUserMissing,
			},
		},
	}
	activityCtx := workflow.WithActivityOptions(ctx, activityOptions)

	var result commission.Result
	err := workflow.ExecuteActivity(activityCtx, w.executor.ResumeCommissionPropagation, sourceTransactionID).Get(activityCtx, &result)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("commission propagation failed: %w", err),
			zap.Uint64("sourceTransactionID", sourceTransactionID))
		return nil, err
	}

	logger.InfoWf(ctx, "Commission propagation completed",
		zap.Uint64("sourceTransactionID", sourceTransactionID),
		zap.Int("created", result.Created),
		zap.Int("existing", result.Existing))

	return &result, nil
}
