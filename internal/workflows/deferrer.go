package workflows

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/commission"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/providers/temporal"
)

type temporalDeferrer struct {
	orchestrator temporal.TemporalOrchestrator
	taskQueue    string
	runTimeout   time.Duration
}

// NewCommissionDeferrer returns a deferrer that starts a PropagateCommissions workflow per source transaction
func NewCommissionDeferrer(orchestrator temporal.TemporalOrchestrator, taskQueue string) commission.Deferrer {
	return &temporalDeferrer{
		orchestrator: orchestrator,
		taskQueue:    taskQueue,
		runTimeout:   24 * time.Hour,
	}
}

func (d *temporalDeferrer) DeferPropagation(ctx context.Context, sourceTransactionID uint64) error {
	// Only the method name is used to address the workflow
	w := NewWorkerCore(nil, WorkerCoreConfig{})

	opt := client.StartWorkflowOptions{
		ID:                    CommissionWorkflowID(sourceTransactionID),
		TaskQueue:             d.taskQueue,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
		WorkflowRunTimeout:    d.runTimeout,
	}
	run, err := d.orchestrator.ExecuteWorkflow(ctx, opt, w.PropagateCommissions, sourceTransactionID)
	if err != nil {
		return fmt.Errorf("failed to start commission workflow for transaction %d: %w", sourceTransactionID, err)
	}

	fields := []zap.Field{zap.Uint64("sourceTransactionID", sourceTransactionID)}
	if run != nil {
		fields = append(fields, zap.String("workflowID", run.GetID()), zap.String("runID", run.GetRunID()))
	}
	logger.InfoCtx(ctx, "Commission propagation deferred", fields...)
	return nil
}
