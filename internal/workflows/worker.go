package workflows

import (
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/feral-file/ff-yield-ledger/internal/commission"
)

// WorkerCore defines the workflows run by the commission worker
type WorkerCore interface {
	// PropagateCommissions writes the commissions of a committed source transaction
	PropagateCommissions(ctx workflow.Context, sourceTransactionID uint64) (*commission.Result, error)
}

type WorkerCoreConfig struct {
	// ActivityTimeout bounds one propagation attempt
	ActivityTimeout time.Duration
	// MaxAttempts bounds the retries of a failing propagation; zero means unlimited
	MaxAttempts int32
}

// workerCore is the concrete implementation of WorkerCore
type workerCore struct {
	config   WorkerCoreConfig
	executor CoreExecutor
}

// NewWorkerCore creates a new worker core instance
func NewWorkerCore(executor CoreExecutor, config WorkerCoreConfig) WorkerCore {
	if config.ActivityTimeout <= 0 {
		config.ActivityTimeout = 30 * time.Second
	}
	return &workerCore{
		executor: executor,
		config:   config,
	}
}
