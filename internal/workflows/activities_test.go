package workflows_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/feral-file/ff-yield-ledger/internal/commission"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/mocks"
	"github.com/feral-file/ff-yield-ledger/internal/workflows"
)

func TestExecutor_ResumeCommissionPropagation(t *testing.T) {
	tests := []struct {
		name        string
		ledgerErr   error
		wantErrType string
		wantRetry   bool
	}{
		{name: "success"},
		{name: "source missing", ledgerErr: fmt.Errorf("%w: 1", domain.ErrTransactionNotFound), wantErrType: workflows.ErrTypeSourceNotFound},
		{name: "pending source", ledgerErr: fmt.Errorf("%w: pending", domain.ErrNotPropagatable), wantErrType: workflows.ErrTypeNotPropagatable},
		{name: "user missing", ledgerErr: domain.ErrUserNotFound, wantErrType: workflows.ErrTypeSourceUserMissing},
		{name: "transient", ledgerErr: errors.New("connection reset"), wantRetry: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockLedger := mocks.NewMockLedger(ctrl)
			if tt.ledgerErr != nil {
				mockLedger.EXPECT().PropagateCommissions(gomock.Any(), uint64(1)).Return(nil, tt.ledgerErr)
			} else {
				mockLedger.EXPECT().PropagateCommissions(gomock.Any(), uint64(1)).Return(&commission.Result{Created: 2}, nil)
			}

			result, err := workflows.NewExecutor(mockLedger).ResumeCommissionPropagation(context.Background(), 1)
			switch {
			case tt.ledgerErr == nil:
				require.NoError(t, err)
				assert.Equal(t, 2, result.Created)
			case tt.wantRetry:
				require.Error(t, err)
				var appErr *temporal.ApplicationError
				assert.False(t, errors.As(err, &appErr))
			default:
				var appErr *temporal.ApplicationError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.wantErrType, appErr.Type())
				assert.True(t, appErr.NonRetryable())
			}
		})
	}
}

func TestCommissionDeferrer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orchestrator := mocks.NewMockTemporalOrchestrator(ctrl)
	orchestrator.EXPECT().ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any(), uint64(77)).
		DoAndReturn(func(_ context.Context, opts client.StartWorkflowOptions, _ interface{}, _ ...interface{}) (client.WorkflowRun, error) {
			assert.Equal(t, "commission-propagation-77", opts.ID)
			assert.Equal(t, "commission", opts.TaskQueue)
			assert.Equal(t, enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY, opts.WorkflowIDReusePolicy)
			return nil, nil
		})

	deferrer := workflows.NewCommissionDeferrer(orchestrator, "commission")
	require.NoError(t, deferrer.DeferPropagation(context.Background(), 77))

	orchestrator.EXPECT().ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any(), uint64(78)).
		Return(nil, errors.New("namespace not found"))
	assert.ErrorContains(t, deferrer.DeferPropagation(context.Background(), 78), "namespace not found")
}
