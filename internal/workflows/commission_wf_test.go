package workflows_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/feral-file/ff-yield-ledger/internal/commission"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
	"github.com/feral-file/ff-yield-ledger/internal/mocks"
	"github.com/feral-file/ff-yield-ledger/internal/workflows"
)

// CommissionWorkflowTestSuite is the test suite for the commission propagation workflow
type CommissionWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env        *testsuite.TestWorkflowEnvironment
	ctrl       *gomock.Controller
	executor   *mocks.MockCoreExecutor
	workerCore workflows.WorkerCore
}

// SetupTest is called before each test
func (s *CommissionWorkflowTestSuite) SetupTest() {
	_ = logger.Initialize(logger.Config{
		Debug: true,
	})

	s.env = s.NewTestWorkflowEnvironment()
	s.ctrl = gomock.NewController(s.T())
	s.executor = mocks.NewMockCoreExecutor(s.ctrl)
	s.workerCore = workflows.NewWorkerCore(s.executor, workflows.WorkerCoreConfig{
		ActivityTimeout: 10 * time.Second,
		MaxAttempts:     3,
	})
}

// TearDownTest is called after each test
func (s *CommissionWorkflowTestSuite) TearDownTest() {
	s.env.AssertExpectations(s.T())
	s.ctrl.Finish()
}

// TestCommissionWorkflowTestSuite runs the test suite
func TestCommissionWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(CommissionWorkflowTestSuite))
}

func (s *CommissionWorkflowTestSuite) TestPropagateCommissions_Success() {
	s.env.OnActivity(s.executor.ResumeCommissionPropagation, mock.Anything, uint64(42)).
		Return(&commission.Result{Created: 2, Credited: []uint64{7, 8}}, nil)

	s.env.ExecuteWorkflow(s.workerCore.PropagateCommissions, uint64(42))

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result commission.Result
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(2, result.Created)
	s.Equal([]uint64{7, 8}, result.Credited)
}

func (s *CommissionWorkflowTestSuite) TestPropagateCommissions_RetriesTransientFailure() {
	attempts := 0
	s.env.OnActivity(s.executor.ResumeCommissionPropagation, mock.Anything, uint64(42)).
		Return(func(_ context.Context, _ uint64) (*commission.Result, error) {
			attempts++
			if attempts == 1 {
				return nil, errors.New("connection reset")
			}
			// the first attempt wrote level 1 before failing
			return &commission.Result{Created: 1, Existing: 1}, nil
		}).Times(2)

	s.env.ExecuteWorkflow(s.workerCore.PropagateCommissions, uint64(42))

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
	s.Equal(2, attempts)
}

func (s *CommissionWorkflowTestSuite) TestPropagateCommissions_NonRetryable() {
	s.env.OnActivity(s.executor.ResumeCommissionPropagation, mock.Anything, uint64(99)).
		Return(nil, temporal.NewNonRetryableApplicationError("transaction not found", workflows.ErrTypeSourceNotFound, nil)).
		Once()

	s.env.ExecuteWorkflow(s.workerCore.PropagateCommissions, uint64(99))

	s.True(s.env.IsWorkflowCompleted())
	err := s.env.GetWorkflowError()
	s.Error(err)

	var appErr *temporal.ApplicationError
	s.True(errors.As(err, &appErr))
	s.Equal(workflows.ErrTypeSourceNotFound, appErr.Type())
}

func (s *CommissionWorkflowTestSuite) TestPropagateCommissions_GivesUpAfterMaxAttempts() {
	s.env.OnActivity(s.executor.ResumeCommissionPropagation, mock.Anything, uint64(5)).
		Return(nil, errors.New("database unavailable")).Times(3)

	s.env.ExecuteWorkflow(s.workerCore.PropagateCommissions, uint64(5))

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
}

func TestCommissionWorkflowID(t *testing.T) {
	if got := workflows.CommissionWorkflowID(123); got != "commission-propagation-123" {
		t.Fatalf("unexpected workflow id %q", got)
	}
}
