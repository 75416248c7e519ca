package commission_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-yield-ledger/internal/commission"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/mocks"
)

func TestNewTrigger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := commission.NewTrigger("eventually", mocks.NewMockPropagator(ctrl), nil)
	assert.Error(t, err)

	_, err = commission.NewTrigger(domain.CommissionModeDeferred, mocks.NewMockPropagator(ctrl), nil)
	assert.Error(t, err)

	trigger, err := commission.NewTrigger(domain.CommissionModeAtomic, mocks.NewMockPropagator(ctrl), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.CommissionModeAtomic, trigger.Mode())
}

func TestTrigger_Atomic(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := completedYield(1, 5, "1")
	propagator := mocks.NewMockPropagator(ctrl)
	propagator.EXPECT().Propagate(ctx, source).Return(&commission.Result{Created: 1}, nil)

	trigger, err := commission.NewTrigger(domain.CommissionModeAtomic, propagator, nil)
	require.NoError(t, err)

	result, err := trigger.InTransaction(ctx, source)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	// no deferrer call in atomic mode
	trigger.AfterCommit(ctx, source)
}

func TestTrigger_Deferred(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := completedYield(2, 5, "1")
	deferrer := mocks.NewMockCommissionDeferrer(ctrl)
	gomock.InOrder(
		deferrer.EXPECT().DeferPropagation(ctx, uint64(2)).Return(nil),
		deferrer.EXPECT().DeferPropagation(ctx, uint64(2)).Return(errors.New("temporal unavailable")),
	)

	trigger, err := commission.NewTrigger(domain.CommissionModeDeferred, mocks.NewMockPropagator(ctrl), deferrer)
	require.NoError(t, err)

	result, err := trigger.InTransaction(ctx, source)
	require.NoError(t, err)
	assert.Zero(t, result.Created)

	trigger.AfterCommit(ctx, source)
	// errors are logged, not returned
	trigger.AfterCommit(ctx, source)

	commissionRow := completedYield(3, 5, "1")
	commissionRow.Kind = domain.TransactionKindCommission
	trigger.AfterCommit(ctx, commissionRow)
}
