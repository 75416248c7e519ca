package referral_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/mocks"
	"github.com/feral-file/ff-yield-ledger/internal/referral"
	"github.com/feral-file/ff-yield-ledger/internal/store"
	"github.com/feral-file/ff-yield-ledger/internal/store/schema"
)

func userWithChain(t *testing.T, id uint64, code string, chain []uint64) *schema.User {
	t.Helper()
	raw, err := json.Marshal(chain)
	require.NoError(t, err)
	return &schema.User{ID: id, ReferralCode: code, AncestorChain: raw}
}

func fixedCode(code string) referral.CodeGenerator {
	return func() string { return code }
}

func ptr[T any](v T) *T {
	return &v
}

func TestChainIndex_Register(t *testing.T) {
	ctx := context.Background()

	longChain := make([]uint64, domain.MaxReferralDepth)
	for i := range longChain {
		longChain[i] = uint64(100 + i) //nolint:gosec,G115
	}

	tests := []struct {
		name          string
		userID        uint64
		inviterCode   *string
		setupMocks    func(*mocks.MockStore)
		expectedChain []uint64
		expectedErr   string
	}{
		{
			name:   "existing user is returned unchanged",
			userID: 1,
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetUserByID(ctx, uint64(1)).Return(userWithChain(t, 1, "EXISTING", []uint64{9}), nil)
			},
			expectedChain: []uint64{9},
		},
		{
			name:   "no inviter gives empty chain",
			userID: 2,
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetUserByID(ctx, uint64(2)).Return(nil, nil)
				st.EXPECT().CreateUser(ctx, store.CreateUserInput{ID: 2, ReferralCode: "CODE"}).
					Return(userWithChain(t, 2, "CODE", []uint64{}), true, nil)
			},
			expectedChain: []uint64{},
		},
		{
			name:        "chain is inviter followed by inviter chain",
			userID:      3,
			inviterCode: ptr("INV"),
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetUserByID(ctx, uint64(3)).Return(nil, nil)
				st.EXPECT().GetUserByReferralCode(ctx, "INV").Return(userWithChain(t, 10, "INV", []uint64{11, 12}), nil)
				st.EXPECT().CreateUser(ctx, store.CreateUserInput{
					ID:            3,
					ReferralCode:  "CODE",
					InviterCode:   ptr("INV"),
					InviterID:     ptr(uint64(10)),
					AncestorChain: []uint64{10, 11, 12},
				}).Return(userWithChain(t, 3, "CODE", []uint64{10, 11, 12}), true, nil)
			},
			expectedChain: []uint64{10, 11, 12},
		},
		{
			name:        "chain is truncated to max depth",
			userID:      4,
			inviterCode: ptr("DEEP"),
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetUserByID(ctx, uint64(4)).Return(nil, nil)
				st.EXPECT().GetUserByReferralCode(ctx, "DEEP").Return(userWithChain(t, 99, "DEEP", longChain), nil)
				st.EXPECT().CreateUser(ctx, gomock.Any()).
					DoAndReturn(func(_ context.Context, input store.CreateUserInput) (*schema.User, bool, error) {
						assert.Len(t, input.AncestorChain, domain.MaxReferralDepth)
						assert.Equal(t, uint64(99), input.AncestorChain[0])
						assert.Equal(t, longChain[domain.MaxReferralDepth-2], input.AncestorChain[domain.MaxReferralDepth-1])
						return userWithChain(t, 4, "CODE", input.AncestorChain), true, nil
					})
			},
			expectedChain: append([]uint64{99}, longChain[:domain.MaxReferralDepth-1]...),
		},
		{
			name:        "unresolvable inviter keeps the code but no chain",
			userID:      5,
			inviterCode: ptr(" GHOST "),
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetUserByID(ctx, uint64(5)).Return(nil, nil)
				st.EXPECT().GetUserByReferralCode(ctx, "GHOST").Return(nil, nil)
				st.EXPECT().CreateUser(ctx, store.CreateUserInput{
					ID:           5,
					ReferralCode: "CODE",
					InviterCode:  ptr("GHOST"),
				}).Return(userWithChain(t, 5, "CODE", []uint64{}), true, nil)
			},
			expectedChain: []uint64{},
		},
		{
			name:        "chain containing the user is rejected",
			userID:      6,
			inviterCode: ptr("LOOP"),
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetUserByID(ctx, uint64(6)).Return(nil, nil)
				st.EXPECT().GetUserByReferralCode(ctx, "LOOP").Return(userWithChain(t, 7, "LOOP", []uint64{6}), nil)
				st.EXPECT().CreateUser(ctx, store.CreateUserInput{
					ID:           6,
					ReferralCode: "CODE",
					InviterCode:  ptr("LOOP"),
				}).Return(userWithChain(t, 6, "CODE", []uint64{}), true, nil)
			},
			expectedChain: []uint64{},
		},
		{
			name:   "referral code collision is retried",
			userID: 8,
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetUserByID(ctx, uint64(8)).Return(nil, nil)
				collision := &pgconn.PgError{Code: "23505"}
				gomock.InOrder(
					st.EXPECT().CreateUser(ctx, gomock.Any()).Return(nil, false, collision),
					st.EXPECT().CreateUser(ctx, gomock.Any()).Return(userWithChain(t, 8, "CODE", nil), true, nil),
				)
			},
			expectedChain: nil,
		},
		{
			name:   "other store errors are returned",
			userID: 9,
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetUserByID(ctx, uint64(9)).Return(nil, nil)
				st.EXPECT().CreateUser(ctx, gomock.Any()).Return(nil, false, errors.New("connection reset"))
			},
			expectedErr: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			st := mocks.NewMockStore(ctrl)
			tt.setupMocks(st)

			idx := referral.NewChainIndex(st, fixedCode("CODE"))
			user, err := idx.Register(ctx, tt.userID, tt.inviterCode)
			if tt.expectedErr != "" {
				assert.ErrorContains(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)

			chain, err := user.Ancestors()
			require.NoError(t, err)
			assert.Equal(t, tt.expectedChain, chain)
		})
	}
}

func TestChainIndex_Ancestors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().GetUserByID(ctx, uint64(1)).Return(userWithChain(t, 1, "A", []uint64{2, 3}), nil)
	st.EXPECT().GetUserByID(ctx, uint64(404)).Return(nil, nil)

	idx := referral.NewChainIndex(st, nil)

	chain, err := idx.Ancestors(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 3}, chain)

	_, err = idx.Ancestors(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestNewReferralCode(t *testing.T) {
	a := referral.NewReferralCode()
	b := referral.NewReferralCode()
	assert.Len(t, a, 10)
	assert.NotEqual(t, a, b)
}
