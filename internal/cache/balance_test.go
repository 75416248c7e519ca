package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-yield-ledger/internal/cache"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/mocks"
)

var tonKeys = []string{"ledger:balance:{7:TON}", "ledger:balance:{7:TON}:gen"}

func TestRedisBalanceCache_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		setup   func(m *mocks.MockRedisClient)
		want    cache.Lookup
		wantErr bool
	}{
		{
			name: "hit",
			setup: func(m *mocks.MockRedisClient) {
				m.EXPECT().RunScript(ctx, gomock.Any(), tonKeys).Return([]interface{}{"12.5", "3"}, nil)
			},
			want: cache.Lookup{Amount: decimal.RequireFromString("12.5"), Found: true, Generation: 3},
		},
		{
			name: "miss on a never invalidated key",
			setup: func(m *mocks.MockRedisClient) {
				m.EXPECT().RunScript(ctx, gomock.Any(), tonKeys).Return([]interface{}{nil, nil}, nil)
			},
			want: cache.Lookup{},
		},
		{
			name: "miss carries the generation",
			setup: func(m *mocks.MockRedisClient) {
				m.EXPECT().RunScript(ctx, gomock.Any(), tonKeys).Return([]interface{}{nil, "9"}, nil)
			},
			want: cache.Lookup{Generation: 9},
		},
		{
			name: "redis error",
			setup: func(m *mocks.MockRedisClient) {
				m.EXPECT().RunScript(ctx, gomock.Any(), tonKeys).Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
		{
			name: "corrupt generation",
			setup: func(m *mocks.MockRedisClient) {
				m.EXPECT().RunScript(ctx, gomock.Any(), tonKeys).Return([]interface{}{"1", "x"}, nil)
			},
			wantErr: true,
		},
		{
			name: "corrupt entry is dropped",
			setup: func(m *mocks.MockRedisClient) {
				m.EXPECT().RunScript(ctx, gomock.Any(), tonKeys).Return([]interface{}{"not-a-number", "2"}, nil)
				m.EXPECT().Del(ctx, tonKeys[0]).Return(nil)
			},
			want: cache.Lookup{Generation: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mocks.NewMockRedisClient(ctrl)
			tt.setup(client)

			c := cache.NewRedisBalanceCache(client, time.Minute)
			lookup, err := c.Get(ctx, 7, domain.CurrencyTON)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Found, lookup.Found)
			assert.Equal(t, tt.want.Generation, lookup.Generation)
			assert.True(t, tt.want.Amount.Equal(lookup.Amount))
		})
	}
}

func TestRedisBalanceCache_SetCarriesGenerationAndJitter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	client := mocks.NewMockRedisClient(ctrl)
	client.EXPECT().
		RunScript(ctx, gomock.Any(), []string{"ledger:balance:{3:UNI}", "ledger:balance:{3:UNI}:gen"}, int64(4), "1.000001", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ interface{}, _ []string, args ...interface{}) (interface{}, error) {
			ttl := time.Duration(args[2].(int64)) * time.Millisecond
			assert.GreaterOrEqual(t, ttl, 30*time.Second)
			assert.Less(t, ttl, 30*time.Second+500*time.Millisecond)
			return int64(0), nil
		})

	c := cache.NewRedisBalanceCache(client, 30*time.Second)
	require.NoError(t, c.Set(ctx, 3, domain.CurrencyUNI, decimal.RequireFromString("1.000001"), 4))
}

func TestRedisBalanceCache_Invalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	client := mocks.NewMockRedisClient(ctrl)
	client.EXPECT().RunScript(ctx, gomock.Any(), []string{"ledger:balance:{3:UNI}", "ledger:balance:{3:UNI}:gen"}, gomock.Any()).Return(int64(1), nil)
	client.EXPECT().RunScript(ctx, gomock.Any(), []string{"ledger:balance:{4:UNI}", "ledger:balance:{4:UNI}:gen"}, gomock.Any()).Return(nil, errors.New("down"))

	c := cache.NewRedisBalanceCache(client, time.Second)
	assert.NoError(t, c.Invalidate(ctx, 3, domain.CurrencyUNI))
	assert.Error(t, c.Invalidate(ctx, 4, domain.CurrencyUNI))
}

func TestNoopBalanceCache(t *testing.T) {
	ctx := context.Background()
	c := cache.NewNoopBalanceCache()

	require.NoError(t, c.Set(ctx, 1, domain.CurrencyTON, decimal.NewFromInt(5), 0))
	lookup, err := c.Get(ctx, 1, domain.CurrencyTON)
	require.NoError(t, err)
	assert.False(t, lookup.Found)
	assert.NoError(t, c.Invalidate(ctx, 1, domain.CurrencyTON))
}
