package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-yield-ledger/internal/config"
	"github.com/feral-file/ff-yield-ledger/internal/mocks"
	"github.com/feral-file/ff-yield-ledger/internal/ratelimit"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time                  { return c.now }
func (c *fakeClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestNewLimiter_InvalidConfig(t *testing.T) {
	l, err := ratelimit.NewLimiter(config.RateLimitConfig{}, nil, newClock())
	assert.Error(t, err)
	assert.Nil(t, l)
}

func TestLimiter_Distributed(t *testing.T) {
	tests := []struct {
		name     string
		result   *redis_rate.Result
		expected ratelimit.Decision
	}{
		{
			name:     "allowed",
			result:   &redis_rate.Result{Allowed: 1, Remaining: 4},
			expected: ratelimit.Decision{Allowed: true, Remaining: 4},
		},
		{
			name:     "denied",
			result:   &redis_rate.Result{Allowed: 0, Remaining: 0, RetryAfter: 200 * time.Millisecond},
			expected: ratelimit.Decision{Allowed: false, RetryAfter: 200 * time.Millisecond},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			distributed := mocks.NewMockRedisRateLimiter(ctrl)

			cfg := config.RateLimitConfig{RequestsPerSecond: 5, Burst: 5, KeyPrefix: "test:"}
			l, err := ratelimit.NewLimiter(cfg, distributed, newClock())
			require.NoError(t, err)

			distributed.EXPECT().
				Allow(gomock.Any(), "test:10.0.0.1", redis_rate.Limit{Rate: 5, Burst: 5, Period: time.Second}).
				Return(tt.result, nil)

			decision, err := l.Allow(context.Background(), "10.0.0.1")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, decision)
		})
	}
}

func TestLimiter_FallsBackToLocalOnRedisError(t *testing.T) {
	ctrl := gomock.NewController(t)
	distributed := mocks.NewMockRedisRateLimiter(ctrl)
	clock := newClock()

	cfg := config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1}
	l, err := ratelimit.NewLimiter(cfg, distributed, clock)
	require.NoError(t, err)

	distributed.EXPECT().
		Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	decision, err := l.Allow(context.Background(), "client")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	// Redis is not retried right away; the local bucket is now empty
	decision, err = l.Allow(context.Background(), "client")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, time.Second, decision.RetryAfter)

	clock.now = clock.now.Add(11 * time.Second)
	distributed.EXPECT().
		Allow(gomock.Any(), "ff:ledger:ratelimit:client", gomock.Any()).
		Return(&redis_rate.Result{Allowed: 1}, nil)

	decision, err = l.Allow(context.Background(), "client")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestLimiter_ContextCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	distributed := mocks.NewMockRedisRateLimiter(ctrl)

	l, err := ratelimit.NewLimiter(config.RateLimitConfig{RequestsPerSecond: 1}, distributed, newClock())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	distributed.EXPECT().
		Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, context.Canceled)

	_, err = l.Allow(ctx, "client")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLimiter_LocalBuckets(t *testing.T) {
	clock := newClock()
	l, err := ratelimit.NewLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 2}, nil, clock)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		decision, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, decision.Allowed, "request %d", i)
	}

	decision, err := l.Allow(ctx, "a")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, time.Second, decision.RetryAfter)

	// Buckets are per key
	decision, err = l.Allow(ctx, "b")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	clock.now = clock.now.Add(time.Second)
	decision, err = l.Allow(ctx, "a")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}
