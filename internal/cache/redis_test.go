package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/feral-file/ff-yield-ledger/internal/adapter"
	"github.com/feral-file/ff-yield-ledger/internal/cache"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
)

// redisClient connects to TEST_REDIS_ADDR, or starts a Redis container when it is unset
func redisClient(t *testing.T) adapter.RedisClient {
	t.Helper()
	ctx := context.Background()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{"6379/tcp"},
				WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			},
			Started: true,
		})
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = container.Terminate(context.Background())
		})

		addr, err = container.Endpoint(ctx, "")
		require.NoError(t, err)
	}

	client := adapter.NewRedisClient(addr, "", 0)
	require.NoError(t, client.Ping(ctx))
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

// A read-through that loaded the balance before a write committed must not store it afterwards
func TestRedisBalanceCache_InvalidateWinsOverInFlightRead(t *testing.T) {
	ctx := context.Background()
	c := cache.NewRedisBalanceCache(redisClient(t), time.Minute)
	userID := uint64(time.Now().UnixNano())

	require.NoError(t, c.Set(ctx, userID, domain.CurrencyTON, decimal.NewFromInt(5), 0))
	lookup, err := c.Get(ctx, userID, domain.CurrencyTON)
	require.NoError(t, err)
	require.True(t, lookup.Found)
	assert.True(t, decimal.NewFromInt(5).Equal(lookup.Amount))

	// reader misses and loads 5 from the database
	require.NoError(t, c.Invalidate(ctx, userID, domain.CurrencyTON))
	reader, err := c.Get(ctx, userID, domain.CurrencyTON)
	require.NoError(t, err)
	require.False(t, reader.Found)

	// a writer commits 7 and invalidates before the reader stores
	require.NoError(t, c.Invalidate(ctx, userID, domain.CurrencyTON))
	require.NoError(t, c.Set(ctx, userID, domain.CurrencyTON, decimal.NewFromInt(5), reader.Generation))

	next, err := c.Get(ctx, userID, domain.CurrencyTON)
	require.NoError(t, err)
	assert.False(t, next.Found, "stale balance was cached")
	assert.Equal(t, reader.Generation+1, next.Generation)

	require.NoError(t, c.Set(ctx, userID, domain.CurrencyTON, decimal.NewFromInt(7), next.Generation))
	fresh, err := c.Get(ctx, userID, domain.CurrencyTON)
	require.NoError(t, err)
	require.True(t, fresh.Found)
	assert.True(t, decimal.NewFromInt(7).Equal(fresh.Amount))
}
