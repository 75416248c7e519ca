package cache

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/adapter"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
)

const (
	balanceKeyPrefix = "ledger:balance"

	// ttlJitter spreads expiries so hot keys do not expire together
	ttlJitter = 500 * time.Millisecond

	// generationTTL outlives any read-through window by a wide margin
	generationTTL = 24 * time.Hour
)

var (
	// getScript reads the cached value and its generation in one round trip
	getScript = redis.NewScript(`
return {redis.call('GET', KEYS[1]), redis.call('GET', KEYS[2])}
`)

	// setScript stores the value only while the generation is the one the reader saw
	setScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
  return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

	// invalidateScript bumps the generation so in-flight reads cannot store what they loaded
	invalidateScript = redis.NewScript(`
redis.call('INCR', KEYS[2])
redis.call('PEXPIRE', KEYS[2], ARGV[1])
redis.call('DEL', KEYS[1])
return 1
`)
)

// Lookup is the result of a cache read
type Lookup struct {
	Amount decimal.Decimal
	Found  bool
	// Generation counts invalidations of the key; a read-through Set must carry the value seen here
	Generation int64
}

// BalanceCache is a read-through cache in front of the materialized balance
//
//go:generate mockgen -source=balance.go -destination=../mocks/balance_cache.go -package=mocks -mock_names=BalanceCache=MockBalanceCache
type BalanceCache interface {
	// Get returns the cached balance and the key's current generation
	Get(ctx context.Context, userID uint64, currency domain.Currency) (Lookup, error)
	// Set caches a balance read after Get returned generation. It is a no-op if the key was invalidated since.
	Set(ctx context.Context, userID uint64, currency domain.Currency, amount decimal.Decimal, generation int64) error
	// Invalidate drops a cached balance after the ledger changed it
	Invalidate(ctx context.Context, userID uint64, currency domain.Currency) error
}

type redisBalanceCache struct {
	client adapter.RedisClient
	ttl    time.Duration
}

// NewRedisBalanceCache creates a balance cache backed by Redis
func NewRedisBalanceCache(client adapter.RedisClient, ttl time.Duration) BalanceCache {
	return &redisBalanceCache{client: client, ttl: ttl}
}

func (c *redisBalanceCache) Get(ctx context.Context, userID uint64, currency domain.Currency) (Lookup, error) {
	key, genKey := balanceKeys(userID, currency)

	reply, err := c.client.RunScript(ctx, getScript, []string{key, genKey})
	if err != nil {
		return Lookup{}, fmt.Errorf("failed to get cached balance: %w", err)
	}
	values, ok := reply.([]interface{})
	if !ok || len(values) != 2 {
		return Lookup{}, fmt.Errorf("failed to get cached balance: unexpected reply %v", reply)
	}

	var lookup Lookup
	if gen, ok := values[1].(string); ok {
		lookup.Generation, err = strconv.ParseInt(gen, 10, 64)
		if err != nil {
			return Lookup{}, fmt.Errorf("failed to parse cache generation %q: %w", gen, err)
		}
	}

	value, ok := values[0].(string)
	if !ok {
		return lookup, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		// A corrupt entry would keep hitting, so drop it
		logger.WarnCtx(ctx, "Dropping corrupt cached balance", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key)
		return lookup, nil
	}

	lookup.Amount = amount
	lookup.Found = true
	return lookup, nil
}

func (c *redisBalanceCache) Set(ctx context.Context, userID uint64, currency domain.Currency, amount decimal.Decimal, generation int64) error {
	key, genKey := balanceKeys(userID, currency)
	ttl := withJitter(c.ttl, ttlJitter)

	reply, err := c.client.RunScript(ctx, setScript, []string{key, genKey}, generation, amount.String(), ttl.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to cache balance: %w", err)
	}
	if stored, _ := reply.(int64); stored == 0 {
		logger.DebugCtx(ctx, "Balance invalidated during read, not caching",
			zap.String("key", key),
			zap.Int64("generation", generation))
	}
	return nil
}

func (c *redisBalanceCache) Invalidate(ctx context.Context, userID uint64, currency domain.Currency) error {
	key, genKey := balanceKeys(userID, currency)
	if _, err := c.client.RunScript(ctx, invalidateScript, []string{key, genKey}, generationTTL.Milliseconds()); err != nil {
		return fmt.Errorf("failed to invalidate cached balance: %w", err)
	}
	return nil
}

type noopBalanceCache struct{}

// NewNoopBalanceCache returns a cache that never hits, for deployments without Redis
func NewNoopBalanceCache() BalanceCache {
	return noopBalanceCache{}
}

func (noopBalanceCache) Get(context.Context, uint64, domain.Currency) (Lookup, error) {
	return Lookup{}, nil
}

func (noopBalanceCache) Set(context.Context, uint64, domain.Currency, decimal.Decimal, int64) error {
	return nil
}

func (noopBalanceCache) Invalidate(context.Context, uint64, domain.Currency) error {
	return nil
}

// balanceKeys returns the value key and its generation key. The hash tag keeps both in one cluster slot.
func balanceKeys(userID uint64, currency domain.Currency) (string, string) {
	key := fmt.Sprintf("%s:{%d:%s}", balanceKeyPrefix, userID, currency)
	return key, key + ":gen"
}

// withJitter adds a random duration in [0, jitter) to ttl
func withJitter(ttl, jitter time.Duration) time.Duration {
	if ttl <= 0 || jitter <= 0 {
		return ttl
	}
	return ttl + rand.N(jitter)
}
