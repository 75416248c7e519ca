package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-yield-ledger/internal/adapter"
	"github.com/feral-file/ff-yield-ledger/internal/config"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
)

const (
	defaultKeyPrefix = "ff:ledger:ratelimit:"
	// redisRetryInterval is how long the limiter stays local after a Redis error
	redisRetryInterval = 10 * time.Second
	// localEntryTTL is how long an idle client keeps its local bucket
	localEntryTTL = 10 * time.Minute
)

// Decision is the outcome of a rate limit check
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter admits requests per client key
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Allow consumes one token of key's bucket
	Allow(ctx context.Context, key string) (Decision, error)
}

type limiter struct {
	config      config.RateLimitConfig
	limit       redis_rate.Limit
	distributed adapter.RedisRateLimiter
	clock       adapter.Clock

	// redisDownUntil holds the unix nano instant before which Redis is not tried again
	redisDownUntil atomic.Int64

	mu        sync.Mutex
	local     map[string]*localEntry
	lastSweep time.Time
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiter creates a per-client limiter. A nil distributed limiter keeps every bucket in process.
func NewLimiter(cfg config.RateLimitConfig, distributed adapter.RedisRateLimiter, clock adapter.Clock) (Limiter, error) {
	if cfg.RequestsPerSecond <= 0 {
		return nil, fmt.Errorf("requests_per_second must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}

	l := &limiter{
		config: cfg,
		limit: redis_rate.Limit{
			Rate:   cfg.RequestsPerSecond,
			Burst:  cfg.Burst,
			Period: time.Second,
		},
		distributed: distributed,
		clock:       clock,
		local:       make(map[string]*localEntry),
		lastSweep:   clock.Now(),
	}

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
		zap.Bool("distributed", distributed != nil),
	)
	return l, nil
}

func (l *limiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.redisUsable() {
		res, err := l.distributed.Allow(ctx, l.config.KeyPrefix+key, l.limit)
		if err == nil {
			return Decision{
				Allowed:    res.Allowed > 0,
				Remaining:  res.Remaining,
				RetryAfter: max(res.RetryAfter, 0),
			}, nil
		}
		if ctx.Err() != nil {
			return Decision{}, ctx.Err()
		}

		l.redisDownUntil.Store(l.clock.Now().Add(redisRetryInterval).UnixNano())
		logger.WarnCtx(ctx, "Redis rate limiter error, falling back to local",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	return l.allowLocal(key), nil
}

func (l *limiter) redisUsable() bool {
	if l.distributed == nil {
		return false
	}
	return l.clock.Now().UnixNano() >= l.redisDownUntil.Load()
}

func (l *limiter) allowLocal(key string) Decision {
	now := l.clock.Now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) > localEntryTTL {
		for k, e := range l.local {
			if now.Sub(e.lastSeen) > localEntryTTL {
				delete(l.local, k)
			}
		}
		l.lastSweep = now
	}
	e, ok := l.local[key]
	if !ok {
		e = &localEntry{limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)}
		l.local[key] = e
	}
	e.lastSeen = now
	l.mu.Unlock()

	if e.limiter.AllowN(now, 1) {
		return Decision{Allowed: true, Remaining: int(e.limiter.TokensAt(now))}
	}

	r := e.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	return Decision{Allowed: false, RetryAfter: delay}
}
