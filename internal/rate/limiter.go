package rate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter reserves one token issuance per subject per minimum interval.
// Reserve returns nil and starts the interval, or ErrRateLimited when the
// subject is still inside a previous interval.
type Limiter interface {
	Reserve(ctx context.Context, subject string) error
}

// RedisLimiter enforces the issuance interval with SET NX PX, which makes the
// check-and-update a single atomic Redis command and shares state across
// instances.
type RedisLimiter struct {
	redis       redis.UniversalClient
	prefix      string
	minInterval time.Duration
}

// NewRedis creates a [RedisLimiter] backed by the given Redis client.
func NewRedis(redisClient redis.UniversalClient, prefix string, minInterval time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "ais"
	}
	return &RedisLimiter{
		redis:       redisClient,
		prefix:      prefix,
		minInterval: minInterval,
	}
}

func (l *RedisLimiter) key(subject string) string {
	return l.prefix + ":" + subject
}

// Reserve attempts to start an issuance interval for the subject.
func (l *RedisLimiter) Reserve(ctx context.Context, subject string) error {
	if l.minInterval <= 0 {
		return nil
	}

	ok, err := l.redis.SetNX(ctx, l.key(subject), 1, l.minInterval).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if !ok {
		return ErrRateLimited
	}

	return nil
}

// MemoryLimiter is the single-instance fallback. All subjects share one
// mutex; the interval check and the timestamp update happen under the same
// lock hold.
type MemoryLimiter struct {
	mu          sync.Mutex
	last        map[string]time.Time
	minInterval time.Duration
	now         func() time.Time
}

// NewMemory creates a [MemoryLimiter] with the given minimum interval.
func NewMemory(minInterval time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		last:        make(map[string]time.Time),
		minInterval: minInterval,
		now:         time.Now,
	}
}

// Reserve attempts to start an issuance interval for the subject.
func (l *MemoryLimiter) Reserve(_ context.Context, subject string) error {
	if l.minInterval <= 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.last[subject]; ok && now.Sub(last) < l.minInterval {
		return ErrRateLimited
	}
	l.last[subject] = now

	// Opportunistic cleanup keeps the map from growing with dead subjects.
	if len(l.last) > 4096 {
		for s, t := range l.last {
			if now.Sub(t) >= l.minInterval {
				delete(l.last, s)
			}
		}
	}

	return nil
}
