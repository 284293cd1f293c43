package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// sweepEvery is the number of consumes between sweeps of idle buckets.
const sweepEvery = 1024

type memoryBucket struct {
	limiter  *rate.Limiter
	config   BucketConfig
	lastSeen time.Time
}

// MemoryStore is a single-process QuotaStore. Buckets of different
// processes are independent.
//
// The map lock is held only to look up a bucket; rate.Limiter serializes
// refill-then-consume on its own lock.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*memoryBucket
	calls   int
	now     Clock
}

// NewMemoryStore constructs an empty MemoryStore. A nil clock means
// time.Now.
func NewMemoryStore(now Clock) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		buckets: make(map[string]*memoryBucket),
		now:     now,
	}
}

// TryConsume implements QuotaStore.
func (s *MemoryStore) TryConsume(ctx context.Context, key string, bucket BucketConfig, cost int64) (Decision, error) {
	if err := bucket.Validate(); err != nil {
		return Decision{}, err
	}
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}

	now := s.now()
	lim := s.limiter(key, bucket, now)

	allowed := lim.AllowN(now, int(cost))
	tokens := max(lim.TokensAt(now), 0)

	d := Decision{Allowed: allowed, Remaining: tokens}
	if !allowed {
		d.RetryAfter = bucket.retryAfter(tokens, cost)
	}
	return d, nil
}

// Ping implements QuotaStore. A MemoryStore is always reachable.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// Len returns the number of tracked buckets.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

func (s *MemoryStore) limiter(key string, bucket BucketConfig, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.calls%sweepEvery == 0 {
		s.sweepLocked(now)
	}

	b, ok := s.buckets[key]
	if !ok || b.config != bucket {
		b = &memoryBucket{
			limiter: rate.NewLimiter(rate.Limit(bucket.perSecond()), int(bucket.Capacity)),
			config:  bucket,
		}
		s.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// sweepLocked drops buckets idle long enough to have refilled completely;
// recreating them later yields the same full bucket.
func (s *MemoryStore) sweepLocked(now time.Time) {
	for key, b := range s.buckets {
		if now.Sub(b.lastSeen) >= b.config.fullRefill() {
			delete(s.buckets, key)
		}
	}
}
