// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Clock returns the current time. Stores take one so tests can control
// refill.
type Clock func() time.Time

// BucketConfig describes a token bucket.
type BucketConfig struct {
	// Capacity is the maximum number of tokens and the initial fill.
	Capacity int64
	// RefillRate is the number of tokens added per RefillInterval.
	RefillRate float64
	// RefillInterval is the refill period.
	RefillInterval time.Duration
}

// Validate returns ErrInvalidBucket unless every field is positive.
func (c BucketConfig) Validate() error {
	if c.Capacity <= 0 || c.RefillRate <= 0 || c.RefillInterval <= 0 ||
		math.IsNaN(c.RefillRate) || math.IsInf(c.RefillRate, 0) {
		return fmt.Errorf("%w: capacity=%d rate=%v interval=%v",
			ErrInvalidBucket, c.Capacity, c.RefillRate, c.RefillInterval)
	}
	return nil
}

// perSecond is the refill rate in tokens per second.
func (c BucketConfig) perSecond() float64 {
	return c.RefillRate / c.RefillInterval.Seconds()
}

// fullRefill is the time an empty bucket needs to become full, but never
// less than one interval. A bucket idle for this long is indistinguishable
// from a fresh one, so stores may forget it.
func (c BucketConfig) fullRefill() time.Duration {
	d := time.Duration(float64(c.Capacity) / c.RefillRate * float64(c.RefillInterval))
	return max(d, c.RefillInterval)
}

// retryAfter is how long a bucket holding tokens must wait to afford cost.
func (c BucketConfig) retryAfter(tokens float64, cost int64) time.Duration {
	needed := float64(cost) - tokens
	if needed <= 0 {
		return 0
	}
	return time.Duration(math.Ceil(needed / c.perSecond() * float64(time.Second)))
}

// Decision is the outcome of a single consume.
type Decision struct {
	// Allowed reports whether cost tokens were taken.
	Allowed bool
	// Remaining is the number of tokens left after the call, in
	// [0, Capacity].
	Remaining float64
	// RetryAfter is the wait until the same cost would be allowed. Zero
	// when Allowed.
	RetryAfter time.Duration
}

// QuotaStore keeps bucket state and applies refill-then-consume atomically
// per key.
type QuotaStore interface {
	// TryConsume refills the bucket at key for elapsed time, then takes
	// cost tokens if available. A missing bucket starts full.
	TryConsume(ctx context.Context, key string, bucket BucketConfig, cost int64) (Decision, error)
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}
