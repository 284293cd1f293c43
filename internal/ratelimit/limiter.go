// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/kirana-ledger/internal/logger"
)

// DefaultTimeout bounds a store call when no timeout is configured.
const DefaultTimeout = 250 * time.Millisecond

// FailPolicy decides the outcome of a consume when the store fails.
type FailPolicy int

const (
	// FailClosed denies and returns ErrQuotaStoreUnavailable.
	FailClosed FailPolicy = iota
	// FailOpen allows and logs a warning.
	FailOpen
)

// String implements fmt.Stringer.
func (p FailPolicy) String() string {
	if p == FailOpen {
		return "fail-open"
	}
	return "fail-closed"
}

// Limiter applies one bucket configuration to any number of keys.
// It holds no bucket state of its own.
type Limiter struct {
	store   QuotaStore
	bucket  BucketConfig
	timeout time.Duration
	policy  FailPolicy
}

// LimiterOption configures a Limiter.
type LimiterOption func(*Limiter)

// WithTimeout bounds every store call.
func WithTimeout(d time.Duration) LimiterOption {
	return func(l *Limiter) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithFailPolicy sets the store failure policy. The default is FailClosed.
func WithFailPolicy(p FailPolicy) LimiterOption {
	return func(l *Limiter) { l.policy = p }
}

// NewLimiter returns a Limiter over store. It fails on an invalid bucket.
func NewLimiter(store QuotaStore, bucket BucketConfig, opts ...LimiterOption) (*Limiter, error) {
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	l := &Limiter{
		store:   store,
		bucket:  bucket,
		timeout: DefaultTimeout,
		policy:  FailClosed,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Bucket returns the bucket configuration applied by l.
func (l *Limiter) Bucket() BucketConfig {
	return l.bucket
}

// Consume takes cost tokens from the bucket at key.
//
// A store error or timeout yields ErrQuotaStoreUnavailable under
// FailClosed, and an allowed Decision with a nil error under FailOpen.
func (l *Limiter) Consume(ctx context.Context, key string, cost int64) (Decision, error) {
	if cost <= 0 {
		return Decision{}, ErrInvalidCost
	}
	if key == "" {
		return Decision{}, ErrInvalidKey
	}

	callCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	d, err := l.store.TryConsume(callCtx, key, l.bucket, cost)
	if err != nil {
		log := logger.FromContext(ctx)
		if l.policy == FailOpen {
			log.Warn().Err(err).Str("func", "Limiter.Consume").Str("key", key).
				Msg("quota store unavailable, admitting (fail-open)")
			return Decision{Allowed: true}, nil
		}
		log.Error().Err(err).Str("func", "Limiter.Consume").Str("key", key).
			Msg("quota store unavailable, denying (fail-closed)")
		return Decision{}, fmt.Errorf("%w: %w", ErrQuotaStoreUnavailable, err)
	}

	return d, nil
}

// TryConsume reports whether cost tokens were taken from the bucket at key.
func (l *Limiter) TryConsume(ctx context.Context, key string, cost int64) (bool, error) {
	d, err := l.Consume(ctx, key, cost)
	return d.Allowed, err
}

// Ping checks the underlying store.
func (l *Limiter) Ping(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return l.store.Ping(callCtx)
}
