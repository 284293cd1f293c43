package ratelimit

import "errors"

var (
	// ErrQuotaStoreUnavailable wraps every store failure, including a
	// timeout, when the limiter fails closed.
	ErrQuotaStoreUnavailable = errors.New("quota store unavailable")

	// ErrInvalidCost is returned for a non-positive cost.
	ErrInvalidCost = errors.New("cost must be positive")

	// ErrInvalidKey is returned for an empty bucket key.
	ErrInvalidKey = errors.New("rate limit key must not be empty")

	// ErrInvalidBucket is returned for a bucket with non-positive capacity,
	// refill rate or refill interval.
	ErrInvalidBucket = errors.New("invalid bucket configuration")

	// errUnexpectedReply is returned when the Lua script reply cannot be
	// decoded.
	errUnexpectedReply = errors.New("rate limit redis: unexpected response type")
)
