package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid username/password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrIdentityNotFound         = errors.New("identity not found")
	ErrIdentityStoreUnavailable = errors.New("identity store unavailable")

	// ErrUnauthenticated means the request carries no usable credential and
	// continues without a principal.
	ErrUnauthenticated = errors.New("request is not authenticated")
	// ErrTokenRejected is returned for a known principal whose token failed
	// verification while the strict policy is active.
	ErrTokenRejected     = errors.New("token rejected")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	ErrInvalidUser            = errors.New("invalid user")
	ErrInvalidTransaction     = errors.New("invalid transaction")
	ErrEmployeeDebitForbidden = errors.New("employees may only record credit transactions")
	ErrUnsupportedCurrency    = errors.New("unsupported currency")
	ErrInvalidPeriod          = errors.New("invalid report period")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// RateLimitedError is returned when a request was refused for lack of
// budget. It matches [ErrRateLimitExceeded] with errors.Is.
type RateLimitedError struct {
	// RetryAfter is how long until the bucket can serve the request again.
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrRateLimitExceeded, e.RetryAfter)
}

func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimitExceeded
}
