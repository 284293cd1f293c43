package utils

import "errors"

var (
	// ErrTokenExpired is returned when the token's exp claim is in the past.
	// It takes precedence over every other verification failure.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenInvalidSignature is returned when the signature, signing
	// method or issuer of an otherwise well-formed token does not verify.
	ErrTokenInvalidSignature = errors.New("token signature is invalid")

	// ErrTokenMalformed is returned when the input is not a JWT or lacks
	// the claims required to identify a principal.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrInvalidTokenParams is returned by GenerateJWTToken on empty
	// issuer, subject or key, or non-positive TTL.
	ErrInvalidTokenParams = errors.New("invalid params for generating JWT token")

	// ErrInvalidAuthorizationHeader is returned when the header is not of
	// the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

	// ErrInvalidHashCost is returned by HashPassword for a bcrypt cost
	// outside [bcrypt.MinCost, bcrypt.MaxCost].
	ErrInvalidHashCost = errors.New("invalid bcrypt cost")
)
