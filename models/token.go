package models

import (
	"time"
)

// Token is a signed, time-bounded bearer credential.
//
// A token is immutable once issued. Its signature is recomputable from the
// subject, issue time and expiry plus the process-wide signing secret; any
// mismatch invalidates it.
type Token struct {
	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// Subject is the principal name carried in the "sub" claim.
	Subject string `json:"-"`

	// IssuedAt is the "iat" claim.
	IssuedAt time.Time `json:"-"`

	// ExpiresAt is the "exp" claim. The token is rejected as expired once
	// the current time passes it.
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// IsExpired reports whether the token is past its expiry at now.
func (t Token) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
