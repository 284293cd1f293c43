// Package utils provides general-purpose helpers used across the
// application: request-scoped context values, password hashing, HTTP
// response writing, the outbound HTTP client and the JWT token codec.
package utils

import (
	"context"

	"github.com/MKhiriev/kirana-ledger/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// PrincipalCtxKey is the key under which the authenticated principal of a
// request is stored. Use WithPrincipal and PrincipalFromContext rather than
// the key directly.
var PrincipalCtxKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, PrincipalCtxKey, p)
}

// PrincipalFromContext returns the principal attached by WithPrincipal.
//
// ok is false when no principal is present, when the stored value has an
// unexpected type, or when the stored principal is the zero value.
func PrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(PrincipalCtxKey).(models.Principal)
	if !ok || p.IsZero() {
		return models.Principal{}, false
	}
	return p, true
}

// ClientIPCtxKey is the key under which the remote address of a request is
// stored.
var ClientIPCtxKey = contextKey("client_ip")

// WithClientIP returns a copy of ctx carrying the caller's address.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ClientIPCtxKey, ip)
}

// ClientIPFromContext returns the address stored by WithClientIP, or "".
func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ClientIPCtxKey).(string)
	return ip
}
