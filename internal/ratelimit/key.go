package ratelimit

import "strings"

const (
	// SharedReverifyKey is the single partition used for every stale-token
	// re-admission when no finer scope is configured.
	SharedReverifyKey = "auth:reverify"

	loginKeyPrefix = "auth:login"
)

// Scope selects how the re-verification budget is partitioned.
type Scope string

const (
	// ScopeShared uses one bucket for all callers.
	ScopeShared Scope = "shared"
	// ScopePrincipal uses one bucket per principal name.
	ScopePrincipal Scope = "principal"
	// ScopeIP uses one bucket per client address.
	ScopeIP Scope = "ip"
)

// ReverifyKey returns the bucket key for a stale-token re-admission of
// principal from remoteIP under scope. Unknown scopes and empty partition
// values fall back to SharedReverifyKey.
func ReverifyKey(scope Scope, principal, remoteIP string) string {
	switch scope {
	case ScopePrincipal:
		if p := normalize(principal); p != "" {
			return SharedReverifyKey + ":user:" + p
		}
	case ScopeIP:
		if ip := strings.TrimSpace(remoteIP); ip != "" {
			return SharedReverifyKey + ":ip:" + ip
		}
	}
	return SharedReverifyKey
}

// LoginKey returns the bucket key for login attempts against username.
func LoginKey(username string) string {
	return loginKeyPrefix + ":" + normalize(username)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
