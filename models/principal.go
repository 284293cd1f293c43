// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Principal is a verified identity attached to a single request.
// It is derived from a stored user record and discarded when the request
// ends; principals are never persisted.
type Principal struct {
	// Name is the unique username of the authenticated user.
	Name string `json:"name"`

	// Authority is the role the principal acts with.
	Authority Authority `json:"authority"`
}

// IsZero reports whether p carries no identity.
func (p Principal) IsZero() bool {
	return p.Name == ""
}

// Has reports whether the principal satisfies the required authority.
// AuthorityNone is satisfied by everyone.
func (p Principal) Has(required Authority) bool {
	if required == AuthorityNone {
		return true
	}
	return p.Authority == required
}
