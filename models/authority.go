// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAuthority is returned when a role string does not name one of
// the authorities known to the ledger.
var ErrUnknownAuthority = errors.New("unknown authority")

// Authority is the role granted to a user. Route access is decided by an
// exact match between the principal's authority and the route requirement.
type Authority string

const (
	// AuthorityNone marks routes that do not require an authenticated
	// principal. It is never assigned to a user.
	AuthorityNone Authority = ""

	// AuthorityUser is the regular ledger owner role.
	AuthorityUser Authority = "USER"

	// AuthorityEmployee is the restricted role allowed to record credit
	// transactions only.
	AuthorityEmployee Authority = "EMPLOYEE"
)

// Authorities lists every authority that may be assigned to a user.
var Authorities = []Authority{AuthorityUser, AuthorityEmployee}

// ParseAuthority converts a stored role string into an [Authority].
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseAuthority(s string) (Authority, error) {
	candidate := Authority(strings.ToUpper(strings.TrimSpace(s)))
	for _, a := range Authorities {
		if a == candidate {
			return a, nil
		}
	}
	return AuthorityNone, fmt.Errorf("%w: %q", ErrUnknownAuthority, s)
}

// IsValid reports whether a is an assignable authority.
func (a Authority) IsValid() bool {
	_, err := ParseAuthority(string(a))
	return err == nil
}

// String implements [fmt.Stringer].
func (a Authority) String() string {
	return string(a)
}

// UnmarshalJSON accepts any casing of a known authority.
func (a *Authority) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseAuthority(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
