// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrRouteWithoutPolicy is returned by [Handler.Init] when the router
	// serves a route that has no required authority declared.
	ErrRouteWithoutPolicy = errors.New("route has no authority policy")

	// ErrInvalidJSON is reported for request bodies that cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidID is reported when a path identifier is not a positive integer.
	ErrInvalidID = errors.New("invalid id in path")

	errAuthenticationRequired = errors.New("authentication required")
	errForbidden              = errors.New("insufficient authority")
)
