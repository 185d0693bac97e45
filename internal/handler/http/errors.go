// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrMalformedBody is returned when a JSON or form body cannot be decoded.
	ErrMalformedBody = errors.New("malformed request body")

	// ErrTooManyRequests is reported when the sign-in throttle rejects a request.
	ErrTooManyRequests = errors.New("too many requests")

	// ErrRouteNotFound is reported for unknown paths and unsupported methods.
	ErrRouteNotFound = errors.New("not found")
)
