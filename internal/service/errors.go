// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrTokenIsExpiredOrInvalid covers every reason a session token fails to
	// resolve: bad signature, wrong issuer, expiry, revocation.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrTokenCreationFailed = errors.New("session token creation failed")
	ErrHashingPassword     = errors.New("error hashing password")

	ErrMissingTokenSignKey = errors.New("token sign key is not specified")
)
