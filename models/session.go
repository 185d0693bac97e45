// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is a registry entry for an issued session token.
type Session struct {
	// TokenID is the "jti" claim of the issued token.
	TokenID string `json:"token_id"`

	// UserID is the user the token was issued for. It is a lookup reference
	// only; the user must be re-validated on every use.
	UserID int64 `json:"user_id"`

	// ExpiresAt is the absolute expiry of the token.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has expired at now.
func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionClaims is the JWT claim set of a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionToken is an issued session token together with its decoded identity.
type SessionToken struct {
	// SignedString is the compact JWS representation sent to clients.
	SignedString string `json:"-"`

	// TokenID is the "jti" claim.
	TokenID string `json:"-"`

	// UserID is the "sub" claim parsed as int64.
	UserID int64 `json:"-"`

	// ExpiresAt is the "exp" claim.
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t SessionToken) String() string {
	return t.SignedString
}

// Session converts the token into its registry entry.
func (t SessionToken) Session() Session {
	return Session{
		TokenID:   t.TokenID,
		UserID:    t.UserID,
		ExpiresAt: t.ExpiresAt,
	}
}
