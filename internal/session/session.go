// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the per-request authentication state.
//
// A [Context] is derived once from the incoming session token and passed
// explicitly into every account operation. It is an immutable value: there
// is no ambient current user.
package session

import "context"

// Context is the authenticated identity of one request, if any.
// The zero value is an anonymous context.
type Context struct {
	userID   int64
	signedIn bool
	tokenID  string
}

// Anonymous returns a context with no authenticated user.
func Anonymous() Context {
	return Context{}
}

// SignedIn returns a context authenticated as userID.
func SignedIn(userID int64) Context {
	return Context{userID: userID, signedIn: true}
}

// WithTokenID returns a copy of c remembering the session token it was
// resolved from, so the token can be revoked on sign-out.
func (c Context) WithTokenID(tokenID string) Context {
	c.tokenID = tokenID
	return c
}

// CurrentUserID returns the authenticated user id; ok is false for an
// anonymous context.
func (c Context) CurrentUserID() (id int64, ok bool) {
	return c.userID, c.signedIn
}

// IsSignedIn reports whether the request is authenticated.
func (c Context) IsSignedIn() bool {
	return c.signedIn
}

// TokenID returns the id of the session token behind c, or "".
func (c Context) TokenID() string {
	return c.tokenID
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying sc.
func NewContext(ctx context.Context, sc Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, sc)
}

// FromContext returns the session context stored in ctx, or an anonymous one.
func FromContext(ctx context.Context) Context {
	sc, _ := ctx.Value(ctxKey{}).(Context)
	return sc
}
