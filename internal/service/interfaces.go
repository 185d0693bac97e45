// Package service implements the account and session operations of the user
// directory. Every operation takes the caller's [session.Context] explicitly
// and returns a [models.Outcome]; an error is returned only for store and
// registry faults, which are never retried.
package service

import (
	"context"

	"github.com/MKhiriev/user-directory/internal/session"
	"github.com/MKhiriev/user-directory/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// CredentialService hashes and verifies secrets and manages session tokens.
type CredentialService interface {
	// Hash derives a one-way credential hash from secret.
	Hash(ctx context.Context, secret string) (string, error)

	// Verify reports whether secret matches credentialHash. A mismatch is not
	// an error.
	Verify(ctx context.Context, secret, credentialHash string) bool

	// IssueSession signs a token for userID and registers it.
	IssueSession(ctx context.Context, userID int64) (models.SessionToken, error)

	// ResolveSession validates signedToken against the registry. Returns
	// [ErrTokenIsExpiredOrInvalid] when it does not resolve.
	ResolveSession(ctx context.Context, signedToken string) (models.SessionToken, error)

	// RevokeSession removes tokenID from the registry.
	RevokeSession(ctx context.Context, tokenID string) error
}

// AccountService is the account controller: listing, profile, signup and edit.
type AccountService interface {
	Index(ctx context.Context, sc session.Context, pageIndex int) (models.Outcome, error)
	Show(ctx context.Context, sc session.Context, id int64) (models.Outcome, error)
	New(ctx context.Context, sc session.Context) (models.Outcome, error)
	Create(ctx context.Context, sc session.Context, form models.SignupForm) (models.Outcome, error)
	Edit(ctx context.Context, sc session.Context, id int64) (models.Outcome, error)
	Update(ctx context.Context, sc session.Context, id int64, form models.EditForm) (models.Outcome, error)
}

// SessionService signs users in and out and resolves request sessions.
type SessionService interface {
	New(ctx context.Context, sc session.Context) (models.Outcome, error)
	SignIn(ctx context.Context, form models.SignInForm) (models.Outcome, error)
	SignOut(ctx context.Context, sc session.Context) (models.Outcome, error)

	// Resolve derives the request's session context from signedToken. A token
	// that does not resolve, or whose user no longer exists, yields an
	// anonymous context and no error.
	Resolve(ctx context.Context, signedToken string) (session.Context, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
