package store

import (
	"context"
	"time"

	"github.com/MKhiriev/user-directory/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserStore is the durable collection of users.
//
// Mutating operations are atomic with respect to concurrent callers: of two
// simultaneous creates with the same email exactly one succeeds and the other
// observes [ErrDuplicateEmail].
type UserStore interface {
	// Create persists a new user and returns it with ID and timestamps set.
	// Returns [ErrDuplicateEmail] if the email is already used.
	Create(ctx context.Context, name, email, passwordHash string) (models.User, error)

	// Fetch returns the user with the given id or [ErrNotFound].
	Fetch(ctx context.Context, id int64) (models.User, error)

	// FetchByEmail returns the user owning email (case-insensitive) or [ErrNotFound].
	FetchByEmail(ctx context.Context, email string) (models.User, error)

	// Update applies the non-nil fields of update. Returns [ErrNotFound] or
	// [ErrDuplicateEmail] when the new email belongs to another user.
	Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)

	// Count returns the number of users.
	Count(ctx context.Context) (int, error)

	// Page returns the index-th window of size users ordered by ID.
	// An out-of-range index yields an empty page, not an error.
	Page(ctx context.Context, index, size int) (models.Page, error)
}

// SessionRegistry tracks issued session tokens by token id.
// Writes are serialized; a revoked or expired session never resolves.
type SessionRegistry interface {
	Register(ctx context.Context, session models.Session) error

	// Lookup returns the live session for tokenID or [ErrNotFound].
	Lookup(ctx context.Context, tokenID string) (models.Session, error)

	// Revoke removes the session. Revoking an unknown id is not an error.
	Revoke(ctx context.Context, tokenID string) error

	// PurgeExpired drops sessions expired at now and reports how many.
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}
