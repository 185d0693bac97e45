package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClass is the store-level meaning of a driver error.
type ErrorClass int

const (
	// ClassOther covers every error without a dedicated class.
	ClassOther ErrorClass = iota

	// ClassUniqueViolation marks a unique constraint violation; on the users
	// table this can only be the email index.
	ClassUniqueViolation

	// ClassUnavailable marks connection loss or a locked database.
	ClassUnavailable
)

// ErrorClassifier maps driver-specific errors to an [ErrorClass].
type ErrorClassifier interface {
	Classify(err error) ErrorClass
}

// PostgresErrorClassifier implements [ErrorClassifier] for PostgreSQL by
// inspecting the pgconn error code returned by the pgx driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier].
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassifier].
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClass {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ClassOther
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return ClassUniqueViolation

	// Class 08 connection exceptions and Class 57 operator intervention
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.CannotConnectNow,
		pgerrcode.AdminShutdown:
		return ClassUnavailable
	}

	return ClassOther
}

// SQLiteErrorClassifier implements [ErrorClassifier] for mattn/go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassifier].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClass {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return ClassOther
	}

	if sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ClassUniqueViolation
	}

	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen:
		return ClassUnavailable
	}

	return ClassOther
}
