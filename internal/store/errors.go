package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDuplicateEmail is returned when a create or update would give two
	// users the same email address (compared case-insensitively).
	ErrDuplicateEmail = errors.New("email has already been taken")

	// ErrNotFound is returned when no user or session matches the lookup.
	ErrNotFound = errors.New("not found")
)

// Low-level database operation errors. These wrap driver errors when a SQL
// operation fails before any domain meaning can be attached.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing a transaction fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan user row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan user rows")

	// ErrUnsupportedDriver is returned by [NewStorages] for unknown drivers.
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
)
