package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an INSERT fails because another
	// account already owns the email address (case-insensitive).
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNicknameAlreadyExists is returned when an INSERT fails because
	// another account already owns the nickname.
	ErrNicknameAlreadyExists = errors.New("nickname already exists")

	// ErrAccountNotFound is returned when a lookup or targeted update
	// matches no account record.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmptyProfilePatch is returned by UpdateProfile when the patch
	// carries no fields to change.
	ErrEmptyProfilePatch = errors.New("profile patch is empty")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan account row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan account rows")

	// ErrStorageUnavailable wraps driver errors the classifier marks as
	// retryable (lost connections, deadlocks, serialization failures).
	// Callers may retry the operation or surface a retry hint.
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
)
