package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when registration fails because an
	// account with the same email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrAccountNotFound is returned when a lookup or update targets an
	// account that does not exist.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrLockoutRaceLost is returned by SetLockout when the guarded update
	// matched no row: a concurrent failed attempt changed the counter after
	// the caller read it, and the caller's deadline must not overwrite the
	// newer state.
	ErrLockoutRaceLost = errors.New("lockout state changed concurrently")

	// ErrTwoFactorConflict is returned when enabling two-factor fails its
	// guard: the pending secret was replaced or the flag is already set.
	ErrTwoFactorConflict = errors.New("two-factor state changed concurrently")

	// ErrSessionNotFound is returned when an operation targets a session id
	// with no matching row.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrSessionInvalid is returned by ValidateSession when the session is
	// missing, revoked, or expired. The three cases are deliberately
	// indistinguishable to callers.
	ErrSessionInvalid = errors.New("session is revoked or expired")

	// ErrNotSessionOwner is returned when a non-admin tries to revoke a
	// session that belongs to a different account.
	ErrNotSessionOwner = errors.New("session belongs to another account")

	// ErrShareNotFound is returned when a share id matches no row.
	ErrShareNotFound = errors.New("share was not found")

	// ErrShareNotRedeemable is returned by RedeemShare when the conditional
	// decrement matched no row: the share is expired or its view budget is
	// already exhausted.
	ErrShareNotRedeemable = errors.New("share is expired or exhausted")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a result
	// row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
