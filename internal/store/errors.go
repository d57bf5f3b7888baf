package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new
	// account fails because the login is already taken.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one account produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrRecordNotFound is returned when an operation targets a record
	// identifier that was never assigned.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrAlreadyRevealed is returned when a reveal commit targets a record
	// whose plaintext projection is already revealed. The revealed flag is
	// monotonic; the first commit wins and every later one fails here.
	ErrAlreadyRevealed = errors.New("record is already revealed")

	// ErrPendingNotFound is returned when a request identifier does not
	// resolve to any pending decryption entry.
	ErrPendingNotFound = errors.New("pending decryption was not found")

	// ErrPendingNotOpen is returned when a pending entry exists but has
	// already been finalized or cancelled, so it cannot transition again.
	ErrPendingNotOpen = errors.New("pending decryption is not open")

	// ErrLabelNotFound is returned when no encrypted count exists for the
	// requested preference label or label hash.
	ErrLabelNotFound = errors.New("label count was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
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

	// ErrCommitingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
