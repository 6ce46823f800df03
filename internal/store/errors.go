package store

import "errors"

// Sentinel errors returned by repository and storage methods to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrNoteNotSaved is returned when an upsert of a note completes without
	// error but no row was affected.
	ErrNoteNotSaved = errors.New("note was not saved")

	// ErrAttachmentNotFound is returned when an attachment file does not
	// exist at the requested path.
	ErrAttachmentNotFound = errors.New("attachment file not found")

	// ErrInvalidAttachmentPath is returned when a note id or attachment id
	// cannot be used as a path element.
	ErrInvalidAttachmentPath = errors.New("invalid attachment path")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrDecodingColumn is returned when a JSON column cannot be decoded.
	ErrDecodingColumn = errors.New("failed to decode column")
)
