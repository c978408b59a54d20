package store

import "errors"

// Sentinel errors returned by storage capabilities and repositories to
// signal well-known failure conditions. Callers should use [errors.Is] to
// match against these values.
var (
	// ErrInvalidEntityType is returned when an entity type carries a table
	// or column name that is not a plain SQL identifier. Names are validated
	// before they are interpolated into query text.
	ErrInvalidEntityType = errors.New("entity type has an invalid table or column name")

	// ErrUnknownEntityType is returned when storage metadata has no record
	// of the requested table/column pair.
	ErrUnknownEntityType = errors.New("entity type is not known to storage")

	// ErrCredentialAlreadyExists is returned when saving a credential record
	// whose name is already taken.
	ErrCredentialAlreadyExists = errors.New("credential name already exists")

	// ErrCredentialNotFound is returned when a lookup or delete targets a
	// credential name with no stored record.
	ErrCredentialNotFound = errors.New("credential was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// storage methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
