package store

import (
	"errors"
	"strings"
)

var (
	// ErrOpen marks a storage-open failure. It is fatal: no store
	// operation can succeed once opening the database has failed.
	ErrOpen = errors.New("storage unavailable")

	// ErrNotFound is returned by lookups and updates targeting an
	// identifier that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned by add operations when the identifier
	// already exists.
	ErrDuplicate = errors.New("record already exists")
)

// isConstraintErr reports whether err is a SQLite uniqueness violation.
// The modernc driver exposes these only through the error text.
func isConstraintErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
