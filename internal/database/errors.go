package database

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound = errors.New("not found")

	// The referenced-entity errors wrap ErrNotFound so callers can match either.
	ErrRoleNotFound = fmt.Errorf("role %w", ErrNotFound)
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	ErrRoomNotFound = fmt.Errorf("room %w", ErrNotFound)

	ErrConflict           = errors.New("unique constraint violated")
	ErrIncompatibleSchema = errors.New("incompatible schema version")
	ErrClosed             = errors.New("store is closed")
)

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}

	return false
}
