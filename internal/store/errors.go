package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a write violates a unique constraint
	// (user name or email, post title).
	ErrDuplicate = errors.New("already exists")

	// ErrInvalidReference is returned when a write names a user or post
	// that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// PostgreSQL SQLSTATE codes for constraint violations.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// classify converts constraint violations into the package sentinels and
// returns other errors unchanged.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w (%s)", ErrDuplicate, pgErr.ConstraintName)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w (%s)", ErrInvalidReference, pgErr.ConstraintName)
	}
	return err
}
