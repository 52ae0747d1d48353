package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	"quire/internal/password"
)

// ErrUserExists is returned by SeedAdmin when the name or email already
// belongs to an account.
var ErrUserExists = errors.New("user already exists")

const codeUniqueViolation = "23505"

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SeedAdmin creates an administrator account unless one already exists.
// It is the explicit alternative to the first-registration rule and is
// safe to call repeatedly. Returns true if a user was inserted.
func SeedAdmin(ctx context.Context, db *sql.DB, name, email, plaintext string) (bool, error) {
	var exists bool
	if err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE role = 'admin')`,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("seed check admin: %w", err)
	}

	if exists {
		slog.Info("admin account already present, skipping seed")
		return false, nil
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return false, fmt.Errorf("seed hash: %w", err)
	}

	if err := insertAdmin(ctx, db, name, email, hash); err != nil {
		return false, err
	}

	slog.Info("admin account created", "email", email)
	return true, nil
}

func insertAdmin(ctx context.Context, db execer, name, email, hash string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, 'admin')
	`, name, email, hash)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", seedError(err))
	}
	return nil
}

// seedError maps a unique violation to ErrUserExists.
func seedError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return fmt.Errorf("%w (%s)", ErrUserExists, pgErr.ConstraintName)
	}
	return err
}
