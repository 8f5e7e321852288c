package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool (and pgx.Tx) the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// UniqueViolation reports whether err is a unique_violation and returns the constraint name.
func UniqueViolation(err error) (string, bool) {
	return pgCode(err, uniqueViolation)
}

// ForeignKeyViolation reports whether err is a foreign_key_violation.
func ForeignKeyViolation(err error) (string, bool) {
	return pgCode(err, foreignKeyViolation)
}

// CheckViolation reports whether err is a check_violation.
func CheckViolation(err error) (string, bool) {
	return pgCode(err, checkViolation)
}

func pgCode(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr.ConstraintName, true
	}
	return "", false
}
