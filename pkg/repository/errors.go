package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// ErrorMap translates database errors to domain errors.
// Nil fields leave the corresponding database error unchanged.
type ErrorMap struct {
	NotFound   error
	Duplicate  error
	ForeignKey error
	Check      error
}

// Map applies the mapping to err. Unmapped errors are returned unchanged.
func (m ErrorMap) Map(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) && m.NotFound != nil {
		return m.NotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case pgErr.Code == pgUniqueViolation && m.Duplicate != nil:
		return m.Duplicate
	case pgErr.Code == pgForeignKeyViolation && m.ForeignKey != nil:
		return m.ForeignKey
	case pgErr.Code == pgCheckViolation && m.Check != nil:
		return m.Check
	}

	return err
}
