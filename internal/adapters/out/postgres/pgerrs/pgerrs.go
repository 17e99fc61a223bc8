// Package pgerrs maps Postgres driver errors onto the error kinds of internal/pkg/errs.
package pgerrs

import (
	"errors"

	"logistics/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique or primary key violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Translate turns a unique violation into a ConflictError and a missing record
// into an ObjectNotFoundError. Other errors are returned unchanged.
func Translate(err error, resource string, id any) error {
	switch {
	case err == nil:
		return nil
	case IsUniqueViolation(err):
		return errs.NewConflictErrorWithCause(resource, id, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewObjectNotFoundErrorWithCause(resource, id, err)
	default:
		return err
	}
}
