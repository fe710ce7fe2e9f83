// Package pgerr maps PostgreSQL driver errors onto the errs package.
package pgerr

import (
	"errors"

	"warehouse/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the adapters react to.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err was caused by a duplicate key.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation
}

// IsForeignKeyViolation reports whether err was caused by a reference to a missing row.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == ForeignKeyViolation
}

// TranslateReference turns a foreign key violation into errs.ObjectNotFoundError for the
// referenced aggregate and leaves every other error untouched.
func TranslateReference(err error, paramName string, id any) error {
	if IsForeignKeyViolation(err) {
		return errs.NewObjectNotFoundErrorWithCause(paramName, id, err)
	}
	return err
}

// Translate turns a duplicate key into errs.ObjectAlreadyExistsError for the given
// aggregate and leaves every other error untouched.
func Translate(err error, paramName string, id any) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return errs.NewObjectAlreadyExistsErrorWithCause(paramName, id, err)
	}
	return err
}
