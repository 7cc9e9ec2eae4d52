package postgres

import (
	"errors"

	"github.com/jackc/pgconn"

	"job-tracker/internal/domain"
)

const pgUniqueViolation = "23505"

// constraintFields maps unique constraints from deploy/postgres/init.sql to
// the JSON field a client would have to change.
var constraintFields = map[string]string{
	"jobs_pkey": "_id",
}

// mapWriteErr turns a unique violation into a *domain.ConflictError and
// leaves every other error untouched.
func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	field, ok := constraintFields[pgErr.ConstraintName]
	if !ok {
		field = pgErr.ColumnName
	}
	if field == "" {
		field = "value"
	}
	return &domain.ConflictError{Field: field}
}
