package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/coursekit/course-api/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the error code for unique constraint violations.
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the error code for foreign key violations.
	foreignKeyViolationCode = "23503"
)

// IsUniqueViolation checks if the error is a unique constraint violation.
// This is how a lost check-then-insert race surfaces: the second writer's
// insert fails here and is mapped to a typed duplicate error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation checks if the error is a foreign key violation,
// i.e. the entity references a row that does not exist.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// MapError translates low-level database errors into the store taxonomy,
// wrapping the original error for debugging context. Errors without a
// specific mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		}
	}

	return err
}
