package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific variants below wrap it so callers can match
	// either the generic or the specific error with errors.Is.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert would violate a uniqueness
	// invariant. Store implementations translate the backend's constraint
	// violation into this error at the point of write, which is what makes
	// check-then-insert sequences safe under concurrency.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or references a row that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrCourseNotFound indicates that the requested course does not exist.
	ErrCourseNotFound = fmt.Errorf("%w: course", ErrNotFound)

	// ErrSubtopicNotFound indicates that the requested subtopic does not exist.
	ErrSubtopicNotFound = fmt.Errorf("%w: subtopic", ErrNotFound)

	// ErrEnrollmentNotFound indicates that the requested enrollment does not exist.
	ErrEnrollmentNotFound = fmt.Errorf("%w: enrollment", ErrNotFound)

	// ErrProgressNotFound indicates that the requested progress record does not exist.
	ErrProgressNotFound = fmt.Errorf("%w: subtopic progress", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrEnrollmentExists indicates that the user already has an enrollment
	// in the course. Raised by the unique (user_id, course_id) constraint.
	ErrEnrollmentExists = fmt.Errorf("%w: enrollment", ErrDuplicate)

	// ErrProgressExists indicates that a progress record for the
	// (user, subtopic) pair already exists. Raised by the unique
	// (user_id, subtopic_id) constraint when two first completions race.
	ErrProgressExists = fmt.Errorf("%w: subtopic progress", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
