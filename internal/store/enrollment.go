package store

import (
	"context"

	"github.com/coursekit/course-api/internal/domain"
	"github.com/google/uuid"
)

// EnrollmentStore defines persistence for enrollments.
type EnrollmentStore interface {
	// Create persists a new enrollment and assigns its ID. The insert is
	// the atomic insert-or-report-duplicate primitive: if an enrollment
	// for the same (user, course) pair exists — including one created by
	// a concurrent request — it returns ErrEnrollmentExists.
	// Returns ErrInvalidEntity if the referenced course or user is absent.
	Create(ctx context.Context, enrollment *domain.Enrollment) error

	// GetByID retrieves an enrollment by its store-assigned ID.
	// Returns ErrEnrollmentNotFound if the enrollment does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Enrollment, error)

	// GetByUserAndCourse retrieves the user's enrollment in a course.
	// Returns ErrEnrollmentNotFound if no such enrollment exists.
	GetByUserAndCourse(ctx context.Context, userID uuid.UUID, courseID string) (*domain.Enrollment, error)

	// ExistsByUserAndCourse reports whether the user is enrolled in the
	// course. A cheap pre-check; Create remains the authority under races.
	ExistsByUserAndCourse(ctx context.Context, userID uuid.UUID, courseID string) (bool, error)
}
