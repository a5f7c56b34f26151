package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Enrollment
var (
	ErrEmptyEnrollmentUserID   = errors.New("enrollment user ID cannot be empty")
	ErrEmptyEnrollmentCourseID = errors.New("enrollment course ID cannot be empty")
	ErrZeroEnrolledAt          = errors.New("enrollment timestamp cannot be zero")
)

// Enrollment is a user's registration in a course. It gates the right to
// mark subtopics of that course complete. An enrollment is created once and
// never updated afterwards; EnrolledAt records that single moment.
//
// The (UserID, CourseID) pair is unique — the store enforces this at the
// point of write so that concurrent enroll calls cannot both succeed.
type Enrollment struct {
	ID         int64     `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	CourseID   string    `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// NewEnrollment creates an Enrollment for the given user and course with
// EnrolledAt set to the current time. The ID is assigned by the store.
// Returns an error if validation fails.
func NewEnrollment(userID uuid.UUID, courseID string) (*Enrollment, error) {
	e := &Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate checks if the Enrollment has valid data.
func (e *Enrollment) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrEmptyEnrollmentUserID
	}
	if e.CourseID == "" {
		return ErrEmptyEnrollmentCourseID
	}
	if e.EnrolledAt.IsZero() {
		return ErrZeroEnrolledAt
	}
	return nil
}
