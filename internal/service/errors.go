package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent expected conditions that callers check with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped with context via fmt.Errorf("%w")
// 3. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrCourseNotFound indicates the referenced course does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrCourseNotFound = errors.New("course not found")

	// ErrSubtopicNotFound indicates the referenced subtopic does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrSubtopicNotFound = errors.New("subtopic not found")

	// ErrEnrollmentNotFound indicates no enrollment with the given ID exists
	// for the requesting user. Deliberately returned both when the enrollment
	// is absent and when it belongs to another user, so callers cannot probe
	// for other users' enrollments.
	// API layer should map this to HTTP 404 Not Found.
	ErrEnrollmentNotFound = errors.New("enrollment not found")

	// ErrAlreadyEnrolled indicates the user is already enrolled in the course.
	// API layer should map this to HTTP 409 Conflict.
	ErrAlreadyEnrolled = errors.New("user is already enrolled in this course")

	// ErrNotEnrolled indicates the user is not enrolled in the course that
	// owns the subtopic they are trying to complete.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotEnrolled = errors.New("user is not enrolled in this course")
)
