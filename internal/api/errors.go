package api

import (
	"errors"
	"net/http"

	"github.com/coursekit/course-api/internal/api/shared"
	"github.com/coursekit/course-api/internal/service"
	"github.com/coursekit/course-api/internal/service/auth"
	"github.com/coursekit/course-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotEnrolled):
		return http.StatusForbidden

	// Not found errors. ErrEnrollmentNotFound covers both absent and
	// not-owned enrollments so ownership is never revealed.
	case errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrSubtopicNotFound),
		errors.Is(err, service.ErrEnrollmentNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	// Authorization errors
	case errors.Is(err, service.ErrNotEnrolled):
		return "You are not enrolled in this course"

	// Not found errors
	case errors.Is(err, service.ErrCourseNotFound):
		return "Course not found"

	case errors.Is(err, service.ErrSubtopicNotFound):
		return "Subtopic not found"

	case errors.Is(err, service.ErrEnrollmentNotFound):
		return "Enrollment not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	// Conflict errors
	case errors.Is(err, service.ErrAlreadyEnrolled):
		return "Already enrolled in this course"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and sanitized message and
// writes the response, logging the underlying error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
