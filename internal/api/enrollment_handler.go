package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coursekit/course-api/internal/api/shared"
	"github.com/coursekit/course-api/internal/service"
)

// EnrollmentHandler handles enrollment and progress-summary requests.
type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler with the given dependencies.
func NewEnrollmentHandler(enrollmentService service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
	}
}

// Enroll handles POST /api/courses/{courseID}/enroll.
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	courseID := chi.URLParam(r, "courseID")
	if courseID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Course ID is required")
		return
	}

	enrollment, err := h.enrollmentService.Enroll(r.Context(), userID, courseID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, EnrollmentResponse{
		EnrollmentID: enrollment.ID,
		CourseID:     enrollment.CourseID,
		EnrolledAt:   enrollment.EnrolledAt,
	})
}

// GetProgress handles GET /api/enrollments/{enrollmentID}/progress.
func (h *EnrollmentHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	enrollmentID, ok := getPathInt64(r, "enrollmentID")
	if !ok {
		// An unparseable ID can never reference an enrollment; answer the
		// same way as an unknown one.
		HandleAPIError(w, r, service.ErrEnrollmentNotFound)
		return
	}

	summary, err := h.enrollmentService.GetProgress(r.Context(), userID, enrollmentID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}
