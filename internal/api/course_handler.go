package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coursekit/course-api/internal/api/shared"
	"github.com/coursekit/course-api/internal/service"
)

// CourseHandler handles catalog read requests.
type CourseHandler struct {
	courseService service.CourseService
}

// NewCourseHandler creates a new CourseHandler with the given dependencies.
func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
	}
}

// ListCourses handles GET /api/courses.
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.courseService.ListCourses(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaries)
}

// GetCourse handles GET /api/courses/{courseID}.
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	if courseID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Course ID is required")
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), courseID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, course)
}
