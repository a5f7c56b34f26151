package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coursekit/course-api/internal/api/shared"
	"github.com/coursekit/course-api/internal/service"
)

// SubtopicHandler handles subtopic completion requests.
type SubtopicHandler struct {
	progressService service.ProgressService
}

// NewSubtopicHandler creates a new SubtopicHandler with the given dependencies.
func NewSubtopicHandler(progressService service.ProgressService) *SubtopicHandler {
	return &SubtopicHandler{
		progressService: progressService,
	}
}

// MarkComplete handles POST /api/subtopics/{subtopicID}/complete.
func (h *SubtopicHandler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	subtopicID := chi.URLParam(r, "subtopicID")
	if subtopicID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Subtopic ID is required")
		return
	}

	progress, err := h.progressService.MarkComplete(r.Context(), userID, subtopicID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CompletionResponse{
		SubtopicID:  progress.SubtopicID,
		Completed:   progress.Completed,
		CompletedAt: progress.CompletedAt,
	})
}
