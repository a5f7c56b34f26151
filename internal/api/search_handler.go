package api

import (
	"net/http"

	"github.com/coursekit/course-api/internal/api/shared"
	"github.com/coursekit/course-api/internal/service"
)

// SearchHandler handles catalog search requests.
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler creates a new SearchHandler with the given dependencies.
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// Search handles GET /api/search?q=. An empty query is valid and matches
// the whole catalog.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := h.searchService.Search(r.Context(), query)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, results)
}
