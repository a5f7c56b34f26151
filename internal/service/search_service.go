package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/coursekit/course-api/internal/domain"
	"github.com/coursekit/course-api/internal/store"
)

// Match type tags.
const (
	MatchTypeCourse   = "course"
	MatchTypeTopic    = "topic"
	MatchTypeSubtopic = "subtopic"
	MatchTypeContent  = "content"
)

// snippetRadius is the number of characters kept on each side of the first
// query occurrence when excerpting a long field.
const snippetRadius = 50

// fallbackSnippetLen is the prefix length used when the query cannot be
// located in the raw field text.
const fallbackSnippetLen = 150

// Match is one matching field within a course. TopicTitle and the subtopic
// fields are populated when the match sits below the course level.
type Match struct {
	Type          string `json:"type"`
	TopicTitle    string `json:"topicTitle,omitempty"`
	SubtopicID    string `json:"subtopicId,omitempty"`
	SubtopicTitle string `json:"subtopicTitle,omitempty"`
	Snippet       string `json:"snippet"`
}

// CourseResult groups a course's matches. Courses with no matches never
// appear in results.
type CourseResult struct {
	CourseID    string  `json:"courseId"`
	CourseTitle string  `json:"courseTitle"`
	Matches     []Match `json:"matches"`
}

// SearchResults is the response of a catalog search.
type SearchResults struct {
	Query   string         `json:"query"`
	Results []CourseResult `json:"results"`
}

// SearchService scans the catalog for case-insensitive substring matches.
type SearchService interface {
	// Search matches the query against course titles and descriptions,
	// topic titles, and subtopic titles and content. Results preserve
	// catalog order; an empty result list is not an error.
	//
	// An empty query matches every field, because every string contains
	// the empty substring. That is the intended contract, not a special
	// case.
	Search(ctx context.Context, query string) (*SearchResults, error)
}

// SearchServiceImpl implements the SearchService interface
type SearchServiceImpl struct {
	catalogStore store.CatalogStore
	logger       *slog.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(catalogStore store.CatalogStore, logger *slog.Logger) *SearchServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchServiceImpl{
		catalogStore: catalogStore,
		logger:       logger.With("component", "search_service"),
	}
}

// Ensure SearchServiceImpl implements SearchService interface
var _ SearchService = (*SearchServiceImpl)(nil)

// Search scans the full catalog for the query.
func (s *SearchServiceImpl) Search(ctx context.Context, query string) (*SearchResults, error) {
	courses, err := s.catalogStore.ListCourses(ctx)
	if err != nil {
		s.logger.Error("failed to load catalog for search", "error", err)
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	needle := strings.ToLower(query)
	results := []CourseResult{}
	for _, course := range courses {
		matches := matchCourse(course, needle)
		if len(matches) == 0 {
			continue
		}
		results = append(results, CourseResult{
			CourseID:    course.ID,
			CourseTitle: course.Title,
			Matches:     matches,
		})
	}

	s.logger.Debug("search completed",
		"query", query,
		"courses_matched", len(results))

	return &SearchResults{Query: query, Results: results}, nil
}

// matchCourse collects the course's matches in discovery order: course-level
// fields first, then each topic and its subtopics in catalog order, title
// match before content match within a subtopic.
func matchCourse(course *domain.Course, needle string) []Match {
	var matches []Match

	if containsFold(course.Title, needle) {
		matches = append(matches, Match{
			Type:    MatchTypeCourse,
			Snippet: course.Title,
		})
	}
	if course.Description != "" && containsFold(course.Description, needle) {
		matches = append(matches, Match{
			Type:    MatchTypeCourse,
			Snippet: makeSnippet(course.Description, needle),
		})
	}

	for ti := range course.Topics {
		topic := &course.Topics[ti]
		if containsFold(topic.Title, needle) {
			matches = append(matches, Match{
				Type:       MatchTypeTopic,
				TopicTitle: topic.Title,
				Snippet:    topic.Title,
			})
		}

		for si := range topic.Subtopics {
			sub := &topic.Subtopics[si]
			if containsFold(sub.Title, needle) {
				matches = append(matches, Match{
					Type:          MatchTypeSubtopic,
					TopicTitle:    topic.Title,
					SubtopicID:    sub.ID,
					SubtopicTitle: sub.Title,
					Snippet:       sub.Title,
				})
			}
			if sub.Content != "" && containsFold(sub.Content, needle) {
				matches = append(matches, Match{
					Type:          MatchTypeContent,
					TopicTitle:    topic.Title,
					SubtopicID:    sub.ID,
					SubtopicTitle: sub.Title,
					Snippet:       makeSnippet(sub.Content, needle),
				})
			}
		}
	}

	return matches
}

// containsFold reports whether s contains the already-lowercased needle,
// ignoring case. Every string contains the empty needle.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

// makeSnippet excerpts a window around the first occurrence of the needle in
// text: up to snippetRadius characters on each side, with "..." marking a
// clipped start or end. When the needle cannot be located (it matched via a
// case-folded comparison but folding changed byte offsets, or it is empty),
// the snippet falls back to the first fallbackSnippetLen characters.
func makeSnippet(text, needle string) string {
	idx := strings.Index(strings.ToLower(text), needle)
	if idx < 0 || needle == "" {
		if len(text) <= fallbackSnippetLen {
			return text
		}
		return text[:fallbackSnippetLen] + "..."
	}

	start := idx - snippetRadius
	if start < 0 {
		start = 0
	}
	end := idx + len(needle) + snippetRadius
	if end > len(text) {
		end = len(text)
	}

	snippet := text[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(text) {
		snippet = snippet + "..."
	}
	return snippet
}
