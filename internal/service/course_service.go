package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coursekit/course-api/internal/domain"
	"github.com/coursekit/course-api/internal/store"
)

// CourseSummary is a catalog listing entry: course identity plus child
// counts, without the full content tree.
type CourseSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	TopicCount    int    `json:"topicCount"`
	SubtopicCount int    `json:"subtopicCount"`
}

// CourseService provides read access to the course catalog.
type CourseService interface {
	// ListCourses returns summaries for every course in catalog order.
	ListCourses(ctx context.Context) ([]CourseSummary, error)

	// GetCourse returns a course with its full topic/subtopic tree.
	// Returns ErrCourseNotFound if the course does not exist.
	GetCourse(ctx context.Context, id string) (*domain.Course, error)
}

// CourseServiceImpl implements the CourseService interface
type CourseServiceImpl struct {
	catalogStore store.CatalogStore
	logger       *slog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(catalogStore store.CatalogStore, logger *slog.Logger) *CourseServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseServiceImpl{
		catalogStore: catalogStore,
		logger:       logger.With("component", "course_service"),
	}
}

// Ensure CourseServiceImpl implements CourseService interface
var _ CourseService = (*CourseServiceImpl)(nil)

// ListCourses returns summaries for every course in catalog order.
func (s *CourseServiceImpl) ListCourses(ctx context.Context) ([]CourseSummary, error) {
	courses, err := s.catalogStore.ListCourses(ctx)
	if err != nil {
		s.logger.Error("failed to list courses", "error", err)
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, CourseSummary{
			ID:            course.ID,
			Title:         course.Title,
			Description:   course.Description,
			TopicCount:    len(course.Topics),
			SubtopicCount: course.SubtopicCount(),
		})
	}

	return summaries, nil
}

// GetCourse returns a course with its full topic/subtopic tree.
func (s *CourseServiceImpl) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	course, err := s.catalogStore.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			s.logger.Debug("course not found", "course_id", id)
			return nil, ErrCourseNotFound
		}
		s.logger.Error("failed to retrieve course",
			"error", err,
			"course_id", id)
		return nil, fmt.Errorf("failed to retrieve course: %w", err)
	}

	return course, nil
}
