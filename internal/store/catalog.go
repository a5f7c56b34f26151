package store

import (
	"context"

	"github.com/coursekit/course-api/internal/domain"
)

// CatalogStore defines read access to the Course/Topic/Subtopic hierarchy
// plus the write path used by seeding. The catalog is read-mostly reference
// data: courses are loaded with their full child tree in catalog order.
type CatalogStore interface {
	// GetCourse retrieves a course by ID with its topics and subtopics
	// nested in catalog order.
	// Returns ErrCourseNotFound if the course does not exist.
	GetCourse(ctx context.Context, id string) (*domain.Course, error)

	// ListCourses retrieves the full catalog in stable catalog order,
	// each course with its nested topics and subtopics.
	ListCourses(ctx context.Context) ([]*domain.Course, error)

	// GetSubtopic retrieves a single subtopic by ID.
	// Returns ErrSubtopicNotFound if the subtopic does not exist.
	GetSubtopic(ctx context.Context, id string) (*domain.Subtopic, error)

	// CourseIDForSubtopic resolves the course a subtopic belongs to by
	// walking the ownership chain in the store, avoiding back references
	// on the domain objects.
	// Returns ErrSubtopicNotFound if the subtopic does not exist.
	CourseIDForSubtopic(ctx context.Context, subtopicID string) (string, error)

	// CreateCourse persists a course and its entire child tree atomically
	// at the given catalog position. Used by the seed loader.
	// Returns ErrDuplicate if a course with the same ID already exists.
	CreateCourse(ctx context.Context, course *domain.Course, position int) error

	// CountCourses returns the number of courses in the catalog.
	CountCourses(ctx context.Context) (int, error)
}
