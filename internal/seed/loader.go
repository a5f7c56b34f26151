// Package seed loads the initial course catalog from a JSON fixture.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/coursekit/course-api/internal/domain"
	"github.com/coursekit/course-api/internal/store"
)

// Loader populates an empty catalog from a JSON fixture file.
type Loader struct {
	catalogStore store.CatalogStore
	logger       *slog.Logger
}

// NewLoader creates a new Loader. If logger is nil, a default logger will
// be used.
func NewLoader(catalogStore store.CatalogStore, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		catalogStore: catalogStore,
		logger:       logger.With(slog.String("component", "seed_loader")),
	}
}

// Load reads courses from the fixture at path and inserts them in file
// order. Loading is skipped when the catalog already has courses, so a
// restart never duplicates or reorders the catalog. An empty path disables
// seeding.
func (l *Loader) Load(ctx context.Context, path string) error {
	if path == "" {
		l.logger.Debug("seeding disabled, no fixture path configured")
		return nil
	}

	count, err := l.catalogStore.CountCourses(ctx)
	if err != nil {
		return fmt.Errorf("failed to count courses: %w", err)
	}
	if count > 0 {
		l.logger.Info("catalog already populated, skipping seed",
			slog.Int("courses", count))
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed fixture %s: %w", path, err)
	}

	var courses []domain.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return fmt.Errorf("failed to parse seed fixture %s: %w", path, err)
	}

	for i := range courses {
		course := &courses[i]
		if err := l.catalogStore.CreateCourse(ctx, course, i); err != nil {
			return fmt.Errorf("failed to seed course %s: %w", course.ID, err)
		}
		l.logger.Info("seeded course",
			slog.String("course_id", course.ID),
			slog.String("title", course.Title),
			slog.Int("topics", len(course.Topics)),
			slog.Int("subtopics", course.SubtopicCount()))
	}

	l.logger.Info("catalog seeded", slog.Int("courses", len(courses)))
	return nil
}
