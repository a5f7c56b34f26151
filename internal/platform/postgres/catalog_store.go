package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coursekit/course-api/internal/domain"
	"github.com/coursekit/course-api/internal/platform/logger"
	"github.com/coursekit/course-api/internal/store"
)

// PostgresCatalogStore implements the store.CatalogStore interface using a
// PostgreSQL database as the storage backend.
type PostgresCatalogStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresCatalogStore creates a new PostgreSQL implementation of the
// CatalogStore interface. If logger is nil, a default logger will be used.
func NewPostgresCatalogStore(db *sql.DB, logger *slog.Logger) *PostgresCatalogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCatalogStore{
		db:     db,
		logger: logger.With(slog.String("component", "catalog_store")),
	}
}

// Ensure PostgresCatalogStore implements store.CatalogStore interface
var _ store.CatalogStore = (*PostgresCatalogStore)(nil)

// GetCourse implements store.CatalogStore.GetCourse
// It loads the course row and then attaches its topic/subtopic tree in
// catalog order. Returns store.ErrCourseNotFound if the course does not exist.
func (s *PostgresCatalogStore) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description
		FROM courses
		WHERE id = $1
	`

	var course domain.Course
	var description sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(&course.ID, &course.Title, &description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("course not found", slog.String("course_id", id))
			return nil, store.ErrCourseNotFound
		}
		log.Error("failed to get course",
			slog.String("error", err.Error()),
			slog.String("course_id", id))
		return nil, MapError(err)
	}
	course.Description = description.String

	if err := s.attachTopics(ctx, &course); err != nil {
		log.Error("failed to load course tree",
			slog.String("error", err.Error()),
			slog.String("course_id", id))
		return nil, MapError(err)
	}

	return &course, nil
}

// ListCourses implements store.CatalogStore.ListCourses
// Courses come back in catalog order with their full child trees attached.
func (s *PostgresCatalogStore) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description
		FROM courses
		ORDER BY position, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list courses", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	courses := []*domain.Course{}
	for rows.Next() {
		var course domain.Course
		var description sql.NullString
		if err := rows.Scan(&course.ID, &course.Title, &description); err != nil {
			return nil, MapError(err)
		}
		course.Description = description.String
		courses = append(courses, &course)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	for _, course := range courses {
		if err := s.attachTopics(ctx, course); err != nil {
			log.Error("failed to load course tree",
				slog.String("error", err.Error()),
				slog.String("course_id", course.ID))
			return nil, MapError(err)
		}
	}

	return courses, nil
}

// attachTopics loads the ordered topic and subtopic children of a course.
func (s *PostgresCatalogStore) attachTopics(ctx context.Context, course *domain.Course) error {
	topicQuery := `
		SELECT id, title
		FROM topics
		WHERE course_id = $1
		ORDER BY position, id
	`

	rows, err := s.db.QueryContext(ctx, topicQuery, course.ID)
	if err != nil {
		return err
	}
	defer closeRows(rows, s.logger)

	course.Topics = nil
	topicIndex := make(map[string]int)
	for rows.Next() {
		var topic domain.Topic
		if err := rows.Scan(&topic.ID, &topic.Title); err != nil {
			return err
		}
		topicIndex[topic.ID] = len(course.Topics)
		course.Topics = append(course.Topics, topic)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(course.Topics) == 0 {
		return nil
	}

	subtopicQuery := `
		SELECT s.topic_id, s.id, s.title, s.content
		FROM subtopics s
		JOIN topics t ON t.id = s.topic_id
		WHERE t.course_id = $1
		ORDER BY t.position, t.id, s.position, s.id
	`

	subRows, err := s.db.QueryContext(ctx, subtopicQuery, course.ID)
	if err != nil {
		return err
	}
	defer closeRows(subRows, s.logger)

	for subRows.Next() {
		var topicID string
		var sub domain.Subtopic
		var content sql.NullString
		if err := subRows.Scan(&topicID, &sub.ID, &sub.Title, &content); err != nil {
			return err
		}
		sub.Content = content.String
		if i, ok := topicIndex[topicID]; ok {
			course.Topics[i].Subtopics = append(course.Topics[i].Subtopics, sub)
		}
	}
	return subRows.Err()
}

// GetSubtopic implements store.CatalogStore.GetSubtopic
// Returns store.ErrSubtopicNotFound if the subtopic does not exist.
func (s *PostgresCatalogStore) GetSubtopic(ctx context.Context, id string) (*domain.Subtopic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, content
		FROM subtopics
		WHERE id = $1
	`

	var sub domain.Subtopic
	var content sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(&sub.ID, &sub.Title, &content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("subtopic not found", slog.String("subtopic_id", id))
			return nil, store.ErrSubtopicNotFound
		}
		log.Error("failed to get subtopic",
			slog.String("error", err.Error()),
			slog.String("subtopic_id", id))
		return nil, MapError(err)
	}
	sub.Content = content.String

	return &sub, nil
}

// CourseIDForSubtopic implements store.CatalogStore.CourseIDForSubtopic
// It resolves subtopic → topic → course through the schema instead of
// through object back references.
func (s *PostgresCatalogStore) CourseIDForSubtopic(ctx context.Context, subtopicID string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT t.course_id
		FROM subtopics s
		JOIN topics t ON t.id = s.topic_id
		WHERE s.id = $1
	`

	var courseID string
	err := s.db.QueryRowContext(ctx, query, subtopicID).Scan(&courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("subtopic not found", slog.String("subtopic_id", subtopicID))
			return "", store.ErrSubtopicNotFound
		}
		log.Error("failed to resolve course for subtopic",
			slog.String("error", err.Error()),
			slog.String("subtopic_id", subtopicID))
		return "", MapError(err)
	}

	return courseID, nil
}

// CreateCourse implements store.CatalogStore.CreateCourse
// The course and its entire child tree are inserted in one transaction.
// Returns store.ErrDuplicate if the course ID is already taken.
func (s *PostgresCatalogStore) CreateCourse(ctx context.Context, course *domain.Course, position int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		log.Warn("course validation failed during create",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID))
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO courses (id, title, description, position)
			VALUES ($1, $2, $3, $4)
		`, course.ID, course.Title, nullable(course.Description), position)
		if err != nil {
			return err
		}

		for ti := range course.Topics {
			topic := &course.Topics[ti]
			_, err := tx.ExecContext(ctx, `
				INSERT INTO topics (id, course_id, title, position)
				VALUES ($1, $2, $3, $4)
			`, topic.ID, course.ID, topic.Title, ti)
			if err != nil {
				return err
			}

			for si := range topic.Subtopics {
				sub := &topic.Subtopics[si]
				_, err := tx.ExecContext(ctx, `
					INSERT INTO subtopics (id, topic_id, title, content, position)
					VALUES ($1, $2, $3, $4, $5)
				`, sub.ID, topic.ID, sub.Title, nullable(sub.Content), si)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate catalog entry during course creation",
				slog.String("course_id", course.ID))
			return fmt.Errorf("%w: course %s", store.ErrDuplicate, course.ID)
		}
		log.Error("failed to create course",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID))
		return MapError(err)
	}

	log.Info("course created",
		slog.String("course_id", course.ID),
		slog.Int("topics", len(course.Topics)),
		slog.Int("subtopics", course.SubtopicCount()))
	return nil
}

// CountCourses implements store.CatalogStore.CountCourses
func (s *PostgresCatalogStore) CountCourses(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// closeRows closes rows and logs a failure instead of silently dropping it.
func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
