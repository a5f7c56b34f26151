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
	"github.com/google/uuid"
)

// PostgresEnrollmentStore implements the store.EnrollmentStore interface
// using a PostgreSQL database as the storage backend.
type PostgresEnrollmentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEnrollmentStore creates a new PostgreSQL implementation of the
// EnrollmentStore interface. If logger is nil, a default logger will be used.
func NewPostgresEnrollmentStore(db store.DBTX, logger *slog.Logger) *PostgresEnrollmentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEnrollmentStore{
		db:     db,
		logger: logger.With(slog.String("component", "enrollment_store")),
	}
}

// Ensure PostgresEnrollmentStore implements store.EnrollmentStore interface
var _ store.EnrollmentStore = (*PostgresEnrollmentStore)(nil)

// Create implements store.EnrollmentStore.Create
// The unique (user_id, course_id) constraint makes this the atomic
// insert-or-report-duplicate primitive: a concurrent duplicate surfaces as
// store.ErrEnrollmentExists rather than a second row.
func (s *PostgresEnrollmentStore) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := enrollment.Validate(); err != nil {
		log.Warn("enrollment validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", enrollment.UserID.String()),
			slog.String("course_id", enrollment.CourseID))
		return err
	}

	query := `
		INSERT INTO enrollments (user_id, course_id, enrolled_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		enrollment.UserID,
		enrollment.CourseID,
		enrollment.EnrolledAt,
	).Scan(&enrollment.ID)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("enrollment already exists",
				slog.String("user_id", enrollment.UserID.String()),
				slog.String("course_id", enrollment.CourseID))
			return fmt.Errorf("%w: user %s, course %s",
				store.ErrEnrollmentExists, enrollment.UserID, enrollment.CourseID)
		}
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during enrollment creation",
				slog.String("error", err.Error()),
				slog.String("course_id", enrollment.CourseID))
			return fmt.Errorf("%w: referenced user or course not found", store.ErrInvalidEntity)
		}
		log.Error("failed to create enrollment",
			slog.String("error", err.Error()),
			slog.String("user_id", enrollment.UserID.String()),
			slog.String("course_id", enrollment.CourseID))
		return MapError(err)
	}

	log.Info("enrollment created",
		slog.Int64("enrollment_id", enrollment.ID),
		slog.String("user_id", enrollment.UserID.String()),
		slog.String("course_id", enrollment.CourseID))
	return nil
}

// GetByID implements store.EnrollmentStore.GetByID
// Returns store.ErrEnrollmentNotFound if the enrollment does not exist.
func (s *PostgresEnrollmentStore) GetByID(ctx context.Context, id int64) (*domain.Enrollment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, course_id, enrolled_at
		FROM enrollments
		WHERE id = $1
	`

	var e domain.Enrollment
	err := s.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.UserID, &e.CourseID, &e.EnrolledAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("enrollment not found", slog.Int64("enrollment_id", id))
			return nil, store.ErrEnrollmentNotFound
		}
		log.Error("failed to get enrollment by ID",
			slog.String("error", err.Error()),
			slog.Int64("enrollment_id", id))
		return nil, MapError(err)
	}

	return &e, nil
}

// GetByUserAndCourse implements store.EnrollmentStore.GetByUserAndCourse
// Returns store.ErrEnrollmentNotFound if no such enrollment exists.
func (s *PostgresEnrollmentStore) GetByUserAndCourse(
	ctx context.Context,
	userID uuid.UUID,
	courseID string,
) (*domain.Enrollment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, course_id, enrolled_at
		FROM enrollments
		WHERE user_id = $1 AND course_id = $2
	`

	var e domain.Enrollment
	err := s.db.QueryRowContext(ctx, query, userID, courseID).
		Scan(&e.ID, &e.UserID, &e.CourseID, &e.EnrolledAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("enrollment not found",
				slog.String("user_id", userID.String()),
				slog.String("course_id", courseID))
			return nil, store.ErrEnrollmentNotFound
		}
		log.Error("failed to get enrollment by user and course",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("course_id", courseID))
		return nil, MapError(err)
	}

	return &e, nil
}

// ExistsByUserAndCourse implements store.EnrollmentStore.ExistsByUserAndCourse
func (s *PostgresEnrollmentStore) ExistsByUserAndCourse(
	ctx context.Context,
	userID uuid.UUID,
	courseID string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, MapError(err)
	}
	return exists, nil
}
