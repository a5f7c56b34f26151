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

// PostgresProgressStore implements the store.ProgressStore interface using
// a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// Create implements store.ProgressStore.Create
// The unique (user_id, subtopic_id) constraint turns a lost creation race
// into store.ErrProgressExists instead of a duplicate row.
func (s *PostgresProgressStore) Create(ctx context.Context, progress *domain.SubtopicProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("progress validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("subtopic_id", progress.SubtopicID))
		return err
	}

	query := `
		INSERT INTO subtopic_progress (user_id, subtopic_id, enrollment_id, completed, completed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		progress.UserID,
		progress.SubtopicID,
		progress.EnrollmentID,
		progress.Completed,
		progress.CompletedAt,
	).Scan(&progress.ID)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("progress record already exists",
				slog.String("user_id", progress.UserID.String()),
				slog.String("subtopic_id", progress.SubtopicID))
			return fmt.Errorf("%w: user %s, subtopic %s",
				store.ErrProgressExists, progress.UserID, progress.SubtopicID)
		}
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during progress creation",
				slog.String("error", err.Error()),
				slog.String("subtopic_id", progress.SubtopicID))
			return fmt.Errorf("%w: referenced user, subtopic or enrollment not found",
				store.ErrInvalidEntity)
		}
		log.Error("failed to create progress record",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("subtopic_id", progress.SubtopicID))
		return MapError(err)
	}

	log.Info("progress record created",
		slog.Int64("progress_id", progress.ID),
		slog.String("user_id", progress.UserID.String()),
		slog.String("subtopic_id", progress.SubtopicID))
	return nil
}

// Update implements store.ProgressStore.Update
// Returns store.ErrProgressNotFound if the record does not exist.
func (s *PostgresProgressStore) Update(ctx context.Context, progress *domain.SubtopicProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("progress validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("progress_id", progress.ID))
		return err
	}

	query := `
		UPDATE subtopic_progress
		SET completed = $1, completed_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, progress.Completed, progress.CompletedAt, progress.ID)
	if err != nil {
		log.Error("failed to update progress record",
			slog.String("error", err.Error()),
			slog.Int64("progress_id", progress.ID))
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		log.Debug("progress record not found for update",
			slog.Int64("progress_id", progress.ID))
		return store.ErrProgressNotFound
	}

	return nil
}

// GetByUserAndSubtopic implements store.ProgressStore.GetByUserAndSubtopic
// Returns store.ErrProgressNotFound if no record exists for the pair.
func (s *PostgresProgressStore) GetByUserAndSubtopic(
	ctx context.Context,
	userID uuid.UUID,
	subtopicID string,
) (*domain.SubtopicProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, subtopic_id, enrollment_id, completed, completed_at
		FROM subtopic_progress
		WHERE user_id = $1 AND subtopic_id = $2
	`

	var p domain.SubtopicProgress
	err := s.db.QueryRowContext(ctx, query, userID, subtopicID).Scan(
		&p.ID,
		&p.UserID,
		&p.SubtopicID,
		&p.EnrollmentID,
		&p.Completed,
		&p.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProgressNotFound
		}
		log.Error("failed to get progress by user and subtopic",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("subtopic_id", subtopicID))
		return nil, MapError(err)
	}

	return &p, nil
}

// FindCompletedByEnrollment implements store.ProgressStore.FindCompletedByEnrollment
// Records come back in completion-time order, record ID breaking ties, so
// progress summaries are stable across reads.
func (s *PostgresProgressStore) FindCompletedByEnrollment(
	ctx context.Context,
	enrollmentID int64,
) ([]*domain.SubtopicProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, subtopic_id, enrollment_id, completed, completed_at
		FROM subtopic_progress
		WHERE enrollment_id = $1 AND completed
		ORDER BY completed_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, enrollmentID)
	if err != nil {
		log.Error("failed to query completed progress",
			slog.String("error", err.Error()),
			slog.Int64("enrollment_id", enrollmentID))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	records := []*domain.SubtopicProgress{}
	for rows.Next() {
		var p domain.SubtopicProgress
		err := rows.Scan(&p.ID, &p.UserID, &p.SubtopicID, &p.EnrollmentID, &p.Completed, &p.CompletedAt)
		if err != nil {
			return nil, MapError(err)
		}
		records = append(records, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return records, nil
}
