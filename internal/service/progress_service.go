package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/coursekit/course-api/internal/domain"
	"github.com/coursekit/course-api/internal/store"
)

// ProgressService provides subtopic completion operations.
type ProgressService interface {
	// MarkComplete records that the user finished a subtopic. The operation
	// is idempotent: repeating it returns the existing record unchanged,
	// with the original completion timestamp.
	// Returns ErrSubtopicNotFound if the subtopic does not exist and
	// ErrNotEnrolled if the user is not enrolled in its course.
	MarkComplete(ctx context.Context, userID uuid.UUID, subtopicID string) (*domain.SubtopicProgress, error)
}

// ProgressServiceImpl implements the ProgressService interface
type ProgressServiceImpl struct {
	progressStore   store.ProgressStore
	enrollmentStore store.EnrollmentStore
	catalogStore    store.CatalogStore
	logger          *slog.Logger
	timeFunc        func() time.Time // Injectable for testing
}

// NewProgressService creates a new ProgressService
func NewProgressService(
	progressStore store.ProgressStore,
	enrollmentStore store.EnrollmentStore,
	catalogStore store.CatalogStore,
	logger *slog.Logger,
) *ProgressServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressServiceImpl{
		progressStore:   progressStore,
		enrollmentStore: enrollmentStore,
		catalogStore:    catalogStore,
		logger:          logger.With("component", "progress_service"),
		timeFunc:        time.Now,
	}
}

// Ensure ProgressServiceImpl implements ProgressService interface
var _ ProgressService = (*ProgressServiceImpl)(nil)

// MarkComplete records that the user finished a subtopic.
func (s *ProgressServiceImpl) MarkComplete(
	ctx context.Context,
	userID uuid.UUID,
	subtopicID string,
) (*domain.SubtopicProgress, error) {
	courseID, err := s.catalogStore.CourseIDForSubtopic(ctx, subtopicID)
	if err != nil {
		if errors.Is(err, store.ErrSubtopicNotFound) {
			s.logger.Debug("mark complete for unknown subtopic",
				"user_id", userID,
				"subtopic_id", subtopicID)
			return nil, ErrSubtopicNotFound
		}
		s.logger.Error("failed to resolve course for subtopic",
			"error", err,
			"subtopic_id", subtopicID)
		return nil, fmt.Errorf("failed to resolve subtopic: %w", err)
	}

	enrollment, err := s.enrollmentStore.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, store.ErrEnrollmentNotFound) {
			s.logger.Debug("mark complete without enrollment",
				"user_id", userID,
				"subtopic_id", subtopicID,
				"course_id", courseID)
			return nil, ErrNotEnrolled
		}
		s.logger.Error("failed to look up enrollment",
			"error", err,
			"user_id", userID,
			"course_id", courseID)
		return nil, fmt.Errorf("failed to look up enrollment: %w", err)
	}

	progress, err := s.progressStore.GetByUserAndSubtopic(ctx, userID, subtopicID)
	switch {
	case err == nil:
		return s.completeExisting(ctx, progress)
	case errors.Is(err, store.ErrProgressNotFound):
		return s.createCompleted(ctx, userID, subtopicID, enrollment.ID)
	default:
		s.logger.Error("failed to look up progress record",
			"error", err,
			"user_id", userID,
			"subtopic_id", subtopicID)
		return nil, fmt.Errorf("failed to look up progress record: %w", err)
	}
}

// completeExisting handles the record-already-present path. An already
// completed record is returned as is; CompletedAt is never refreshed.
func (s *ProgressServiceImpl) completeExisting(
	ctx context.Context,
	progress *domain.SubtopicProgress,
) (*domain.SubtopicProgress, error) {
	if progress.Completed {
		s.logger.Debug("subtopic already completed",
			"progress_id", progress.ID,
			"subtopic_id", progress.SubtopicID)
		return progress, nil
	}

	// Not reachable through current entry points, but an incomplete record
	// must still be completable.
	progress.MarkCompleted(s.timeFunc())
	if err := s.progressStore.Update(ctx, progress); err != nil {
		s.logger.Error("failed to update progress record",
			"error", err,
			"progress_id", progress.ID)
		return nil, fmt.Errorf("failed to update progress record: %w", err)
	}

	s.logger.Info("subtopic marked complete",
		"progress_id", progress.ID,
		"subtopic_id", progress.SubtopicID)
	return progress, nil
}

// createCompleted inserts a new completed record. Losing a creation race to
// a concurrent request is treated as success: completion is idempotent, so
// the winner's record is re-read and returned.
func (s *ProgressServiceImpl) createCompleted(
	ctx context.Context,
	userID uuid.UUID,
	subtopicID string,
	enrollmentID int64,
) (*domain.SubtopicProgress, error) {
	progress, err := domain.NewSubtopicProgress(userID, subtopicID, enrollmentID)
	if err != nil {
		s.logger.Error("failed to create progress object",
			"error", err,
			"user_id", userID,
			"subtopic_id", subtopicID)
		return nil, fmt.Errorf("failed to create progress record: %w", err)
	}
	progress.MarkCompleted(s.timeFunc())

	err = s.progressStore.Create(ctx, progress)
	if err == nil {
		s.logger.Info("subtopic marked complete",
			"progress_id", progress.ID,
			"user_id", userID,
			"subtopic_id", subtopicID)
		return progress, nil
	}

	if errors.Is(err, store.ErrProgressExists) {
		s.logger.Debug("progress creation lost race, returning winner's record",
			"user_id", userID,
			"subtopic_id", subtopicID)
		winner, readErr := s.progressStore.GetByUserAndSubtopic(ctx, userID, subtopicID)
		if readErr != nil {
			return nil, fmt.Errorf("failed to re-read progress record: %w", readErr)
		}
		return s.completeExisting(ctx, winner)
	}

	s.logger.Error("failed to create progress record",
		"error", err,
		"user_id", userID,
		"subtopic_id", subtopicID)
	return nil, fmt.Errorf("failed to create progress record: %w", err)
}
