package store

import (
	"context"

	"github.com/coursekit/course-api/internal/domain"
	"github.com/google/uuid"
)

// ProgressStore defines persistence for subtopic completion records.
type ProgressStore interface {
	// Create persists a new progress record and assigns its ID. If a
	// record for the same (user, subtopic) pair already exists — including
	// one created by a concurrent request — it returns ErrProgressExists.
	// Returns ErrInvalidEntity if a referenced row is absent.
	Create(ctx context.Context, progress *domain.SubtopicProgress) error

	// Update saves changes to an existing progress record.
	// Returns ErrProgressNotFound if the record does not exist.
	Update(ctx context.Context, progress *domain.SubtopicProgress) error

	// GetByUserAndSubtopic retrieves the user's progress record for a
	// subtopic. Returns ErrProgressNotFound if none exists.
	GetByUserAndSubtopic(ctx context.Context, userID uuid.UUID, subtopicID string) (*domain.SubtopicProgress, error)

	// FindCompletedByEnrollment retrieves the completed records belonging
	// to an enrollment, ordered by completion time (record ID as tiebreak).
	FindCompletedByEnrollment(ctx context.Context, enrollmentID int64) ([]*domain.SubtopicProgress, error)
}
