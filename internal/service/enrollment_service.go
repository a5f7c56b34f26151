package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/coursekit/course-api/internal/domain"
	"github.com/coursekit/course-api/internal/store"
)

// CompletedItem is one completed subtopic in a progress summary.
type CompletedItem struct {
	SubtopicID    string    `json:"subtopicId"`
	SubtopicTitle string    `json:"subtopicTitle"`
	CompletedAt   time.Time `json:"completedAt"`
}

// ProgressSummary describes a user's progress through an enrolled course.
type ProgressSummary struct {
	EnrollmentID         int64           `json:"enrollmentId"`
	CourseID             string          `json:"courseId"`
	CourseTitle          string          `json:"courseTitle"`
	TotalSubtopics       int             `json:"totalSubtopics"`
	CompletedSubtopics   int             `json:"completedSubtopics"`
	CompletionPercentage float64         `json:"completionPercentage"`
	CompletedItems       []CompletedItem `json:"completedItems"`
}

// EnrollmentService provides enrollment operations. Every operation takes
// the requesting user's identity as an explicit parameter; nothing is read
// from ambient request state.
type EnrollmentService interface {
	// Enroll registers the user in a course.
	// Returns ErrCourseNotFound if the course does not exist and
	// ErrAlreadyEnrolled if an enrollment for the pair already exists.
	Enroll(ctx context.Context, userID uuid.UUID, courseID string) (*domain.Enrollment, error)

	// GetProgress computes the user's progress summary for an enrollment.
	// Returns ErrEnrollmentNotFound if the enrollment does not exist or
	// belongs to a different user (identical error in both cases).
	GetProgress(ctx context.Context, userID uuid.UUID, enrollmentID int64) (*ProgressSummary, error)
}

// EnrollmentServiceImpl implements the EnrollmentService interface
type EnrollmentServiceImpl struct {
	enrollmentStore store.EnrollmentStore
	progressStore   store.ProgressStore
	catalogStore    store.CatalogStore
	logger          *slog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentStore store.EnrollmentStore,
	progressStore store.ProgressStore,
	catalogStore store.CatalogStore,
	logger *slog.Logger,
) *EnrollmentServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnrollmentServiceImpl{
		enrollmentStore: enrollmentStore,
		progressStore:   progressStore,
		catalogStore:    catalogStore,
		logger:          logger.With("component", "enrollment_service"),
	}
}

// Ensure EnrollmentServiceImpl implements EnrollmentService interface
var _ EnrollmentService = (*EnrollmentServiceImpl)(nil)

// Enroll registers the user in a course. The pre-check gives a friendly
// duplicate answer on the common path; the store's unique constraint remains
// the authority when two enroll calls race, so the loser of the race gets
// the same ErrAlreadyEnrolled.
func (s *EnrollmentServiceImpl) Enroll(
	ctx context.Context,
	userID uuid.UUID,
	courseID string,
) (*domain.Enrollment, error) {
	if _, err := s.catalogStore.GetCourse(ctx, courseID); err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			s.logger.Debug("enroll into unknown course",
				"user_id", userID,
				"course_id", courseID)
			return nil, ErrCourseNotFound
		}
		s.logger.Error("failed to look up course for enrollment",
			"error", err,
			"course_id", courseID)
		return nil, fmt.Errorf("failed to look up course: %w", err)
	}

	exists, err := s.enrollmentStore.ExistsByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		s.logger.Error("failed to check existing enrollment",
			"error", err,
			"user_id", userID,
			"course_id", courseID)
		return nil, fmt.Errorf("failed to check existing enrollment: %w", err)
	}
	if exists {
		s.logger.Debug("duplicate enrollment attempt",
			"user_id", userID,
			"course_id", courseID)
		return nil, ErrAlreadyEnrolled
	}

	enrollment, err := domain.NewEnrollment(userID, courseID)
	if err != nil {
		s.logger.Error("failed to create enrollment object",
			"error", err,
			"user_id", userID,
			"course_id", courseID)
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	if err := s.enrollmentStore.Create(ctx, enrollment); err != nil {
		if errors.Is(err, store.ErrEnrollmentExists) {
			// Lost a creation race; same outcome as the pre-check.
			s.logger.Debug("enrollment creation lost race",
				"user_id", userID,
				"course_id", courseID)
			return nil, ErrAlreadyEnrolled
		}
		s.logger.Error("failed to create enrollment",
			"error", err,
			"user_id", userID,
			"course_id", courseID)
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.logger.Info("user enrolled",
		"enrollment_id", enrollment.ID,
		"user_id", userID,
		"course_id", courseID)

	return enrollment, nil
}

// GetProgress computes the user's progress summary for an enrollment.
// Completed items come back in completion-time order.
func (s *EnrollmentServiceImpl) GetProgress(
	ctx context.Context,
	userID uuid.UUID,
	enrollmentID int64,
) (*ProgressSummary, error) {
	enrollment, err := s.enrollmentStore.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, store.ErrEnrollmentNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		s.logger.Error("failed to retrieve enrollment",
			"error", err,
			"enrollment_id", enrollmentID)
		return nil, fmt.Errorf("failed to retrieve enrollment: %w", err)
	}

	// A non-owner gets the same answer as if the enrollment did not exist,
	// so enrollment IDs cannot be probed.
	if enrollment.UserID != userID {
		s.logger.Debug("progress requested for enrollment owned by another user",
			"enrollment_id", enrollmentID,
			"user_id", userID)
		return nil, ErrEnrollmentNotFound
	}

	course, err := s.catalogStore.GetCourse(ctx, enrollment.CourseID)
	if err != nil {
		s.logger.Error("failed to load course for progress summary",
			"error", err,
			"course_id", enrollment.CourseID)
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	completed, err := s.progressStore.FindCompletedByEnrollment(ctx, enrollmentID)
	if err != nil {
		s.logger.Error("failed to load completed progress records",
			"error", err,
			"enrollment_id", enrollmentID)
		return nil, fmt.Errorf("failed to load progress records: %w", err)
	}

	titles := course.SubtopicTitles()
	items := make([]CompletedItem, 0, len(completed))
	for _, record := range completed {
		item := CompletedItem{
			SubtopicID:    record.SubtopicID,
			SubtopicTitle: titles[record.SubtopicID],
		}
		if record.CompletedAt != nil {
			item.CompletedAt = *record.CompletedAt
		}
		items = append(items, item)
	}

	total := course.SubtopicCount()
	return &ProgressSummary{
		EnrollmentID:         enrollment.ID,
		CourseID:             course.ID,
		CourseTitle:          course.Title,
		TotalSubtopics:       total,
		CompletedSubtopics:   len(completed),
		CompletionPercentage: completionPercentage(len(completed), total),
		CompletedItems:       items,
	}, nil
}

// completionPercentage returns (completed/total)*100 rounded half-up to two
// decimal places, and 0.0 for a course with no subtopics.
func completionPercentage(completed, total int) float64 {
	if total == 0 {
		return 0.0
	}
	pct := float64(completed) / float64(total) * 100
	return math.Round(pct*100) / 100
}
