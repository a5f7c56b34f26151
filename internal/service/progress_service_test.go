package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/course-api/internal/domain"
	"github.com/coursekit/course-api/internal/store"
)

func newTestProgressService(catalog *fakeCatalogStore) (*ProgressServiceImpl, *fakeEnrollmentStore, *fakeProgressStore) {
	enrollments := newFakeEnrollmentStore()
	progress := newFakeProgressStore()
	svc := NewProgressService(progress, enrollments, catalog, nil)
	return svc, enrollments, progress
}

func enroll(t *testing.T, enrollments *fakeEnrollmentStore, userID uuid.UUID, courseID string) *domain.Enrollment {
	t.Helper()
	e, err := domain.NewEnrollment(userID, courseID)
	require.NoError(t, err)
	require.NoError(t, enrollments.Create(context.Background(), e))
	return e
}

func TestMarkCompleteUnknownSubtopic(t *testing.T) {
	svc, _, _ := newTestProgressService(testCatalog())

	_, err := svc.MarkComplete(context.Background(), uuid.New(), "no-such-subtopic")
	assert.ErrorIs(t, err, ErrSubtopicNotFound)
}

func TestMarkCompleteWithoutEnrollment(t *testing.T) {
	svc, _, _ := newTestProgressService(testCatalog())

	_, err := svc.MarkComplete(context.Background(), uuid.New(), "linear-eq")
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestMarkCompleteCreatesRecord(t *testing.T) {
	svc, enrollments, _ := newTestProgressService(testCatalog())
	ctx := context.Background()
	userID := uuid.New()
	enrollment := enroll(t, enrollments, userID, "algebra-101")

	progress, err := svc.MarkComplete(ctx, userID, "linear-eq")
	require.NoError(t, err)
	assert.NotZero(t, progress.ID)
	assert.Equal(t, userID, progress.UserID)
	assert.Equal(t, "linear-eq", progress.SubtopicID)
	assert.Equal(t, enrollment.ID, progress.EnrollmentID)
	assert.True(t, progress.Completed)
	require.NotNil(t, progress.CompletedAt)
}

func TestMarkCompleteIsIdempotent(t *testing.T) {
	svc, enrollments, _ := newTestProgressService(testCatalog())
	ctx := context.Background()
	userID := uuid.New()
	enroll(t, enrollments, userID, "algebra-101")

	firstTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.timeFunc = func() time.Time { return firstTime }

	first, err := svc.MarkComplete(ctx, userID, "linear-eq")
	require.NoError(t, err)

	// The clock moves on; the completion timestamp must not.
	svc.timeFunc = func() time.Time { return firstTime.Add(time.Hour) }

	second, err := svc.MarkComplete(ctx, userID, "linear-eq")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Completed)
	assert.Equal(t, firstTime, *second.CompletedAt)
}

func TestMarkCompleteCompletesIncompleteRecord(t *testing.T) {
	svc, enrollments, progressStore := newTestProgressService(testCatalog())
	ctx := context.Background()
	userID := uuid.New()
	enrollment := enroll(t, enrollments, userID, "algebra-101")

	// An incomplete record cannot be produced through MarkComplete itself,
	// but the service must still finish one off if it exists.
	stale, err := domain.NewSubtopicProgress(userID, "linear-eq", enrollment.ID)
	require.NoError(t, err)
	require.NoError(t, progressStore.Create(ctx, stale))

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.timeFunc = func() time.Time { return now }

	progress, err := svc.MarkComplete(ctx, userID, "linear-eq")
	require.NoError(t, err)
	assert.Equal(t, stale.ID, progress.ID)
	assert.True(t, progress.Completed)
	require.NotNil(t, progress.CompletedAt)
	assert.Equal(t, now, *progress.CompletedAt)
}

func TestMarkCompleteLostRaceReturnsWinner(t *testing.T) {
	svc, enrollments, progressStore := newTestProgressService(testCatalog())
	ctx := context.Background()
	userID := uuid.New()
	enrollment := enroll(t, enrollments, userID, "algebra-101")

	// Simulate a concurrent request winning the insert: the initial lookup
	// misses, the insert reports a duplicate, and the re-read finds the
	// winner's completed record.
	winner, err := domain.NewSubtopicProgress(userID, "linear-eq", enrollment.ID)
	require.NoError(t, err)
	winnerTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	winner.MarkCompleted(winnerTime)
	require.NoError(t, progressStore.Create(ctx, winner))

	progressStore.missNextGet = true
	progressStore.createErr = fmt.Errorf("%w: concurrent insert", store.ErrProgressExists)

	progress, err := svc.MarkComplete(ctx, userID, "linear-eq")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, progress.ID)
	assert.True(t, progress.Completed)
	assert.Equal(t, winnerTime, *progress.CompletedAt)
}
