package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for SubtopicProgress
var (
	ErrEmptyProgressUserID       = errors.New("progress user ID cannot be empty")
	ErrEmptyProgressSubtopicID   = errors.New("progress subtopic ID cannot be empty")
	ErrEmptyProgressEnrollmentID = errors.New("progress enrollment ID cannot be empty")
	ErrCompletedWithoutTimestamp = errors.New("completed progress must have a completion timestamp")
)

// SubtopicProgress records whether (and when) a user finished a subtopic.
// The (UserID, SubtopicID) pair is unique; EnrollmentID denormalizes the
// enrollment the completion belongs to so reads never have to recompute it.
//
// CompletedAt is written exactly once — on the first transition to
// Completed — and is never cleared or overwritten afterwards.
type SubtopicProgress struct {
	ID           int64      `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	SubtopicID   string     `json:"subtopic_id"`
	EnrollmentID int64      `json:"enrollment_id"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// NewSubtopicProgress creates an incomplete progress record binding the
// user, subtopic and enrollment together. The ID is assigned by the store.
// Returns an error if validation fails.
func NewSubtopicProgress(userID uuid.UUID, subtopicID string, enrollmentID int64) (*SubtopicProgress, error) {
	p := &SubtopicProgress{
		UserID:       userID,
		SubtopicID:   subtopicID,
		EnrollmentID: enrollmentID,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the SubtopicProgress has valid data.
func (p *SubtopicProgress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}
	if p.SubtopicID == "" {
		return ErrEmptyProgressSubtopicID
	}
	if p.EnrollmentID == 0 {
		return ErrEmptyProgressEnrollmentID
	}
	if p.Completed && p.CompletedAt == nil {
		return ErrCompletedWithoutTimestamp
	}
	return nil
}

// MarkCompleted transitions the record to completed at the given time.
// The completion timestamp is only written on the first transition; marking
// an already-completed record again is a no-op, which is what makes the
// completion operation idempotent.
func (p *SubtopicProgress) MarkCompleted(now time.Time) {
	if p.Completed && p.CompletedAt != nil {
		return
	}
	p.Completed = true
	if p.CompletedAt == nil {
		ts := now.UTC()
		p.CompletedAt = &ts
	}
}
