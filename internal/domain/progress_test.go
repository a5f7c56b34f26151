package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewSubtopicProgress(t *testing.T) {
	userID := uuid.New()

	p, err := NewSubtopicProgress(userID, "linear-eq", 7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Completed {
		t.Error("Expected new progress record to be incomplete")
	}
	if p.CompletedAt != nil {
		t.Error("Expected nil CompletedAt on new progress record")
	}

	_, err = NewSubtopicProgress(uuid.Nil, "linear-eq", 7)
	if err != ErrEmptyProgressUserID {
		t.Errorf("Expected %v, got %v", ErrEmptyProgressUserID, err)
	}

	_, err = NewSubtopicProgress(userID, "", 7)
	if err != ErrEmptyProgressSubtopicID {
		t.Errorf("Expected %v, got %v", ErrEmptyProgressSubtopicID, err)
	}

	_, err = NewSubtopicProgress(userID, "linear-eq", 0)
	if err != ErrEmptyProgressEnrollmentID {
		t.Errorf("Expected %v, got %v", ErrEmptyProgressEnrollmentID, err)
	}
}

func TestMarkCompletedSetsTimestampOnce(t *testing.T) {
	p, err := NewSubtopicProgress(uuid.New(), "linear-eq", 7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	first := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p.MarkCompleted(first)

	if !p.Completed {
		t.Fatal("Expected record to be completed")
	}
	if p.CompletedAt == nil || !p.CompletedAt.Equal(first) {
		t.Fatalf("Expected CompletedAt %v, got %v", first, p.CompletedAt)
	}

	// A later call must not refresh the timestamp.
	p.MarkCompleted(first.Add(48 * time.Hour))
	if !p.CompletedAt.Equal(first) {
		t.Errorf("Expected CompletedAt to stay %v, got %v", first, p.CompletedAt)
	}
}

func TestSubtopicProgressValidateCompletedNeedsTimestamp(t *testing.T) {
	p := &SubtopicProgress{
		UserID:       uuid.New(),
		SubtopicID:   "linear-eq",
		EnrollmentID: 7,
		Completed:    true,
	}

	if err := p.Validate(); err != ErrCompletedWithoutTimestamp {
		t.Errorf("Expected %v, got %v", ErrCompletedWithoutTimestamp, err)
	}
}
