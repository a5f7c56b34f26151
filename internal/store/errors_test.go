package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestEntityErrorsMatchTaxonomyRoots(t *testing.T) {
	notFound := []error{ErrUserNotFound, ErrCourseNotFound, ErrSubtopicNotFound, ErrEnrollmentNotFound, ErrProgressNotFound}
	for _, err := range notFound {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("%v should match ErrNotFound", err)
		}
		if !IsNotFoundError(err) {
			t.Errorf("IsNotFoundError(%v) should be true", err)
		}
		if IsDuplicateError(err) {
			t.Errorf("IsDuplicateError(%v) should be false", err)
		}
	}

	duplicates := []error{ErrEmailExists, ErrEnrollmentExists, ErrProgressExists}
	for _, err := range duplicates {
		if !errors.Is(err, ErrDuplicate) {
			t.Errorf("%v should match ErrDuplicate", err)
		}
		if !IsDuplicateError(err) {
			t.Errorf("IsDuplicateError(%v) should be true", err)
		}
	}
}

func TestWrappedErrorsStillMatch(t *testing.T) {
	wrapped := fmt.Errorf("looking up enrollment 42: %w", ErrEnrollmentNotFound)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("wrapped entity error should match ErrNotFound")
	}
	if !errors.Is(wrapped, ErrEnrollmentNotFound) {
		t.Error("wrapped entity error should match its specific error")
	}
}
