package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/coursekit/course-api/internal/domain"
	"github.com/coursekit/course-api/internal/store"
)

// In-memory store fakes for service tests. Each fake implements the store
// interface it stands in for and lets tests inject errors on specific calls.

type fakeCatalogStore struct {
	courses []*domain.Course
	err     error
}

var _ store.CatalogStore = (*fakeCatalogStore)(nil)

func (f *fakeCatalogStore) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, store.ErrCourseNotFound
}

func (f *fakeCatalogStore) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.courses, nil
}

func (f *fakeCatalogStore) GetSubtopic(ctx context.Context, id string) (*domain.Subtopic, error) {
	for _, c := range f.courses {
		for ti := range c.Topics {
			for si := range c.Topics[ti].Subtopics {
				if c.Topics[ti].Subtopics[si].ID == id {
					return &c.Topics[ti].Subtopics[si], nil
				}
			}
		}
	}
	return nil, store.ErrSubtopicNotFound
}

func (f *fakeCatalogStore) CourseIDForSubtopic(ctx context.Context, subtopicID string) (string, error) {
	for _, c := range f.courses {
		for ti := range c.Topics {
			for si := range c.Topics[ti].Subtopics {
				if c.Topics[ti].Subtopics[si].ID == subtopicID {
					return c.ID, nil
				}
			}
		}
	}
	return "", store.ErrSubtopicNotFound
}

func (f *fakeCatalogStore) CreateCourse(ctx context.Context, course *domain.Course, position int) error {
	for _, c := range f.courses {
		if c.ID == course.ID {
			return fmt.Errorf("%w: course %s", store.ErrDuplicate, course.ID)
		}
	}
	f.courses = append(f.courses, course)
	return nil
}

func (f *fakeCatalogStore) CountCourses(ctx context.Context) (int, error) {
	return len(f.courses), nil
}

type enrollmentKey struct {
	userID   uuid.UUID
	courseID string
}

type fakeEnrollmentStore struct {
	byKey     map[enrollmentKey]*domain.Enrollment
	nextID    int64
	createErr error
}

var _ store.EnrollmentStore = (*fakeEnrollmentStore)(nil)

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{byKey: make(map[enrollmentKey]*domain.Enrollment)}
}

func (f *fakeEnrollmentStore) Create(ctx context.Context, e *domain.Enrollment) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := enrollmentKey{e.UserID, e.CourseID}
	if _, ok := f.byKey[key]; ok {
		return fmt.Errorf("%w: user %s, course %s", store.ErrEnrollmentExists, e.UserID, e.CourseID)
	}
	f.nextID++
	e.ID = f.nextID
	f.byKey[key] = e
	return nil
}

func (f *fakeEnrollmentStore) GetByID(ctx context.Context, id int64) (*domain.Enrollment, error) {
	for _, e := range f.byKey {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, store.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentStore) GetByUserAndCourse(
	ctx context.Context,
	userID uuid.UUID,
	courseID string,
) (*domain.Enrollment, error) {
	if e, ok := f.byKey[enrollmentKey{userID, courseID}]; ok {
		return e, nil
	}
	return nil, store.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentStore) ExistsByUserAndCourse(
	ctx context.Context,
	userID uuid.UUID,
	courseID string,
) (bool, error) {
	_, ok := f.byKey[enrollmentKey{userID, courseID}]
	return ok, nil
}

type progressKey struct {
	userID     uuid.UUID
	subtopicID string
}

type fakeProgressStore struct {
	byKey     map[progressKey]*domain.SubtopicProgress
	nextID    int64
	createErr error

	// missNextGet makes the next GetByUserAndSubtopic report not-found even
	// when a record exists, to model a lookup that raced a concurrent insert.
	missNextGet bool
}

var _ store.ProgressStore = (*fakeProgressStore)(nil)

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{byKey: make(map[progressKey]*domain.SubtopicProgress)}
}

func (f *fakeProgressStore) Create(ctx context.Context, p *domain.SubtopicProgress) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := progressKey{p.UserID, p.SubtopicID}
	if _, ok := f.byKey[key]; ok {
		return fmt.Errorf("%w: user %s, subtopic %s", store.ErrProgressExists, p.UserID, p.SubtopicID)
	}
	f.nextID++
	p.ID = f.nextID
	f.byKey[key] = p
	return nil
}

func (f *fakeProgressStore) Update(ctx context.Context, p *domain.SubtopicProgress) error {
	for key, existing := range f.byKey {
		if existing.ID == p.ID {
			f.byKey[key] = p
			return nil
		}
	}
	return store.ErrProgressNotFound
}

func (f *fakeProgressStore) GetByUserAndSubtopic(
	ctx context.Context,
	userID uuid.UUID,
	subtopicID string,
) (*domain.SubtopicProgress, error) {
	if f.missNextGet {
		f.missNextGet = false
		return nil, store.ErrProgressNotFound
	}
	if p, ok := f.byKey[progressKey{userID, subtopicID}]; ok {
		return p, nil
	}
	return nil, store.ErrProgressNotFound
}

func (f *fakeProgressStore) FindCompletedByEnrollment(
	ctx context.Context,
	enrollmentID int64,
) ([]*domain.SubtopicProgress, error) {
	var records []*domain.SubtopicProgress
	for _, p := range f.byKey {
		if p.EnrollmentID == enrollmentID && p.Completed {
			records = append(records, p)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.CompletedAt.Equal(*b.CompletedAt) {
			return a.ID < b.ID
		}
		return a.CompletedAt.Before(*b.CompletedAt)
	})
	return records, nil
}
