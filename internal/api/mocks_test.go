package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/coursekit/course-api/internal/domain"
	"github.com/coursekit/course-api/internal/service"
	"github.com/coursekit/course-api/internal/service/auth"
	"github.com/coursekit/course-api/internal/store"
)

// Stub services and stores for handler tests. Each stub returns canned
// values or errors set by the test.

type stubEnrollmentService struct {
	enrollment *domain.Enrollment
	summary    *service.ProgressSummary
	enrollErr  error
	summaryErr error

	lastUserID   uuid.UUID
	lastCourseID string
}

var _ service.EnrollmentService = (*stubEnrollmentService)(nil)

func (s *stubEnrollmentService) Enroll(
	ctx context.Context,
	userID uuid.UUID,
	courseID string,
) (*domain.Enrollment, error) {
	s.lastUserID = userID
	s.lastCourseID = courseID
	return s.enrollment, s.enrollErr
}

func (s *stubEnrollmentService) GetProgress(
	ctx context.Context,
	userID uuid.UUID,
	enrollmentID int64,
) (*service.ProgressSummary, error) {
	s.lastUserID = userID
	return s.summary, s.summaryErr
}

type stubProgressService struct {
	progress *domain.SubtopicProgress
	err      error

	lastUserID     uuid.UUID
	lastSubtopicID string
}

var _ service.ProgressService = (*stubProgressService)(nil)

func (s *stubProgressService) MarkComplete(
	ctx context.Context,
	userID uuid.UUID,
	subtopicID string,
) (*domain.SubtopicProgress, error) {
	s.lastUserID = userID
	s.lastSubtopicID = subtopicID
	return s.progress, s.err
}

type stubSearchService struct {
	results   *service.SearchResults
	err       error
	lastQuery string
}

var _ service.SearchService = (*stubSearchService)(nil)

func (s *stubSearchService) Search(ctx context.Context, query string) (*service.SearchResults, error) {
	s.lastQuery = query
	return s.results, s.err
}

type stubCourseService struct {
	summaries []service.CourseSummary
	course    *domain.Course
	listErr   error
	getErr    error
}

var _ service.CourseService = (*stubCourseService)(nil)

func (s *stubCourseService) ListCourses(ctx context.Context) ([]service.CourseSummary, error) {
	return s.summaries, s.listErr
}

func (s *stubCourseService) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	return s.course, s.getErr
}

type fakeUserStore struct {
	byEmail   map[string]*domain.User
	createErr error
}

var _ store.UserStore = (*fakeUserStore)(nil)

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return fmt.Errorf("%w: %s", store.ErrEmailExists, user.Email)
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, store.ErrUserNotFound
}

type stubJWTService struct {
	accessToken  string
	refreshToken string
	claims       *auth.Claims
	generateErr  error
	validateErr  error
}

var _ auth.JWTService = (*stubJWTService)(nil)

func (s *stubJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.accessToken, s.generateErr
}

func (s *stubJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return s.claims, s.validateErr
}

func (s *stubJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.refreshToken, s.generateErr
}

func (s *stubJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return s.claims, s.validateErr
}

// plainHasher marks passwords instead of hashing, so tests can assert what
// the store received without bcrypt costs.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

type plainVerifier struct{}

func (plainVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}
