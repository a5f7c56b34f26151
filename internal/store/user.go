package store

import (
	"context"

	"github.com/coursekit/course-api/internal/domain"
	"github.com/google/uuid"
)

// UserStore defines persistence for user accounts. Password hashing happens
// above this layer; the store only ever sees the hashed form.
type UserStore interface {
	// Create saves a new user.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
