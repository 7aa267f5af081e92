package ports

import (
	"context"

	"github.com/devfollow/social-network/internal/core/domain"
)

// UserRepository defines persistence for the users collection.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no document matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no document matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts the user and returns it with its assigned ID.
	// A violated email index is reported as domain.ErrEmailExists, any other
	// unique index violation as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
