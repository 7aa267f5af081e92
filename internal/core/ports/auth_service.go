package ports

import (
	"context"

	"github.com/devfollow/social-network/internal/core/domain"
)

// AuthService covers registration, login and user existence queries.
type AuthService interface {
	Register(ctx context.Context, raw map[string]any) (*domain.AuthenticatedUser, error)
	Login(ctx context.Context, raw map[string]any) (*domain.AuthenticatedUser, error)
	APILogin(ctx context.Context, raw map[string]any) (string, error)
	FindByUsername(ctx context.Context, username any) (*domain.PublicUser, error)
	DoesUsernameExist(ctx context.Context, username any) (bool, error)
	DoesEmailExist(ctx context.Context, email any) (bool, error)
}
