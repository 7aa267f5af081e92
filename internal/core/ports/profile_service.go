package ports

import (
	"context"

	"github.com/devfollow/social-network/internal/core/domain"
)

// ProfileService composes user, post and follow reads into view models.
type ProfileService interface {
	// SharedProfileData computes the visitor flags and the three counts.
	// visitor is nil for anonymous requests.
	SharedProfileData(ctx context.Context, profile domain.PublicUser, visitor *domain.SessionUser) (*domain.ProfileContext, error)
	PostsScreen(ctx context.Context, pc *domain.ProfileContext) (*domain.ProfileView, error)
	FollowersScreen(ctx context.Context, pc *domain.ProfileContext) (*domain.ProfileView, error)
	FollowingScreen(ctx context.Context, pc *domain.ProfileContext) (*domain.ProfileView, error)
	HomeFeed(ctx context.Context, userID string) ([]domain.Post, error)
	PostsByUsername(ctx context.Context, username any) ([]domain.Post, error)
}
