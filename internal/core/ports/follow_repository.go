package ports

import (
	"context"

	"github.com/devfollow/social-network/internal/core/domain"
)

// FollowRepository is the query façade over the follows collection.
type FollowRepository interface {
	IsFollowing(ctx context.Context, followedID, followerID string) (bool, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
	// Followers lists the users following userID.
	Followers(ctx context.Context, userID string) ([]domain.PublicUser, error)
	// Following lists the users userID follows.
	Following(ctx context.Context, userID string) ([]domain.PublicUser, error)
	Add(ctx context.Context, edge domain.Follow) error
	Remove(ctx context.Context, edge domain.Follow) error
}
