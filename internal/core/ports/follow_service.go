package ports

import "context"

// FollowService manages follow edges between the visitor and a profile.
type FollowService interface {
	Follow(ctx context.Context, visitorID, username string) error
	Unfollow(ctx context.Context, visitorID, username string) error
}
