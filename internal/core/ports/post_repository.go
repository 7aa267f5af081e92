package ports

import (
	"context"

	"github.com/devfollow/social-network/internal/core/domain"
)

// PostRepository is the query façade over the posts collection.
type PostRepository interface {
	// FindByAuthorID returns the author's posts, newest first.
	FindByAuthorID(ctx context.Context, authorID string) ([]domain.Post, error)
	// Feed returns posts by every user followed by userID, newest first.
	Feed(ctx context.Context, userID string) ([]domain.Post, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	Create(ctx context.Context, post *domain.Post) (string, error)
}
