package ports

import (
	"context"

	"github.com/devfollow/social-network/internal/core/domain"
)

// PostService creates posts on behalf of an authenticated author.
type PostService interface {
	Create(ctx context.Context, authorID string, in domain.NewPostInput) (string, error)
}
