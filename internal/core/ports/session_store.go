package ports

import (
	"context"

	"github.com/devfollow/social-network/internal/core/domain"
)

// SessionStore persists sessions keyed by an opaque identifier.
type SessionStore interface {
	// Get returns domain.ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, id string, s *domain.Session) error
	Destroy(ctx context.Context, id string) error
}
