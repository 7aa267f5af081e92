package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/devfollow/social-network/internal/core/domain"
	"github.com/devfollow/social-network/internal/core/ports"
)

type PostService struct {
	repo ports.PostRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewPostService(repo ports.PostRepository, log zerolog.Logger) *PostService {
	return &PostService{repo: repo, log: log, now: time.Now}
}

// Create validates the input and stores a post owned by authorID.
func (s *PostService) Create(ctx context.Context, authorID string, in domain.NewPostInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	id, err := s.repo.Create(ctx, &domain.Post{
		Title:       in.Title,
		Body:        in.Body,
		CreatedDate: s.now().UTC(),
		AuthorID:    authorID,
	})
	if err != nil {
		s.log.Error().Err(err).Str("author_id", authorID).Msg("failed to create post")
		return "", fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Str("post_id", id).Str("author_id", authorID).Msg("post created")
	return id, nil
}
