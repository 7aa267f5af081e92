package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/devfollow/social-network/internal/core/domain"
	"github.com/devfollow/social-network/internal/core/ports"
)

type FollowService struct {
	users   ports.UserRepository
	follows ports.FollowRepository
	log     zerolog.Logger
}

func NewFollowService(users ports.UserRepository, follows ports.FollowRepository, log zerolog.Logger) *FollowService {
	return &FollowService{users: users, follows: follows, log: log}
}

// Follow adds the edge visitor -> username.
func (s *FollowService) Follow(ctx context.Context, visitorID, username string) error {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}
	if target.ID == visitorID {
		return domain.NewValidationErrors(domain.MsgFollowSelf)
	}

	following, err := s.follows.IsFollowing(ctx, target.ID, visitorID)
	if err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	if following {
		return domain.NewValidationErrors(domain.MsgAlreadyFollowing)
	}

	if err := s.follows.Add(ctx, domain.Follow{FollowerID: visitorID, FollowedID: target.ID}); err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	s.log.Info().Str("follower_id", visitorID).Str("followed_id", target.ID).Msg("follow added")
	return nil
}

// Unfollow removes the edge visitor -> username.
func (s *FollowService) Unfollow(ctx context.Context, visitorID, username string) error {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}

	following, err := s.follows.IsFollowing(ctx, target.ID, visitorID)
	if err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	if !following {
		return domain.NewValidationErrors(domain.MsgNotFollowing)
	}

	if err := s.follows.Remove(ctx, domain.Follow{FollowerID: visitorID, FollowedID: target.ID}); err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	s.log.Info().Str("follower_id", visitorID).Str("followed_id", target.ID).Msg("follow removed")
	return nil
}

func (s *FollowService) resolve(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.NewValidationErrors(domain.MsgFollowUnknownUser)
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}
