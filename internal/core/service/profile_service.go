package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/devfollow/social-network/internal/core/domain"
	"github.com/devfollow/social-network/internal/core/ports"
)

// ProfileService composes profile screens and feeds from the user, post and
// follow accessors.
type ProfileService struct {
	users   ports.AuthService
	posts   ports.PostRepository
	follows ports.FollowRepository
	log     zerolog.Logger
}

func NewProfileService(users ports.AuthService, posts ports.PostRepository, follows ports.FollowRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, posts: posts, follows: follows, log: log}
}

// SharedProfileData fills the visitor flags and fetches the three counts
// concurrently. Any failed count fails the whole call.
func (s *ProfileService) SharedProfileData(ctx context.Context, profile domain.PublicUser, visitor *domain.SessionUser) (*domain.ProfileContext, error) {
	pc := &domain.ProfileContext{Profile: profile}

	if visitor != nil && visitor.ID != "" {
		pc.IsVisitorsProfile = visitor.ID == profile.ID
		following, err := s.follows.IsFollowing(ctx, profile.ID, visitor.ID)
		if err != nil {
			return nil, fmt.Errorf("shared profile data: is following: %w", err)
		}
		pc.IsFollowing = following
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		pc.Counts.PostCount, err = s.posts.CountByAuthor(gctx, profile.ID)
		return err
	})
	g.Go(func() (err error) {
		pc.Counts.FollowerCount, err = s.follows.CountFollowers(gctx, profile.ID)
		return err
	})
	g.Go(func() (err error) {
		pc.Counts.FollowingCount, err = s.follows.CountFollowing(gctx, profile.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("shared profile data: counts: %w", err)
	}

	return pc, nil
}

func (s *ProfileService) PostsScreen(ctx context.Context, pc *domain.ProfileContext) (*domain.ProfileView, error) {
	posts, err := s.posts.FindByAuthorID(ctx, pc.Profile.ID)
	if err != nil {
		return nil, fmt.Errorf("posts screen: %w", err)
	}
	view := newProfileView(pc, domain.PagePosts)
	view.Title = "Profile For " + pc.Profile.Username
	view.Posts = posts
	return view, nil
}

func (s *ProfileService) FollowersScreen(ctx context.Context, pc *domain.ProfileContext) (*domain.ProfileView, error) {
	followers, err := s.follows.Followers(ctx, pc.Profile.ID)
	if err != nil {
		return nil, fmt.Errorf("followers screen: %w", err)
	}
	view := newProfileView(pc, domain.PageFollowers)
	view.Followers = followers
	return view, nil
}

func (s *ProfileService) FollowingScreen(ctx context.Context, pc *domain.ProfileContext) (*domain.ProfileView, error) {
	following, err := s.follows.Following(ctx, pc.Profile.ID)
	if err != nil {
		return nil, fmt.Errorf("following screen: %w", err)
	}
	view := newProfileView(pc, domain.PageFollowing)
	view.Following = following
	return view, nil
}

// HomeFeed returns posts from everyone userID follows.
func (s *ProfileService) HomeFeed(ctx context.Context, userID string) ([]domain.Post, error) {
	posts, err := s.posts.Feed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("home feed: %w", err)
	}
	return posts, nil
}

// PostsByUsername resolves the author and returns their posts.
func (s *ProfileService) PostsByUsername(ctx context.Context, username any) ([]domain.Post, error) {
	author, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.FindByAuthorID(ctx, author.ID)
	if err != nil {
		return nil, fmt.Errorf("posts by username: %w", err)
	}
	return posts, nil
}

func newProfileView(pc *domain.ProfileContext, page string) *domain.ProfileView {
	return &domain.ProfileView{
		CurrentPage:       page,
		ProfileUsername:   pc.Profile.Username,
		ProfileGravatar:   pc.Profile.Gravatar,
		IsFollowing:       pc.IsFollowing,
		IsVisitorsProfile: pc.IsVisitorsProfile,
		Counts:            pc.Counts,
	}
}
