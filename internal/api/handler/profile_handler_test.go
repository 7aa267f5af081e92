package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/devfollow/social-network/internal/api/reqctx"
	"github.com/devfollow/social-network/internal/core/domain"
	"github.com/devfollow/social-network/internal/core/ports"
)

type stubScreens struct {
	ports.ProfileService
	postsErr  error
	byNameFn  func(ctx context.Context, username any) ([]domain.Post, error)
	followers []domain.PublicUser
}

func (s *stubScreens) PostsScreen(ctx context.Context, pc *domain.ProfileContext) (*domain.ProfileView, error) {
	if s.postsErr != nil {
		return nil, s.postsErr
	}
	return &domain.ProfileView{
		Title:           "Profile For " + pc.Profile.Username,
		CurrentPage:     domain.PagePosts,
		Posts:           []domain.Post{{ID: "p1"}},
		ProfileUsername: pc.Profile.Username,
		Counts:          pc.Counts,
	}, nil
}

func (s *stubScreens) FollowersScreen(ctx context.Context, pc *domain.ProfileContext) (*domain.ProfileView, error) {
	return &domain.ProfileView{CurrentPage: domain.PageFollowers, Followers: s.followers, ProfileUsername: pc.Profile.Username}, nil
}

func (s *stubScreens) FollowingScreen(ctx context.Context, pc *domain.ProfileContext) (*domain.ProfileView, error) {
	return &domain.ProfileView{CurrentPage: domain.PageFollowing, ProfileUsername: pc.Profile.Username}, nil
}

func (s *stubScreens) PostsByUsername(ctx context.Context, username any) ([]domain.Post, error) {
	return s.byNameFn(ctx, username)
}

func withProfileContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqctx.SetProfileContext(c, &domain.ProfileContext{
			Profile:     domain.PublicUser{ID: "a1", Username: "alice"},
			IsFollowing: true,
			Counts:      domain.ProfileCounts{PostCount: 3, FollowerCount: 2, FollowingCount: 5},
		})
		return next(c)
	}
}

func TestProfileHandler_PostsScreen(t *testing.T) {
	f := newFixture()
	h := NewProfileHandler(&stubScreens{}, f.metrics, zerolog.Nop())

	rec := f.serve(t, withProfileContext(h.PostsScreen), http.MethodGet, "/profile/alice", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page struct {
		View string             `json:"view"`
		Data domain.ProfileView `json:"data"`
	}
	decode(t, rec, &page)
	if page.View != "profile" || page.Data.Title != "Profile For alice" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Data.Counts != (domain.ProfileCounts{PostCount: 3, FollowerCount: 2, FollowingCount: 5}) {
		t.Fatalf("unexpected counts: %+v", page.Data.Counts)
	}
	if got := testutil.ToFloat64(f.metrics.ProfileScreensTotal.WithLabelValues(domain.PagePosts)); got != 1 {
		t.Fatalf("expected 1 screen metric, got %v", got)
	}
}

func TestProfileHandler_FollowScreens(t *testing.T) {
	f := newFixture()
	h := NewProfileHandler(&stubScreens{followers: []domain.PublicUser{{ID: "b1", Username: "bob"}}}, f.metrics, zerolog.Nop())

	var page struct {
		View string             `json:"view"`
		Data domain.ProfileView `json:"data"`
	}
	decode(t, f.serve(t, withProfileContext(h.FollowersScreen), http.MethodGet, "/profile/alice/followers", "", ""), &page)
	if page.View != "profile-followers" || len(page.Data.Followers) != 1 {
		t.Fatalf("unexpected followers page: %+v", page)
	}

	decode(t, f.serve(t, withProfileContext(h.FollowingScreen), http.MethodGet, "/profile/alice/following", "", ""), &page)
	if page.View != "profile-following" || page.Data.CurrentPage != domain.PageFollowing {
		t.Fatalf("unexpected following page: %+v", page)
	}
}

func TestProfileHandler_ScreenFailureRendersNotFound(t *testing.T) {
	f := newFixture()
	h := NewProfileHandler(&stubScreens{postsErr: errors.New("query failed")}, f.metrics, zerolog.Nop())

	rec := f.serve(t, withProfileContext(h.PostsScreen), http.MethodGet, "/profile/alice", "", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var page map[string]any
	decode(t, rec, &page)
	if page["view"] != "404" {
		t.Fatalf("expected 404 view, got %v", page["view"])
	}
}

func TestProfileHandler_MissingContext(t *testing.T) {
	f := newFixture()
	h := NewProfileHandler(&stubScreens{}, f.metrics, zerolog.Nop())

	rec := f.serve(t, h.PostsScreen, http.MethodGet, "/profile/alice", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProfileHandler_PostsByUsername(t *testing.T) {
	f := newFixture()
	h := NewProfileHandler(&stubScreens{
		byNameFn: func(ctx context.Context, username any) ([]domain.Post, error) {
			if username == "alice" {
				return []domain.Post{{ID: "p1", Title: "hi"}}, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}, f.metrics, zerolog.Nop())

	rec := f.serve(t, h.PostsByUsername, http.MethodGet, "/api/postsByAuthor/alice", "", "", "username", "alice")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var posts []domain.Post
	decode(t, rec, &posts)
	if len(posts) != 1 || posts[0].Title != "hi" {
		t.Fatalf("unexpected posts: %+v", posts)
	}

	rec = f.serve(t, h.PostsByUsername, http.MethodGet, "/api/postsByAuthor/ghost", "", "", "username", "ghost")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
