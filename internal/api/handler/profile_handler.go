package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfollow/social-network/internal/api/metrics"
	"github.com/devfollow/social-network/internal/api/reqctx"
	"github.com/devfollow/social-network/internal/api/view"
	"github.com/devfollow/social-network/internal/core/domain"
	"github.com/devfollow/social-network/internal/core/ports"
)

type ProfileHandler struct {
	profiles ports.ProfileService
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewProfileHandler(profiles ports.ProfileService, m *metrics.Metrics, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, metrics: m, log: log}
}

type screenFunc func(h *ProfileHandler, c echo.Context, pc *domain.ProfileContext) (*domain.ProfileView, error)

// screen renders one profile page. It relies on the ProfileUser and
// SharedProfileData middleware; a failing list query renders the not-found view.
func (h *ProfileHandler) screen(c echo.Context, name, page string, fetch screenFunc) error {
	pc, ok := reqctx.ProfileContext(c)
	if !ok {
		return view.RenderNotFound(c)
	}

	v, err := fetch(h, c, pc)
	if err != nil {
		h.log.Error().Err(err).Str("profile_id", pc.Profile.ID).Str("page", page).Msg("profile screen failed")
		return view.RenderNotFound(c)
	}

	h.metrics.ProfileScreensTotal.WithLabelValues(page).Inc()
	return view.Render(c, http.StatusOK, name, v)
}

// PostsScreen renders the profile's posts.
//
// @Summary      Profile posts
// @Tags         web
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  view.Page
// @Failure      404       {object}  view.Page
// @Router       /profile/{username} [get]
func (h *ProfileHandler) PostsScreen(c echo.Context) error {
	return h.screen(c, view.Profile, domain.PagePosts, func(h *ProfileHandler, c echo.Context, pc *domain.ProfileContext) (*domain.ProfileView, error) {
		return h.profiles.PostsScreen(c.Request().Context(), pc)
	})
}

// FollowersScreen renders the users following the profile.
//
// @Summary      Profile followers
// @Tags         web
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  view.Page
// @Failure      404       {object}  view.Page
// @Router       /profile/{username}/followers [get]
func (h *ProfileHandler) FollowersScreen(c echo.Context) error {
	return h.screen(c, view.ProfileFollowers, domain.PageFollowers, func(h *ProfileHandler, c echo.Context, pc *domain.ProfileContext) (*domain.ProfileView, error) {
		return h.profiles.FollowersScreen(c.Request().Context(), pc)
	})
}

// FollowingScreen renders the users the profile follows.
//
// @Summary      Profile following
// @Tags         web
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  view.Page
// @Failure      404       {object}  view.Page
// @Router       /profile/{username}/following [get]
func (h *ProfileHandler) FollowingScreen(c echo.Context) error {
	return h.screen(c, view.ProfileFollowing, domain.PageFollowing, func(h *ProfileHandler, c echo.Context, pc *domain.ProfileContext) (*domain.ProfileView, error) {
		return h.profiles.FollowingScreen(c.Request().Context(), pc)
	})
}

// PostsByUsername lists an author's posts.
//
// @Summary      Posts by author
// @Tags         api
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {array}   domain.Post
// @Failure      404       {object}  map[string]string
// @Router       /api/postsByAuthor/{username} [get]
func (h *ProfileHandler) PostsByUsername(c echo.Context) error {
	posts, err := h.profiles.PostsByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, domain.MsgInvalidUserQuery)
		}
		return err
	}
	return c.JSON(http.StatusOK, posts)
}
