package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfollow/social-network/internal/api/metrics"
	"github.com/devfollow/social-network/internal/api/session"
	"github.com/devfollow/social-network/internal/core/domain"
	"github.com/devfollow/social-network/internal/core/ports"
)

const (
	actionFollow   = "follow"
	actionUnfollow = "unfollow"
)

type FollowHandler struct {
	follows  ports.FollowService
	sessions *session.Manager
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewFollowHandler(follows ports.FollowService, sessions *session.Manager, m *metrics.Metrics, log zerolog.Logger) *FollowHandler {
	return &FollowHandler{follows: follows, sessions: sessions, metrics: m, log: log}
}

// Add follows :username on behalf of the session user.
//
// @Summary      Follow a user
// @Tags         web
// @Param        username  path  string  true  "Username"
// @Success      302
// @Router       /addFollow/{username} [post]
func (h *FollowHandler) Add(c echo.Context) error {
	username := c.Param("username")
	return h.apply(c, actionFollow, h.follows.Follow, fmt.Sprintf("Successfully followed %s.", username))
}

// Remove stops following :username.
//
// @Summary      Unfollow a user
// @Tags         web
// @Param        username  path  string  true  "Username"
// @Success      302
// @Router       /removeFollow/{username} [post]
func (h *FollowHandler) Remove(c echo.Context) error {
	username := c.Param("username")
	return h.apply(c, actionUnfollow, h.follows.Unfollow, fmt.Sprintf("Successfully stopped following %s.", username))
}

// apply runs the follow change, flashes its outcome and redirects back to the profile.
func (h *FollowHandler) apply(c echo.Context, action string, change func(ctx context.Context, visitorID, username string) error, success string) error {
	sess := session.From(c)
	username := c.Param("username")

	err := change(c.Request().Context(), sess.User.ID, username)
	switch {
	case err == nil:
		h.metrics.FollowChangesTotal.WithLabelValues(action, metrics.ResultOK).Inc()
		sess.AddFlash(domain.FlashSuccess, success)
	default:
		if msgs, ok := domain.ValidationMessages(err); ok {
			h.metrics.FollowChangesTotal.WithLabelValues(action, metrics.ResultInvalid).Inc()
			sess.AddFlash(domain.FlashErrors, msgs...)
		} else {
			h.metrics.FollowChangesTotal.WithLabelValues(action, metrics.ResultError).Inc()
			h.log.Error().Err(err).Str("action", action).Str("username", username).Msg("follow change failed")
			sess.AddFlash(domain.FlashErrors, domain.MsgTryAgainLater)
		}
	}

	if err := h.sessions.Save(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/profile/"+url.PathEscape(username))
}
