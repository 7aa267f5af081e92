package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfollow/social-network/internal/api/metrics"
	"github.com/devfollow/social-network/internal/api/reqctx"
	"github.com/devfollow/social-network/internal/api/session"
	"github.com/devfollow/social-network/internal/api/view"
	"github.com/devfollow/social-network/internal/core/domain"
	"github.com/devfollow/social-network/internal/core/ports"
)

// ProfileUser resolves the :username route parameter. Unknown users get the
// not-found view.
func ProfileUser(auth ports.AuthService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, err := auth.FindByUsername(c.Request().Context(), c.Param("username"))
			if err != nil {
				log.Debug().Err(err).Str("username", c.Param("username")).Msg("profile lookup failed")
				return view.RenderNotFound(c)
			}
			reqctx.SetProfileUser(c, u)
			return next(c)
		}
	}
}

// SharedProfileData attaches the visitor flags and counts of the resolved
// profile. It must run after ProfileUser.
func SharedProfileData(profiles ports.ProfileService, m *metrics.Metrics, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			profile, ok := reqctx.ProfileUser(c)
			if !ok {
				return view.RenderNotFound(c)
			}

			var visitor *domain.SessionUser
			if sess := session.From(c); sess.IsAuthenticated() {
				visitor = sess.User
			}

			start := time.Now()
			pc, err := profiles.SharedProfileData(c.Request().Context(), *profile, visitor)
			m.ProfileDataDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				log.Error().Err(err).Str("profile_id", profile.ID).Msg("shared profile data failed")
				return view.RenderNotFound(c)
			}

			reqctx.SetProfileContext(c, pc)
			return next(c)
		}
	}
}
