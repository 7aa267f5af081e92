package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfollow/social-network/internal/api/metrics"
	"github.com/devfollow/social-network/internal/api/reqctx"
	"github.com/devfollow/social-network/internal/api/session"
	"github.com/devfollow/social-network/internal/core/domain"
	"github.com/devfollow/social-network/internal/core/ports"
)

// APIMustBeLoggedIn verifies the API token carried in the body field "token"
// or, failing that, in an "Authorization: Bearer" header. The token's user id
// is stored for the handler.
func APIMustBeLoggedIn(tokens ports.TokenService, m *metrics.Metrics, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := tokenFrom(c)
			if err != nil {
				return err
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				m.TokenVerificationsTotal.WithLabelValues(metrics.ResultRejected).Inc()
				log.Debug().Err(err).Str("path", c.Path()).Msg("api token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			m.TokenVerificationsTotal.WithLabelValues(metrics.ResultOK).Inc()
			reqctx.SetAPIUser(c, userID)
			return next(c)
		}
	}
}

func tokenFrom(c echo.Context) (string, error) {
	fields, err := reqctx.Fields(c)
	if err != nil {
		return "", err
	}
	if token, ok := fields["token"].(string); ok && token != "" {
		return token, nil
	}

	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1]), nil
	}
	return "", nil
}

// MustBeLoggedIn lets authenticated sessions through. Anonymous visitors get a
// flash message, persisted before the redirect home.
func MustBeLoggedIn(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := session.From(c)
			if sess.IsAuthenticated() {
				return next(c)
			}

			sess.AddFlash(domain.FlashErrors, domain.MsgMustBeLoggedIn)
			if err := sessions.Save(c); err != nil {
				return err
			}
			return c.Redirect(http.StatusFound, "/")
		}
	}
}
