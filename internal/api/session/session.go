// Package session binds server-side sessions to a browser cookie.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfollow/social-network/internal/core/domain"
	"github.com/devfollow/social-network/internal/core/ports"
)

const (
	keySession = "session"
	keyID      = "session.id"

	DefaultCookieName = "social_sid"
)

type Options struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

type Manager struct {
	store ports.SessionStore
	opts  Options
	log   zerolog.Logger
}

func NewManager(store ports.SessionStore, opts Options, log zerolog.Logger) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{store: store, opts: opts, log: log}
}

// Middleware loads the session named by the cookie. Requests without a cookie,
// or with an unknown one, get an empty session that is only persisted on Save.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := &domain.Session{}
			id := ""

			if cookie, err := c.Cookie(m.opts.CookieName); err == nil && cookie.Value != "" {
				loaded, err := m.store.Get(c.Request().Context(), cookie.Value)
				switch {
				case err == nil:
					sess, id = loaded, cookie.Value
				case errors.Is(err, domain.ErrSessionNotFound):
				default:
					m.log.Error().Err(err).Msg("session load failed")
				}
			}

			c.Set(keySession, sess)
			c.Set(keyID, id)
			return next(c)
		}
	}
}

// From returns the request's session. It never returns nil.
func From(c echo.Context) *domain.Session {
	if s, ok := c.Get(keySession).(*domain.Session); ok && s != nil {
		return s
	}
	s := &domain.Session{}
	c.Set(keySession, s)
	return s
}

// Save persists the session and refreshes the cookie. An empty session that
// was never stored is skipped.
func (m *Manager) Save(c echo.Context) error {
	sess := From(c)
	id, _ := c.Get(keyID).(string)

	if id == "" {
		if !sess.IsAuthenticated() && !sess.HasFlash() {
			return nil
		}
		id = uuid.NewString()
		c.Set(keyID, id)
	}

	if err := m.store.Save(c.Request().Context(), id, sess); err != nil {
		return err
	}

	c.SetCookie(m.cookie(id, int(m.opts.TTL.Seconds())))
	return nil
}

// Destroy removes the stored session and expires the cookie.
func (m *Manager) Destroy(c echo.Context) error {
	id, _ := c.Get(keyID).(string)
	if id != "" {
		if err := m.store.Destroy(c.Request().Context(), id); err != nil {
			return err
		}
	}

	c.Set(keySession, &domain.Session{})
	c.Set(keyID, "")
	c.SetCookie(m.cookie("", -1))
	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
