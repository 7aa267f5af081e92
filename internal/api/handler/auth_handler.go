package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfollow/social-network/internal/api/metrics"
	"github.com/devfollow/social-network/internal/api/reqctx"
	"github.com/devfollow/social-network/internal/api/session"
	"github.com/devfollow/social-network/internal/api/view"
	"github.com/devfollow/social-network/internal/core/domain"
	"github.com/devfollow/social-network/internal/core/ports"
)

type AuthHandler struct {
	auth     ports.AuthService
	profiles ports.ProfileService
	sessions *session.Manager
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, profiles ports.ProfileService, sessions *session.Manager, m *metrics.Metrics, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, profiles: profiles, sessions: sessions, metrics: m, log: log}
}

type guestData struct {
	RegErrors []string `json:"regErrors"`
	Errors    []string `json:"errors"`
	Success   []string `json:"success"`
}

type dashboardData struct {
	Posts   []domain.Post `json:"posts"`
	Errors  []string      `json:"errors"`
	Success []string      `json:"success"`
}

// Home renders the feed for a logged-in session and the guest page otherwise.
// Pending flash messages are consumed.
//
// @Summary      Home screen
// @Tags         web
// @Produce      json
// @Success      200  {object}  view.Page
// @Router       / [get]
func (h *AuthHandler) Home(c echo.Context) error {
	sess := session.From(c)

	if sess.IsAuthenticated() {
		posts, err := h.profiles.HomeFeed(c.Request().Context(), sess.User.ID)
		if err != nil {
			return err
		}
		data := dashboardData{
			Posts:   posts,
			Errors:  sess.Flashes(domain.FlashErrors),
			Success: sess.Flashes(domain.FlashSuccess),
		}
		if err := h.sessions.Save(c); err != nil {
			return err
		}
		return view.Render(c, http.StatusOK, view.HomeDashboard, data)
	}

	data := guestData{
		RegErrors: sess.Flashes(domain.FlashRegErrors),
		Errors:    sess.Flashes(domain.FlashErrors),
		Success:   sess.Flashes(domain.FlashSuccess),
	}
	if err := h.sessions.Save(c); err != nil {
		return err
	}
	return view.Render(c, http.StatusOK, view.HomeGuest, data)
}

// Register creates an account and signs the new user in. Validation messages
// are flashed under regErrors.
//
// @Summary      Register a new user
// @Tags         web
// @Accept       json,x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        email     formData  string  true  "Email"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	fields, err := reqctx.Fields(c)
	if err != nil {
		return err
	}

	sess := session.From(c)
	user, err := h.auth.Register(c.Request().Context(), fields)
	switch {
	case err == nil:
		h.metrics.RegistrationsTotal.WithLabelValues(metrics.ResultOK).Inc()
		sess.SignIn(user.Public())
	default:
		if msgs, ok := domain.ValidationMessages(err); ok {
			h.metrics.RegistrationsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
			sess.AddFlash(domain.FlashRegErrors, msgs...)
		} else {
			h.metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
			h.log.Error().Err(err).Msg("registration failed")
			sess.AddFlash(domain.FlashRegErrors, domain.MsgTryAgainLater)
		}
	}

	if err := h.sessions.Save(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

// Login authenticates against the session. Failures are flashed under errors.
//
// @Summary      Login
// @Tags         web
// @Accept       json,x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	fields, err := reqctx.Fields(c)
	if err != nil {
		return err
	}

	sess := session.From(c)
	user, err := h.auth.Login(c.Request().Context(), fields)
	if err != nil {
		h.metrics.LoginsTotal.WithLabelValues(metrics.ChannelWeb, loginResult(err)).Inc()
		sess.AddFlash(domain.FlashErrors, loginMessage(err))
	} else {
		h.metrics.LoginsTotal.WithLabelValues(metrics.ChannelWeb, metrics.ResultOK).Inc()
		sess.SignIn(user.Public())
	}

	if err := h.sessions.Save(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

// Logout destroys the session.
//
// @Summary      Logout
// @Tags         web
// @Success      302
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Destroy(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

// APILogin exchanges credentials for a signed token.
//
// @Summary      API login
// @Tags         api
// @Accept       json
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {string}  string  "signed token"
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) APILogin(c echo.Context) error {
	fields, err := reqctx.Fields(c)
	if err != nil {
		return err
	}

	token, err := h.auth.APILogin(c.Request().Context(), fields)
	if err != nil {
		h.metrics.LoginsTotal.WithLabelValues(metrics.ChannelAPI, loginResult(err)).Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, domain.MsgInvalidAPILogin)
		}
		return err
	}

	h.metrics.LoginsTotal.WithLabelValues(metrics.ChannelAPI, metrics.ResultOK).Inc()
	return c.JSON(http.StatusOK, token)
}

// DoesUsernameExist reports whether the body's username is registered.
//
// @Summary      Username availability
// @Tags         api
// @Accept       json
// @Produce      json
// @Success      200  {boolean}  bool
// @Router       /doesUsernameExist [post]
func (h *AuthHandler) DoesUsernameExist(c echo.Context) error {
	fields, err := reqctx.Fields(c)
	if err != nil {
		return err
	}

	ok, err := h.auth.DoesUsernameExist(c.Request().Context(), fields["username"])
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok)
}

// DoesEmailExist reports whether the body's email is registered.
//
// @Summary      Email availability
// @Tags         api
// @Accept       json
// @Produce      json
// @Success      200  {boolean}  bool
// @Router       /doesEmailExist [post]
func (h *AuthHandler) DoesEmailExist(c echo.Context) error {
	fields, err := reqctx.Fields(c)
	if err != nil {
		return err
	}

	ok, err := h.auth.DoesEmailExist(c.Request().Context(), fields["email"])
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok)
}

func loginResult(err error) string {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return metrics.ResultInvalid
	}
	return metrics.ResultUnavailable
}

func loginMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return domain.MsgIncorrectLogin
	}
	return domain.MsgTryAgainLater
}
