package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfollow/social-network/internal/api/metrics"
	"github.com/devfollow/social-network/internal/api/reqctx"
	"github.com/devfollow/social-network/internal/api/session"
	"github.com/devfollow/social-network/internal/core/domain"
	"github.com/devfollow/social-network/internal/core/ports"
)

type PostHandler struct {
	posts    ports.PostService
	sessions *session.Manager
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewPostHandler(posts ports.PostService, sessions *session.Manager, m *metrics.Metrics, log zerolog.Logger) *PostHandler {
	return &PostHandler{posts: posts, sessions: sessions, metrics: m, log: log}
}

type createPostRequest struct {
	Title string `json:"title" form:"title" validate:"required,max=200"`
	Body  string `json:"body"  form:"body"  validate:"required"`
}

type createPostResponse struct {
	ID string `json:"_id"`
}

// bindPost binds and checks a post request; field failures come back as
// *domain.ValidationErrors.
func bindPost(c echo.Context) (domain.NewPostInput, error) {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewPostInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Body = strings.TrimSpace(req.Body)

	if err := c.Validate(&req); err != nil {
		return domain.NewPostInput{}, err
	}
	return domain.NewPostInput{Title: req.Title, Body: req.Body}, nil
}

// Create stores a post for the session user.
//
// @Summary      Create a post
// @Tags         web
// @Accept       json,x-www-form-urlencoded
// @Param        title  formData  string  true  "Title"
// @Param        body   formData  string  true  "Body"
// @Success      302
// @Router       /create-post [post]
func (h *PostHandler) Create(c echo.Context) error {
	sess := session.From(c)

	in, err := bindPost(c)
	if err == nil {
		_, err = h.posts.Create(c.Request().Context(), sess.User.ID, in)
	}

	target := "/profile/" + url.PathEscape(sess.User.Username)
	switch {
	case err == nil:
		h.metrics.PostsCreatedTotal.WithLabelValues(metrics.ChannelWeb).Inc()
		sess.AddFlash(domain.FlashSuccess, "New post successfully created.")
	default:
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return err
		}
		msgs, ok := domain.ValidationMessages(err)
		if !ok {
			h.log.Error().Err(err).Str("user_id", sess.User.ID).Msg("create post failed")
			msgs = []string{domain.MsgTryAgainLater}
		}
		sess.AddFlash(domain.FlashErrors, msgs...)
		target = "/"
	}

	if err := h.sessions.Save(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, target)
}

// APICreate stores a post for the token's user.
//
// @Summary      Create a post (API)
// @Tags         api
// @Accept       json
// @Produce      json
// @Param        token  formData  string  true  "API token"
// @Param        title  formData  string  true  "Title"
// @Param        body   formData  string  true  "Body"
// @Success      201    {object}  createPostResponse
// @Failure      400    {object}  map[string]any
// @Failure      401    {object}  map[string]string
// @Router       /api/create-post [post]
func (h *PostHandler) APICreate(c echo.Context) error {
	in, err := bindPost(c)
	if err != nil {
		return err
	}

	id, err := h.posts.Create(c.Request().Context(), reqctx.APIUser(c), in)
	if err != nil {
		return err
	}

	h.metrics.PostsCreatedTotal.WithLabelValues(metrics.ChannelAPI).Inc()
	return c.JSON(http.StatusCreated, createPostResponse{ID: id})
}
