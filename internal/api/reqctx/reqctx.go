// Package reqctx holds the values middleware attaches to an echo.Context.
package reqctx

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devfollow/social-network/internal/core/domain"
)

const (
	keyFields         = "reqctx.fields"
	keyAPIUser        = "reqctx.apiUser"
	keyProfileUser    = "reqctx.profileUser"
	keyProfileContext = "reqctx.profileContext"
)

// Fields returns the request body as loosely typed fields. JSON bodies keep
// their value types; form bodies yield the first value of each key. The result
// is cached on the context and the body stays readable for later binds.
func Fields(c echo.Context) (map[string]any, error) {
	if f, ok := c.Get(keyFields).(map[string]any); ok {
		return f, nil
	}

	fields := map[string]any{}
	req := c.Request()
	ctype := req.Header.Get(echo.HeaderContentType)

	switch {
	case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		if len(body) > 0 {
			if err := (&echo.DefaultBinder{}).BindBody(c, &fields); err != nil {
				return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
			}
		}
		req.Body = io.NopCloser(bytes.NewReader(body))

	case strings.HasPrefix(ctype, echo.MIMEApplicationForm), strings.HasPrefix(ctype, echo.MIMEMultipartForm):
		params, err := c.FormParams()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		for k, v := range params {
			if len(v) > 0 {
				fields[k] = v[0]
			}
		}
	}

	c.Set(keyFields, fields)
	return fields, nil
}

func SetAPIUser(c echo.Context, userID string) {
	c.Set(keyAPIUser, userID)
}

// APIUser returns the user id placed by the token gate, or "" when absent.
func APIUser(c echo.Context) string {
	id, _ := c.Get(keyAPIUser).(string)
	return id
}

func SetProfileUser(c echo.Context, u *domain.PublicUser) {
	c.Set(keyProfileUser, u)
}

func ProfileUser(c echo.Context) (*domain.PublicUser, bool) {
	u, ok := c.Get(keyProfileUser).(*domain.PublicUser)
	return u, ok && u != nil
}

func SetProfileContext(c echo.Context, pc *domain.ProfileContext) {
	c.Set(keyProfileContext, pc)
}

func ProfileContext(c echo.Context) (*domain.ProfileContext, bool) {
	pc, ok := c.Get(keyProfileContext).(*domain.ProfileContext)
	return pc, ok && pc != nil
}
