// Package view hands named screens and their data to the client as JSON.
package view

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	HomeGuest        = "home-guest"
	HomeDashboard    = "home-dashboard"
	Profile          = "profile"
	ProfileFollowers = "profile-followers"
	ProfileFollowing = "profile-following"
	NotFound         = "404"
)

// Page is the envelope for a rendered screen.
type Page struct {
	View string `json:"view"`
	Data any    `json:"data,omitempty"`
}

func Render(c echo.Context, code int, name string, data any) error {
	return c.JSON(code, Page{View: name, Data: data})
}

func RenderNotFound(c echo.Context) error {
	return Render(c, http.StatusNotFound, NotFound, nil)
}
