package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/warbler/internal/middleware"
	"github.com/anonto42/warbler/internal/models"
	"github.com/anonto42/warbler/internal/views"
	"github.com/labstack/echo/v4"
)

// render writes the named page with the current user, pending flashes and csrf token
// filled in.
func render(c echo.Context, status int, name string, page views.Page) error {
	page.CSRFToken = middleware.CSRFToken(c)
	if rc := middleware.Current(c); rc != nil {
		page.CurrentUser = rc.CurrentUser
		page.Flashes = rc.Session.Flashes()
	}
	return c.Render(status, name, page)
}

// currentUser is only valid behind middleware.RequireLogin.
func currentUser(c echo.Context) *models.User {
	return middleware.Current(c).CurrentUser
}

func flash(c echo.Context, message, category string) {
	middleware.Current(c).Flash(message, category)
}

func logout(c echo.Context) {
	middleware.Current(c).Logout()
}

func redirect(c echo.Context, path string) error {
	return c.Redirect(http.StatusFound, path)
}

func userPath(id uint) string {
	return "/users/" + strconv.FormatUint(uint64(id), 10)
}

// parseID reads a numeric path parameter. Anything that is not an id is a missing page.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return uint(id), nil
}
