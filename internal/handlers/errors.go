package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/warbler/internal/services"
	"github.com/anonto42/warbler/internal/views"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// serviceError maps a service failure onto an HTTP error. Callers handle the
// expected business errors themselves before falling back to this.
func serviceError(err error) error {
	if errors.Is(err, services.ErrNotFound) {
		return echo.ErrNotFound
	}
	return echo.NewHTTPError(http.StatusInternalServerError)
}

// ErrorHandler renders the not-found page for 404s and a plain status text for
// everything else.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}
		if code >= http.StatusInternalServerError {
			logger.Sugar().Errorf("%s %s: %s", c.Request().Method, c.Request().URL.Path, err.Error())
		}

		var rerr error
		switch {
		case c.Request().Method == http.MethodHead:
			rerr = c.NoContent(code)
		case code == http.StatusNotFound:
			rerr = render(c, http.StatusNotFound, "404", views.Page{})
		default:
			rerr = c.String(code, http.StatusText(code))
		}
		if rerr != nil {
			logger.Sugar().Errorf("failed to write error response: %s", rerr.Error())
		}
	}
}
