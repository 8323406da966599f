package middleware

import (
	"net/http"

	"github.com/anonto42/warbler/internal/models"
	"github.com/anonto42/warbler/internal/repositories"
	"github.com/anonto42/warbler/internal/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const requestContextKey = "warbler.request"

// RequestContext is built fresh for every request by Identity.
type RequestContext struct {
	CurrentUser *models.User
	Session     *session.Session
}

// Login makes user the current user for this and later requests.
func (rc *RequestContext) Login(user *models.User) {
	rc.Session.SetUser(user.ID)
	rc.CurrentUser = user
}

// Logout forgets the current user. It is safe to call when nobody is logged in.
func (rc *RequestContext) Logout() {
	rc.Session.ClearUser()
	rc.CurrentUser = nil
}

func (rc *RequestContext) Flash(message, category string) {
	rc.Session.AddFlash(message, category)
}

func (rc *RequestContext) LoggedIn() bool {
	return rc.CurrentUser != nil
}

// Current returns the request context attached by Identity.
func Current(c echo.Context) *RequestContext {
	rc, _ := c.Get(requestContextKey).(*RequestContext)
	return rc
}

// Identity loads the client session and resolves its user. A user id that no longer
// matches an account is dropped from the session and the request continues anonymously.
func Identity(logger *zap.Logger, sessions *session.Manager, users repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			sess := sessions.Load(ctx, c.Request())
			rc := &RequestContext{Session: sess}

			if id, ok := sess.UserID(); ok {
				user, err := users.GetUserByID(ctx, id)
				switch {
				case err == nil:
					rc.CurrentUser = user
				case errors.Is(err, repositories.ErrNotFound):
					logger.Sugar().Infof("dropping stale session user(%d)", id)
					sess.ClearUser()
				default:
					logger.Sugar().Errorf("failed to load session user(%d): %s", id, err.Error())
					return echo.NewHTTPError(http.StatusInternalServerError)
				}
			}

			c.Set(requestContextKey, rc)
			c.Response().Before(func() {
				sessions.Commit(ctx, c.Response(), sess)
			})
			return next(c)
		}
	}
}

// RequireLogin sends anonymous visitors back to the homepage with a flash.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rc := Current(c)
			if rc == nil || !rc.LoggedIn() {
				if rc != nil {
					rc.Flash("Access unauthorized.", "danger")
				}
				return c.Redirect(http.StatusFound, "/")
			}
			return next(c)
		}
	}
}
