package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/warbler/internal/models"
	"github.com/anonto42/warbler/internal/services"
	"github.com/anonto42/warbler/internal/views"
	"github.com/anonto42/warbler/validators"
	"github.com/labstack/echo/v4"
)

// UserHandler serves profile pages and account management
type UserHandler struct {
	credentials *services.CredentialService
	social      *services.SocialGraph
	feed        *services.FeedAssembler
}

func NewUserHandler(credentials *services.CredentialService, social *services.SocialGraph, feed *services.FeedAssembler) *UserHandler {
	return &UserHandler{
		credentials: credentials,
		social:      social,
		feed:        feed,
	}
}

// RegisterUserRoutes registers user routes on the logged-in /users group
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("", h.ListUsers)
	g.GET("/profile", h.EditProfileForm)
	g.POST("/profile", h.EditProfile)
	g.POST("/delete", h.DeleteUser)
	g.GET("/:id", h.ShowUser)
	g.GET("/:id/following", h.ShowFollowing)
	g.GET("/:id/followers", h.ShowFollowers)
	g.GET("/:id/likes", h.ShowLikes)
}

// ListUsers lists every user, or those whose username contains ?q=
func (h *UserHandler) ListUsers(c echo.Context) error {
	query := c.QueryParam("q")
	users, err := h.social.Users(c.Request().Context(), query)
	if err != nil {
		return serviceError(err)
	}
	return render(c, http.StatusOK, "users/index", views.Page{Users: users, Query: query})
}

// ShowUser shows a profile with its most recent messages
func (h *UserHandler) ShowUser(c echo.Context) error {
	page, err := h.profilePage(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if page.Messages, err = h.feed.UserMessages(ctx, page.User.ID); err != nil {
		return serviceError(err)
	}
	if page.Liked, err = h.social.LikedIn(ctx, currentUser(c).ID, page.Messages); err != nil {
		return serviceError(err)
	}
	return render(c, http.StatusOK, "users/show", page)
}

func (h *UserHandler) ShowFollowing(c echo.Context) error {
	page, err := h.profilePage(c)
	if err != nil {
		return err
	}
	if page.Users, err = h.social.Following(c.Request().Context(), page.User.ID); err != nil {
		return serviceError(err)
	}
	return render(c, http.StatusOK, "users/following", page)
}

func (h *UserHandler) ShowFollowers(c echo.Context) error {
	page, err := h.profilePage(c)
	if err != nil {
		return err
	}
	if page.Users, err = h.social.Followers(c.Request().Context(), page.User.ID); err != nil {
		return serviceError(err)
	}
	return render(c, http.StatusOK, "users/followers", page)
}

// ShowLikes lists the messages the profile owner has liked
func (h *UserHandler) ShowLikes(c echo.Context) error {
	page, err := h.profilePage(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if page.Messages, err = h.social.LikedMessages(ctx, page.User.ID); err != nil {
		return serviceError(err)
	}
	if page.Liked, err = h.social.LikedIn(ctx, currentUser(c).ID, page.Messages); err != nil {
		return serviceError(err)
	}
	return render(c, http.StatusOK, "users/likes", page)
}

func (h *UserHandler) EditProfileForm(c echo.Context) error {
	user := currentUser(c)
	return render(c, http.StatusOK, "users/edit", views.Page{Form: models.UpdateUserRequest{
		Username:       user.Username,
		Email:          user.Email,
		ImageURL:       user.ImageURL,
		HeaderImageURL: user.HeaderImageURL,
		Bio:            user.Bio,
		Location:       user.Location,
	}})
}

// EditProfile saves profile changes after the current password is confirmed
func (h *UserHandler) EditProfile(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	page := views.Page{Form: req}

	if err := c.Validate(&req); err != nil {
		page.Errors = validators.FieldErrors(err)
		return render(c, http.StatusOK, "users/edit", page)
	}

	user, err := h.credentials.UpdateProfile(c.Request().Context(), currentUser(c), req.Password, services.ProfileInput{
		Username:       req.Username,
		Email:          req.Email,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
		Bio:            req.Bio,
		Location:       req.Location,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			flash(c, "Invalid password. Please try again", "danger")
			return render(c, http.StatusOK, "users/edit", page)
		}
		if fields := duplicateFields(err); fields != nil {
			page.Errors = fields
			return render(c, http.StatusOK, "users/edit", page)
		}
		return serviceError(err)
	}
	return redirect(c, userPath(user.ID))
}

// DeleteUser deletes the caller's account and logs them out
func (h *UserHandler) DeleteUser(c echo.Context) error {
	user := currentUser(c)
	if err := h.credentials.DeleteAccount(c.Request().Context(), user); err != nil {
		return serviceError(err)
	}
	logout(c)
	return redirect(c, "/signup")
}

// profilePage loads the header shared by every profile view: the user, their counts
// and whether the viewer follows them.
func (h *UserHandler) profilePage(c echo.Context) (views.Page, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return views.Page{}, err
	}

	ctx := c.Request().Context()
	user, err := h.social.User(ctx, id)
	if err != nil {
		return views.Page{}, serviceError(err)
	}
	stats, err := h.social.Stats(ctx, user.ID)
	if err != nil {
		return views.Page{}, serviceError(err)
	}
	following, err := h.social.IsFollowing(ctx, currentUser(c).ID, user.ID)
	if err != nil {
		return views.Page{}, serviceError(err)
	}
	return views.Page{User: user, Stats: stats, Following: following}, nil
}
