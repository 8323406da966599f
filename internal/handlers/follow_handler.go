package handlers

import (
	"errors"

	"github.com/anonto42/warbler/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	social *services.SocialGraph
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(social *services.SocialGraph) *FollowHandler {
	return &FollowHandler{social: social}
}

// RegisterFollowRoutes registers follow-related routes on the /users group
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow/:id", h.FollowUser)
	g.POST("/stop-following/:id", h.UnfollowUser)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	me := currentUser(c)
	if _, err := h.social.Follow(c.Request().Context(), me, targetID); err != nil {
		if errors.Is(err, services.ErrSelfFollow) {
			flash(c, "You cannot follow yourself.", "danger")
			return redirect(c, userPath(me.ID)+"/following")
		}
		return serviceError(err)
	}
	return redirect(c, userPath(me.ID)+"/following")
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	me := currentUser(c)
	if _, err := h.social.Unfollow(c.Request().Context(), me, targetID); err != nil {
		return serviceError(err)
	}
	return redirect(c, userPath(me.ID)+"/following")
}
