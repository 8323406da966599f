package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/warbler/internal/services"
	"github.com/labstack/echo/v4"
)

const requestFailed = "request failed"

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	social *services.SocialGraph
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(social *services.SocialGraph) *LikeHandler {
	return &LikeHandler{social: social}
}

// RegisterLikeRoutes registers like-related routes on the /users group
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/add_like/:id", h.ToggleLike)
}

// ToggleLike likes or unlikes a message and answers with a JSON string
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	messageID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.social.ToggleLike(c.Request().Context(), currentUser(c), messageID)
	if err != nil {
		if errors.Is(err, services.ErrOwnMessage) {
			return c.JSON(http.StatusOK, requestFailed)
		}
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, string(result))
}
