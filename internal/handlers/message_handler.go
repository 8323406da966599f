package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/warbler/internal/models"
	"github.com/anonto42/warbler/internal/services"
	"github.com/anonto42/warbler/internal/views"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles HTTP requests related to messages
type MessageHandler struct {
	messages *services.MessageService
	social   *services.SocialGraph
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messages *services.MessageService, social *services.SocialGraph) *MessageHandler {
	return &MessageHandler{
		messages: messages,
		social:   social,
	}
}

// RegisterMessageRoutes registers message routes on the logged-in /messages group
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/new", h.CreateMessage)
	g.GET("/:id", h.ShowMessage)
	g.POST("/:id/delete", h.DeleteMessage)
}

// CreateMessage posts a message from a JSON body {"text": ...}
func (h *MessageHandler) CreateMessage(c echo.Context) error {
	var req models.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, requestFailed)
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, requestFailed)
	}

	if _, err := h.messages.Create(c.Request().Context(), currentUser(c), req.Text); err != nil {
		if errors.Is(err, services.ErrInvalidMessage) {
			return c.JSON(http.StatusBadRequest, requestFailed)
		}
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, "message created")
}

// ShowMessage shows one message with the viewer's like state
func (h *MessageHandler) ShowMessage(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	message, err := h.messages.Get(ctx, id)
	if err != nil {
		return serviceError(err)
	}
	liked, err := h.social.HasLiked(ctx, currentUser(c).ID, message.ID)
	if err != nil {
		return serviceError(err)
	}
	return render(c, http.StatusOK, "messages/show", views.Page{
		Message: message,
		Liked:   map[uint]bool{message.ID: liked},
	})
}

// DeleteMessage deletes a message written by the caller
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	me := currentUser(c)
	if err := h.messages.Delete(c.Request().Context(), me, id); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			flash(c, "Access unauthorized.", "danger")
			return redirect(c, userPath(me.ID))
		}
		return serviceError(err)
	}
	return redirect(c, userPath(me.ID))
}
