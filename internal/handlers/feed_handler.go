package handlers

import (
	"net/http"

	"github.com/anonto42/warbler/internal/middleware"
	"github.com/anonto42/warbler/internal/services"
	"github.com/anonto42/warbler/internal/views"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the homepage
type FeedHandler struct {
	feed   *services.FeedAssembler
	social *services.SocialGraph
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedAssembler, social *services.SocialGraph) *FeedHandler {
	return &FeedHandler{
		feed:   feed,
		social: social,
	}
}

// RegisterFeedRoutes registers the homepage
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/", h.Home)
}

// Home shows the feed to logged-in users and the landing page to everyone else
func (h *FeedHandler) Home(c echo.Context) error {
	user := middleware.Current(c).CurrentUser
	if user == nil {
		return render(c, http.StatusOK, "home-anon", views.Page{})
	}

	ctx := c.Request().Context()
	messages, err := h.feed.BuildFeed(ctx, user)
	if err != nil {
		return serviceError(err)
	}
	liked, err := h.social.LikedIn(ctx, user.ID, messages)
	if err != nil {
		return serviceError(err)
	}
	stats, err := h.social.Stats(ctx, user.ID)
	if err != nil {
		return serviceError(err)
	}
	return render(c, http.StatusOK, "home", views.Page{Messages: messages, Liked: liked, Stats: stats})
}
