package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthChecker reports the status of a backing store.
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

type HealthHandler struct {
	db HealthChecker
}

// NewHealthHandler creates a HealthHandler. A nil checker reports the in-memory store.
func NewHealthHandler(db HealthChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) HealthCheck(c echo.Context) error {
	database := map[string]string{"status": "up", "driver": "memory"}
	if h.db != nil {
		database = h.db.Health(c.Request().Context())
	}

	status := http.StatusOK
	overall := "healthy"
	if database["status"] != "up" {
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	}
	return c.JSON(status, map[string]interface{}{
		"status":   overall,
		"service":  "warbler",
		"database": database,
	})
}
