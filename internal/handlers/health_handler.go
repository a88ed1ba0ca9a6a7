package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TalentBridge/internal/db"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store db.Availability
}

// NewHealthHandler reports the availability of store.
func NewHealthHandler(store db.Availability) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health reports whether the document store is reachable. A configured
// store is pinged so that the availability flag recovers after an outage.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if p, ok := h.store.(pinger); ok {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		_ = p.Ping(ctx)
	}

	if !h.store.Available() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message":  "database unavailable",
			"status":   "degraded",
			"database": "unavailable",
		})
	}
	return c.JSON(fiber.Map{
		"message":  "ok",
		"status":   "ok",
		"database": "available",
	})
}
