package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HelloGreeting is the reply of the hello endpoint.
const HelloGreeting = "Hello, CRM!"

// Pinger reports whether the store is reachable.
type Pinger func(ctx context.Context) error

// SystemHandler serves the liveness endpoints.
type SystemHandler struct {
	ping Pinger
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(ping Pinger) *SystemHandler {
	return &SystemHandler{ping: ping}
}

// HandleHello answers the heartbeat job.
func (h *SystemHandler) HandleHello(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"hello": HelloGreeting})
}

// HandleHealth reports service and database status.
func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	database := "up"
	if h.ping == nil || h.ping(c.UserContext()) != nil {
		database = "down"
	}
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now().UTC().Format(time.RFC3339),
		"database": database,
	})
}
