package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"kwtaxonomy/internal/models"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service health.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(database Pinger) *HealthHandler {
	return &HealthHandler{db: database}
}

// Check pings the database and returns 503 when it is unreachable.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.HealthResponse{
			Status:   "unhealthy",
			Database: "unreachable",
			Error:    err.Error(),
		})
	}

	return c.JSON(models.HealthResponse{Status: "ok", Database: "ok"})
}
