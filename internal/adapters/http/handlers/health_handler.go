package handlers

import (
	"os"

	"eps-clinic/internal/config"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Root handles the root endpoint
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "EPS clinic API is running",
		"mode":    h.cfg.AppMode,
	})
}

// HealthCheck reports API and data-directory health
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	storageStatus := "healthy"
	if _, err := os.Stat(h.cfg.DataDir); err != nil {
		storageStatus = "unhealthy"
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api":     "healthy",
			"storage": storageStatus,
		},
	})
}
