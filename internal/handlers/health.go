package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/basetrack/internal/config"
	"github.com/localnerve/basetrack/internal/services"
)

// HealthHandler reports service health
type HealthHandler struct {
	Config *config.Config
	DB     services.Pinger
}

// GetHealth handles GET /health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
