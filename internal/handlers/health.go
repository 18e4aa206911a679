package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stockwise/stockwise/internal/models"
)

// Health handles health check requests
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   apiVersion,
	})
}

// Info describes the service and the routes it exposes
func (h *Handler) Info(c *fiber.Ctx) error {
	return c.JSON(models.InfoResponse{
		Name:    "Stockwise Analytics API",
		Version: apiVersion,
		Status:  "running",
		Endpoints: []string{
			"/health",
			"/analytics/forecast",
			"/analytics/trend",
			"/analytics/anomalies",
			"/alerts/generate",
			"/optimization/reorder-point",
		},
	})
}

// NotFound handles 404 errors
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "Route not found",
			Path:    c.Path(),
		},
	})
}
