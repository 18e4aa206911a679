package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stockwise/stockwise/internal/models"
	"github.com/stockwise/stockwise/internal/services"
)

// Forecast handles demand forecast requests
// POST /analytics/forecast
func (h *Handler) Forecast(c *fiber.Ctx) error {
	var body models.ForecastRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_JSON",
				Message: "Failed to parse JSON body",
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}

	result, err := h.forecastService.Execute(c.Context(), &body)
	if err != nil {
		if svcErr, ok := err.(*services.ServiceError); ok {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    svcErr.Code,
					Message: svcErr.Message,
					Details: svcErr.Details,
				},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "FORECAST_FAILED",
				Message: err.Error(),
			},
		})
	}

	return c.JSON(result)
}
