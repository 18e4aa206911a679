package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stockwise/stockwise/internal/models"
	"github.com/stockwise/stockwise/internal/services"
)

// Trend handles trend analysis requests
// POST /analytics/trend
func (h *Handler) Trend(c *fiber.Ctx) error {
	var body models.SeriesRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_JSON",
				Message: "Failed to parse JSON body",
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}

	result, err := h.trendService.Execute(c.Context(), &body)
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
				Code:    "TREND_FAILED",
				Message: err.Error(),
			},
		})
	}

	return c.JSON(result)
}
