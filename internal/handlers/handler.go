package handlers

import (
	"github.com/stockwise/stockwise/internal/dispatch"
	"github.com/stockwise/stockwise/internal/forecast"
	"github.com/stockwise/stockwise/internal/logging"
	"github.com/stockwise/stockwise/internal/services"
)

// apiVersion is reported by the health and info endpoints.
const apiVersion = "1.0.0"

// Handler contains all HTTP handlers
type Handler struct {
	logger *logging.Logger
	// Services
	forecastService     *services.ForecastService
	trendService        *services.TrendService
	anomalyService      *services.AnomalyService
	alertService        *services.AlertService
	optimizationService *services.OptimizationService
}

// New creates a new handler instance
func New(logger *logging.Logger, dispatcher dispatch.Dispatcher) *Handler {
	engine := forecast.NewEngine()

	return &Handler{
		logger:              logger,
		forecastService:     services.NewForecastService(logger, engine),
		trendService:        services.NewTrendService(logger),
		anomalyService:      services.NewAnomalyService(logger),
		alertService:        services.NewAlertService(logger, dispatcher),
		optimizationService: services.NewOptimizationService(logger),
	}
}
