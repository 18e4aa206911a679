package services

import (
	"context"
	"fmt"
	"time"

	"github.com/stockwise/stockwise/internal/forecast"
	"github.com/stockwise/stockwise/internal/logging"
	"github.com/stockwise/stockwise/internal/models"
	"github.com/stockwise/stockwise/internal/stats"
	"github.com/stockwise/stockwise/internal/utils"
)

// ForecastService handles demand forecasting business logic
type ForecastService struct {
	logger *logging.Logger
	engine *forecast.Engine
}

// NewForecastService creates a new ForecastService
func NewForecastService(logger *logging.Logger, engine *forecast.Engine) *ForecastService {
	return &ForecastService{
		logger: logger,
		engine: engine,
	}
}

// ForecastResponse represents the complete forecast response
type ForecastResponse struct {
	ProductID string           `json:"product_id"`
	Method    string           `json:"method"`
	Trend     stats.Trend      `json:"trend"`
	Forecast  []forecast.Point `json:"forecast"`
	Metrics   forecast.Metrics `json:"metrics"`
}

// Execute extracts the historical series and projects it forward
func (s *ForecastService) Execute(ctx context.Context, req *models.ForecastRequest) (*ForecastResponse, error) {
	startExec := time.Now()

	values, err := extractHistoricalValues(req.HistoricalData)
	if err != nil {
		return nil, NewServiceError(ErrCodeInvalidInput, err.Error())
	}

	periods := req.Periods
	if periods <= 0 {
		periods = forecast.DefaultPeriods
	}

	result := s.engine.Project(values, periods, time.Now())

	s.logger.Info("Forecast completed",
		"product_id", req.ProductID,
		"history_points", len(values),
		"periods", periods,
		"trend", string(result.Trend),
		"latency_ms", time.Since(startExec).Milliseconds())

	return &ForecastResponse{
		ProductID: req.ProductID,
		Method:    forecast.Method,
		Trend:     result.Trend,
		Forecast:  result.Points,
		Metrics:   result.Metrics,
	}, nil
}

// extractHistoricalValues coerces the untyped history into a float series.
// Record entries contribute their quantity field, defaulting to 0 when the
// field is absent.
func extractHistoricalValues(raw []interface{}) ([]float64, error) {
	values := make([]float64, 0, len(raw))
	for i, item := range raw {
		if record, ok := item.(map[string]interface{}); ok {
			quantity, present := record["quantity"]
			if !present {
				values = append(values, 0)
				continue
			}
			f, ok := utils.ToFloat64(quantity)
			if !ok {
				return nil, fmt.Errorf("quantity at index %d is not numeric: %v", i, quantity)
			}
			values = append(values, f)
			continue
		}

		f, ok := utils.ToFloat64(item)
		if !ok {
			return nil, fmt.Errorf("value at index %d is not numeric: %v", i, item)
		}
		values = append(values, f)
	}
	return values, nil
}
