package services

import (
	"context"
	"time"

	"github.com/stockwise/stockwise/internal/logging"
	"github.com/stockwise/stockwise/internal/models"
	"github.com/stockwise/stockwise/internal/trend"
	"github.com/stockwise/stockwise/internal/utils"
)

// TrendService handles trend analysis business logic
type TrendService struct {
	logger *logging.Logger
}

// NewTrendService creates a new TrendService
func NewTrendService(logger *logging.Logger) *TrendService {
	return &TrendService{logger: logger}
}

// Execute coerces the series and classifies its direction
func (s *TrendService) Execute(ctx context.Context, req *models.SeriesRequest) (*trend.Report, error) {
	startExec := time.Now()

	values, err := utils.CoerceFloats(req.Values)
	if err != nil {
		return nil, NewServiceError(ErrCodeInvalidInput, err.Error())
	}

	report := trend.Analyze(values)

	s.logger.Info("Trend analysis completed",
		"points", len(values),
		"trend", string(report.Trend),
		"latency_ms", time.Since(startExec).Milliseconds())

	return &report, nil
}
