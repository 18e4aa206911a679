package services

import (
	"context"
	"time"

	"github.com/stockwise/stockwise/internal/anomaly"
	"github.com/stockwise/stockwise/internal/logging"
	"github.com/stockwise/stockwise/internal/models"
	"github.com/stockwise/stockwise/internal/utils"
)

// AnomalyService handles anomaly detection business logic
type AnomalyService struct {
	logger *logging.Logger
}

// NewAnomalyService creates a new AnomalyService
func NewAnomalyService(logger *logging.Logger) *AnomalyService {
	return &AnomalyService{logger: logger}
}

// Execute coerces the series and reports outlying observations
func (s *AnomalyService) Execute(ctx context.Context, req *models.SeriesRequest) (*anomaly.Report, error) {
	startExec := time.Now()

	values, err := utils.CoerceFloats(req.Values)
	if err != nil {
		return nil, NewServiceError(ErrCodeInvalidInput, err.Error())
	}

	report := anomaly.Analyze(values)

	s.logger.Info("Anomaly detection completed",
		"points", report.TotalPoints,
		"anomalies", report.AnomalyCount,
		"latency_ms", time.Since(startExec).Milliseconds())

	return &report, nil
}
