package services

import (
	"context"
	"time"

	"github.com/stockwise/stockwise/internal/logging"
	"github.com/stockwise/stockwise/internal/models"
	"github.com/stockwise/stockwise/internal/optimize"
)

// OptimizationService handles inventory policy calculations
type OptimizationService struct {
	logger *logging.Logger
}

// NewOptimizationService creates a new OptimizationService
func NewOptimizationService(logger *logging.Logger) *OptimizationService {
	return &OptimizationService{logger: logger}
}

// Execute applies request defaults and computes the inventory plan
func (s *OptimizationService) Execute(ctx context.Context, req *models.ReorderRequest) (*optimize.Plan, error) {
	startExec := time.Now()

	in := optimize.Input{
		DailyDemand:  valueOr(req.DailyDemand, optimize.DefaultDailyDemand),
		LeadTimeDays: valueOr(req.LeadTimeDays, optimize.DefaultLeadTimeDays),
		ServiceLevel: valueOr(req.ServiceLevel, optimize.DefaultServiceLevel),
		DemandStd:    valueOr(req.DemandStd, optimize.DefaultDemandStd),
		OrderingCost: valueOr(req.OrderingCost, optimize.DefaultOrderingCost),
		HoldingCost:  valueOr(req.HoldingCost, optimize.DefaultHoldingCost),
	}

	plan := optimize.CalculateReorderPoint(in)

	s.logger.Info("Reorder point calculated",
		"daily_demand", in.DailyDemand,
		"lead_time_days", in.LeadTimeDays,
		"service_level", in.ServiceLevel,
		"reorder_point", plan.ReorderPoint,
		"latency_ms", time.Since(startExec).Milliseconds())

	return &plan, nil
}

func valueOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}
