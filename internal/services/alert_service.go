package services

import (
	"context"
	"fmt"
	"time"

	"github.com/stockwise/stockwise/internal/alerts"
	"github.com/stockwise/stockwise/internal/dispatch"
	"github.com/stockwise/stockwise/internal/logging"
	"github.com/stockwise/stockwise/internal/models"
)

// AlertService handles alert generation business logic
type AlertService struct {
	logger     *logging.Logger
	dispatcher dispatch.Dispatcher
}

// NewAlertService creates a new AlertService
func NewAlertService(logger *logging.Logger, dispatcher dispatch.Dispatcher) *AlertService {
	return &AlertService{
		logger:     logger,
		dispatcher: dispatcher,
	}
}

// Execute validates the inventory snapshot, generates alerts and hands the
// batch to the dispatcher. A malformed item aborts the whole batch; no
// partial batch is ever returned.
func (s *AlertService) Execute(ctx context.Context, req *models.AlertRequest) (*alerts.Batch, error) {
	startExec := time.Now()

	items := make([]alerts.Item, 0, len(req.Inventory))
	for i, payload := range req.Inventory {
		item, err := toInventoryItem(payload, i)
		if err != nil {
			return nil, NewServiceError(ErrCodeInvalidInput, err.Error())
		}
		items = append(items, item)
	}

	batch := alerts.Generate(items, time.Now())

	// Delivery is best-effort: the caller gets the batch even when the
	// broker is unreachable.
	if err := s.dispatcher.Dispatch(ctx, batch); err != nil {
		s.logger.Warn("Alert dispatch failed", "error", err)
	}

	s.logger.Info("Alerts generated",
		"items", len(items),
		"alerts", batch.Summary.Total,
		"critical", batch.Summary.Critical,
		"warning", batch.Summary.Warning,
		"info", batch.Summary.Info,
		"latency_ms", time.Since(startExec).Milliseconds())

	return &batch, nil
}

// toInventoryItem validates one wire payload and applies field defaults.
func toInventoryItem(payload models.InventoryItemPayload, index int) (alerts.Item, error) {
	if payload.SKU == nil {
		return alerts.Item{}, fmt.Errorf("inventory item %d: sku is required", index)
	}
	if payload.ProductName == nil {
		return alerts.Item{}, fmt.Errorf("inventory item %d: product_name is required", index)
	}
	if payload.Available == nil {
		return alerts.Item{}, fmt.Errorf("inventory item %d: available is required", index)
	}
	if *payload.Available < 0 {
		return alerts.Item{}, fmt.Errorf("inventory item %d: available must not be negative", index)
	}

	item := alerts.Item{
		SKU:           *payload.SKU,
		ProductName:   *payload.ProductName,
		Available:     *payload.Available,
		ReorderPoint:  alerts.DefaultReorderPoint,
		Location:      alerts.DefaultLocation,
		MonthlyDemand: alerts.DefaultMonthlyDemand,
	}
	if payload.ReorderPoint != nil {
		if *payload.ReorderPoint < 0 {
			return alerts.Item{}, fmt.Errorf("inventory item %d: reorder_point must not be negative", index)
		}
		item.ReorderPoint = *payload.ReorderPoint
	}
	if payload.Location != nil {
		item.Location = *payload.Location
	}
	if payload.MonthlyDemand != nil {
		if *payload.MonthlyDemand < 0 {
			return alerts.Item{}, fmt.Errorf("inventory item %d: monthly_demand must not be negative", index)
		}
		item.MonthlyDemand = *payload.MonthlyDemand
	}
	return item, nil
}
