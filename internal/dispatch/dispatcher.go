package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stockwise/stockwise/internal/alerts"
	"github.com/stockwise/stockwise/internal/config"
	"github.com/stockwise/stockwise/internal/logging"
	"github.com/stockwise/stockwise/internal/utils"
)

// Dispatcher delivers generated alert batches to downstream consumers
type Dispatcher interface {
	// Dispatch publishes one alert batch
	Dispatch(ctx context.Context, batch alerts.Batch) error

	// Close releases the underlying broker connection
	Close() error
}

// NewDispatcher creates a Dispatcher from configuration. When dispatch
// is disabled the returned Dispatcher silently drops every batch, so
// callers never need to branch on the setting.
func NewDispatcher(cfg config.DispatchConfig, logger *logging.Logger) (Dispatcher, error) {
	if !cfg.Enabled {
		return NoopDispatcher{}, nil
	}

	broker, err := NewBroker(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatch broker: %w", err)
	}

	return &brokerDispatcher{
		broker:   broker,
		subject:  cfg.Subject,
		compress: cfg.Compress,
		logger:   logger,
	}, nil
}

// NoopDispatcher drops every batch. It is used when dispatch is
// disabled and as a stand-in in tests.
type NoopDispatcher struct{}

// Dispatch discards the batch
func (NoopDispatcher) Dispatch(ctx context.Context, batch alerts.Batch) error { return nil }

// Close is a no-op
func (NoopDispatcher) Close() error { return nil }

// brokerDispatcher publishes alert batches to a single broker subject
type brokerDispatcher struct {
	broker   Broker
	subject  string
	compress bool
	logger   *logging.Logger
}

// Dispatch encodes the batch as JSON and publishes it. Delivery is
// bounded so a slow broker cannot stall the request path.
func (d *brokerDispatcher) Dispatch(ctx context.Context, batch alerts.Batch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to encode alert batch: %w", err)
	}

	payload := EncodePayload(data, d.compress)

	ctx, cancel := context.WithTimeout(ctx, utils.DispatchTimeout)
	defer cancel()

	if err := d.broker.Publish(ctx, d.subject, payload); err != nil {
		return fmt.Errorf("failed to publish alert batch: %w", err)
	}

	d.logger.Debug("Alert batch dispatched",
		"subject", d.subject,
		"alerts", batch.Summary.Total,
		"bytes", len(payload))

	return nil
}

// Close closes the underlying broker
func (d *brokerDispatcher) Close() error {
	return d.broker.Close()
}
