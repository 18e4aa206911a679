package utils

import "time"

// HTTP Timeouts
const (
	// DefaultRequestTimeout is the default read timeout for HTTP requests
	DefaultRequestTimeout = 30 * time.Second

	// ShutdownTimeout bounds graceful server shutdown
	ShutdownTimeout = 10 * time.Second
)

// Dispatch Timeouts
const (
	// DispatchTimeout bounds alert delivery to the broker so a slow broker
	// cannot stall request handling
	DispatchTimeout = 5 * time.Second

	// BrokerConnectTimeout is the timeout for establishing broker connections
	BrokerConnectTimeout = 5 * time.Second
)

// DispatchType represents the type of message broker used for alert delivery
type DispatchType string

const (
	// DispatchTypeNATS represents NATS JetStream (default)
	DispatchTypeNATS DispatchType = "nats"

	// DispatchTypeRedis represents Redis Streams
	DispatchTypeRedis DispatchType = "redis"

	// DispatchTypeKafka represents Apache Kafka
	DispatchTypeKafka DispatchType = "kafka"

	// DispatchTypeMemory represents an in-process broker (for testing)
	DispatchTypeMemory DispatchType = "memory"
)
