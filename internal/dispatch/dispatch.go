// Package dispatch delivers generated alert batches to downstream
// consumers over a pluggable message broker. NATS JetStream is the
// default transport; Redis Streams, Apache Kafka and an in-process
// broker are available for deployments that already run one of those.
package dispatch

import "context"

// Publisher publishes messages to a broker
type Publisher interface {
	// Publish publishes a message to a subject/topic
	Publish(ctx context.Context, subject string, data []byte) error

	// PublishBatch publishes multiple messages asynchronously and waits for all to complete
	// Returns the number of successfully published messages and any error
	PublishBatch(ctx context.Context, messages []BatchMessage) (int, error)

	// Close closes the connection
	Close() error
}

// BatchMessage represents a message for batch publishing
type BatchMessage struct {
	Subject string
	Data    []byte
}

// Subscriber subscribes to messages from a broker
type Subscriber interface {
	// Subscribe subscribes to a subject/topic with a handler
	Subscribe(subject string, handler MessageHandler) error

	// Unsubscribe unsubscribes from a subject/topic
	Unsubscribe(subject string) error

	// Close closes the connection
	Close() error
}

// MessageHandler handles incoming messages
type MessageHandler func(data []byte) error

// Broker combines Publisher and Subscriber interfaces
type Broker interface {
	Publisher
	Subscriber
}
