package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaOptions represents Apache Kafka connection options
type KafkaOptions struct {
	Brokers       []string      // Kafka broker addresses
	GroupID       string        // Consumer group ID (default: "stockwise-group")
	BatchSize     int           // Producer batch size (default: 100)
	BatchTimeout  time.Duration // Producer batch timeout (default: 10ms)
	RequiredAcks  int           // Required acks: 0=none, 1=leader, -1=all (default: 1)
	Async         bool          // Async writes (default: false)
	MaxRetries    int           // Max retries on failure (default: 3)
	RetryBackoff  time.Duration // Backoff between retries (default: 100ms)
	CommitRetries int           // Consumer commit retries (default: 3)
}

// KafkaBroker implements Broker using Apache Kafka
type KafkaBroker struct {
	opts          KafkaOptions
	writers       map[string]*kafka.Writer
	readers       map[string]*kafka.Reader
	subscriptions map[string]context.CancelFunc
	mu            sync.RWMutex
}

// newKafkaBroker creates a new Kafka broker instance
func newKafkaBroker(opts KafkaOptions) (*KafkaBroker, error) {
	if len(opts.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not configured")
	}

	if opts.GroupID == "" {
		opts.GroupID = "stockwise-group"
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = 100
	}
	if opts.BatchTimeout == 0 {
		opts.BatchTimeout = 10 * time.Millisecond
	}
	if opts.RequiredAcks == 0 {
		opts.RequiredAcks = int(kafka.RequireOne)
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.RetryBackoff == 0 {
		opts.RetryBackoff = 100 * time.Millisecond
	}
	if opts.CommitRetries == 0 {
		opts.CommitRetries = 3
	}

	return &KafkaBroker{
		opts:          opts,
		writers:       make(map[string]*kafka.Writer),
		readers:       make(map[string]*kafka.Reader),
		subscriptions: make(map[string]context.CancelFunc),
	}, nil
}

// getOrCreateWriter returns an existing writer or creates one for the topic
func (b *KafkaBroker) getOrCreateWriter(topic string) *kafka.Writer {
	b.mu.Lock()
	defer b.mu.Unlock()

	if writer, exists := b.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(b.opts.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    b.opts.BatchSize,
		BatchTimeout: b.opts.BatchTimeout,
		RequiredAcks: kafka.RequiredAcks(b.opts.RequiredAcks),
		Async:        b.opts.Async,
		MaxAttempts:  b.opts.MaxRetries,
	}

	b.writers[topic] = writer
	return writer
}

// Publish publishes a message to a Kafka topic
func (b *KafkaBroker) Publish(ctx context.Context, subject string, data []byte) error {
	writer := b.getOrCreateWriter(subject)

	msg := kafka.Message{
		Value: data,
		Time:  time.Now(),
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish to kafka topic %s: %w", subject, err)
	}

	return nil
}

// PublishBatch publishes multiple messages grouped by topic
func (b *KafkaBroker) PublishBatch(ctx context.Context, messages []BatchMessage) (int, error) {
	if len(messages) == 0 {
		return 0, nil
	}

	topicMessages := make(map[string][]kafka.Message)
	for _, msg := range messages {
		topicMessages[msg.Subject] = append(topicMessages[msg.Subject], kafka.Message{
			Value: msg.Data,
			Time:  time.Now(),
		})
	}

	successCount := 0
	var lastErr error

	for topic, msgs := range topicMessages {
		writer := b.getOrCreateWriter(topic)
		if err := writer.WriteMessages(ctx, msgs...); err != nil {
			lastErr = err
			continue
		}
		successCount += len(msgs)
	}

	if lastErr != nil && successCount == 0 {
		return 0, fmt.Errorf("failed to publish batch: %w", lastErr)
	}

	return successCount, nil
}

// Subscribe subscribes to a Kafka topic with a consumer group
func (b *KafkaBroker) Subscribe(subject string, handler MessageHandler) error {
	b.mu.Lock()
	if _, exists := b.subscriptions[subject]; exists {
		b.mu.Unlock()
		return fmt.Errorf("already subscribed to topic: %s", subject)
	}
	b.mu.Unlock()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        b.opts.Brokers,
		GroupID:        b.opts.GroupID,
		Topic:          subject,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        1 * time.Second,
		CommitInterval: time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())

	b.mu.Lock()
	b.readers[subject] = reader
	b.subscriptions[subject] = cancel
	b.mu.Unlock()

	go b.consumeMessages(ctx, reader, handler)

	return nil
}

// consumeMessages reads messages from Kafka in a loop. Offsets are
// committed only after the handler succeeds.
func (b *KafkaBroker) consumeMessages(ctx context.Context, reader *kafka.Reader, handler MessageHandler) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			continue
		}

		if err := handler(msg.Value); err != nil {
			continue
		}

		for i := 0; i < b.opts.CommitRetries; i++ {
			if err := reader.CommitMessages(ctx, msg); err == nil {
				break
			}
			if ctx.Err() != nil {
				return
			}
			time.Sleep(b.opts.RetryBackoff)
		}
	}
}

// Unsubscribe unsubscribes from a Kafka topic
func (b *KafkaBroker) Unsubscribe(subject string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cancel, exists := b.subscriptions[subject]
	if !exists {
		return fmt.Errorf("not subscribed to topic: %s", subject)
	}

	cancel()

	if reader, ok := b.readers[subject]; ok {
		_ = reader.Close()
		delete(b.readers, subject)
	}

	delete(b.subscriptions, subject)
	return nil
}

// Close closes all Kafka connections
func (b *KafkaBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var lastErr error

	for subject, cancel := range b.subscriptions {
		cancel()
		if reader, ok := b.readers[subject]; ok {
			if err := reader.Close(); err != nil {
				lastErr = err
			}
		}
		delete(b.subscriptions, subject)
		delete(b.readers, subject)
	}

	for topic, writer := range b.writers {
		if err := writer.Close(); err != nil {
			lastErr = err
		}
		delete(b.writers, topic)
	}

	return lastErr
}
