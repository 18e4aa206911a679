package dispatch

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockwise/stockwise/internal/utils"
)

// RedisOptions represents Redis Streams connection options
type RedisOptions struct {
	URL      string // Redis URL (e.g., redis://localhost:6379)
	Password string // Optional password
	DB       int    // Database number (default: 0)
	Stream   string // Stream prefix (default: "stockwise")
	Group    string // Consumer group name (default: "stockwise-group")
	Consumer string // Consumer name (default: hostname)
}

// RedisBroker implements Broker using Redis Streams
type RedisBroker struct {
	client        *redis.Client
	opts          RedisOptions
	subscriptions map[string]context.CancelFunc
	mu            sync.RWMutex
}

// newRedisBroker creates a new Redis Streams broker instance
func newRedisBroker(opts RedisOptions) (*RedisBroker, error) {
	clientOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		// Not a URL, treat it as a plain host:port address
		clientOpts = &redis.Options{
			Addr:     opts.URL,
			Password: opts.Password,
			DB:       opts.DB,
		}
	}

	client := redis.NewClient(clientOpts)

	ctx, cancel := context.WithTimeout(context.Background(), utils.BrokerConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if opts.Stream == "" {
		opts.Stream = "stockwise"
	}
	if opts.Group == "" {
		opts.Group = "stockwise-group"
	}
	if opts.Consumer == "" {
		hostname, _ := os.Hostname()
		if hostname == "" {
			hostname = "consumer-1"
		}
		opts.Consumer = hostname
	}

	return &RedisBroker{
		client:        client,
		opts:          opts,
		subscriptions: make(map[string]context.CancelFunc),
	}, nil
}

// streamName converts a subject to a Redis stream name
func (b *RedisBroker) streamName(subject string) string {
	return fmt.Sprintf("%s:%s", b.opts.Stream, subject)
}

// Publish publishes a message to a Redis stream
func (b *RedisBroker) Publish(ctx context.Context, subject string, data []byte) error {
	stream := b.streamName(subject)

	_, err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		ID:     "*",
		Values: map[string]interface{}{
			"data": data,
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to Redis stream %s: %w", stream, err)
	}

	return nil
}

// PublishBatch publishes multiple messages using a Redis pipeline
func (b *RedisBroker) PublishBatch(ctx context.Context, messages []BatchMessage) (int, error) {
	if len(messages) == 0 {
		return 0, nil
	}

	pipe := b.client.Pipeline()

	for _, msg := range messages {
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: b.streamName(msg.Subject),
			ID:     "*",
			Values: map[string]interface{}{
				"data": msg.Data,
			},
		})
	}

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to execute batch publish: %w", err)
	}

	successCount := 0
	for _, cmd := range cmds {
		if cmd.Err() == nil {
			successCount++
		}
	}

	return successCount, nil
}

// Subscribe subscribes to a Redis stream with a consumer group
func (b *RedisBroker) Subscribe(subject string, handler MessageHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscriptions[subject]; exists {
		return fmt.Errorf("already subscribed to subject: %s", subject)
	}

	stream := b.streamName(subject)
	ctx, cancel := context.WithCancel(context.Background())

	err := b.client.XGroupCreateMkStream(ctx, stream, b.opts.Group, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		cancel()
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	go b.readStream(ctx, stream, handler)

	b.subscriptions[subject] = cancel
	return nil
}

// readStream continuously reads messages from a Redis stream. Messages
// are acknowledged only after the handler succeeds, so failed handlers
// see the message again.
func (b *RedisBroker) readStream(ctx context.Context, stream string, handler MessageHandler) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		streams, err := b.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    b.opts.Group,
			Consumer: b.opts.Consumer,
			Streams:  []string{stream, ">"},
			Count:    100,
			Block:    5 * time.Second,
		}).Result()
		if err != nil {
			continue
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				data, ok := msg.Values["data"].(string)
				if !ok {
					// ACK malformed entries so they do not loop forever
					b.client.XAck(ctx, stream, b.opts.Group, msg.ID)
					continue
				}

				if err := handler([]byte(data)); err != nil {
					continue
				}

				b.client.XAck(ctx, stream, b.opts.Group, msg.ID)
			}
		}
	}
}

// Unsubscribe unsubscribes from a subject
func (b *RedisBroker) Unsubscribe(subject string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cancel, exists := b.subscriptions[subject]
	if !exists {
		return fmt.Errorf("not subscribed to subject: %s", subject)
	}

	cancel()
	delete(b.subscriptions, subject)
	return nil
}

// Close closes the Redis connection
func (b *RedisBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subject, cancel := range b.subscriptions {
		cancel()
		delete(b.subscriptions, subject)
	}

	return b.client.Close()
}
