package dispatch

import (
	"context"
	"fmt"
	"sync"
)

// memoryBufferSize is the per-subject channel capacity. Alert batches
// are low volume, so a full channel means nobody is consuming.
const memoryBufferSize = 1024

// MemoryBroker implements Broker using in-process channels. It is used
// in tests and in development setups that have no external broker.
type MemoryBroker struct {
	channels      map[string]chan []byte
	subscriptions map[string]context.CancelFunc
	mu            sync.RWMutex
}

// newMemoryBroker creates a new in-process broker instance
func newMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		channels:      make(map[string]chan []byte),
		subscriptions: make(map[string]context.CancelFunc),
	}
}

// getOrCreateChannel returns existing channel or creates new one
func (b *MemoryBroker) getOrCreateChannel(subject string) chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, exists := b.channels[subject]; exists {
		return ch
	}

	ch := make(chan []byte, memoryBufferSize)
	b.channels[subject] = ch
	return ch
}

// Publish publishes a message to an in-process channel
func (b *MemoryBroker) Publish(ctx context.Context, subject string, data []byte) error {
	ch := b.getOrCreateChannel(subject)

	// Copy so the caller can reuse its buffer after Publish returns
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	select {
	case ch <- dataCopy:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("channel full for subject: %s", subject)
	}
}

// PublishBatch publishes multiple messages
func (b *MemoryBroker) PublishBatch(ctx context.Context, messages []BatchMessage) (int, error) {
	successCount := 0

	for _, msg := range messages {
		if err := b.Publish(ctx, msg.Subject, msg.Data); err != nil {
			continue
		}
		successCount++
	}

	return successCount, nil
}

// Subscribe subscribes to an in-process channel
func (b *MemoryBroker) Subscribe(subject string, handler MessageHandler) error {
	b.mu.Lock()
	if _, exists := b.subscriptions[subject]; exists {
		b.mu.Unlock()
		return fmt.Errorf("already subscribed to subject: %s", subject)
	}
	b.mu.Unlock()

	ch := b.getOrCreateChannel(subject)
	ctx, cancel := context.WithCancel(context.Background())

	b.mu.Lock()
	b.subscriptions[subject] = cancel
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case data := <-ch:
				// Handler errors are not retried in-process
				_ = handler(data)
			}
		}
	}()

	return nil
}

// Unsubscribe unsubscribes from a channel
func (b *MemoryBroker) Unsubscribe(subject string) error {
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

// Close closes all channels and subscriptions
func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subject, cancel := range b.subscriptions {
		cancel()
		delete(b.subscriptions, subject)
	}

	for subject, ch := range b.channels {
		close(ch)
		delete(b.channels, subject)
	}

	return nil
}

// PendingCount returns the number of undelivered messages for a subject
func (b *MemoryBroker) PendingCount(subject string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, exists := b.channels[subject]; exists {
		return len(ch)
	}
	return 0
}
