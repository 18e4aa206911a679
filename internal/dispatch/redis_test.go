package dispatch

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// Test helper: check if Redis is available
func isRedisAvailable() bool {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return client.Ping(ctx).Err() == nil
}

// Test helper: get Redis URL from env or default
func getRedisURL() string {
	if url := os.Getenv("REDIS_URL"); url != "" {
		return url
	}
	return "redis://localhost:6379"
}

// Test helper: cleanup Redis stream
func cleanupRedisStream(t *testing.T, client *redis.Client, stream string) {
	ctx := context.Background()
	client.Del(ctx, stream)
}

func TestNewRedisBroker(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	b, err := NewRedisBroker(RedisOptions{
		URL:    getRedisURL(),
		Stream: "test-stockwise",
		Group:  "test-group",
	})
	if err != nil {
		t.Fatalf("Failed to create Redis broker: %v", err)
	}
	defer func() { _ = b.Close() }()

	if b.client == nil {
		t.Fatal("Redis client should not be nil")
	}
}

func TestNewRedisBroker_UnreachableAddress(t *testing.T) {
	_, err := NewRedisBroker(RedisOptions{
		URL: "invalid-redis-host:9999",
	})
	if err == nil {
		t.Fatal("Expected error for unreachable Redis address")
	}
}

func TestNewRedisBroker_Defaults(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	// Leave Stream, Group, Consumer empty to test defaults
	b, err := NewRedisBroker(RedisOptions{URL: getRedisURL()})
	if err != nil {
		t.Fatalf("Failed to create Redis broker: %v", err)
	}
	defer func() { _ = b.Close() }()

	if b.opts.Stream != "stockwise" {
		t.Errorf("Expected default stream 'stockwise', got '%s'", b.opts.Stream)
	}
	if b.opts.Group != "stockwise-group" {
		t.Errorf("Expected default group 'stockwise-group', got '%s'", b.opts.Group)
	}
	if b.opts.Consumer == "" {
		t.Error("Consumer should have a default value")
	}
}

func TestRedisBroker_Publish(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	b, err := NewRedisBroker(RedisOptions{
		URL:    getRedisURL(),
		Stream: "test-publish",
	})
	if err != nil {
		t.Fatalf("Failed to create Redis broker: %v", err)
	}
	defer func() { _ = b.Close() }()

	subject := "alerts.test"
	defer cleanupRedisStream(t, b.client, b.streamName(subject))

	ctx := context.Background()
	if err := b.Publish(ctx, subject, []byte("alert batch payload")); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	msgs, err := b.client.XRange(ctx, b.streamName(subject), "-", "+").Result()
	if err != nil {
		t.Fatalf("Failed to read stream: %v", err)
	}
	if len(msgs) != 1 {
		t.Errorf("Expected 1 message in stream, got %d", len(msgs))
	}
}

func TestRedisBroker_PublishBatch(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	b, err := NewRedisBroker(RedisOptions{
		URL:    getRedisURL(),
		Stream: "test-batch",
	})
	if err != nil {
		t.Fatalf("Failed to create Redis broker: %v", err)
	}
	defer func() { _ = b.Close() }()

	defer cleanupRedisStream(t, b.client, b.streamName("batch.1"))
	defer cleanupRedisStream(t, b.client, b.streamName("batch.2"))

	messages := []BatchMessage{
		{Subject: "batch.1", Data: []byte("msg1")},
		{Subject: "batch.1", Data: []byte("msg2")},
		{Subject: "batch.2", Data: []byte("msg3")},
	}

	count, err := b.PublishBatch(context.Background(), messages)
	if err != nil {
		t.Fatalf("Failed to batch publish: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 messages published, got %d", count)
	}
}

func TestRedisBroker_PublishBatch_Empty(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	b, err := NewRedisBroker(RedisOptions{
		URL:    getRedisURL(),
		Stream: "test-empty-batch",
	})
	if err != nil {
		t.Fatalf("Failed to create Redis broker: %v", err)
	}
	defer func() { _ = b.Close() }()

	count, err := b.PublishBatch(context.Background(), []BatchMessage{})
	if err != nil {
		t.Fatalf("Empty batch should not error: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 messages published, got %d", count)
	}
}

func TestRedisBroker_Subscribe(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	b, err := NewRedisBroker(RedisOptions{
		URL:      getRedisURL(),
		Stream:   "test-subscribe",
		Group:    fmt.Sprintf("test-group-%d", time.Now().UnixNano()),
		Consumer: "test-consumer",
	})
	if err != nil {
		t.Fatalf("Failed to create Redis broker: %v", err)
	}
	defer func() { _ = b.Close() }()

	subject := "sub.test"
	defer cleanupRedisStream(t, b.client, b.streamName(subject))

	var received []byte
	var wg sync.WaitGroup
	wg.Add(1)

	err = b.Subscribe(subject, func(data []byte) error {
		received = data
		wg.Done()
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if err := b.Publish(context.Background(), subject, []byte("hello redis")); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	waitWithTimeout(t, &wg, 10*time.Second)

	if string(received) != "hello redis" {
		t.Errorf("Expected 'hello redis', got '%s'", received)
	}
}

func TestRedisBroker_Subscribe_MultipleMessages(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	b, err := NewRedisBroker(RedisOptions{
		URL:      getRedisURL(),
		Stream:   "test-multi",
		Group:    fmt.Sprintf("test-group-%d", time.Now().UnixNano()),
		Consumer: "test-consumer",
	})
	if err != nil {
		t.Fatalf("Failed to create Redis broker: %v", err)
	}
	defer func() { _ = b.Close() }()

	subject := "multi.test"
	defer cleanupRedisStream(t, b.client, b.streamName(subject))

	var messageCount int32
	expectedCount := 10

	err = b.Subscribe(subject, func(data []byte) error {
		atomic.AddInt32(&messageCount, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	ctx := context.Background()
	for i := 0; i < expectedCount; i++ {
		if err := b.Publish(ctx, subject, []byte(fmt.Sprintf("msg-%d", i))); err != nil {
			t.Fatalf("Failed to publish message %d: %v", i, err)
		}
	}

	waitFor(t, func() bool {
		return int(atomic.LoadInt32(&messageCount)) >= expectedCount
	}, 15*time.Second)
}

func TestRedisBroker_DoubleSubscribe(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	b, err := NewRedisBroker(RedisOptions{
		URL:    getRedisURL(),
		Stream: "test-double-sub",
		Group:  fmt.Sprintf("test-group-%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatalf("Failed to create Redis broker: %v", err)
	}
	defer func() { _ = b.Close() }()

	subject := "double.sub"
	handler := func(data []byte) error { return nil }

	if err := b.Subscribe(subject, handler); err != nil {
		t.Fatalf("First subscribe failed: %v", err)
	}

	if err := b.Subscribe(subject, handler); err == nil {
		t.Fatal("Expected error for double subscribe")
	}
}

func TestRedisBroker_Unsubscribe(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	b, err := NewRedisBroker(RedisOptions{
		URL:    getRedisURL(),
		Stream: "test-unsub",
		Group:  fmt.Sprintf("test-group-%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatalf("Failed to create Redis broker: %v", err)
	}
	defer func() { _ = b.Close() }()

	subject := "unsub.test"

	if err := b.Subscribe(subject, func(data []byte) error { return nil }); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	if err := b.Unsubscribe(subject); err != nil {
		t.Fatalf("Failed to unsubscribe: %v", err)
	}

	if err := b.Unsubscribe(subject); err == nil {
		t.Fatal("Expected error for double unsubscribe")
	}
}

func TestRedisBroker_Close(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	b, err := NewRedisBroker(RedisOptions{
		URL:    getRedisURL(),
		Stream: "test-close",
		Group:  fmt.Sprintf("test-group-%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatalf("Failed to create Redis broker: %v", err)
	}

	if err := b.Subscribe("close.test", func(data []byte) error { return nil }); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	if len(b.subscriptions) != 0 {
		t.Error("Subscriptions should be empty after close")
	}
}

func TestRedisBroker_StreamName(t *testing.T) {
	b := &RedisBroker{
		opts: RedisOptions{Stream: "myprefix"},
	}

	tests := []struct {
		subject  string
		expected string
	}{
		{"test", "myprefix:test"},
		{"alerts.generated", "myprefix:alerts.generated"},
		{"a.b.c", "myprefix:a.b.c"},
	}

	for _, tt := range tests {
		if got := b.streamName(tt.subject); got != tt.expected {
			t.Errorf("streamName(%s) = %s, expected %s", tt.subject, got, tt.expected)
		}
	}
}
