package dispatch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMemoryBroker_Publish(t *testing.T) {
	b := NewMemoryBroker()
	defer func() { _ = b.Close() }()

	ctx := context.Background()
	err := b.Publish(ctx, "alerts.generated", []byte("test message"))
	if err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	if count := b.PendingCount("alerts.generated"); count != 1 {
		t.Errorf("Expected 1 pending message, got %d", count)
	}
}

func TestMemoryBroker_Publish_DataCopy(t *testing.T) {
	b := NewMemoryBroker()
	defer func() { _ = b.Close() }()

	ctx := context.Background()
	original := []byte("original")
	if err := b.Publish(ctx, "test", original); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	// Caller mutates its buffer after publishing
	original[0] = 'X'

	var received []byte
	var wg sync.WaitGroup
	wg.Add(1)

	err := b.Subscribe("test", func(data []byte) error {
		received = data
		wg.Done()
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	waitWithTimeout(t, &wg, 2*time.Second)

	if string(received) != "original" {
		t.Errorf("Expected 'original', got '%s'", received)
	}
}

func TestMemoryBroker_PublishSubscribe(t *testing.T) {
	b := NewMemoryBroker()
	defer func() { _ = b.Close() }()

	var received []byte
	var wg sync.WaitGroup
	wg.Add(1)

	err := b.Subscribe("alerts.generated", func(data []byte) error {
		received = data
		wg.Done()
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	ctx := context.Background()
	if err := b.Publish(ctx, "alerts.generated", []byte("hello")); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	waitWithTimeout(t, &wg, 2*time.Second)

	if string(received) != "hello" {
		t.Errorf("Expected 'hello', got '%s'", received)
	}
}

func TestMemoryBroker_PublishBatch(t *testing.T) {
	b := NewMemoryBroker()
	defer func() { _ = b.Close() }()

	messages := []BatchMessage{
		{Subject: "batch.1", Data: []byte("msg1")},
		{Subject: "batch.2", Data: []byte("msg2")},
		{Subject: "batch.1", Data: []byte("msg3")},
	}

	ctx := context.Background()
	count, err := b.PublishBatch(ctx, messages)
	if err != nil {
		t.Fatalf("Failed to publish batch: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 messages published, got %d", count)
	}

	if b.PendingCount("batch.1") != 2 {
		t.Errorf("Expected 2 messages in batch.1, got %d", b.PendingCount("batch.1"))
	}
	if b.PendingCount("batch.2") != 1 {
		t.Errorf("Expected 1 message in batch.2, got %d", b.PendingCount("batch.2"))
	}
}

func TestMemoryBroker_PublishBatch_Empty(t *testing.T) {
	b := NewMemoryBroker()
	defer func() { _ = b.Close() }()

	count, err := b.PublishBatch(context.Background(), []BatchMessage{})
	if err != nil {
		t.Fatalf("Empty batch should not error: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 messages, got %d", count)
	}
}

func TestMemoryBroker_DoubleSubscribe(t *testing.T) {
	b := NewMemoryBroker()
	defer func() { _ = b.Close() }()

	handler := func(data []byte) error { return nil }

	if err := b.Subscribe("test", handler); err != nil {
		t.Fatalf("First subscribe failed: %v", err)
	}

	if err := b.Subscribe("test", handler); err == nil {
		t.Fatal("Expected error for double subscribe")
	}
}

func TestMemoryBroker_Unsubscribe(t *testing.T) {
	b := NewMemoryBroker()
	defer func() { _ = b.Close() }()

	if err := b.Subscribe("test", func(data []byte) error { return nil }); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	if err := b.Unsubscribe("test"); err != nil {
		t.Fatalf("Failed to unsubscribe: %v", err)
	}

	// Double unsubscribe should error
	if err := b.Unsubscribe("test"); err == nil {
		t.Fatal("Expected error for double unsubscribe")
	}
}

func TestMemoryBroker_Unsubscribe_NotSubscribed(t *testing.T) {
	b := NewMemoryBroker()
	defer func() { _ = b.Close() }()

	if err := b.Unsubscribe("not.subscribed"); err == nil {
		t.Fatal("Expected error for unsubscribing non-existent subject")
	}
}

func TestMemoryBroker_HandlerError(t *testing.T) {
	b := NewMemoryBroker()
	defer func() { _ = b.Close() }()

	var callCount int32

	err := b.Subscribe("test", func(data []byte) error {
		atomic.AddInt32(&callCount, 1)
		return fmt.Errorf("handler error")
	})
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_ = b.Publish(ctx, "test", []byte("msg"))
	}

	waitFor(t, func() bool {
		return atomic.LoadInt32(&callCount) >= 5
	}, 2*time.Second)
}

func TestMemoryBroker_ChannelCapacity(t *testing.T) {
	b := NewMemoryBroker()
	defer func() { _ = b.Close() }()

	ctx := context.Background()
	subject := "capacity.test"

	for i := 0; i < memoryBufferSize; i++ {
		if err := b.Publish(ctx, subject, []byte("msg")); err != nil {
			t.Fatalf("Failed to publish message %d: %v", i, err)
		}
	}

	if err := b.Publish(ctx, subject, []byte("overflow")); err == nil {
		t.Fatal("Expected error when channel is full")
	}
}

func TestMemoryBroker_Close(t *testing.T) {
	b := NewMemoryBroker()

	_ = b.Subscribe("test.1", func(data []byte) error { return nil })
	_ = b.Subscribe("test.2", func(data []byte) error { return nil })

	ctx := context.Background()
	_ = b.Publish(ctx, "test.1", []byte("msg"))
	_ = b.Publish(ctx, "test.3", []byte("msg"))

	if err := b.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	if len(b.subscriptions) != 0 {
		t.Error("Subscriptions should be empty after close")
	}
	if len(b.channels) != 0 {
		t.Error("Channels should be empty after close")
	}
}

func TestMemoryBroker_ConcurrentPublish(t *testing.T) {
	b := NewMemoryBroker()
	defer func() { _ = b.Close() }()

	ctx := context.Background()
	goroutines := 10
	messagesPerGoroutine := 50

	var wg sync.WaitGroup
	var errCount int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < messagesPerGoroutine; j++ {
				if err := b.Publish(ctx, "concurrent", []byte(fmt.Sprintf("%d-%d", id, j))); err != nil {
					atomic.AddInt32(&errCount, 1)
				}
			}
		}(i)
	}

	wg.Wait()

	if errCount > 0 {
		t.Errorf("Had %d errors during concurrent publish", errCount)
	}

	expected := goroutines * messagesPerGoroutine
	if b.PendingCount("concurrent") != expected {
		t.Errorf("Expected %d pending, got %d", expected, b.PendingCount("concurrent"))
	}
}

// Helper functions
func waitWithTimeout(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("Timeout waiting for WaitGroup")
	}
}

func waitFor(t *testing.T, condition func() bool, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Timeout waiting for condition")
}
