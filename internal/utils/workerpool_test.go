package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolRunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(3)

	var n atomic.Int32
	for i := 0; i < 20; i++ {
		if err := pool.AddTask(func() { n.Add(1) }); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}
	pool.Wait()

	if got := n.Load(); got != 20 {
		t.Errorf("expected 20 tasks run, got %d", got)
	}
}

func TestWorkerPoolShutdown(t *testing.T) {
	pool := NewWorkerPool(1)

	var n atomic.Int32
	for i := 0; i < 5; i++ {
		_ = pool.AddTask(func() {
			time.Sleep(time.Millisecond)
			n.Add(1)
		})
	}

	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if got := n.Load(); got != 5 {
		t.Errorf("expected queued tasks drained, got %d", got)
	}
	if err := pool.AddTask(func() {}); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
	if err := pool.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown should be a no-op, got %v", err)
	}
}

func TestWorkerPoolShutdownTimeout(t *testing.T) {
	pool := NewWorkerPool(1)
	release := make(chan struct{})
	_ = pool.AddTask(func() { <-release })
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := pool.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
