package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/okian/lineup/internal/domain/model"
)

func req(id int64) Request {
	return Request{CandidateID: id, Skills: []model.Skill{{Name: "Go", ExpertiseLevel: 5}}}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if !q.Enqueue(ctx, req(1)) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue(ctx)
	if got.CandidateID != 1 {
		t.Errorf("expected candidate 1, got %d", got.CandidateID)
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, req(1)) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, req(2)) {
		t.Error("expected enqueue to succeed")
	}

	// Full queue drops the request instead of blocking
	if q.Enqueue(ctx, req(3)) {
		t.Error("expected enqueue to fail when full")
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1000))
	ctx := context.Background()
	producers := 8
	perProducer := 100

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(base int64) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				for !q.Enqueue(ctx, req(base*1000+int64(j))) {
					time.Sleep(time.Millisecond)
				}
			}
		}(int64(i))
	}

	var consumed sync.WaitGroup
	consumed.Add(producers * perProducer)
	for i := 0; i < 4; i++ {
		go func() {
			for range q.Dequeue(ctx) {
				consumed.Done()
			}
		}()
	}

	wg.Wait()
	consumed.Wait()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected final length 0, got %d", l)
	}
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	if !q.Enqueue(ctx, req(1)) {
		t.Error("expected enqueue to succeed")
	}

	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}

	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}

	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}

	if q.Enqueue(ctx, req(2)) {
		t.Error("expected enqueue to fail after closing")
	}

	// Buffered request drains, then the dequeue channel closes
	out := q.Dequeue(ctx)
	select {
	case got, ok := <-out:
		if !ok || got.CandidateID != 1 {
			t.Errorf("expected buffered request 1, got %+v (ok=%v)", got, ok)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected to drain buffered request")
	}

	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected dequeue channel to close after drain")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("expected dequeue channel to close within timeout")
	}

	if err := q.Close(); err != nil {
		t.Errorf("expected second close to succeed, got error: %v", err)
	}
}
