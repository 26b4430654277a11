package worker

import (
	"context"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/okian/lineup/internal/adapters/mq/queue"
	"github.com/okian/lineup/internal/adapters/repository"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type stubFetcher struct {
	mu     sync.Mutex
	scores map[string]float64
	calls  int
}

func (f *stubFetcher) FetchScore(_ context.Context, candidateID string, _ []model.Skill) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	score, ok := f.scores[candidateID]
	return score, ok
}

type stubUpdater struct {
	mu      sync.Mutex
	scores  map[int64]float64
	missing map[int64]bool
}

func newStubUpdater() *stubUpdater {
	return &stubUpdater{scores: make(map[int64]float64), missing: make(map[int64]bool)}
}

func (u *stubUpdater) UpdateCandidateScore(_ context.Context, id int64, score float64) (model.Candidate, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.missing[id] {
		return model.Candidate{}, repository.ErrCandidateNotFound
	}
	u.scores[id] = score
	return model.Candidate{ID: id, Score: &score}, nil
}

func (u *stubUpdater) get(id int64) (float64, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.scores[id]
	return s, ok
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}

func TestWorker_PersistsFetchedScore(t *testing.T) {
	q := queue.NewInMemoryQueue(queue.WithCapacity(10))
	fetcher := &stubFetcher{scores: map[string]float64{"1": 87.5}}
	updater := newStubUpdater()

	w := NewWorker(q, fetcher, updater, WithName("test-worker"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if !q.Enqueue(ctx, queue.Request{CandidateID: 1, Skills: []model.Skill{{Name: "Go", ExpertiseLevel: 8}}}) {
		t.Fatal("expected enqueue to succeed")
	}

	waitFor(t, func() bool {
		_, ok := updater.get(1)
		return ok
	})

	if score, _ := updater.get(1); score != 87.5 {
		t.Errorf("expected persisted score 87.5, got %v", score)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	if err := w.Shutdown(shutdownCtx); err != nil {
		t.Errorf("expected clean shutdown, got: %v", err)
	}
}

func TestWorker_UnresolvedScoreIsDropped(t *testing.T) {
	q := queue.NewInMemoryQueue(queue.WithCapacity(10))
	fetcher := &stubFetcher{scores: map[string]float64{}}
	updater := newStubUpdater()

	w := NewWorker(q, fetcher, updater)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	q.Enqueue(ctx, queue.Request{CandidateID: 7})

	waitFor(t, func() bool {
		fetcher.mu.Lock()
		defer fetcher.mu.Unlock()
		return fetcher.calls >= 1
	})

	if _, ok := updater.get(7); ok {
		t.Error("expected no score persisted for unresolved candidate")
	}
}

func TestWorker_DeletedCandidateIsIgnored(t *testing.T) {
	q := queue.NewInMemoryQueue(queue.WithCapacity(10))
	fetcher := &stubFetcher{scores: map[string]float64{"3": 50}}
	updater := newStubUpdater()
	updater.missing[3] = true

	w := NewWorker(q, fetcher, updater)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	q.Enqueue(ctx, queue.Request{CandidateID: 3})

	waitFor(t, func() bool {
		fetcher.mu.Lock()
		defer fetcher.mu.Unlock()
		return fetcher.calls >= 1
	})

	if _, ok := updater.get(3); ok {
		t.Error("expected no persisted score for deleted candidate")
	}
}

func TestPool_ProcessesAllRequests(t *testing.T) {
	q := queue.NewInMemoryQueue(queue.WithCapacity(100))
	fetcher := &stubFetcher{scores: map[string]float64{}}
	for i := 1; i <= 20; i++ {
		fetcher.scores[strconv.Itoa(i)] = float64(i)
	}
	updater := newStubUpdater()

	pool := NewPool(4, q, fetcher, updater)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	for i := int64(1); i <= 20; i++ {
		if !q.Enqueue(ctx, queue.Request{CandidateID: i}) {
			t.Fatalf("expected enqueue of candidate %d to succeed", i)
		}
	}

	waitFor(t, func() bool {
		updater.mu.Lock()
		defer updater.mu.Unlock()
		return len(updater.scores) == 20
	})

	for i := int64(1); i <= 20; i++ {
		if score, ok := updater.get(i); !ok || score != float64(i) {
			t.Errorf("expected candidate %d to have score %d, got %v (ok=%v)", i, i, score, ok)
		}
	}

	if err := pool.Shutdown(context.Background()); err != nil {
		t.Errorf("expected clean pool shutdown, got: %v", err)
	}
}

func TestPool_ShutdownDrainsQueue(t *testing.T) {
	q := queue.NewInMemoryQueue(queue.WithCapacity(100))
	fetcher := &stubFetcher{scores: map[string]float64{"1": 10, "2": 20, "3": 30}}
	updater := newStubUpdater()

	pool := NewPool(2, q, fetcher, updater)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		q.Enqueue(ctx, queue.Request{CandidateID: i})
	}

	pool.Start(ctx)

	if err := pool.Shutdown(ctx); err != nil {
		t.Fatalf("expected clean shutdown, got: %v", err)
	}

	updater.mu.Lock()
	defer updater.mu.Unlock()
	if len(updater.scores) != 3 {
		t.Errorf("expected all 3 buffered requests drained, got %d", len(updater.scores))
	}
}
