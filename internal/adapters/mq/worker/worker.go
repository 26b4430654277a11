// Package worker implements the background score prefetch pool.
//
// Workers drain the prefetch queue, resolve scores through the scoring
// client and persist them. A prefetch that fails to score is not an
// error: the formation path re-resolves missing scores on demand.
package worker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/okian/lineup/internal/adapters/mq/queue"
	"github.com/okian/lineup/internal/adapters/repository"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/pkg/logger"
	"github.com/okian/lineup/pkg/metrics"
)

// Default worker configuration constants.
const (
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Request is what workers read off the queue.
type Request = queue.Request

// Fetcher resolves a score for one candidate, reporting absence on
// exhaustion.
type Fetcher interface {
	FetchScore(ctx context.Context, candidateID string, skills []model.Skill) (float64, bool)
}

// Updater persists a fetched score.
type Updater interface {
	UpdateCandidateScore(ctx context.Context, id int64, score float64) (model.Candidate, error)
}

// Queue defines how workers receive requests.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Request
}

// Worker processes prefetch requests until stopped.
type Worker struct {
	queue   Queue
	fetcher Fetcher
	updater Updater
	name    string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Worker.
type Option func(*Worker)

// WithName sets the worker name used in logs.
func WithName(name string) Option {
	return func(w *Worker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWorker creates a new prefetch worker.
func NewWorker(q Queue, fetcher Fetcher, updater Updater, opts ...Option) *Worker {
	w := &Worker{
		queue:    q,
		fetcher:  fetcher,
		updater:  updater,
		name:     "prefetch",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}

	return w
}

// Run starts the worker loop until ctx is canceled or the queue closes.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	requests := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case r, ok := <-requests:
			if !ok {
				return
			}
			w.processRequest(ctx, r)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processRequest resolves and persists one candidate score.
func (w *Worker) processRequest(ctx context.Context, r Request) {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	score, ok := w.fetcher.FetchScore(ctx, strconv.FormatInt(r.CandidateID, 10), r.Skills)
	if !ok {
		// Absence after retries; the on-demand path will try again.
		w.logger.Debug(ctx, "prefetch produced no score",
			logger.Int64("candidateID", r.CandidateID),
		)
		return
	}

	if _, err := w.updater.UpdateCandidateScore(ctx, r.CandidateID, score); err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			// Candidate deleted while the prefetch was in flight.
			w.logger.Debug(ctx, "candidate gone before score landed",
				logger.Int64("candidateID", r.CandidateID),
			)
			return
		}
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "store_error")
		w.logger.Error(ctx, "failed to persist prefetched score",
			logger.Int64("candidateID", r.CandidateID),
			logger.Error(err),
		)
		return
	}

	metrics.RecordPrefetchCompleted()
	w.logger.Debug(ctx, "prefetched candidate score",
		logger.Int64("candidateID", r.CandidateID),
		logger.Float64("score", score),
	)
}

// Pool manages multiple prefetch workers.
type Pool struct {
	workers []*Worker
	queue   Queue

	// Shutdown control
	shutdown chan struct{}

	// Logging
	logger logger.Logger
}

// NewPool creates a pool of workerCount prefetch workers.
func NewPool(workerCount int, q Queue, fetcher Fetcher, updater Updater) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}

	pool := &Pool{
		workers:  make([]*Worker, workerCount),
		queue:    q,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("prefetch-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewWorker(
			q,
			fetcher,
			updater,
			WithName("prefetch-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerActiveCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil {
			p.logger.Warn(ctx, "worker stop timed out", logger.Int("worker_id", i))
		}
	}
	metrics.UpdateWorkerActiveCount(0)
}

// Shutdown closes the queue and waits for all workers to drain.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
