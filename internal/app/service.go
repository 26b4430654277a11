// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	prefetchqueue "github.com/okian/lineup/internal/adapters/mq/queue"
	workerpool "github.com/okian/lineup/internal/adapters/mq/worker"
	repository "github.com/okian/lineup/internal/adapters/repository"
	"github.com/okian/lineup/internal/adapters/scorer"
	"github.com/okian/lineup/internal/domain/formation"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/scorecache"
	"github.com/okian/lineup/pkg/logger"
	"github.com/okian/lineup/pkg/metrics"
)

// Service implements the API dependencies for the team formation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	cache   scorecache.Cache
	fetcher scorer.Fetcher
	engine  formation.Engine
	queue   prefetchqueue.Queue
	pool    *workerpool.Pool

	// Configuration
	scorerURL        string
	maxRetries       int
	attemptTimeout   time.Duration
	batchConcurrency int
	prefetchWorkers  int
	queueSize        int

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScorerURL sets the external scoring endpoint.
func WithScorerURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.scorerURL = url
		}
	}
}

// WithMaxRetries sets the total attempts per score fetch.
func WithMaxRetries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithAttemptTimeout caps each upstream scoring attempt.
func WithAttemptTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.attemptTimeout = d
		}
	}
}

// WithBatchConcurrency bounds parallel fetches within one batch.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// WithPrefetchWorkers sets the number of background score workers.
func WithPrefetchWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.prefetchWorkers = n
		}
	}
}

// WithQueueSize sets the maximum size of the prefetch queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore injects a pre-built record store. Used in tests.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithFetcher injects a pre-built score fetcher. Used in tests.
func WithFetcher(f scorer.Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		scorerURL:        "http://localhost:9001/api/v1/special-score",
		maxRetries:       5,
		attemptTimeout:   30 * time.Second,
		batchConcurrency: 16,
		prefetchWorkers:  4,
		queueSize:        10000,
		stopCh:           make(chan struct{}),
		logger:           nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting team formation service...")

	// Initialize components not injected via options
	if s.store == nil {
		s.store = repository.NewMemStore()
	}
	if s.cache == nil {
		s.cache = scorecache.NewInMemoryCache()
	}
	if s.fetcher == nil {
		s.fetcher = scorer.New(
			s.scorerURL,
			s.cache,
			scorer.WithMaxRetries(s.maxRetries),
			scorer.WithAttemptTimeout(s.attemptTimeout),
			scorer.WithBatchConcurrency(s.batchConcurrency),
		)
	}
	s.engine = formation.NewBruteForce()
	s.queue = prefetchqueue.NewInMemoryQueue(
		prefetchqueue.WithCapacity(s.queueSize),
	)

	// Create and start the prefetch worker pool
	s.pool = workerpool.NewPool(s.prefetchWorkers, s.queue, s.fetcher, s.store)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "team formation service started",
		logger.Int("prefetchWorkers", s.prefetchWorkers),
		logger.Int("queueSize", s.queueSize),
		logger.String("scorerURL", s.scorerURL),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping team formation service...")

	// Close queue first so workers drain buffered requests
	if q, ok := s.queue.(*prefetchqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	if s.pool != nil {
		_ = s.pool.Shutdown(context.Background())
	}

	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "team formation service stopped")
}

// CreateProject stores a new project.
func (s *Service) CreateProject(ctx context.Context, title string, skills []model.Skill) model.Project {
	return s.store.CreateProject(ctx, title, skills)
}

// GetProject returns a project by id.
func (s *Service) GetProject(ctx context.Context, id int64) (model.Project, error) {
	return s.store.GetProject(ctx, id)
}

// ListProjects returns all projects ordered by id.
func (s *Service) ListProjects(ctx context.Context) []model.Project {
	return s.store.ListProjects(ctx)
}

// UpdateProject replaces a project's title and required skills.
func (s *Service) UpdateProject(ctx context.Context, id int64, title string, skills []model.Skill) (model.Project, error) {
	return s.store.UpdateProject(ctx, id, title, skills)
}

// DeleteProject removes a project by id.
func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	return s.store.DeleteProject(ctx, id)
}

// CreateCandidate stores a new candidate and schedules a background
// score prefetch for it.
func (s *Service) CreateCandidate(ctx context.Context, name string, skills []model.Skill) model.Candidate {
	c := s.store.CreateCandidate(ctx, name, skills)
	s.enqueuePrefetch(ctx, c)
	return c
}

// GetCandidate returns a candidate by id.
func (s *Service) GetCandidate(ctx context.Context, id int64) (model.Candidate, error) {
	return s.store.GetCandidate(ctx, id)
}

// ListCandidates returns all candidates ordered by id.
func (s *Service) ListCandidates(ctx context.Context) []model.Candidate {
	return s.store.ListCandidates(ctx)
}

// UpdateCandidate replaces a candidate's name and skills. The stored
// score is preserved, but a prefetch is scheduled since the skill set
// may score differently.
func (s *Service) UpdateCandidate(ctx context.Context, id int64, name string, skills []model.Skill) (model.Candidate, error) {
	c, err := s.store.UpdateCandidate(ctx, id, name, skills)
	if err != nil {
		return model.Candidate{}, err
	}
	s.enqueuePrefetch(ctx, c)
	return c, nil
}

// DeleteCandidate removes a candidate by id.
func (s *Service) DeleteCandidate(ctx context.Context, id int64) error {
	return s.store.DeleteCandidate(ctx, id)
}

// EnsureScore returns the candidate with its score resolved if possible.
//
// A candidate that already has a score is returned as-is. Otherwise the
// external scorer is consulted synchronously; if it cannot produce a
// score the candidate is returned without one. Only unknown ids are
// errors.
func (s *Service) EnsureScore(ctx context.Context, id int64) (model.Candidate, error) {
	c, err := s.store.GetCandidate(ctx, id)
	if err != nil {
		return model.Candidate{}, err
	}
	if c.Score != nil {
		return c, nil
	}

	score, ok := s.fetcher.FetchScore(ctx, strconv.FormatInt(c.ID, 10), c.Skills)
	if !ok {
		return c, nil
	}

	updated, err := s.store.UpdateCandidateScore(ctx, c.ID, score)
	if err != nil {
		return model.Candidate{}, err
	}
	return updated, nil
}

// FormTeam assembles the optimal team for a project from a candidate pool.
//
// Unknown candidate ids are dropped from the pool; the call fails only
// when the project is unknown or the entire pool is unknown. Candidates
// missing a score get one batch-resolved first, and resolved scores are
// persisted, but scoring failures never block formation.
func (s *Service) FormTeam(ctx context.Context, projectID int64, candidateIDs []int64, teamSize int) (model.TeamResult, error) {
	start := time.Now()

	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return model.TeamResult{}, err
	}

	candidates := s.store.GetCandidatesByIDs(ctx, candidateIDs)
	if len(candidates) == 0 {
		return model.TeamResult{}, repository.ErrCandidateNotFound
	}

	candidates = s.resolveMissingScores(ctx, candidates)

	result := s.engine.FormOptimalTeam(project, candidates, teamSize)

	metrics.RecordFormationDuration(float64(time.Since(start).Milliseconds()))
	s.logger.Info(ctx, "team formed",
		logger.Int64("projectID", projectID),
		logger.Int("poolSize", len(candidates)),
		logger.Int("teamSize", len(result.Members)),
		logger.Float64("coverage", result.Coverage),
	)

	return result, nil
}

// resolveMissingScores batch-fetches scores for candidates that lack one
// and persists whatever the upstream produced.
func (s *Service) resolveMissingScores(ctx context.Context, candidates []model.Candidate) []model.Candidate {
	var entries []scorer.BatchEntry
	for _, c := range candidates {
		if c.Score == nil {
			entries = append(entries, scorer.BatchEntry{
				CandidateID: strconv.FormatInt(c.ID, 10),
				Skills:      c.Skills,
			})
		}
	}
	if len(entries) == 0 {
		return candidates
	}

	scores := s.fetcher.FetchScoresBatch(ctx, entries)

	for i, c := range candidates {
		if c.Score != nil {
			continue
		}
		score, ok := scores[strconv.FormatInt(c.ID, 10)]
		if !ok {
			continue
		}
		updated, err := s.store.UpdateCandidateScore(ctx, c.ID, score)
		if err != nil {
			s.logger.Warn(ctx, "could not persist resolved score",
				logger.Int64("candidateID", c.ID),
				logger.Error(err),
			)
			continue
		}
		candidates[i] = updated
	}

	return candidates
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"prefetchWorkers": s.prefetchWorkers,
		"queueSize":       s.queueSize,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		projects, candidates := s.store.Counts(ctx)

		stats["queueLength"] = queueLen
		stats["totalProjects"] = projects
		stats["totalCandidates"] = candidates
		stats["scoreCacheSize"] = s.cache.Size()

		// Update metrics
		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateProjectsTotal(projects)
		metrics.UpdateCandidatesTotal(candidates)
		metrics.UpdateScoreCacheSize(s.cache.Size())
	}

	return stats
}

// enqueuePrefetch schedules a background score fetch. Drops are fine;
// the on-demand path covers candidates the queue never got to.
func (s *Service) enqueuePrefetch(ctx context.Context, c model.Candidate) {
	if s.queue == nil {
		return
	}
	if !s.queue.Enqueue(ctx, prefetchqueue.Request{CandidateID: c.ID, Skills: c.Skills}) {
		s.logger.Debug(ctx, "prefetch queue full, dropping request",
			logger.Int64("candidateID", c.ID),
		)
	}
}
