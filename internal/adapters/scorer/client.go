// Package scorer implements the resilient client for the external scoring
// service.
//
// The upstream is intermittently failing by design. Every failure mode is
// recovered locally: transport errors, non-2xx statuses and failures the
// upstream itself reports are logged, retried with exponential backoff and,
// after exhaustion, reported by absence rather than by error. Successful
// scores are cached under a fingerprint of the request so identical inputs
// never reach the network twice.
package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/scorecache"
	"github.com/okian/lineup/pkg/logger"
	"github.com/okian/lineup/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultMaxRetries     = 5
	defaultAttemptTimeout = 30 * time.Second
	backoffBase           = 2
)

// Fetcher obtains candidate scores from the upstream service.
type Fetcher interface {
	// FetchScore returns the score for one candidate, reporting absence
	// when the upstream could not produce one within the retry budget.
	FetchScore(ctx context.Context, candidateID string, skills []model.Skill) (float64, bool)

	// FetchScoresBatch fans out one FetchScore per entry concurrently.
	// The result holds only candidates that obtained a score.
	FetchScoresBatch(ctx context.Context, entries []BatchEntry) map[string]float64
}

// BatchEntry names one candidate and its skills for a batch fetch.
type BatchEntry struct {
	CandidateID string
	Skills      []model.Skill
}

// Client calls the upstream scorer over HTTP with retry, backoff and a
// fingerprint cache.
type Client struct {
	endpoint    string
	maxRetries  int
	timeout     time.Duration
	concurrency int

	httpClient *http.Client
	cache      scorecache.Cache

	// sleep is injectable so tests can run the backoff schedule without
	// wall-clock delay.
	sleep func(d time.Duration)

	logger logger.Logger
}

// New creates a scoring client for the given upstream endpoint. The cache
// is owned by the caller; independent clients may share or isolate caches
// as they see fit.
func New(endpoint string, cache scorecache.Cache, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		maxRetries: defaultMaxRetries,
		timeout:    defaultAttemptTimeout,
		cache:      cache,
		sleep:      time.Sleep,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("scorer")
	}

	return c
}

// FetchScore obtains a score for one candidate.
//
// A cache hit short-circuits all network activity. On a miss the client
// makes up to maxRetries attempts, sleeping 2^attempt seconds between
// attempts (never after the last). Exhaustion returns absence and caches
// nothing, so a later call retries in full.
func (c *Client) FetchScore(ctx context.Context, candidateID string, skills []model.Skill) (float64, bool) {
	key := scorecache.Fingerprint(candidateID, skills)

	if score, ok := c.cache.Get(ctx, key); ok {
		metrics.RecordScoreCacheHit()
		c.logger.Debug(ctx, "score cache hit", logger.String("candidateID", candidateID))
		return score, true
	}
	metrics.RecordScoreCacheMiss()

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		score, err := c.callScoreAPI(ctx, candidateID, skills)
		if err == nil {
			c.cache.Put(ctx, key, score)
			metrics.RecordScoreFetch()
			c.logger.Info(ctx, "fetched candidate score",
				logger.String("candidateID", candidateID),
				logger.Float64("score", score),
				logger.Int("attempt", attempt+1),
			)
			return score, true
		}

		c.logger.Warn(ctx, "scoring attempt failed",
			logger.String("candidateID", candidateID),
			logger.Int("attempt", attempt+1),
			logger.Error(err),
		)

		if attempt < c.maxRetries-1 {
			wait := time.Duration(1<<uint(attempt)) * time.Second
			c.logger.Debug(ctx, "backing off before retry",
				logger.String("candidateID", candidateID),
				logger.Duration("wait", wait),
			)
			metrics.RecordScoreRetry()
			c.sleep(wait)
		}
	}

	metrics.RecordScoreFetchFailure()
	c.logger.Error(ctx, "score fetch exhausted retries",
		logger.String("candidateID", candidateID),
		logger.Int("maxRetries", c.maxRetries),
	)
	return 0, false
}

// FetchScoresBatch resolves scores for many candidates concurrently.
// Absent candidates are silently omitted from the result; the batch never
// fails as a whole. Concurrency is bounded by the configured limit, or
// unbounded when the limit is zero or negative.
func (c *Client) FetchScoresBatch(ctx context.Context, entries []BatchEntry) map[string]float64 {
	results := make(map[string]float64, len(entries))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}

	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			score, ok := c.FetchScore(gctx, entry.CandidateID, entry.Skills)
			if !ok {
				return nil // reported by omission
			}
			mu.Lock()
			results[entry.CandidateID] = score
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait() // workers never return errors

	return results
}

// skillPair serializes a skill as the upstream's [name, level] tuple.
type skillPair struct {
	Name  string
	Level float64
}

func (p skillPair) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal([2]interface{}{p.Name, p.Level})
	if err != nil {
		return nil, fmt.Errorf("marshal skill pair: %w", err)
	}
	return b, nil
}

// scoreRequest mirrors the upstream request schema.
type scoreRequest struct {
	CandidateID string      `json:"candidate_id"`
	Skills      []skillPair `json:"skills"`
}

// scoreResponse mirrors the upstream response schema.
type scoreResponse struct {
	LatencyMS     int       `json:"latency_ms"`
	Success       bool      `json:"success"`
	ErrorLog      string    `json:"error_log,omitempty"`
	SpecialScores []float64 `json:"special_scores"`
}

// callScoreAPI performs a single upstream attempt under its own timeout.
// Any returned error marks the attempt failed; it never escapes FetchScore.
func (c *Client) callScoreAPI(ctx context.Context, candidateID string, skills []model.Skill) (float64, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	pairs := make([]skillPair, len(skills))
	for i, s := range skills {
		pairs[i] = skillPair{Name: s.Name, Level: float64(s.ExpertiseLevel)}
	}

	body, err := json.Marshal(scoreRequest{CandidateID: candidateID, Skills: pairs})
	if err != nil {
		return 0, fmt.Errorf("marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	metrics.RecordScoreAttempt()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordErrorByComponent("scorer", "transport_error")
		return 0, fmt.Errorf("execute score request: %w", err)
	}
	defer resp.Body.Close()

	metrics.RecordUpstreamLatency(float64(time.Since(start).Milliseconds()))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordErrorByComponent("scorer", "read_error")
		return 0, fmt.Errorf("read score response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.RecordErrorByComponent("scorer", "status_error")
		return 0, fmt.Errorf("%w: status %d", ErrUpstreamStatus, resp.StatusCode)
	}

	var result scoreResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		metrics.RecordErrorByComponent("scorer", "decode_error")
		return 0, fmt.Errorf("parse score response: %w", err)
	}

	if !result.Success {
		metrics.RecordErrorByComponent("scorer", "upstream_failure")
		return 0, fmt.Errorf("%w: %s", ErrUpstreamFailure, result.ErrorLog)
	}

	if len(result.SpecialScores) == 0 {
		metrics.RecordErrorByComponent("scorer", "empty_scores")
		return 0, ErrNoScores
	}

	sum := 0.0
	for _, s := range result.SpecialScores {
		sum += s
	}
	return sum / float64(len(result.SpecialScores)), nil
}
