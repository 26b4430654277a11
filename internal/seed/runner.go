// Package seed populates a running service with generated projects and
// candidates, exercises team formation against them, and checks the
// results for internal consistency.
package seed

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/lineup/pkg/logger"
)

// Run executes the complete seeding and verification pass.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting seed run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("projects", config.NumProjects),
		logger.Int("candidates", config.NumCandidates),
		logger.Int("teamSize", config.TeamSize),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Create projects
	projects, err := createProjects(ctx, client, config, stats)
	if err != nil {
		return fmt.Errorf("project creation failed: %w", err)
	}

	// Step 3: Create candidates
	candidates, err := createCandidates(ctx, client, config, stats)
	if err != nil {
		return fmt.Errorf("candidate creation failed: %w", err)
	}

	// Step 4: Form a team for every project and verify each result
	if err := formTeams(ctx, client, config, projects, candidates, stats); err != nil {
		return fmt.Errorf("team formation failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "seed run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(config.BaseURL + "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Any 200 counts as healthy (the endpoint serves Prometheus metrics)
	if resp.StatusCode != 200 {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// createProjects posts NumProjects generated projects concurrently.
func createProjects(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) ([]Project, error) {
	url := config.BaseURL + "/api/projects"
	results := make([]Project, config.NumProjects)
	var created int64

	if err := runWorkers(ctx, config.Workers, config.NumProjects, func(i int) error {
		var p Project
		if err := client.postAndDecode(url, generateProject(), &p); err != nil {
			return fmt.Errorf("project %d: %w", i, err)
		}
		results[i] = p
		atomic.AddInt64(&created, 1)
		return nil
	}); err != nil {
		return nil, err
	}

	stats.ProjectsCreated = int(atomic.LoadInt64(&created))
	logger.Get().Info(ctx, "created projects", logger.Int("count", stats.ProjectsCreated))
	return results, nil
}

// createCandidates posts NumCandidates generated candidates concurrently.
func createCandidates(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) ([]Candidate, error) {
	url := config.BaseURL + "/api/candidates"
	results := make([]Candidate, config.NumCandidates)
	var created int64

	if err := runWorkers(ctx, config.Workers, config.NumCandidates, func(i int) error {
		var c Candidate
		if err := client.postAndDecode(url, generateCandidate(), &c); err != nil {
			return fmt.Errorf("candidate %d: %w", i, err)
		}
		results[i] = c
		atomic.AddInt64(&created, 1)
		return nil
	}); err != nil {
		return nil, err
	}

	stats.CandidatesCreated = int(atomic.LoadInt64(&created))
	logger.Get().Info(ctx, "created candidates", logger.Int("count", stats.CandidatesCreated))
	return results, nil
}

// formTeams requests one team per project against the full candidate
// pool and verifies every result.
func formTeams(ctx context.Context, client *HTTPClient, config *Config, projects []Project, candidates []Candidate, stats *Stats) error {
	url := config.BaseURL + "/api/form-team"

	candidateIDs := make([]int64, len(candidates))
	for i, c := range candidates {
		candidateIDs[i] = c.ID
	}

	var formed, failed, fullCoverage int64

	if err := runWorkers(ctx, config.Workers, len(projects), func(i int) error {
		project := projects[i]
		req := FormTeamRequest{
			ProjectID:    project.ID,
			CandidateIDs: candidateIDs,
			TeamSize:     config.TeamSize,
		}

		var result TeamResult
		if err := client.postAndDecode(url, req, &result); err != nil {
			atomic.AddInt64(&failed, 1)
			logger.Get().Warn(ctx, "formation request failed",
				logger.Int64("projectID", project.ID),
				logger.Error(err))
			return nil
		}

		if err := verifyTeam(project, candidates, req.TeamSize, result); err != nil {
			atomic.AddInt64(&failed, 1)
			return fmt.Errorf("project %d: %w", project.ID, err)
		}

		atomic.AddInt64(&formed, 1)
		if result.Coverage == 1.0 {
			atomic.AddInt64(&fullCoverage, 1)
		}

		if config.Verbose {
			logger.Get().Info(ctx, "team formed",
				logger.Int64("projectID", project.ID),
				logger.Int("members", len(result.Members)),
				logger.Float64("coverage", result.Coverage),
				logger.Int("totalExpertise", result.TotalExpertise))
		}
		return nil
	}); err != nil {
		return err
	}

	stats.TeamsFormed = int(atomic.LoadInt64(&formed))
	stats.TeamsFailed = int(atomic.LoadInt64(&failed))
	stats.FullCoverageTeams = int(atomic.LoadInt64(&fullCoverage))
	return nil
}

// runWorkers fans n tasks out over workerCount goroutines; the first
// task error aborts the run.
func runWorkers(ctx context.Context, workerCount, n int, task func(i int) error) error {
	if workerCount < 1 {
		workerCount = 1
	}

	indexes := make(chan int, workerCount)
	errCh := make(chan error, n)
	var wg sync.WaitGroup

	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				select {
				case <-ctx.Done():
					return
				default:
					if err := task(i); err != nil {
						errCh <- err
					}
				}
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("seed run cancelled: %w", err)
	}
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var coverageRate float64
	if stats.TeamsFormed > 0 {
		coverageRate = float64(stats.FullCoverageTeams) / float64(stats.TeamsFormed) * 100
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("projectsCreated", stats.ProjectsCreated),
		logger.Int("candidatesCreated", stats.CandidatesCreated),
		logger.Int("teamsFormed", stats.TeamsFormed),
		logger.Int("teamsFailed", stats.TeamsFailed),
		logger.Int("fullCoverageTeams", stats.FullCoverageTeams),
		logger.Float64("fullCoverageRate", coverageRate),
		logger.String("duration", stats.Duration.String()))
}
