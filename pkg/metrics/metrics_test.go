package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewManagerRegistersOnCustomRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewManager(WithPrometheusRegistry(registry), WithNamespace("testns"))
	if m == nil {
		t.Fatal("expected manager")
	}

	m.teamsFormed.Inc()
	m.scoreCacheHits.Inc()
	m.httpRequests.WithLabelValues("teams", "POST", "200").Inc()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metric families")
	}
	for _, fam := range families {
		if !strings.HasPrefix(fam.GetName(), "testns_") {
			t.Errorf("expected namespace prefix on %q", fam.GetName())
		}
	}
}

func TestPackageLevelHelpers(t *testing.T) {
	// Helpers must not panic and must land in the global registry.
	RecordTeamFormed()
	RecordFormationDuration(12.5)
	RecordSubsetsEvaluated(10)
	RecordTeamCoverage(0.75)

	RecordScoreFetch()
	RecordScoreFetchFailure()
	RecordScoreAttempt()
	RecordScoreRetry()
	RecordUpstreamLatency(42)
	RecordScoreCacheHit()
	RecordScoreCacheMiss()
	UpdateScoreCacheSize(3)

	UpdateProjectsTotal(2)
	UpdateCandidatesTotal(5)

	RecordHTTPRequest("teams", "POST", "200")
	RecordHTTPRequestDuration("teams", "POST", "200", 8)

	UpdateQueueSize(1)
	UpdateQueueCapacity(100)
	UpdateQueueUtilization(0.01)
	RecordQueueEnqueue()
	RecordQueueDequeue()
	RecordQueueEnqueueError()

	UpdateWorkerActiveCount(4)
	RecordPrefetchCompleted()
	RecordWorkerError()
	RecordWorkerProcessingLatency(5)

	RecordErrorByComponent("scorer", "upstream_failure")

	UpdateSystemMemoryUsage(1 << 20)
	UpdateSystemGoroutineCount(12)
	RecordSystemGCPauseTime(0.2)

	families, err := GetRegistry().Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected metrics on the global registry")
	}
}
