// Package scorecache holds fetched candidate scores keyed by fingerprint.
//
// The cache is an explicit component owned by whoever constructs the
// scoring client, never a hidden module-level singleton, so tests can use
// independent instances. It is unbounded and lives for the process: the
// design has no eviction, TTL or invalidation.
package scorecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/pkg/metrics"
)

// Cache records scores under deterministic fingerprints.
//
// Single-key reads and writes are atomic. Two concurrent misses for the
// same key may both reach upstream; either write may persist, which the
// design tolerates.
type Cache interface {
	// Get returns the cached score for key, reporting whether it exists.
	Get(ctx context.Context, key string) (float64, bool)

	// Put stores score under key, overwriting any previous value.
	Put(ctx context.Context, key string, score float64)

	Size() int
}

// inMemoryCache implements Cache with a mutex-guarded map.
type inMemoryCache struct {
	mu     sync.RWMutex
	scores map[string]float64
}

// NewInMemoryCache creates a new in-memory score cache.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{}

	for _, opt := range opts {
		opt(c)
	}

	if c.scores == nil {
		c.scores = make(map[string]float64)
	}

	return c
}

// Get returns the cached score for key, reporting whether it exists.
func (c *inMemoryCache) Get(ctx context.Context, key string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	score, ok := c.scores[key]
	return score, ok
}

// Put stores score under key.
func (c *inMemoryCache) Put(ctx context.Context, key string, score float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.scores[key] = score
	metrics.UpdateScoreCacheSize(len(c.scores))
}

// Size returns the current number of cached entries.
func (c *inMemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.scores)
}

// Fingerprint derives the cache key for a candidate and its skills.
//
// Skills are canonicalized by sorting on (name, expertise level) before
// hashing, so the key is insensitive to listing order. The candidate id is
// a separate segment, keeping ids from colliding with skill text.
func Fingerprint(candidateID string, skills []model.Skill) string {
	canonical := make([]model.Skill, len(skills))
	copy(canonical, skills)
	sort.Slice(canonical, func(i, j int) bool {
		if canonical[i].Name != canonical[j].Name {
			return canonical[i].Name < canonical[j].Name
		}
		return canonical[i].ExpertiseLevel < canonical[j].ExpertiseLevel
	})

	var b strings.Builder
	b.WriteString(candidateID)
	for _, s := range canonical {
		b.WriteByte('|')
		b.WriteString(s.Name)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(s.ExpertiseLevel))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
