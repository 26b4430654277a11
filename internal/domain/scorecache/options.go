// Package scorecache holds fetched candidate scores keyed by fingerprint.
package scorecache

// Option applies a configuration option to the in-memory cache.
type Option func(*inMemoryCache)

// WithInitialCapacity pre-sizes the backing map for an expected number of
// candidates. The cache itself stays unbounded.
func WithInitialCapacity(n int) Option {
	return func(c *inMemoryCache) {
		if n > 0 {
			c.scores = make(map[string]float64, n)
		}
	}
}
