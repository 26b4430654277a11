package scorer

import (
	"net/http"
	"time"

	"github.com/okian/lineup/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithMaxRetries sets how many upstream attempts one fetch may make.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxRetries = n
		}
	}
}

// WithAttemptTimeout bounds each individual upstream attempt.
func WithAttemptTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBatchConcurrency bounds concurrent fetches in FetchScoresBatch.
// Zero or negative means unbounded.
func WithBatchConcurrency(n int) Option {
	return func(c *Client) {
		c.concurrency = n
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithSleepFunc replaces the backoff sleep, letting tests run the
// 1s,2s,4s,8s,16s schedule without wall-clock delay.
func WithSleepFunc(sleep func(d time.Duration)) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
