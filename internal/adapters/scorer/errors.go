package scorer

import "errors"

// Sentinel kinds for upstream scoring failures. These never escape the
// client; they classify failed attempts in logs and metrics.
var (
	ErrUpstreamStatus  = errors.New("upstream returned non-success status")
	ErrUpstreamFailure = errors.New("upstream reported scoring failure")
	ErrNoScores        = errors.New("upstream returned no sub-scores")
)
