package review

import (
	"context"
	"time"
)

// Metrics receives walk progress events. Implementations must be safe
// for the strictly sequential call pattern of the walker; no concurrent
// calls are ever made.
type Metrics interface {
	// RecordIteration counts one completed walk iteration.
	RecordIteration(ctx context.Context)
	// RecordToolRun counts one analysis backend invocation with its
	// outcome ("ok" or "unknown-score") and duration.
	RecordToolRun(ctx context.Context, status string, duration time.Duration)
	// RecordSkippedAnalysis counts one iteration that reused the
	// memoized snapshot instead of re-running the backend.
	RecordSkippedAnalysis(ctx context.Context)
}

// NopMetrics discards all events.
type NopMetrics struct{}

// RecordIteration implements Metrics.
func (NopMetrics) RecordIteration(context.Context) {}

// RecordToolRun implements Metrics.
func (NopMetrics) RecordToolRun(context.Context, string, time.Duration) {}

// RecordSkippedAnalysis implements Metrics.
func (NopMetrics) RecordSkippedAnalysis(context.Context) {}
