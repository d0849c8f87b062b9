// Package observability provides OTel metric instruments for the
// history walk, exported through a Prometheus scrape endpoint.
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricIterationsTotal = "gitreview.iterations.total"
	metricToolRunsTotal   = "gitreview.tool.runs.total"
	metricToolRunDuration = "gitreview.tool.run.duration.seconds"
	metricSkippedTotal    = "gitreview.analysis.skipped.total"

	attrStatus = "status"
)

// toolRunBucketBoundaries covers 100ms quick lint runs up to
// multi-minute whole-tree analyses.
var toolRunBucketBoundaries = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}

// WalkMetrics holds the instruments for the walk. It satisfies the
// review package's Metrics interface.
type WalkMetrics struct {
	iterationsTotal metric.Int64Counter
	toolRunsTotal   metric.Int64Counter
	toolRunDuration metric.Float64Histogram
	skippedTotal    metric.Int64Counter
}

// NewWalkMetrics creates the walk instruments from the given meter.
func NewWalkMetrics(mt metric.Meter) (*WalkMetrics, error) {
	b := newMetricBuilder(mt)

	wm := &WalkMetrics{
		iterationsTotal: b.counter(metricIterationsTotal, "Total walk iterations performed", "{iteration}"),
		toolRunsTotal:   b.counter(metricToolRunsTotal, "Total analysis backend invocations", "{run}"),
		toolRunDuration: b.histogram(metricToolRunDuration, "Analysis backend run duration in seconds", "s", toolRunBucketBoundaries...),
		skippedTotal:    b.counter(metricSkippedTotal, "Iterations that reused a memoized snapshot", "{iteration}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return wm, nil
}

// RecordIteration counts one completed walk iteration.
func (wm *WalkMetrics) RecordIteration(ctx context.Context) {
	wm.iterationsTotal.Add(ctx, 1)
}

// RecordToolRun counts one backend invocation with its outcome.
func (wm *WalkMetrics) RecordToolRun(ctx context.Context, status string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String(attrStatus, status))

	wm.toolRunsTotal.Add(ctx, 1, attrs)
	wm.toolRunDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordSkippedAnalysis counts one memoized iteration.
func (wm *WalkMetrics) RecordSkippedAnalysis(ctx context.Context) {
	wm.skippedTotal.Add(ctx, 1)
}
