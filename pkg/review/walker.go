package review

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/Sumatoshi-tech/gitreview/pkg/analysis"
)

// GitOps is the set of git primitives the walker consumes. Every call
// reflects the currently-checked-out commit; MoveToParent destructively
// shifts that commit backward by one.
type GitOps interface {
	CurrentAuthor() (string, error)
	CurrentCommitHash() (string, error)
	StatLines() ([]string, error)
	MoveToParent() error
}

// State is the walker's lifecycle phase.
type State int

const (
	// StateInitial precedes the baseline analysis run.
	StateInitial State = iota
	// StateIterating covers the backward walk.
	StateIterating
	// StateDone follows the final iteration.
	StateDone
)

// TimelinePoint records the quality score observed at one historical
// step of the walk.
type TimelinePoint struct {
	Iteration  int
	CommitHash string
	Author     string
	Score      float64
}

// changeCountRe extracts the trailing change count from a canonical
// "path | N ++--" stat line.
var changeCountRe = regexp.MustCompile(`\|\s*(\d+)`)

const (
	toolStatusOK      = "ok"
	toolStatusUnknown = "unknown-score"
)

// Walker drives the backward traversal: one iteration per historical
// step, re-scoring the tree only when a commit touched watched files.
// The walker exclusively owns the on-disk working tree for the duration
// of the walk.
type Walker struct {
	git     GitOps
	tool    analysis.Tool
	policy  Significance
	logger  *slog.Logger
	metrics Metrics

	collectFindings bool

	state    State
	timeline []TimelinePoint
}

// WalkerOption customizes a walker.
type WalkerOption func(*Walker)

// WithLogger sets the progress logger.
func WithLogger(logger *slog.Logger) WalkerOption {
	return func(w *Walker) { w.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(metrics Metrics) WalkerOption {
	return func(w *Walker) { w.metrics = metrics }
}

// WithSignificance sets the step acceptance policy.
func WithSignificance(policy Significance) WalkerOption {
	return func(w *Walker) { w.policy = policy }
}

// WithFindingsDiff enables line-level output diffs on recorded steps.
func WithFindingsDiff(enabled bool) WalkerOption {
	return func(w *Walker) { w.collectFindings = enabled }
}

// NewWalker creates a walker over the given git primitives and tool.
func NewWalker(git GitOps, tool analysis.Tool, opts ...WalkerOption) *Walker {
	w := &Walker{
		git:     git,
		tool:    tool,
		policy:  SignifyScoreAndLines,
		logger:  slog.New(slog.DiscardHandler),
		metrics: NopMetrics{},
		state:   StateInitial,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// State returns the walker's lifecycle phase.
func (w *Walker) State() State {
	return w.state
}

// Timeline returns the score observed after each iteration's revert, in
// walk order.
func (w *Walker) Timeline() []TimelinePoint {
	return w.timeline
}

// Walk performs up to iterations backward steps and reduces the
// accumulated per-commit deltas into per-author reports. Any git
// primitive failure is fatal and propagates with no partial report.
func (w *Walker) Walk(ctx context.Context, iterations int) ([]AuthorReport, error) {
	aggregator := NewAggregator()

	// Baseline: one snapshot seeds both sides of the first delta.
	after := w.runTool(ctx)
	afterScore := after.Score

	before := after
	beforeScore := afterScore

	var deltaErrors analysis.ErrorDelta

	w.state = StateIterating

	for i := range iterations {
		author, err := w.git.CurrentAuthor()
		if err != nil {
			return nil, fmt.Errorf("current author: %w", err)
		}

		hash, err := w.git.CurrentCommitHash()
		if err != nil {
			return nil, fmt.Errorf("current commit hash: %w", err)
		}

		stats, err := w.git.StatLines()
		if err != nil {
			return nil, fmt.Errorf("change statistics: %w", err)
		}

		linesChanged := w.relevantChangeTotal(stats)

		err = w.git.MoveToParent()
		if err != nil {
			return nil, fmt.Errorf("move to parent: %w", err)
		}

		if linesChanged > 0 {
			before = w.runTool(ctx)
			beforeScore = before.Score
			deltaErrors = w.tool.ErrorDelta(before, after)
		} else {
			// Memoized: the tree content the tool sees is unchanged.
			w.metrics.RecordSkippedAnalysis(ctx)
		}

		scoreDelta := ScoreDelta(beforeScore, afterScore)

		step := CommitStep{
			Author:       author,
			CommitHash:   hash,
			LinesChanged: linesChanged,
			ScoreDelta:   scoreDelta,
			Errors:       deltaErrors,
		}

		if w.collectFindings && linesChanged > 0 {
			step.AddedFindings, step.RemovedFindings = FindingsDiff(before, after)
		}

		// Shift: this iteration's "before" is the next one's "after".
		after = before
		afterScore = beforeScore

		w.timeline = append(w.timeline, TimelinePoint{
			Iteration:  i,
			CommitHash: hash,
			Author:     author,
			Score:      beforeScore,
		})

		w.metrics.RecordIteration(ctx)
		w.logger.Info("iteration",
			"n", i,
			"author", author,
			"commit", hash,
			"lines_changed", linesChanged,
			"score", beforeScore,
			"score_delta", scoreDelta,
		)

		if !w.policy.Accept(scoreDelta, linesChanged) {
			continue
		}

		aggregator.Add(step)
	}

	w.state = StateDone

	return aggregator.Finalize(), nil
}

// runTool invokes the analysis backend and records its outcome.
func (w *Walker) runTool(ctx context.Context) *analysis.Snapshot {
	start := time.Now()
	snap := w.tool.Run(ctx)

	status := toolStatusOK
	if snap.Score == analysis.UnknownScore {
		status = toolStatusUnknown
	}

	w.metrics.RecordToolRun(ctx, status, time.Since(start))

	return snap
}

// relevantChangeTotal sums the trailing change counts over every stat
// line naming a file the tool watches.
func (w *Walker) relevantChangeTotal(statLines []string) int {
	total := 0

	for _, line := range statLines {
		if !w.tool.IsRelevant(line) {
			continue
		}

		match := changeCountRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		count, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		total += count
	}

	return total
}
