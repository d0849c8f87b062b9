// Package review implements the revert-and-diff attribution engine: a
// backward walk over commit history that re-scores the working tree at
// each relevant step and accumulates quality deltas per author.
package review

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownSignificance is returned when an unrecognized significance
// policy name is requested.
var ErrUnknownSignificance = errors.New("unknown significance policy")

// ScoreEpsilon is the smallest score-delta magnitude worth recording.
const ScoreEpsilon = 0.005

// Significance decides whether a reverted commit's effect is large
// enough to be recorded. The divergent historical acceptance rules are
// kept as explicitly named policies rather than a single canonical one.
type Significance string

const (
	// SignifyScoreAndLines records a step only when it changed watched
	// files and moved the score by more than ScoreEpsilon.
	SignifyScoreAndLines Significance = "score-and-lines"
	// SignifyLinesOnly records every step that changed watched files,
	// regardless of score movement.
	SignifyLinesOnly Significance = "lines-only"
)

// ParseSignificance validates a policy name from configuration.
func ParseSignificance(name string) (Significance, error) {
	switch Significance(name) {
	case SignifyScoreAndLines, SignifyLinesOnly:
		return Significance(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSignificance, name)
	}
}

// Accept reports whether a step with the given score delta and relevant
// lines changed should reach the aggregator.
func (s Significance) Accept(scoreDelta float64, linesChanged int) bool {
	if linesChanged == 0 {
		return false
	}

	if s == SignifyLinesOnly {
		return true
	}

	return math.Abs(scoreDelta) >= ScoreEpsilon
}
