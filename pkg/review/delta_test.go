package review_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/gitreview/pkg/analysis"
	"github.com/Sumatoshi-tech/gitreview/pkg/review"
)

func TestScoreDelta_Antisymmetry(t *testing.T) {
	t.Parallel()

	pairs := [][2]float64{
		{7.50, 8.25},
		{0, 0},
		{analysis.UnknownScore, 9.99},
		{-3.5, 3.5},
	}

	for _, pair := range pairs {
		assert.InDelta(t, -review.ScoreDelta(pair[1], pair[0]), review.ScoreDelta(pair[0], pair[1]), 0.0001)
	}
}

func TestScoreDelta_ChronologicalDirection(t *testing.T) {
	t.Parallel()

	// Positive delta means the later snapshot improved the score.
	assert.InDelta(t, 1.25, review.ScoreDelta(7.0, 8.25), 0.0001)
	assert.InDelta(t, -1.25, review.ScoreDelta(8.25, 7.0), 0.0001)
}

func TestFindingsDiff(t *testing.T) {
	t.Parallel()

	before := &analysis.Snapshot{Lines: []string{
		"a.py:1: unused x (unused-variable)",
		"a.py:4: long line (line-too-long)",
	}}
	after := &analysis.Snapshot{Lines: []string{
		"a.py:1: unused x (unused-variable)",
		"a.py:9: bad name (invalid-name)",
	}}

	added, removed := review.FindingsDiff(before, after)

	assert.Equal(t, []string{"a.py:9: bad name (invalid-name)"}, added)
	assert.Equal(t, []string{"a.py:4: long line (line-too-long)"}, removed)
}

func TestFindingsDiff_NilSnapshots(t *testing.T) {
	t.Parallel()

	added, removed := review.FindingsDiff(nil, &analysis.Snapshot{Lines: []string{"x (a)"}})

	assert.Equal(t, []string{"x (a)"}, added)
	assert.Empty(t, removed)
}
