package review_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitreview/pkg/review"
)

func TestSignificance_Accept(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		policy       review.Significance
		scoreDelta   float64
		linesChanged int
		want         bool
	}{
		{"strict accepts real movement", review.SignifyScoreAndLines, 0.5, 3, true},
		{"strict rejects sub-epsilon movement", review.SignifyScoreAndLines, 0.004, 3, false},
		{"strict rejects zero lines", review.SignifyScoreAndLines, 2.0, 0, false},
		{"strict accepts negative movement", review.SignifyScoreAndLines, -0.5, 3, true},
		{"loose accepts any changed lines", review.SignifyLinesOnly, 0.0, 1, true},
		{"loose rejects zero lines", review.SignifyLinesOnly, 2.0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.policy.Accept(tc.scoreDelta, tc.linesChanged))
		})
	}
}

func TestParseSignificance(t *testing.T) {
	t.Parallel()

	policy, err := review.ParseSignificance("lines-only")
	require.NoError(t, err)
	assert.Equal(t, review.SignifyLinesOnly, policy)

	_, err = review.ParseSignificance("always")
	require.ErrorIs(t, err, review.ErrUnknownSignificance)
}
