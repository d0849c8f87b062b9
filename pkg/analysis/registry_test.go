package analysis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitreview/pkg/analysis"
)

func TestNewTool_UnknownName(t *testing.T) {
	t.Parallel()

	_, err := analysis.NewTool("clippy", analysis.Options{Runner: &fakeRunner{}})

	require.ErrorIs(t, err, analysis.ErrUnknownTool)
	assert.Contains(t, err.Error(), "clippy")
}

func TestNames_StableOrder(t *testing.T) {
	t.Parallel()

	names := analysis.Names()

	assert.Contains(t, names, "pylint")
	assert.Contains(t, names, "cppcheck")
	assert.Equal(t, names, analysis.Names())
}

// stubTool verifies variants can be added without walker changes.
type stubTool struct{}

func (stubTool) Name() string { return "stub" }

func (stubTool) Run(context.Context) *analysis.Snapshot { return &analysis.Snapshot{} }

func (stubTool) Score(*analysis.Snapshot) float64 { return 0 }

func (stubTool) IsRelevant(string) bool { return false }

func (stubTool) ErrorDelta(_, _ *analysis.Snapshot) analysis.ErrorDelta { return nil }

func TestRegister_AddsVariant(t *testing.T) {
	analysis.Register("stub", func(analysis.Options) analysis.Tool { return stubTool{} })

	tool, err := analysis.NewTool("stub", analysis.Options{})
	require.NoError(t, err)
	assert.Equal(t, "stub", tool.Name())
}
