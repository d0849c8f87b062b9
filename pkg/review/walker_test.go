package review_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitreview/pkg/analysis"
	"github.com/Sumatoshi-tech/gitreview/pkg/review"
)

var errPastRoot = errors.New("no parent to reset to")

// fakeCommit scripts one historical step: the metadata git reports while
// this commit is checked out, and the stat lines comparing it to its
// parent.
type fakeCommit struct {
	author string
	hash   string
	stats  []string
}

// fakeGit replays a linear history, newest first. MoveToParent past the
// last scripted commit fails like a reset past the root would.
type fakeGit struct {
	commits []fakeCommit
	pos     int
}

func (g *fakeGit) CurrentAuthor() (string, error) {
	return g.commits[g.pos].author, nil
}

func (g *fakeGit) CurrentCommitHash() (string, error) {
	return g.commits[g.pos].hash, nil
}

func (g *fakeGit) StatLines() ([]string, error) {
	return g.commits[g.pos].stats, nil
}

func (g *fakeGit) MoveToParent() error {
	if g.pos == len(g.commits)-1 {
		return errPastRoot
	}

	g.pos++

	return nil
}

// scriptedTool replays snapshots for successive Run calls and counts
// invocations. Relevance and deltas follow the pylint conventions.
type scriptedTool struct {
	snapshots []*analysis.Snapshot
	runs      int
	mode      analysis.DeltaMode
}

func (s *scriptedTool) Name() string { return "scripted" }

func (s *scriptedTool) Run(context.Context) *analysis.Snapshot {
	snap := s.snapshots[s.runs]
	s.runs++

	return snap
}

func (s *scriptedTool) Score(snap *analysis.Snapshot) float64 {
	return snap.Score
}

func (s *scriptedTool) IsRelevant(statLine string) bool {
	real, err := analysis.NewTool("pylint", analysis.Options{Runner: nil, DeltaMode: s.mode})
	if err != nil {
		panic(err)
	}

	return real.IsRelevant(statLine)
}

func (s *scriptedTool) ErrorDelta(before, after *analysis.Snapshot) analysis.ErrorDelta {
	real, err := analysis.NewTool("pylint", analysis.Options{Runner: nil, DeltaMode: s.mode})
	if err != nil {
		panic(err)
	}

	return real.ErrorDelta(before, after)
}

func snap(score float64, lines ...string) *analysis.Snapshot {
	return &analysis.Snapshot{Lines: lines, Score: score}
}

// threeCommitHistory models: commit1 (root, Carol) -> commit2 (Alice
// introduces a finding) -> commit3 (Bob fixes it). The walk starts at
// commit3's child state, i.e. HEAD == commit3.
func threeCommitHistory() *fakeGit {
	return &fakeGit{commits: []fakeCommit{
		{author: "Bob", hash: "ccc3", stats: []string{"a.py | 2 +-"}},
		{author: "Alice", hash: "bbb2", stats: []string{"a.py | 1 +"}},
		{author: "Carol", hash: "aaa1", stats: []string{"a.py | 10 ++++++++++"}},
	}}
}

func TestWalker_EndToEndAttribution(t *testing.T) {
	t.Parallel()

	git := threeCommitHistory()

	// Chronologically: Carol's tree scores 9.00 with one finding, Alice
	// drops it to 8.00 by adding a finding, Bob restores 9.00.
	tool := &scriptedTool{
		mode: analysis.DeltaAppeared,
		snapshots: []*analysis.Snapshot{
			snap(9.00, "a.py:5: old issue (invalid-name)"), // baseline at HEAD (after Bob)
			snap(8.00, "a.py:5: old issue (invalid-name)", "a.py:9: unused (unused-variable)"), // after Alice
			snap(9.00, "a.py:5: old issue (invalid-name)"), // after Carol
		},
	}

	walker := review.NewWalker(git, tool)

	reports, err := walker.Walk(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	byAuthor := make(map[string]review.AuthorReport, len(reports))
	for _, report := range reports {
		byAuthor[report.Author] = report
	}

	bob := byAuthor["Bob"]
	alice := byAuthor["Alice"]

	assert.InDelta(t, 1.00, bob.TotalScore(), 0.0001)
	assert.InDelta(t, -1.00, alice.TotalScore(), 0.0001)
	assert.InDelta(t, -bob.TotalScore(), alice.TotalScore(), 0.0001)

	require.Len(t, bob.Steps, 1)
	assert.Equal(t, "ccc3", bob.Steps[0].CommitHash)
	assert.Equal(t, 2, bob.Steps[0].LinesChanged)

	// Bob's commit removed one unused-variable occurrence: comparing his
	// parent's output (before) against his own (after).
	assert.Empty(t, bob.Steps[0].Errors)
	assert.Equal(t, analysis.ErrorDelta{"unused-variable": 1}, alice.Steps[0].Errors)

	assert.Equal(t, review.StateDone, walker.State())
}

func TestWalker_MemoizationSkipsIrrelevantCommits(t *testing.T) {
	t.Parallel()

	git := &fakeGit{commits: []fakeCommit{
		{author: "Alice", hash: "ccc3", stats: []string{"README.md | 5 +++++"}},
		{author: "Bob", hash: "bbb2", stats: []string{"a.py | 1 +"}},
		{author: "Carol", hash: "aaa1", stats: []string{"a.py | 3 +++"}},
	}}

	tool := &scriptedTool{
		mode: analysis.DeltaAppeared,
		snapshots: []*analysis.Snapshot{
			snap(9.00),
			snap(8.50, "a.py:1: unused (unused-variable)"),
		},
	}

	walker := review.NewWalker(git, tool)

	_, err := walker.Walk(context.Background(), 2)
	require.NoError(t, err)

	// One baseline run plus one re-analysis for Bob's commit; Alice's
	// docs-only commit reused the memoized snapshot.
	assert.Equal(t, 2, tool.runs)

	timeline := walker.Timeline()
	require.Len(t, timeline, 2)
	assert.InDelta(t, 9.00, timeline[0].Score, 0.0001, "memoized iteration keeps the baseline score")
	assert.InDelta(t, 8.50, timeline[1].Score, 0.0001)
}

func TestWalker_GitFailureIsFatal(t *testing.T) {
	t.Parallel()

	git := &fakeGit{commits: []fakeCommit{
		{author: "Alice", hash: "bbb2", stats: []string{"a.py | 1 +"}},
	}}

	tool := &scriptedTool{snapshots: []*analysis.Snapshot{snap(9.00)}}
	walker := review.NewWalker(git, tool)

	_, err := walker.Walk(context.Background(), 5)

	require.ErrorIs(t, err, errPastRoot)
}

func TestWalker_SignificancePolicies(t *testing.T) {
	t.Parallel()

	history := func() *fakeGit {
		return &fakeGit{commits: []fakeCommit{
			{author: "Alice", hash: "bbb2", stats: []string{"a.py | 4 ++--"}},
			{author: "Carol", hash: "aaa1", stats: []string{"a.py | 2 ++"}},
		}}
	}

	// Alice's commit changed files but moved the score by less than the
	// epsilon.
	newTool := func() *scriptedTool {
		return &scriptedTool{
			mode: analysis.DeltaAppeared,
			snapshots: []*analysis.Snapshot{
				snap(9.000),
				snap(9.001),
			},
		}
	}

	strict := review.NewWalker(history(), newTool(), review.WithSignificance(review.SignifyScoreAndLines))
	reports, err := strict.Walk(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, reports)

	loose := review.NewWalker(history(), newTool(), review.WithSignificance(review.SignifyLinesOnly))
	reports, err = loose.Walk(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Alice", reports[0].Author)
}

func TestWalker_FindingsDiffCollection(t *testing.T) {
	t.Parallel()

	git := &fakeGit{commits: []fakeCommit{
		{author: "Alice", hash: "bbb2", stats: []string{"a.py | 1 +"}},
		{author: "Carol", hash: "aaa1", stats: []string{"a.py | 2 ++"}},
	}}

	finding := "a.py:9: unused (unused-variable)"
	tool := &scriptedTool{
		mode: analysis.DeltaAppeared,
		snapshots: []*analysis.Snapshot{
			snap(8.00, finding),
			snap(9.00),
		},
	}

	walker := review.NewWalker(git, tool, review.WithFindingsDiff(true))

	reports, err := walker.Walk(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Steps, 1)

	step := reports[0].Steps[0]
	assert.Equal(t, []string{finding}, step.AddedFindings)
	assert.Empty(t, step.RemovedFindings)
}
