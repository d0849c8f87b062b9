package review

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Sumatoshi-tech/gitreview/pkg/analysis"
)

// ScoreDelta returns the score movement in chronological order: a
// positive result means the later snapshot improved the score.
// Stateless and antisymmetric: ScoreDelta(a, b) == -ScoreDelta(b, a).
func ScoreDelta(before, after float64) float64 {
	return after - before
}

// FindingsDiff returns the output lines that appeared in and vanished
// from the analysis output between two snapshots, in chronological
// before/after order. Used for verbose per-commit inspection.
func FindingsDiff(before, after *analysis.Snapshot) (added, removed []string) {
	beforeText := joinLines(before)
	afterText := joinLines(after)

	dmp := diffmatchpatch.New()

	beforeChars, afterChars, lineArray := dmp.DiffLinesToChars(beforeText, afterText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(beforeChars, afterChars, false), lineArray)

	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			added = append(added, splitChunk(diff.Text)...)
		case diffmatchpatch.DiffDelete:
			removed = append(removed, splitChunk(diff.Text)...)
		case diffmatchpatch.DiffEqual:
		}
	}

	return added, removed
}

func joinLines(snap *analysis.Snapshot) string {
	if snap == nil || len(snap.Lines) == 0 {
		return ""
	}

	return strings.Join(snap.Lines, "\n") + "\n"
}

func splitChunk(chunk string) []string {
	var lines []string

	for _, line := range strings.Split(chunk, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
