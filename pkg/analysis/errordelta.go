package analysis

import (
	"regexp"
	"strings"
)

// ruleTokenRe matches a parenthesized rule identifier in a finding
// line, e.g. "a.py:1: unused x (unused-variable)".
var ruleTokenRe = regexp.MustCompile(`\(([^()]+)\)`)

// staleResultMarker identifies backend diagnostics about cached results
// from an earlier run. Those lines are not findings.
const staleResultMarker = "previous run"

// ruleToken extracts the rule identifier from a finding line. The token
// is usually trailing, but some message formats place it before the
// message text, as in "a.py:1: (unused-variable) x". The last
// parenthesized token on the line wins either way.
func ruleToken(line string) (string, bool) {
	matches := ruleTokenRe.FindAllStringSubmatch(line, -1)
	if matches == nil {
		return "", false
	}

	return matches[len(matches)-1][1], true
}

// ruleCounts tallies rule-identifier occurrences across finding lines.
func ruleCounts(lines []string) map[string]int {
	counts := make(map[string]int)

	for _, line := range lines {
		if strings.Contains(line, staleResultMarker) {
			continue
		}

		name, ok := ruleToken(strings.TrimSpace(line))
		if !ok {
			continue
		}

		counts[name]++
	}

	return counts
}

// diffRuleCounts computes the per-rule occurrence delta between two
// snapshots. Zero-valued entries are omitted. In DeltaSymmetric mode,
// rules present only in the "before" snapshot yield negative entries.
func diffRuleCounts(before, after *Snapshot, mode DeltaMode) ErrorDelta {
	beforeCounts := ruleCounts(before.Lines)
	afterCounts := ruleCounts(after.Lines)

	delta := make(ErrorDelta)

	for name, afterCount := range afterCounts {
		diff := afterCount - beforeCounts[name]
		if diff != 0 {
			delta[name] = diff
		}
	}

	if mode == DeltaSymmetric {
		for name, beforeCount := range beforeCounts {
			_, stillPresent := afterCounts[name]
			if !stillPresent {
				delta[name] = -beforeCount
			}
		}
	}

	return delta
}
