// Package analysis wraps static-analysis backends behind a common Tool
// interface so the history walk can score a working tree without knowing
// which backend produced the findings.
package analysis

// UnknownScore is the sentinel returned when a score cannot be extracted
// from backend output. It is distinct from any achievable real score.
const UnknownScore = -100.0

// Snapshot holds the result of one completed analysis run: every
// non-blank output line in emitted order, plus the derived score.
// A Snapshot is never mutated after creation.
type Snapshot struct {
	Lines []string
	Score float64
}

// ErrorDelta maps a rule identifier to a signed occurrence-count delta
// between two snapshots. Only non-zero entries are present.
type ErrorDelta map[string]int
