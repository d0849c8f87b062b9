package review

import "github.com/Sumatoshi-tech/gitreview/pkg/analysis"

// CommitStep records the attributed effect of one reverted commit.
// Immutable once created; the walker hands it to the aggregator and
// does not retain it.
type CommitStep struct {
	Author       string
	CommitHash   string
	LinesChanged int
	ScoreDelta   float64
	Errors       analysis.ErrorDelta

	// AddedFindings and RemovedFindings carry the verbose line-level
	// output diff when the walker is configured to collect it.
	AddedFindings   []string
	RemovedFindings []string
}

// AuthorReport groups the recorded steps of one author. Derived metrics
// are computed on demand, never stored redundantly.
type AuthorReport struct {
	Author string
	Steps  []CommitStep
}

// TotalScore sums the score deltas across the author's steps.
func (r *AuthorReport) TotalScore() float64 {
	total := 0.0
	for _, step := range r.Steps {
		total += step.ScoreDelta
	}

	return total
}

// TotalChanges sums the relevant lines changed across the author's steps.
func (r *AuthorReport) TotalChanges() int {
	total := 0
	for _, step := range r.Steps {
		total += step.LinesChanged
	}

	return total
}

// ScorePerChange returns the score delta per changed line, or zero when
// no changes were recorded.
func (r *AuthorReport) ScorePerChange() float64 {
	changes := r.TotalChanges()
	if changes == 0 {
		return 0
	}

	return r.TotalScore() / float64(changes)
}

// ErrorHistogram merges the per-step error deltas into one mapping from
// rule name to the sequence of per-commit occurrence deltas. Entries are
// kept separate per contributing commit, never summed.
func (r *AuthorReport) ErrorHistogram() map[string][]int {
	histogram := make(map[string][]int)

	for _, step := range r.Steps {
		for name, count := range step.Errors {
			histogram[name] = append(histogram[name], count)
		}
	}

	return histogram
}

// Aggregator accumulates commit steps keyed by author identity. Author
// strings are taken verbatim; aliases are not deduplicated.
type Aggregator struct {
	steps map[string][]CommitStep
	order []string
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{steps: make(map[string][]CommitStep)}
}

// Add appends a step to its author's ordered sequence.
func (a *Aggregator) Add(step CommitStep) {
	_, seen := a.steps[step.Author]
	if !seen {
		a.order = append(a.order, step.Author)
	}

	a.steps[step.Author] = append(a.steps[step.Author], step)
}

// Finalize reduces the accumulated steps into per-author reports, in
// first-seen author order.
func (a *Aggregator) Finalize() []AuthorReport {
	reports := make([]AuthorReport, 0, len(a.order))

	for _, author := range a.order {
		reports = append(reports, AuthorReport{Author: author, Steps: a.steps[author]})
	}

	return reports
}
