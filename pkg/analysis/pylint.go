package analysis

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// pylintScoreRe matches the trailing "X.XX/10" of the pylint summary
// line ("Your code has been rated at 7.50/10 ...").
var pylintScoreRe = regexp.MustCompile(`(\d+\.\d{2})/10`)

// DefaultPylintTargets is the glob set analyzed when no explicit targets
// are configured.
const DefaultPylintTargets = "*.py **/*.py"

// Pylint is the lint-style scalar-score variant: the backend reports a
// normalized score on its final output line.
type Pylint struct {
	workdir string
	targets string
	runner  Runner
	mode    DeltaMode
}

// NewPylint creates the pylint tool from registry options.
func NewPylint(opts Options) Tool {
	targets := opts.Targets
	if targets == "" {
		targets = DefaultPylintTargets
	}

	return &Pylint{
		workdir: opts.Workdir,
		targets: targets,
		runner:  opts.Runner,
		mode:    opts.DeltaMode,
	}
}

// Name returns the registry name.
func (p *Pylint) Name() string { return "pylint" }

// Run executes pylint against the working tree. Invocation failures
// degrade to an empty snapshot carrying the sentinel score.
func (p *Pylint) Run(ctx context.Context) *Snapshot {
	command := fmt.Sprintf("pylint -j4 %s --rcfile=pylint.rc", p.targets)

	_, output, err := p.runner.Run(ctx, command, p.workdir)
	if err != nil {
		return &Snapshot{Score: UnknownScore}
	}

	snap := &Snapshot{Lines: nonBlankLines(output)}
	snap.Score = p.Score(snap)

	return snap
}

// Score parses the trailing "X.XX/10" summary from the final output
// line, or UnknownScore when absent.
func (p *Pylint) Score(snap *Snapshot) float64 {
	if len(snap.Lines) == 0 {
		return UnknownScore
	}

	match := pylintScoreRe.FindStringSubmatch(snap.Lines[len(snap.Lines)-1])
	if match == nil {
		return UnknownScore
	}

	score, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return UnknownScore
	}

	return score
}

// IsRelevant reports whether the stat line names a Python source file.
func (p *Pylint) IsRelevant(statLine string) bool {
	return statLineHasExtension(statLine, ".py")
}

// ErrorDelta returns per-rule occurrence deltas between two snapshots.
func (p *Pylint) ErrorDelta(before, after *Snapshot) ErrorDelta {
	return diffRuleCounts(before, after, p.mode)
}

// nonBlankLines splits combined backend output into its non-blank lines,
// preserving emitted order.
func nonBlankLines(output string) []string {
	var lines []string

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimRight(line, "\r"))
		}
	}

	return lines
}

// statLineHasExtension reports whether the path portion of a canonical
// "path | N ++--" stat line ends in one of the given extensions.
func statLineHasExtension(statLine string, extensions ...string) bool {
	path, _, found := strings.Cut(statLine, "|")
	if !found {
		return false
	}

	path = strings.TrimSpace(path)

	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}
