package analysis

import (
	"context"
	"fmt"
)

// DefaultCppcheckTargets analyzes the whole working tree.
const DefaultCppcheckTargets = "."

// cppcheckFindingWeight converts a raw finding count into a score
// penalty: ten findings cost one point.
const cppcheckFindingWeight = 10.0

// cppcheckBaseScore is the score of a tree with no findings.
const cppcheckBaseScore = 10.0

// cppcheckTemplate forces a trailing parenthesized rule identifier on
// every finding line so delta extraction works backend-independently.
const cppcheckTemplate = "{file}:{line}: {severity}: {message} ({id})"

// Cppcheck is the finding-count-only variant: the backend emits raw
// findings with no built-in scalar score, so the score is synthesized
// from the number of findings.
type Cppcheck struct {
	workdir string
	targets string
	runner  Runner
	mode    DeltaMode
}

// NewCppcheck creates the cppcheck tool from registry options.
func NewCppcheck(opts Options) Tool {
	targets := opts.Targets
	if targets == "" {
		targets = DefaultCppcheckTargets
	}

	return &Cppcheck{
		workdir: opts.Workdir,
		targets: targets,
		runner:  opts.Runner,
		mode:    opts.DeltaMode,
	}
}

// Name returns the registry name.
func (c *Cppcheck) Name() string { return "cppcheck" }

// Run executes cppcheck against the working tree. Invocation failures
// degrade to an empty snapshot carrying the sentinel score.
func (c *Cppcheck) Run(ctx context.Context) *Snapshot {
	command := fmt.Sprintf("cppcheck --enable=all --template='%s' %s", cppcheckTemplate, c.targets)

	_, output, err := c.runner.Run(ctx, command, c.workdir)
	if err != nil {
		return &Snapshot{Score: UnknownScore}
	}

	snap := &Snapshot{Lines: nonBlankLines(output)}
	snap.Score = c.Score(snap)

	return snap
}

// Score synthesizes a score from the finding count. Lines without a rule
// token (progress chatter) do not count against the score.
func (c *Cppcheck) Score(snap *Snapshot) float64 {
	findings := 0

	for _, count := range ruleCounts(snap.Lines) {
		findings += count
	}

	return cppcheckBaseScore - float64(findings)/cppcheckFindingWeight
}

// IsRelevant reports whether the stat line names a C or C++ source file.
func (c *Cppcheck) IsRelevant(statLine string) bool {
	return statLineHasExtension(statLine, ".c", ".h", ".cc", ".cpp", ".hpp")
}

// ErrorDelta returns per-rule occurrence deltas between two snapshots.
func (c *Cppcheck) ErrorDelta(before, after *Snapshot) ErrorDelta {
	return diffRuleCounts(before, after, c.mode)
}
