package review

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// shortHashLen is the abbreviated commit hash length used in verbose
// step detail.
const shortHashLen = 8

// RenderOptions controls the text report.
type RenderOptions struct {
	NoColor bool
	Verbose bool
}

// Render writes the per-author attribution report as a table followed by
// each author's rule histogram. The format is for humans, not machines.
func Render(reports []AuthorReport, w io.Writer, opts RenderOptions) {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Author", "Score Delta", "Changes", "Score / Change", "Commits"})

	for i := range reports {
		report := &reports[i]
		tbl.AppendRow(table.Row{
			report.Author,
			colorScore(report.TotalScore(), opts.NoColor),
			humanize.Comma(int64(report.TotalChanges())),
			fmt.Sprintf("%.5f", report.ScorePerChange()),
			len(report.Steps),
		})
	}

	fmt.Fprintln(w, tbl.Render())

	for i := range reports {
		renderAuthorDetail(&reports[i], w, opts)
	}
}

func renderAuthorDetail(report *AuthorReport, w io.Writer, opts RenderOptions) {
	histogram := report.ErrorHistogram()
	if len(histogram) > 0 {
		fmt.Fprintf(w, "\n%s\n", report.Author)

		names := make([]string, 0, len(histogram))
		for name := range histogram {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			fmt.Fprintf(w, "  %s: %v\n", name, histogram[name])
		}
	}

	if !opts.Verbose {
		return
	}

	for _, step := range report.Steps {
		fmt.Fprintf(w, "  %s %+.3f (%d lines)\n", shortHash(step.CommitHash), step.ScoreDelta, step.LinesChanged)

		for _, line := range step.AddedFindings {
			fmt.Fprintf(w, "    + %s\n", line)
		}

		for _, line := range step.RemovedFindings {
			fmt.Fprintf(w, "    - %s\n", line)
		}
	}
}

func colorScore(score float64, noColor bool) string {
	text := fmt.Sprintf("%+.3f", score)
	if noColor {
		return text
	}

	if score > 0 {
		return color.New(color.FgGreen).Sprint(text)
	}

	if score < 0 {
		return color.New(color.FgRed).Sprint(text)
	}

	return text
}

func shortHash(hash string) string {
	if len(hash) <= shortHashLen {
		return hash
	}

	return hash[:shortHashLen]
}

// yamlStep mirrors CommitStep for serialization.
type yamlStep struct {
	Commit       string         `yaml:"commit"`
	LinesChanged int            `yaml:"lines_changed"`
	ScoreDelta   float64        `yaml:"score_delta"`
	Errors       map[string]int `yaml:"errors,omitempty"`
}

// yamlReport mirrors AuthorReport plus its derived metrics.
type yamlReport struct {
	Author         string           `yaml:"author"`
	TotalScore     float64          `yaml:"total_score"`
	TotalChanges   int              `yaml:"total_changes"`
	ScorePerChange float64          `yaml:"score_per_change"`
	Errors         map[string][]int `yaml:"errors,omitempty"`
	Steps          []yamlStep       `yaml:"steps"`
}

// WriteYAML writes the report in a machine-readable YAML form.
func WriteYAML(reports []AuthorReport, w io.Writer) error {
	out := make([]yamlReport, 0, len(reports))

	for i := range reports {
		report := &reports[i]

		steps := make([]yamlStep, 0, len(report.Steps))
		for _, step := range report.Steps {
			steps = append(steps, yamlStep{
				Commit:       step.CommitHash,
				LinesChanged: step.LinesChanged,
				ScoreDelta:   step.ScoreDelta,
				Errors:       step.Errors,
			})
		}

		out = append(out, yamlReport{
			Author:         report.Author,
			TotalScore:     report.TotalScore(),
			TotalChanges:   report.TotalChanges(),
			ScorePerChange: report.ScorePerChange(),
			Errors:         report.ErrorHistogram(),
			Steps:          steps,
		})
	}

	encoder := yaml.NewEncoder(w)
	defer func() {
		_ = encoder.Close()
	}()

	err := encoder.Encode(out)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}
