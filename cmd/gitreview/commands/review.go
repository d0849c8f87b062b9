// Package commands implements CLI command handlers for gitreview.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitreview/internal/config"
	"github.com/Sumatoshi-tech/gitreview/internal/observability"
	"github.com/Sumatoshi-tech/gitreview/pkg/analysis"
	"github.com/Sumatoshi-tech/gitreview/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitreview/pkg/review"
	"github.com/Sumatoshi-tech/gitreview/pkg/shellout"
)

// ErrRepositoryLoad indicates a failure to open the git repository.
var ErrRepositoryLoad = errors.New("failed to load repository")

// metricsShutdownTimeout bounds the metrics server drain after the walk.
const metricsShutdownTimeout = 2 * time.Second

// ReviewCommand holds configuration for the review command.
type ReviewCommand struct {
	configPath   string
	cwd          string
	iterations   int
	tool         string
	significance string
	errorDelta   string
	format       string
	plotPath     string
	rcfile       string
	metricsAddr  string
	silent       bool
	verbose      bool
	noColor      bool
}

// NewReviewCommand creates the review command.
func NewReviewCommand() *cobra.Command {
	rc := &ReviewCommand{}

	cmd := &cobra.Command{
		Use:   "review [targets...]",
		Short: "Attribute quality change to authors across history",
		Long: `Review walks backward through the repository's commit history,
re-running the selected static-analysis tool whenever a commit touched
watched files, and reports the per-author quality deltas.

The walk hard-resets the working tree one commit at a time and does not
restore it afterwards. Run it on a disposable clone.`,
		RunE: rc.run,
	}

	cmd.Flags().StringVar(&rc.configPath, "config", "", "Explicit config file path (default: .gitreview.yaml in CWD or $HOME)")
	cmd.Flags().StringVar(&rc.cwd, "cwd", config.DefaultCwd, "Repository working directory to execute in")
	cmd.Flags().IntVar(&rc.iterations, "iterations", config.DefaultIterations, "History steps to perform")
	cmd.Flags().StringVar(&rc.tool, "tool", config.DefaultTool, fmt.Sprintf("Analysis tool to use (available: %s)", strings.Join(analysis.Names(), ", ")))
	cmd.Flags().StringVar(&rc.significance, "significance", config.DefaultSignificance, "Step acceptance policy: score-and-lines, lines-only")
	cmd.Flags().StringVar(&rc.errorDelta, "error-delta", config.DefaultErrorDelta, "Disappeared-rule handling: appeared, symmetric")
	cmd.Flags().StringVar(&rc.format, "format", config.DefaultFormat, "Report format: text, yaml")
	cmd.Flags().StringVar(&rc.plotPath, "plot", "", "Write an HTML score-timeline chart to this path")
	cmd.Flags().StringVar(&rc.rcfile, "rcfile", "", "Analysis config file copied into the working directory before the walk")
	cmd.Flags().StringVar(&rc.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the walk")
	cmd.Flags().BoolVar(&rc.silent, "silent", false, "Disable per-iteration progress output")
	cmd.Flags().BoolVarP(&rc.verbose, "verbose", "v", false, "Include per-commit finding diffs in the report")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored report output")

	return cmd
}

func (rc *ReviewCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := rc.loadConfig(cmd)
	if err != nil {
		return err
	}

	significance, err := review.ParseSignificance(cfg.Significance)
	if err != nil {
		return err
	}

	deltaMode, err := analysis.ParseDeltaMode(cfg.ErrorDelta)
	if err != nil {
		return err
	}

	tool, err := analysis.NewTool(cfg.Tool, analysis.Options{
		Workdir:   cfg.Cwd,
		Targets:   strings.Join(args, " "),
		Runner:    shellout.New(),
		DeltaMode: deltaMode,
	})
	if err != nil {
		return err
	}

	if cfg.RCFile != "" {
		err = copyInto(cfg.RCFile, cfg.Cwd)
		if err != nil {
			return fmt.Errorf("copy rcfile: %w", err)
		}
	}

	repo, err := gitlib.OpenRepository(cfg.Cwd)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRepositoryLoad, err)
	}
	defer repo.Free()

	metrics, stopMetrics, err := rc.startMetrics(cfg.MetricsAddr)
	if err != nil {
		return err
	}
	defer stopMetrics()

	walker := review.NewWalker(repo, tool,
		review.WithLogger(rc.progressLogger(cmd.ErrOrStderr())),
		review.WithMetrics(metrics),
		review.WithSignificance(significance),
		review.WithFindingsDiff(rc.verbose),
	)

	reports, err := walker.Walk(cmd.Context(), cfg.Iterations)
	if err != nil {
		return err
	}

	err = rc.writeReport(cfg, reports, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if cfg.Plot != "" {
		err = writePlotFile(cfg.Plot, walker.Timeline(), tool.Name())
		if err != nil {
			return err
		}
	}

	return nil
}

// loadConfig loads the layered configuration and applies explicit flag
// overrides on top.
func (rc *ReviewCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("cwd") {
		cfg.Cwd = rc.cwd
	}

	if flags.Changed("iterations") {
		cfg.Iterations = rc.iterations
	}

	if flags.Changed("tool") {
		cfg.Tool = rc.tool
	}

	if flags.Changed("significance") {
		cfg.Significance = rc.significance
	}

	if flags.Changed("error-delta") {
		cfg.ErrorDelta = rc.errorDelta
	}

	if flags.Changed("format") {
		cfg.Format = rc.format
	}

	if flags.Changed("plot") {
		cfg.Plot = rc.plotPath
	}

	if flags.Changed("rcfile") {
		cfg.RCFile = rc.rcfile
	}

	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = rc.metricsAddr
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (rc *ReviewCommand) progressLogger(w io.Writer) *slog.Logger {
	if rc.silent {
		return slog.New(slog.DiscardHandler)
	}

	return slog.New(slog.NewTextHandler(w, nil))
}

// startMetrics serves a Prometheus scrape endpoint for the duration of
// the walk when an address is configured.
func (rc *ReviewCommand) startMetrics(addr string) (review.Metrics, func(), error) {
	if addr == "" {
		return review.NopMetrics{}, func() {}, nil
	}

	metrics, handler, err := observability.NewMeterHandler()
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: time.Second}

	go func() {
		serveErr := server.ListenAndServe()
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("metrics server", "err", serveErr)
		}
	}()

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()

		_ = server.Shutdown(ctx)
	}

	return metrics, stop, nil
}

func (rc *ReviewCommand) writeReport(cfg *config.Config, reports []review.AuthorReport, w io.Writer) error {
	if cfg.Format == config.FormatYAML {
		return review.WriteYAML(reports, w)
	}

	review.Render(reports, w, review.RenderOptions{NoColor: rc.noColor, Verbose: rc.verbose})

	return nil
}

func writePlotFile(path string, timeline []review.TimelinePoint, toolName string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	return review.WritePlot(timeline, toolName, file)
}

// copyInto copies a file into the destination directory, keeping its
// base name. Analysis backends expect their config next to the sources.
func copyInto(src, dstDir string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dstDir, filepath.Base(src)), data, 0o644)
}
