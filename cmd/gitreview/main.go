// Package main provides the entry point for the gitreview CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitreview/cmd/gitreview/commands"
	"github.com/Sumatoshi-tech/gitreview/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gitreview",
		Short: "Gitreview - per-author code-quality attribution over git history",
		Long: `Gitreview walks backward through a repository's history, re-runs a
static-analysis tool at each step, and attributes quality change to the
authors whose commits caused it.

Commands:
  review    Walk the history and print the per-author report`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewReviewCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "gitreview %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
