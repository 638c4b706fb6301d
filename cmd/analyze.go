package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotcommander/essayscore/internal/runner"
)

var analyzeDebug bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Show the detailed analysis of a single essay",
	Long: `Analyze one essay in depth. Alongside the score it prints every category's raw
percentage and weighted points, written feedback and suggestions.

With --debug the report also lists per-sentence relevance and coherence, the
overused words, grammar issues, paragraph structure and topic keywords.

Suggestion phrasing is randomized; pass --seed for repeatable output.`,
	Example: `  essayscore analyze essay.md
  essayscore analyze --debug --seed 7 -t "Climate change" essay.txt
  essayscore analyze -f markdown -o analysis.md essay.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd.Context(), args[0], analyzeDebug)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeDebug, "debug", false, "Include sentence scores, grammar issues and keywords")
}

func runAnalyze(ctx context.Context, path string, debug bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	debug = debug || cfg.Debug

	files, err := collectFiles(cfg, []string{path})
	if err != nil {
		return err
	}
	if len(files) != 1 {
		return fmt.Errorf("analyze takes a single essay, %s matched %d files", path, len(files))
	}

	report, err := scoreFiles(ctx, cfg, files, runner.Options{
		Concurrency: 1,
		Topic:       cfg.Topic,
		Detailed:    true,
		Debug:       debug,
		FailUnder:   cfg.FailUnder,
	})
	if err != nil {
		return err
	}

	if report.Failed() {
		exitFunc(exitFailed)
	}
	return nil
}
