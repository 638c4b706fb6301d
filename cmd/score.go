package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dotcommander/essayscore/internal/config"
	"github.com/dotcommander/essayscore/internal/discovery"
	"github.com/dotcommander/essayscore/internal/outputters"
	"github.com/dotcommander/essayscore/internal/runner"
)

// stdinPath is the argument that reads an essay from standard input.
const stdinPath = "-"

var (
	scoreDetailed bool
	scoreDebug    bool
)

var scoreCmd = &cobra.Command{
	Use:   "score [paths...]",
	Short: "Score essay files and directories",
	Long: `Score one or more essays. Each path may be a file, a directory (searched with
the include and exclude globs) or "-" for standard input. With no paths the
configured root directory is searched.

Every essay gets a total out of 100, a weighted breakdown per category and a few
improvement suggestions. Files that cannot be read or have no topic are reported
as errors without stopping the run.

Exit status is 1 on configuration or I/O errors and 2 when any essay errored or
scored below --fail-under.`,
	Example: `  essayscore score essays/
  essayscore score -t "Climate change" draft.md
  cat essay.txt | essayscore score -t "Remote work" -
  essayscore score --fail-under 60 -f json -o report.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScore(cmd.Context(), args, scoreDetailed, scoreDebug)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().BoolVar(&scoreDetailed, "detailed", false, "Also run the detailed per-category analysis")
	scoreCmd.Flags().BoolVar(&scoreDebug, "debug", false, "Include debug data (implies --detailed)")
}

func runScore(ctx context.Context, args []string, detailed, debug bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	debug = debug || cfg.Debug

	files, err := collectFiles(cfg, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no essays found under %s", cfg.Root)
	}

	report, err := scoreFiles(ctx, cfg, files, runner.Options{
		Concurrency: cfg.Concurrency,
		Topic:       cfg.Topic,
		Detailed:    detailed || debug,
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

// scoreFiles runs the batch and writes the report.
func scoreFiles(ctx context.Context, cfg *config.Config, files []discovery.File, opts runner.Options) (*runner.Report, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	validator, err := newValidator()
	if err != nil {
		return nil, err
	}

	r := runner.New(newService(cfg, logger), validator, logger, opts)
	report, err := r.Run(ctx, files)
	if err != nil {
		return nil, err
	}
	logger.Info("scoring complete",
		zap.String("run_id", report.RunID),
		zap.Int("files", len(report.Results)),
		zap.Int("errored", report.Errored()))

	if err := outputters.NewOutputter(cfg, Version, stdout).Format(report); err != nil {
		return nil, fmt.Errorf("error formatting output: %w", err)
	}
	return report, nil
}

// collectFiles resolves command arguments to essay files. Directories are
// searched with the configured globs; no arguments means the config root.
func collectFiles(cfg *config.Config, args []string) ([]discovery.File, error) {
	if len(args) == 0 {
		return discoverDir(cfg, cfg.Root)
	}

	var files []discovery.File
	for _, arg := range args {
		if arg == stdinPath {
			f, err := readStdin()
			if err != nil {
				return nil, err
			}
			files = append(files, f)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if info.IsDir() {
			found, err := discoverDir(cfg, arg)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}

		f, err := discovery.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func discoverDir(cfg *config.Config, dir string) ([]discovery.File, error) {
	files, err := discovery.NewFileDiscovery(dir, cfg.Include, cfg.Exclude, cfg.FollowSymlinks).DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("error discovering essays in %s: %w", dir, err)
	}
	return files, nil
}

func readStdin() (discovery.File, error) {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return discovery.File{}, fmt.Errorf("reading standard input: %w", err)
	}
	return discovery.File{
		Path:     stdinPath,
		RelPath:  "stdin",
		Size:     int64(len(data)),
		Contents: string(data),
	}, nil
}
