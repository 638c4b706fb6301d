package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dotcommander/essayscore/internal/config"
	"github.com/dotcommander/essayscore/internal/cue"
	"github.com/dotcommander/essayscore/internal/essay"
	"github.com/dotcommander/essayscore/internal/scoring"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// exitFunc is swapped out in tests.
var exitFunc = os.Exit

// Exit codes.
const (
	exitError  = 1
	exitFailed = 2
)

var (
	rootPath     string
	configFile   string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
	topic        string
	concurrency  int
	seed         uint64
	failUnder    int
)

// stdout and stdin are swapped out in tests.
var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

var rootCmd = &cobra.Command{
	Use:   "essayscore",
	Short: "Score essays for grammar, structure, coherence, relevance and vocabulary",
	Long: `essayscore grades essays against a topic. Six analyzers (grammar, structure,
coherence, relevance, vocabulary and overused words) produce raw scores that are
weighted into a total out of 100, with a short list of improvement suggestions.

Essays are markdown or plain text files. A YAML frontmatter block may set the
topic, a display title and debug output:

  ---
  topic: Climate change
  title: A Warming World
  ---

Use "essayscore score" to grade files or directories and "essayscore analyze"
for the detailed per-category breakdown of a single essay.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. An interrupt cancels scoring in flight.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitFunc(exitError)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootPath, "root", "r", "", "Directory searched for essays when no paths are given")
	flags.StringVar(&configFile, "config", "", "Config file (default .essayscorerc.{json,yaml,yml})")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Suppress report and log output")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	flags.StringVarP(&outputFormat, "format", "f", "console", "Output format for reports (console|json|markdown)")
	flags.StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	flags.StringVarP(&topic, "topic", "t", "", "Topic for essays without a topic in their frontmatter")
	flags.IntVarP(&concurrency, "concurrency", "j", 4, "Number of essays scored in parallel")
	flags.Uint64Var(&seed, "seed", 0, "Seed for detailed suggestion phrasing (0 = random)")
	flags.IntVar(&failUnder, "fail-under", 0, "Exit with status 2 when an essay scores below this (0 disables)")

	bindFlag("quiet", "quiet")
	bindFlag("verbose", "verbose")
	bindFlag("format", "format")
	bindFlag("output", "output")
	bindFlag("topic", "topic")
	bindFlag("concurrency", "concurrency")
	bindFlag("seed", "seed")
	bindFlag("failUnder", "fail-under")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

// loadConfig reads configuration with flags already bound to viper.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(rootPath, configFile)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger for cfg: silent when quiet, development output
// when verbose, otherwise warnings and errors on stderr.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	switch {
	case cfg.Quiet:
		return zap.NewNop(), nil
	case cfg.Verbose:
		return zap.NewDevelopment()
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// newService wires a scoring service from configuration.
func newService(cfg *config.Config, logger *zap.Logger) *essay.Service {
	var calcOpts []scoring.CalculatorOption
	if cfg.Seed != 0 {
		calcOpts = append(calcOpts, scoring.WithSeed(cfg.Seed))
	}
	return essay.NewService(
		essay.WithLogger(logger),
		essay.WithCalculator(scoring.NewCalculator(calcOpts...)),
		essay.WithMinContentLength(cfg.MinContentLength),
		essay.WithMinDetailedContentLength(cfg.DetailedMinContentLength),
	)
}

func newValidator() (*cue.Validator, error) {
	v := cue.NewValidator()
	if err := v.LoadSchemas(); err != nil {
		return nil, fmt.Errorf("error loading schemas: %w", err)
	}
	return v, nil
}
