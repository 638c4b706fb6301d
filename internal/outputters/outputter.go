package outputters

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/dotcommander/essayscore/internal/config"
	"github.com/dotcommander/essayscore/internal/output"
	"github.com/dotcommander/essayscore/internal/runner"
	"github.com/dotcommander/essayscore/internal/types"
)

// Formatter renders a report to a writer.
type Formatter interface {
	Format(w io.Writer, report *runner.Report) error
}

// FormatterFactory creates formatters by name.
type FormatterFactory interface {
	CreateFormatter(format string) (Formatter, error)
}

// DefaultFormatterFactory builds the console, json and markdown formatters.
type DefaultFormatterFactory struct {
	config   *config.Config
	version  string
	colorize bool
}

// NewDefaultFormatterFactory creates the standard factory.
func NewDefaultFormatterFactory(cfg *config.Config, version string, colorize bool) *DefaultFormatterFactory {
	return &DefaultFormatterFactory{config: cfg, version: version, colorize: colorize}
}

// CreateFormatter returns the formatter for format.
func (f *DefaultFormatterFactory) CreateFormatter(format string) (Formatter, error) {
	switch format {
	case types.FormatConsole:
		return output.NewConsoleFormatter(f.config.Quiet, f.config.Verbose, f.colorize), nil
	case types.FormatJSON:
		return output.NewJSONFormatter(true, f.version), nil
	case types.FormatMarkdown:
		return output.NewMarkdownFormatter(f.config.Verbose), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Outputter handles output formatting
type Outputter struct {
	config  *config.Config
	factory FormatterFactory
	stdout  io.Writer
}

// NewOutputter creates an Outputter writing to stdout unless the config names
// an output file. Console colors are enabled only on a terminal.
func NewOutputter(cfg *config.Config, version string, stdout io.Writer) *Outputter {
	colorize := cfg.Output == "" && isTerminal(stdout)
	return NewOutputterWithFactory(cfg, NewDefaultFormatterFactory(cfg, version, colorize), stdout)
}

// NewOutputterWithFactory creates an Outputter with a custom factory.
func NewOutputterWithFactory(cfg *config.Config, factory FormatterFactory, stdout io.Writer) *Outputter {
	return &Outputter{config: cfg, factory: factory, stdout: stdout}
}

// Format renders report in the configured format.
func (o *Outputter) Format(report *runner.Report) error {
	formatter, err := o.factory.CreateFormatter(o.config.Format)
	if err != nil {
		return err
	}

	if o.config.Output == "" {
		return formatter.Format(o.stdout, report)
	}

	f, err := os.Create(o.config.Output)
	if err != nil {
		return fmt.Errorf("error creating output file %s: %w", o.config.Output, err)
	}
	if err := formatter.Format(f, report); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error writing to file %s: %w", o.config.Output, err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
