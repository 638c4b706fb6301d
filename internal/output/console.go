package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dotcommander/essayscore/internal/essay"
	"github.com/dotcommander/essayscore/internal/runner"
	"github.com/dotcommander/essayscore/internal/types"
)

// ConsoleFormatter formats output for console display
type ConsoleFormatter struct {
	quiet    bool
	verbose  bool
	colorize bool
}

// NewConsoleFormatter creates a new ConsoleFormatter
func NewConsoleFormatter(quiet, verbose, colorize bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		quiet:    quiet,
		verbose:  verbose,
		colorize: colorize,
	}
}

func (f *ConsoleFormatter) style(color string) lipgloss.Style {
	if !f.colorize {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func (f *ConsoleFormatter) tierStyle(tier string) lipgloss.Style {
	switch tier {
	case "A", "B":
		return f.style("10") // green
	case "C":
		return f.style("11") // yellow
	default:
		return f.style("9") // red
	}
}

// Format writes one block per essay followed by a summary line.
func (f *ConsoleFormatter) Format(w io.Writer, report *runner.Report) error {
	if f.quiet {
		return nil
	}

	for i, res := range report.Results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f.printResult(w, res)
	}

	f.printSummary(w, report)
	return nil
}

func (f *ConsoleFormatter) printResult(w io.Writer, res runner.Result) {
	if res.Err != nil {
		fmt.Fprintf(w, "%s %s\n", f.style("9").Render("✗"), res.File)
		if len(res.Schema) > 0 {
			for _, e := range res.Schema {
				fmt.Fprintf(w, "    ✘ %s\n", e.String())
			}
		} else {
			fmt.Fprintf(w, "    ✘ %v\n", res.Err)
		}
		return
	}

	status := "✓"
	if !res.Passed {
		status = "✗"
	}
	tierStyle := f.tierStyle(res.Tier)
	fmt.Fprintf(w, "%s %s  %s  %s\n",
		tierStyle.Render(status),
		res.File,
		tierStyle.Render(fmt.Sprintf("%d/100 (%s)", res.Score.OverallScore, res.Tier)),
		f.style("8").Render(res.Score.EssayTitle))

	for _, cat := range types.Categories {
		fmt.Fprintf(w, "    %-16s %s\n", cat.Label(), res.Score.ScoreBreakdown.Get(cat))
	}

	fmt.Fprintln(w, "    Suggestions:")
	for _, s := range res.Score.ImprovementSuggestions {
		fmt.Fprintf(w, "      • %s\n", s)
	}

	if res.Detail != nil {
		f.printDetail(w, res.Detail)
	}
}

func (f *ConsoleFormatter) printDetail(w io.Writer, d *essay.EssayScore) {
	bold := f.style("12").Bold(f.colorize)
	fmt.Fprintf(w, "\n    %s %d/100\n", bold.Render("Detailed analysis:"), d.OverallScore)
	fmt.Fprintf(w, "    %s\n", d.Feedback)
	for _, m := range d.Metrics {
		mark := "✓"
		if !m.Passed {
			mark = "·"
		}
		fmt.Fprintf(w, "    %s %-16s %6.1f%%  %d / %d\n", mark, m.Name, m.Raw, m.Points, m.MaxPoints)
	}
	for _, s := range d.ImprovementSuggestions {
		fmt.Fprintf(w, "      • %s\n", s)
	}

	if d.Debug == nil {
		return
	}
	dbg := d.Debug
	dim := f.style("8")
	fmt.Fprintf(w, "\n    %s\n", bold.Render("Debug:"))
	fmt.Fprintf(w, "    paragraphs=%d introduction=%t conclusion=%t transitions=%s\n",
		dbg.Structure.ParagraphCount, dbg.Structure.HasIntroduction, dbg.Structure.HasConclusion,
		strings.Join(dbg.Structure.TransitionWords, ", "))
	fmt.Fprintf(w, "    topic keywords: %s\n", strings.Join(dbg.TopicKeywords, ", "))
	for _, s := range dbg.SentenceScores {
		fmt.Fprintf(w, "    %s rel=%5.1f coh=%5.1f  %s\n", dim.Render("›"), s.Relevance, s.Coherence, s.Sentence)
	}
	for _, g := range dbg.GrammarIssues {
		fmt.Fprintf(w, "    ✘ %s: %s\n", g.Type, g.Description)
	}
	for _, o := range dbg.OverusedWords {
		fmt.Fprintf(w, "    ⚠ %q ×%d → %s\n", o.Word, o.Count, strings.Join(o.Replacements, ", "))
	}
}

// printSummary prints the summary statistics
func (f *ConsoleFormatter) printSummary(w io.Writer, report *runner.Report) {
	if len(report.Results) == 0 {
		fmt.Fprintln(w, "No essays found.")
		return
	}

	mean, lo, hi := report.Stats()
	fmt.Fprintf(w, "\n%d essays, %d scored, %d errors, mean %.1f (min %d, max %d) (%v)\n",
		len(report.Results), report.Scored(), report.Errored(), mean, lo, hi,
		report.Duration.Round(time.Millisecond))

	if report.FailUnder > 0 && report.BelowThreshold() > 0 {
		fmt.Fprintf(w, "%s\n", f.style("9").Render(
			fmt.Sprintf("✗ %d below %d", report.BelowThreshold(), report.FailUnder)))
		return
	}
	if !report.Failed() && f.verbose {
		fmt.Fprintf(w, "%s\n", f.style("10").Bold(f.colorize).Render("✓ All essays scored"))
	}
}
