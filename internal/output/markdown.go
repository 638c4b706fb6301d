package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dotcommander/essayscore/internal/essay"
	"github.com/dotcommander/essayscore/internal/runner"
	"github.com/dotcommander/essayscore/internal/types"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct {
	verbose bool
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(verbose bool) *MarkdownFormatter {
	return &MarkdownFormatter{verbose: verbose}
}

// Format writes a summary table followed by a section per essay.
func (f *MarkdownFormatter) Format(w io.Writer, report *runner.Report) error {
	var b strings.Builder

	b.WriteString("# Essay Score Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", report.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Run:** `%s`\n\n", report.RunID)
	fmt.Fprintf(&b, "**Duration:** %v\n\n", report.Duration.Round(time.Millisecond))

	mean, lo, hi := report.Stats()
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Essays | %d |\n", len(report.Results))
	fmt.Fprintf(&b, "| Scored | %d |\n", report.Scored())
	fmt.Fprintf(&b, "| Errors | %d |\n", report.Errored())
	fmt.Fprintf(&b, "| Mean score | %.1f |\n", mean)
	fmt.Fprintf(&b, "| Lowest | %d |\n", lo)
	fmt.Fprintf(&b, "| Highest | %d |\n", hi)
	if report.FailUnder > 0 {
		fmt.Fprintf(&b, "| Below %d | %d |\n", report.FailUnder, report.BelowThreshold())
	}
	b.WriteString("\n")

	b.WriteString("## Essays\n\n")
	if len(report.Results) == 0 {
		b.WriteString("*No essays found.*\n")
	}
	for _, res := range report.Results {
		f.writeResult(&b, res)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("error writing markdown: %w", err)
	}
	return nil
}

func (f *MarkdownFormatter) writeResult(b *strings.Builder, res runner.Result) {
	fmt.Fprintf(b, "### %s\n\n", res.File)

	if res.Err != nil {
		fmt.Fprintf(b, "**Error:** %s\n\n", escapePipes(res.Err.Error()))
		for _, e := range res.Schema {
			fmt.Fprintf(b, "- %s\n", e.String())
		}
		if len(res.Schema) > 0 {
			b.WriteString("\n")
		}
		return
	}

	score := res.Score
	fmt.Fprintf(b, "**Topic:** %s  \n", score.EssayTitle)
	if res.Title != "" && res.Title != score.EssayTitle {
		fmt.Fprintf(b, "**Title:** %s  \n", res.Title)
	}
	fmt.Fprintf(b, "**Score:** %d/100 (tier %s)  \n", score.OverallScore, res.Tier)
	fmt.Fprintf(b, "**Scored:** %s\n\n", score.Timestamp)

	b.WriteString("| Category | Points |\n")
	b.WriteString("|----------|--------|\n")
	for _, cat := range types.Categories {
		fmt.Fprintf(b, "| %s | %s |\n", cat.Label(), score.ScoreBreakdown.Get(cat))
	}
	b.WriteString("\n**Suggestions**\n\n")
	for _, s := range score.ImprovementSuggestions {
		fmt.Fprintf(b, "- %s\n", s)
	}
	b.WriteString("\n")

	if res.Detail != nil {
		f.writeDetail(b, res.Detail)
	}
}

func (f *MarkdownFormatter) writeDetail(b *strings.Builder, d *essay.EssayScore) {
	fmt.Fprintf(b, "#### Detailed analysis: %d/100\n\n", d.OverallScore)
	fmt.Fprintf(b, "%s\n\n", d.Feedback)
	b.WriteString("| Category | Raw | Points |\n")
	b.WriteString("|----------|-----|--------|\n")
	for _, m := range d.Metrics {
		fmt.Fprintf(b, "| %s | %.1f%% | %d / %d |\n", m.Name, m.Raw, m.Points, m.MaxPoints)
	}
	b.WriteString("\n")
	for _, s := range d.ImprovementSuggestions {
		fmt.Fprintf(b, "- %s\n", s)
	}
	b.WriteString("\n")

	if d.Debug == nil {
		return
	}
	b.WriteString("<details>\n<summary>Sentence scores</summary>\n\n")
	b.WriteString("| Sentence | Relevance | Coherence |\n")
	b.WriteString("|----------|-----------|-----------|\n")
	for _, s := range d.Debug.SentenceScores {
		fmt.Fprintf(b, "| %s | %.1f | %.1f |\n", escapePipes(s.Sentence), s.Relevance, s.Coherence)
	}
	b.WriteString("\n")

	// Issue lists can be long; only expand them on request.
	if f.verbose {
		for _, g := range d.Debug.GrammarIssues {
			fmt.Fprintf(b, "- **%s**: %s\n", g.Type, escapePipes(g.Description))
		}
		for _, o := range d.Debug.OverusedWords {
			fmt.Fprintf(b, "- \"%s\" used %d times, try: %s\n", o.Word, o.Count, strings.Join(o.Replacements, ", "))
		}
	}
	b.WriteString("</details>\n\n")
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
