package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dotcommander/essayscore/internal/essay"
	"github.com/dotcommander/essayscore/internal/runner"
)

// ToolName is reported in machine-readable headers.
const ToolName = "essayscore"

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	indent  bool
	version string
}

// NewJSONFormatter creates a new JSONFormatter
func NewJSONFormatter(indent bool, version string) *JSONFormatter {
	return &JSONFormatter{indent: indent, version: version}
}

// Format writes the report as a single JSON document.
func (f *JSONFormatter) Format(w io.Writer, report *runner.Report) error {
	doc := BuildJSONReport(report, f.version)

	var (
		data []byte
		err  error
	)
	if f.indent {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("error writing JSON: %w", err)
	}
	return nil
}

// BuildJSONReport converts a run report to its JSON shape.
func BuildJSONReport(report *runner.Report, version string) JSONReport {
	mean, lo, hi := report.Stats()
	doc := JSONReport{
		Header: JSONHeader{
			Tool:      ToolName,
			Version:   version,
			RunID:     report.RunID,
			Timestamp: report.StartedAt.Format(time.RFC3339),
		},
		Summary: JSONSummary{
			TotalFiles:     len(report.Results),
			Scored:         report.Scored(),
			Errored:        report.Errored(),
			BelowThreshold: report.BelowThreshold(),
			FailUnder:      report.FailUnder,
			Mean:           mean,
			Min:            lo,
			Max:            hi,
			Duration:       report.Duration.Round(time.Millisecond).String(),
		},
		Results: make([]JSONResult, len(report.Results)),
	}

	for i, res := range report.Results {
		jr := JSONResult{
			File:   res.File,
			Title:  res.Title,
			Topic:  res.Topic,
			Tier:   res.Tier,
			Passed: res.Passed,
			Score:  res.Score,
			Detail: res.Detail,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		for _, e := range res.Schema {
			jr.SchemaErrors = append(jr.SchemaErrors, e.String())
		}
		doc.Results[i] = jr
	}
	return doc
}

// JSONReport represents the complete JSON report structure
type JSONReport struct {
	Header  JSONHeader   `json:"header"`
	Summary JSONSummary  `json:"summary"`
	Results []JSONResult `json:"results"`
}

// JSONHeader contains report metadata
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	RunID     string `json:"run_id"`
	Timestamp string `json:"timestamp"`
}

// JSONSummary contains summary statistics
type JSONSummary struct {
	TotalFiles     int     `json:"total_files"`
	Scored         int     `json:"scored"`
	Errored        int     `json:"errored"`
	BelowThreshold int     `json:"below_threshold"`
	FailUnder      int     `json:"fail_under"`
	Mean           float64 `json:"mean"`
	Min            int     `json:"min"`
	Max            int     `json:"max"`
	Duration       string  `json:"duration"`
}

// JSONResult represents a single essay's result
type JSONResult struct {
	File         string                 `json:"file"`
	Title        string                 `json:"title,omitempty"`
	Topic        string                 `json:"topic,omitempty"`
	Tier         string                 `json:"tier,omitempty"`
	Passed       bool                   `json:"passed"`
	Error        string                 `json:"error,omitempty"`
	SchemaErrors []string               `json:"schema_errors,omitempty"`
	Score        *essay.CleanEssayScore `json:"score,omitempty"`
	Detail       *essay.EssayScore      `json:"detail,omitempty"`
}
