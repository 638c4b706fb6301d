// Package runner scores batches of essay files concurrently and aggregates
// the results into a Report.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dotcommander/essayscore/internal/cue"
	"github.com/dotcommander/essayscore/internal/discovery"
	"github.com/dotcommander/essayscore/internal/essay"
	"github.com/dotcommander/essayscore/internal/frontend"
	"github.com/dotcommander/essayscore/internal/scoring"
)

// Result is the outcome for one essay file. Err is set when the file could
// not be turned into a submission; scoring itself never fails.
type Result struct {
	File     string
	Title    string
	Topic    string
	Score    *essay.CleanEssayScore
	Detail   *essay.EssayScore
	Tier     string
	Passed   bool
	Schema   []cue.ValidationError
	Err      error
	Duration time.Duration
}

// Overall returns the file's overall score, or -1 if it was not scored.
func (r Result) Overall() int {
	if r.Score == nil {
		return -1
	}
	return r.Score.OverallScore
}

// Report aggregates a batch run.
type Report struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	FailUnder int
	Results   []Result
}

// Scored counts results with a score.
func (r *Report) Scored() int {
	n := 0
	for _, res := range r.Results {
		if res.Score != nil {
			n++
		}
	}
	return n
}

// Errored counts results that could not be scored.
func (r *Report) Errored() int {
	return len(r.Results) - r.Scored()
}

// BelowThreshold counts scored results under FailUnder.
func (r *Report) BelowThreshold() int {
	n := 0
	for _, res := range r.Results {
		if res.Score != nil && !res.Passed {
			n++
		}
	}
	return n
}

// Stats returns the mean, min and max overall score of scored results.
func (r *Report) Stats() (mean float64, lo, hi int) {
	count := 0
	sum := 0
	for _, res := range r.Results {
		if res.Score == nil {
			continue
		}
		s := res.Score.OverallScore
		if count == 0 || s < lo {
			lo = s
		}
		if count == 0 || s > hi {
			hi = s
		}
		sum += s
		count++
	}
	if count == 0 {
		return 0, 0, 0
	}
	return float64(sum) / float64(count), lo, hi
}

// Failed reports whether any file errored or scored below the threshold.
func (r *Report) Failed() bool {
	return r.Errored() > 0 || r.BelowThreshold() > 0
}

// Options configures a Runner.
type Options struct {
	Concurrency int
	// Topic is used for files whose frontmatter has no topic.
	Topic string
	// Detailed also runs DetailedAnalysis for every file.
	Detailed  bool
	Debug     bool
	FailUnder int
}

// Runner scores essay files with a shared Service.
type Runner struct {
	svc       *essay.Service
	validator *cue.Validator
	logger    *zap.Logger
	opts      Options
	now       func() time.Time
}

// New creates a Runner. A nil validator skips schema checks.
func New(svc *essay.Service, validator *cue.Validator, logger *zap.Logger, opts Options) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Runner{svc: svc, validator: validator, logger: logger, opts: opts, now: time.Now}
}

// Run scores every file and returns results in input order. It only fails
// when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, files []discovery.File) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: r.now(),
		FailUnder: r.opts.FailUnder,
		Results:   make([]Result, len(files)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Results[i] = r.scoreFile(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring cancelled: %w", err)
	}

	report.Duration = r.now().Sub(report.StartedAt)
	r.logger.Debug("batch scored",
		zap.String("run_id", report.RunID),
		zap.Int("files", len(files)),
		zap.Int("errored", report.Errored()),
		zap.Duration("duration", report.Duration))
	return report, nil
}

// ScoreFile scores a single file synchronously.
func (r *Runner) ScoreFile(f discovery.File) Result {
	return r.scoreFile(f)
}

func (r *Runner) scoreFile(f discovery.File) Result {
	start := time.Now()
	res := Result{File: f.RelPath}

	sub, title, schemaErrs, err := r.Prepare(f)
	res.Title = title
	res.Topic = sub.Topic
	res.Schema = schemaErrs
	if err != nil {
		res.Err = err
		r.logger.Warn("essay file skipped", zap.String("file", f.RelPath), zap.Error(err))
		return res
	}

	score := r.svc.ScoreEssay(sub)
	res.Score = &score
	if r.opts.Detailed {
		detail := r.svc.DetailedAnalysis(sub)
		res.Detail = &detail
	}
	res.Tier = scoring.TierFromScore(score.OverallScore)
	res.Passed = score.OverallScore >= r.opts.FailUnder
	res.Duration = time.Since(start)

	r.logger.Debug("essay scored",
		zap.String("file", f.RelPath),
		zap.Int("overall", score.OverallScore),
		zap.Duration("duration", res.Duration))
	return res
}

// Prepare turns a file into a submission. Frontmatter values win over the
// runner's defaults. Schema violations are returned both as the slice and as
// an error.
func (r *Runner) Prepare(f discovery.File) (essay.Submission, string, []cue.ValidationError, error) {
	doc, err := frontend.ParseDocument(f.Contents, frontend.IsMarkdown(f.RelPath))
	if err != nil {
		return essay.Submission{}, "", nil, fmt.Errorf("%s: %w", f.RelPath, err)
	}

	sub := essay.Submission{
		Topic:   doc.Meta.Topic,
		Content: doc.Text,
		Debug:   doc.Meta.Debug || r.opts.Debug,
	}
	if strings.TrimSpace(sub.Topic) == "" {
		sub.Topic = r.opts.Topic
	}

	title := doc.Title()
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(f.RelPath), filepath.Ext(f.RelPath))
	}

	if r.validator != nil {
		data := make(map[string]any, len(doc.Frontmatter.Data)+1)
		for k, v := range doc.Frontmatter.Data {
			data[k] = v
		}
		if v := data["topic"]; (v == nil || v == "") && sub.Topic != "" {
			data["topic"] = sub.Topic
		}
		schemaErrs, err := r.validator.ValidateEssay(f.RelPath, data)
		if err != nil {
			return sub, title, nil, fmt.Errorf("%s: %w", f.RelPath, err)
		}
		if len(schemaErrs) > 0 {
			return sub, title, schemaErrs, fmt.Errorf("%s: frontmatter does not match schema: %s", f.RelPath, schemaErrs[0].String())
		}
	}

	if err := essay.Validate(sub, 1); err != nil {
		return sub, title, nil, fmt.Errorf("%s: %w", f.RelPath, err)
	}
	return sub, title, nil, nil
}
