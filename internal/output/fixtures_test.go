package output

import (
	"errors"
	"time"

	"github.com/dotcommander/essayscore/internal/cue"
	"github.com/dotcommander/essayscore/internal/essay"
	"github.com/dotcommander/essayscore/internal/runner"
	"github.com/dotcommander/essayscore/internal/scoring"
)

func sampleScore(overall int) *essay.CleanEssayScore {
	return &essay.CleanEssayScore{
		EssayTitle:   "Climate change",
		OverallScore: overall,
		ScoreBreakdown: scoring.WeightedScores{
			Grammar:       "17 / 20",
			Structure:     "16 / 20",
			Coherence:     "14 / 20",
			Relevance:     "12 / 15",
			Vocabulary:    "11 / 15",
			OverusedWords: "8 / 10",
		},
		ImprovementSuggestions: []string{"Use more varied vocabulary.", "Add examples.", "Vary sentence length."},
		Timestamp:              "2026-03-14 09:26",
	}
}

func sampleReport() *runner.Report {
	return &runner.Report{
		RunID:     "0b6c2f6e-3c1a-4b8e-9a51-3f1f0b7d2c44",
		StartedAt: time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC),
		Duration:  42 * time.Millisecond,
		FailUnder: 70,
		Results: []runner.Result{
			{File: "essays/good.md", Title: "Warming", Topic: "Climate change", Score: sampleScore(78), Tier: "B", Passed: true},
			{File: "essays/weak.md", Topic: "Climate change", Score: sampleScore(55), Tier: "C"},
			{
				File:   "essays/broken.md",
				Err:    errors.New("essays/broken.md: frontmatter does not match schema"),
				Schema: []cue.ValidationError{{File: "essays/broken.md", Field: "topic", Message: "incomplete value string"}},
			},
		},
	}
}

func detailedReport(withDebug bool) *runner.Report {
	b := scoring.ScoreBreakdown{Grammar: 85, Structure: 80, Coherence: 70, Relevance: 60, Vocabulary: 75, OverusedWords: 90}
	calc := scoring.NewCalculator(scoring.WithSeed(1))
	detail := &essay.EssayScore{
		EssayTitle:             "Climate change",
		OverallScore:           calc.Total(b),
		ScoreBreakdown:         b,
		WeightedScores:         calc.WeightedScores(b),
		Metrics:                calc.Metrics(b),
		Feedback:               calc.Feedback(calc.Total(b)),
		ImprovementSuggestions: calc.Suggestions(b),
		Timestamp:              "2026-03-14 09:26",
	}
	if withDebug {
		detail.Debug = &essay.DebugInfo{
			SentenceScores: []essay.SentenceScore{{Sentence: "The climate | is warming.", Relevance: 66.7, Coherence: 100}},
			TopicKeywords:  []string{"climate", "change"},
		}
	}
	return &runner.Report{
		RunID:     "run-1",
		StartedAt: time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC),
		Results: []runner.Result{
			{File: "essay.md", Topic: "Climate change", Score: sampleScore(77), Detail: detail, Tier: "B", Passed: true},
		},
	}
}
