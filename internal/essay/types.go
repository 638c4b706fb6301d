package essay

import (
	"github.com/dotcommander/essayscore/internal/analysis"
	"github.com/dotcommander/essayscore/internal/scoring"
)

// TimestampLayout is the minute-precision layout of score timestamps.
const TimestampLayout = "2006-01-02 15:04"

// Submission is one essay to score.
type Submission struct {
	Topic   string `json:"topic" yaml:"topic"`
	Content string `json:"content" yaml:"content"`
	Debug   bool   `json:"debug,omitempty" yaml:"debug"`
}

// CleanEssayScore is the response of the primary scoring path.
type CleanEssayScore struct {
	EssayTitle             string                 `json:"essayTitle"`
	OverallScore           int                    `json:"overallScore"`
	ScoreBreakdown         scoring.WeightedScores `json:"scoreBreakdown"`
	ImprovementSuggestions []string               `json:"improvementSuggestions"`
	Timestamp              string                 `json:"timestamp"`
}

// EssayScore is the response of the detailed analysis path.
type EssayScore struct {
	EssayTitle             string                  `json:"essayTitle"`
	OverallScore           int                     `json:"overallScore"`
	ScoreBreakdown         scoring.ScoreBreakdown  `json:"scoreBreakdown"`
	WeightedScores         scoring.WeightedScores  `json:"weightedScores"`
	Metrics                []scoring.ScoringMetric `json:"metrics"`
	Feedback               string                  `json:"feedback"`
	ImprovementSuggestions []string                `json:"improvementSuggestions"`
	Timestamp              string                  `json:"timestamp"`
	Debug                  *DebugInfo              `json:"debug,omitempty"`
}

// SentenceScore merges one sentence's relevance and coherence.
type SentenceScore struct {
	Sentence  string  `json:"sentence"`
	Relevance float64 `json:"relevance"`
	Coherence float64 `json:"coherence"`
}

// DebugInfo exposes the analyzers' intermediate results.
type DebugInfo struct {
	SentenceScores []SentenceScore            `json:"sentenceScores"`
	OverusedWords  []analysis.OverusedWord    `json:"overusedWords"`
	GrammarIssues  []analysis.GrammarIssue    `json:"grammarIssues"`
	Structure      analysis.StructureAnalysis `json:"structure"`
	TopicKeywords  []string                   `json:"topicKeywords"`
}
