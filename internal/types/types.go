// Package types provides shared types used across the essayscore codebase.
// This package is at the bottom of the dependency graph and should not import
// any other internal packages to avoid circular dependencies.
package types

// Category names one of the six scored dimensions of an essay.
type Category string

// Category constants. The string values double as JSON keys in score breakdowns.
const (
	CategoryGrammar       Category = "grammar"
	CategoryStructure     Category = "structure"
	CategoryCoherence     Category = "coherence"
	CategoryRelevance     Category = "relevance"
	CategoryVocabulary    Category = "vocabulary"
	CategoryOverusedWords Category = "overusedWords"
)

// Categories lists every category in breakdown order.
var Categories = []Category{
	CategoryGrammar,
	CategoryStructure,
	CategoryCoherence,
	CategoryRelevance,
	CategoryVocabulary,
	CategoryOverusedWords,
}

// Weight is the fixed point budget per category. The six weights sum to 100.
func (c Category) Weight() int {
	switch c {
	case CategoryGrammar, CategoryStructure, CategoryCoherence:
		return 20
	case CategoryRelevance, CategoryVocabulary:
		return 15
	case CategoryOverusedWords:
		return 10
	default:
		return 0
	}
}

// Fallback raw scores substituted when an analyzer fails.
const (
	FallbackGrammar       = 75.0
	FallbackStructure     = 70.0
	FallbackCoherence     = 65.0
	FallbackRelevance     = 80.0
	FallbackVocabulary    = 70.0
	FallbackOverusedWords = 80.0
)

// SuggestionThreshold is the weighted-point value below which the primary
// scoring path emits the category's suggestion.
func (c Category) SuggestionThreshold() int {
	switch c {
	case CategoryGrammar:
		return 16
	case CategoryStructure, CategoryCoherence:
		return 14
	case CategoryRelevance:
		return 12
	case CategoryVocabulary:
		return 11
	case CategoryOverusedWords:
		return 8
	default:
		return 0
	}
}

// Label returns a human-readable category name.
func (c Category) Label() string {
	switch c {
	case CategoryGrammar:
		return "Grammar"
	case CategoryStructure:
		return "Structure"
	case CategoryCoherence:
		return "Coherence"
	case CategoryRelevance:
		return "Relevance"
	case CategoryVocabulary:
		return "Vocabulary"
	case CategoryOverusedWords:
		return "Overused Words"
	default:
		return string(c)
	}
}

// IssueType is the closed set of grammar issue kinds.
type IssueType string

const (
	IssueAgreement   IssueType = "subject-verb-agreement"
	IssueSpelling    IssueType = "spelling"
	IssuePronoun     IssueType = "pronoun"
	IssueArticle     IssueType = "article"
	IssuePunctuation IssueType = "punctuation"
)

// Penalty is the raw-score deduction applied per issue of this type.
func (t IssueType) Penalty() float64 {
	switch t {
	case IssueAgreement:
		return 8
	case IssuePronoun:
		return 6
	case IssueSpelling:
		return 5
	case IssueArticle:
		return 3
	case IssuePunctuation:
		return 2
	default:
		return 0
	}
}

// Content length minimums. The primary path and the detailed path disagree;
// both are kept so each path guards what it always guarded.
const (
	MinContentLength         = 50
	MinDetailedContentLength = 100
)

// Output format constants.
const (
	FormatConsole  = "console"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)
