package scoring

import (
	"fmt"

	"github.com/dotcommander/essayscore/internal/types"
)

// ScoreBreakdown holds the six raw analyzer scores, each in [0,100].
type ScoreBreakdown struct {
	Grammar       float64 `json:"grammar"`
	Structure     float64 `json:"structure"`
	Coherence     float64 `json:"coherence"`
	Relevance     float64 `json:"relevance"`
	Vocabulary    float64 `json:"vocabulary"`
	OverusedWords float64 `json:"overusedWords"`
}

// Get returns the raw score for a category.
func (b ScoreBreakdown) Get(c types.Category) float64 {
	switch c {
	case types.CategoryGrammar:
		return b.Grammar
	case types.CategoryStructure:
		return b.Structure
	case types.CategoryCoherence:
		return b.Coherence
	case types.CategoryRelevance:
		return b.Relevance
	case types.CategoryVocabulary:
		return b.Vocabulary
	case types.CategoryOverusedWords:
		return b.OverusedWords
	default:
		return 0
	}
}

// Set stores the raw score for a category.
func (b *ScoreBreakdown) Set(c types.Category, v float64) {
	switch c {
	case types.CategoryGrammar:
		b.Grammar = v
	case types.CategoryStructure:
		b.Structure = v
	case types.CategoryCoherence:
		b.Coherence = v
	case types.CategoryRelevance:
		b.Relevance = v
	case types.CategoryVocabulary:
		b.Vocabulary = v
	case types.CategoryOverusedWords:
		b.OverusedWords = v
	}
}

// WeightedScores renders each category as "<points> / <weight>".
type WeightedScores struct {
	Grammar       string `json:"grammar"`
	Structure     string `json:"structure"`
	Coherence     string `json:"coherence"`
	Relevance     string `json:"relevance"`
	Vocabulary    string `json:"vocabulary"`
	OverusedWords string `json:"overusedWords"`
}

// Get returns the formatted weighted score for a category.
func (w WeightedScores) Get(c types.Category) string {
	switch c {
	case types.CategoryGrammar:
		return w.Grammar
	case types.CategoryStructure:
		return w.Structure
	case types.CategoryCoherence:
		return w.Coherence
	case types.CategoryRelevance:
		return w.Relevance
	case types.CategoryVocabulary:
		return w.Vocabulary
	case types.CategoryOverusedWords:
		return w.OverusedWords
	default:
		return ""
	}
}

// Set stores the formatted weighted score for a category.
func (w *WeightedScores) Set(c types.Category, v string) {
	switch c {
	case types.CategoryGrammar:
		w.Grammar = v
	case types.CategoryStructure:
		w.Structure = v
	case types.CategoryCoherence:
		w.Coherence = v
	case types.CategoryRelevance:
		w.Relevance = v
	case types.CategoryVocabulary:
		w.Vocabulary = v
	case types.CategoryOverusedWords:
		w.OverusedWords = v
	}
}

// ScoringMetric represents a single category's contribution to the total
type ScoringMetric struct {
	Category  types.Category `json:"category"`
	Name      string         `json:"name"`
	Raw       float64        `json:"raw"`        // Raw 0-100 analyzer score
	Points    int            `json:"points"`     // Weighted points earned
	MaxPoints int            `json:"max_points"` // Category weight
	Passed    bool           `json:"passed"`     // Raw score met the suggestion threshold
	Note      string         `json:"note"`       // Optional note/reason
}

// TierFromScore returns the quality tier based on score
func TierFromScore(score int) string {
	switch {
	case score >= 85:
		return "A"
	case score >= 70:
		return "B"
	case score >= 50:
		return "C"
	case score >= 30:
		return "D"
	default:
		return "F"
	}
}

// FormatWeighted renders points out of weight as "<points> / <weight>".
func FormatWeighted(points, weight int) string {
	return fmt.Sprintf("%d / %d", points, weight)
}

// ParseWeighted parses a string produced by FormatWeighted.
func ParseWeighted(s string) (points, weight int, err error) {
	if _, err := fmt.Sscanf(s, "%d / %d", &points, &weight); err != nil {
		return 0, 0, fmt.Errorf("invalid weighted score %q: %w", s, err)
	}
	return points, weight, nil
}
