package scoring

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dotcommander/essayscore/internal/textutil"
	"github.com/dotcommander/essayscore/internal/types"
)

// passThreshold is the raw score at or above which a category needs no suggestion
// on the detailed path.
const passThreshold = 80.0

// defaultPositiveSuggestion is used when every category passes.
const defaultPositiveSuggestion = "Great work! Keep refining your style and continue practicing with more challenging topics."

// categoryPhrasings holds the interchangeable suggestions per category. The
// detailed path picks one at random.
var categoryPhrasings = map[types.Category][]string{
	types.CategoryGrammar: {
		"Review your essay for grammatical errors such as subject-verb agreement and article usage.",
		"Proofread carefully: several sentences contain grammar or spelling mistakes.",
		"Read your essay aloud to catch grammar slips, misspellings and missing punctuation.",
	},
	types.CategoryStructure: {
		"Organize your essay into clear paragraphs with an introduction, body and conclusion.",
		"Use transition words to connect paragraphs and make the structure easier to follow.",
		"Open with a clear introduction and close with a conclusion that restates your main point.",
	},
	types.CategoryCoherence: {
		"Improve the flow between sentences by linking related ideas.",
		"Make sure each sentence builds on the previous one; connective words can help.",
		"Keep a consistent focus within paragraphs so your ideas connect logically.",
	},
	types.CategoryRelevance: {
		"Stay focused on the topic and support every point with topic-related examples.",
		"Refer back to the key terms of the topic throughout your essay.",
		"Remove tangents that do not directly address the topic.",
	},
	types.CategoryVocabulary: {
		"Expand your vocabulary with more precise and varied word choices.",
		"Avoid repeating the same words; use synonyms to add variety.",
		"Introduce more sophisticated vocabulary where it fits naturally.",
	},
	types.CategoryOverusedWords: {
		"Replace overused words like \"very\" and \"really\" with stronger alternatives.",
		"Cut filler words and choose more specific language.",
		"Swap weak, generic words for vivid, precise ones.",
	},
}

// Calculator converts raw scores into weighted strings, totals, feedback text
// and suggestions for the detailed analysis path.
type Calculator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// CalculatorOption configures a Calculator.
type CalculatorOption func(*Calculator)

// WithSeed makes suggestion phrasing reproducible.
func WithSeed(seed uint64) CalculatorOption {
	return func(c *Calculator) {
		c.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRand sets the randomness source used to pick suggestion phrasings.
func WithRand(rng *rand.Rand) CalculatorOption {
	return func(c *Calculator) {
		c.rng = rng
	}
}

// NewCalculator creates a Calculator seeded from the clock unless an option
// provides a source.
func NewCalculator(opts ...CalculatorOption) *Calculator {
	now := uint64(time.Now().UnixNano())
	c := &Calculator{rng: rand.New(rand.NewPCG(now, now>>1))}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WeightedPoints converts a raw 0-100 score into the category's point budget.
func WeightedPoints(raw float64, c types.Category) int {
	points := textutil.Round(raw / 100 * float64(c.Weight()))
	return max(0, points)
}

// WeightedScores formats every category as "<points> / <weight>".
func (c *Calculator) WeightedScores(b ScoreBreakdown) WeightedScores {
	var w WeightedScores
	for _, cat := range types.Categories {
		w.Set(cat, FormatWeighted(WeightedPoints(b.Get(cat), cat), cat.Weight()))
	}
	return w
}

// Total sums the unrounded weighted contributions and rounds once. It can
// differ by one from the sum of per-category rounded points.
func (c *Calculator) Total(b ScoreBreakdown) int {
	var sum float64
	for _, cat := range types.Categories {
		sum += b.Get(cat) / 100 * float64(cat.Weight())
	}
	return textutil.Round(textutil.Clamp(sum, 0, 100))
}

// Feedback returns the summary sentence for a total score.
func (c *Calculator) Feedback(total int) string {
	switch {
	case total >= 90:
		return "Excellent work! Your essay demonstrates strong writing skills across all areas."
	case total >= 80:
		return "Very good essay! With minor improvements, it could be excellent."
	case total >= 70:
		return "Good essay with a solid foundation. Focus on the suggested areas to improve."
	case total >= 60:
		return "Fair essay. Several areas need attention to strengthen your writing."
	default:
		return "Your essay needs significant improvement. Review the suggestions carefully."
	}
}

// Suggestions emits one randomly phrased suggestion per category whose raw
// score is below the pass threshold, or a single positive message.
func (c *Calculator) Suggestions(b ScoreBreakdown) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var suggestions []string
	for _, cat := range types.Categories {
		if b.Get(cat) >= passThreshold {
			continue
		}
		phrasings := categoryPhrasings[cat]
		suggestions = append(suggestions, phrasings[c.rng.IntN(len(phrasings))])
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, defaultPositiveSuggestion)
	}
	return suggestions
}

// Metrics returns the per-category breakdown used by detailed reports.
func (c *Calculator) Metrics(b ScoreBreakdown) []ScoringMetric {
	metrics := make([]ScoringMetric, 0, len(types.Categories))
	for _, cat := range types.Categories {
		raw := b.Get(cat)
		metrics = append(metrics, ScoringMetric{
			Category:  cat,
			Name:      cat.Label(),
			Raw:       raw,
			Points:    WeightedPoints(raw, cat),
			MaxPoints: cat.Weight(),
			Passed:    raw >= passThreshold,
		})
	}
	return metrics
}
