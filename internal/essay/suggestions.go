package essay

import "github.com/dotcommander/essayscore/internal/types"

const (
	minSuggestions = 3
	maxSuggestions = 5
)

// suggestionOrder is the order in which weak categories produce suggestions.
var suggestionOrder = []types.Category{
	types.CategoryGrammar,
	types.CategoryStructure,
	types.CategoryCoherence,
	types.CategoryVocabulary,
	types.CategoryOverusedWords,
	types.CategoryRelevance,
}

var categorySuggestions = map[types.Category]string{
	types.CategoryGrammar:       "Review your essay for grammar errors such as subject-verb agreement, article usage and spelling.",
	types.CategoryStructure:     "Organize your essay into clear paragraphs with an introduction and a conclusion, and use transition words between ideas.",
	types.CategoryCoherence:     "Improve the logical flow between sentences by linking related ideas with connective words.",
	types.CategoryVocabulary:    "Use more varied and precise vocabulary to express your ideas.",
	types.CategoryOverusedWords: "Replace overused words such as \"very\", \"really\" and \"good\" with stronger alternatives.",
	types.CategoryRelevance:     "Keep your essay focused on the topic and refer back to its key ideas.",
}

var genericSuggestions = []string{
	"Support each main point with specific examples or evidence.",
	"Read your essay aloud to catch awkward phrasing before submitting.",
	"Vary your sentence length to keep the reader engaged.",
	"Make sure your conclusion ties back to your main argument.",
	"State your main argument clearly in the introduction.",
}

// buildSuggestions lists a suggestion for every category whose points fall
// below its threshold, padded with generic advice to at least three entries
// and capped at five.
func buildSuggestions(points map[types.Category]int) []string {
	out := make([]string, 0, maxSuggestions)
	for _, cat := range suggestionOrder {
		if points[cat] < cat.SuggestionThreshold() {
			out = append(out, categorySuggestions[cat])
		}
	}
	for _, g := range genericSuggestions {
		if len(out) >= minSuggestions {
			break
		}
		out = append(out, g)
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// fallbackSuggestions returns a fresh copy of the generic advice used when
// scoring could not run.
func fallbackSuggestions() []string {
	out := make([]string, minSuggestions)
	copy(out, genericSuggestions)
	return out
}
