package scoring

import (
	"testing"

	"github.com/dotcommander/essayscore/internal/types"
)

func perfectBreakdown() ScoreBreakdown {
	return ScoreBreakdown{100, 100, 100, 100, 100, 100}
}

func TestWeightedPoints(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		cat  types.Category
		want int
	}{
		{"full grammar", 100, types.CategoryGrammar, 20},
		{"full relevance", 100, types.CategoryRelevance, 15},
		{"full overused", 100, types.CategoryOverusedWords, 10},
		{"half rounds up", 52.5, types.CategoryGrammar, 11},
		{"vocabulary 70", 70, types.CategoryVocabulary, 11},
		{"zero", 0, types.CategoryCoherence, 0},
		{"negative clamps to zero", -40, types.CategoryStructure, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeightedPoints(tt.raw, tt.cat); got != tt.want {
				t.Errorf("WeightedPoints(%v, %s) = %d, want %d", tt.raw, tt.cat, got, tt.want)
			}
		})
	}
}

func TestCalculator_WeightedScores(t *testing.T) {
	c := NewCalculator(WithSeed(1))
	w := c.WeightedScores(perfectBreakdown())

	want := WeightedScores{
		Grammar:       "20 / 20",
		Structure:     "20 / 20",
		Coherence:     "20 / 20",
		Relevance:     "15 / 15",
		Vocabulary:    "15 / 15",
		OverusedWords: "10 / 10",
	}
	if w != want {
		t.Errorf("WeightedScores = %+v, want %+v", w, want)
	}
}

func TestCalculator_TotalRoundsOnce(t *testing.T) {
	c := NewCalculator(WithSeed(1))
	b := ScoreBreakdown{Grammar: 52.5, Structure: 52.5}

	if got := c.Total(b); got != 21 {
		t.Errorf("Total = %d, want 21", got)
	}

	perCategory := 0
	for _, cat := range types.Categories {
		perCategory += WeightedPoints(b.Get(cat), cat)
	}
	if perCategory != 22 {
		t.Errorf("per-category sum = %d, want 22", perCategory)
	}

	if got := c.Total(perfectBreakdown()); got != 100 {
		t.Errorf("Total(perfect) = %d, want 100", got)
	}
}

func TestCalculator_Feedback(t *testing.T) {
	c := NewCalculator(WithSeed(1))
	seen := map[string]int{}
	for _, total := range []int{100, 90, 89, 80, 79, 70, 69, 60, 59, 0} {
		seen[c.Feedback(total)]++
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 distinct feedback tiers, got %d", len(seen))
	}
	if c.Feedback(90) != c.Feedback(100) {
		t.Error("90 and 100 should share a tier")
	}
	if c.Feedback(89) == c.Feedback(90) {
		t.Error("89 and 90 should be different tiers")
	}
}

func TestCalculator_Suggestions(t *testing.T) {
	b := ScoreBreakdown{Grammar: 50, Structure: 90, Coherence: 79.9, Relevance: 80, Vocabulary: 10, OverusedWords: 100}

	first := NewCalculator(WithSeed(42)).Suggestions(b)
	second := NewCalculator(WithSeed(42)).Suggestions(b)

	if len(first) != 3 {
		t.Fatalf("Suggestions len = %d, want 3 (grammar, coherence, vocabulary)", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("seeded suggestions differ at %d: %q vs %q", i, first[i], second[i])
		}
	}

	order := []types.Category{types.CategoryGrammar, types.CategoryCoherence, types.CategoryVocabulary}
	for i, cat := range order {
		if !contains(categoryPhrasings[cat], first[i]) {
			t.Errorf("suggestion %d = %q, not a %s phrasing", i, first[i], cat)
		}
	}
}

func TestCalculator_SuggestionsAllPassing(t *testing.T) {
	got := NewCalculator(WithSeed(7)).Suggestions(perfectBreakdown())
	if len(got) != 1 || got[0] != defaultPositiveSuggestion {
		t.Errorf("Suggestions = %v, want the default positive message", got)
	}
}

func TestCalculator_Metrics(t *testing.T) {
	metrics := NewCalculator().Metrics(ScoreBreakdown{Grammar: 85, Relevance: 40})
	if len(metrics) != len(types.Categories) {
		t.Fatalf("Metrics len = %d, want %d", len(metrics), len(types.Categories))
	}
	if m := metrics[0]; m.Category != types.CategoryGrammar || m.Points != 17 || m.MaxPoints != 20 || !m.Passed {
		t.Errorf("grammar metric = %+v", m)
	}
	if m := metrics[3]; m.Category != types.CategoryRelevance || m.Points != 6 || m.MaxPoints != 15 || m.Passed {
		t.Errorf("relevance metric = %+v", m)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
