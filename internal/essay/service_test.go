package essay

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dotcommander/essayscore/internal/analysis"
	"github.com/dotcommander/essayscore/internal/scoring"
	"github.com/dotcommander/essayscore/internal/types"
)

const sampleEssay = `Technology has changed education in many ways. Students now learn with computers and online resources.

First, technology gives students access to information. However, it can also distract them from their studies.

In conclusion, technology in education brings both benefits and challenges for every student.`

var fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func newTestService(opts ...Option) *Service {
	base := []Option{WithClock(fixedClock), WithCalculator(scoring.NewCalculator(scoring.WithSeed(1)))}
	return NewService(append(base, opts...)...)
}

func sampleSubmission() Submission {
	return Submission{Topic: "Technology in education", Content: sampleEssay}
}

func sumPoints(t *testing.T, w scoring.WeightedScores) int {
	t.Helper()
	total := 0
	for _, cat := range types.Categories {
		points, weight, err := scoring.ParseWeighted(w.Get(cat))
		require.NoError(t, err, "category %s", cat)
		assert.Equal(t, cat.Weight(), weight, "denominator of %s", cat)
		assert.GreaterOrEqual(t, points, 0)
		assert.LessOrEqual(t, points, weight)
		total += points
	}
	return total
}

func TestScoreEssay_OverallIsSumOfBreakdown(t *testing.T) {
	res := newTestService().ScoreEssay(sampleSubmission())

	assert.Equal(t, "Technology in education", res.EssayTitle)
	assert.Equal(t, sumPoints(t, res.ScoreBreakdown), res.OverallScore)
	assert.GreaterOrEqual(t, res.OverallScore, 0)
	assert.LessOrEqual(t, res.OverallScore, 100)
	assert.Equal(t, "2026-03-14 09:26", res.Timestamp)
	assert.GreaterOrEqual(t, len(res.ImprovementSuggestions), minSuggestions)
	assert.LessOrEqual(t, len(res.ImprovementSuggestions), maxSuggestions)
}

func TestScoreEssay_Deterministic(t *testing.T) {
	svc := newTestService()
	first := svc.ScoreEssay(sampleSubmission())
	second := svc.ScoreEssay(sampleSubmission())
	assert.Equal(t, first, second)
}

func TestScoreEssay_ConcurrentCallsAgree(t *testing.T) {
	svc := newTestService()
	want := svc.ScoreEssay(sampleSubmission())

	var wg sync.WaitGroup
	results := make([]CleanEssayScore, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = svc.ScoreEssay(sampleSubmission())
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestScoreEssay_InvalidSubmissionsFallBack(t *testing.T) {
	tests := []struct {
		name      string
		sub       Submission
		wantTitle string
	}{
		{"short content", Submission{Topic: "Cats", Content: "Too short."}, "Cats"},
		{"empty content", Submission{Topic: "Cats"}, "Cats"},
		{"missing topic", Submission{Content: sampleEssay}, untitledEssay},
		{"whitespace padding does not count", Submission{Topic: "Cats", Content: "  short  " + strings.Repeat(" ", 60)}, "Cats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestService().ScoreEssay(tt.sub)

			assert.Equal(t, tt.wantTitle, res.EssayTitle)
			assert.Equal(t, 71, res.OverallScore)
			assert.Equal(t, "15 / 20", res.ScoreBreakdown.Grammar)
			assert.Equal(t, "14 / 20", res.ScoreBreakdown.Structure)
			assert.Equal(t, "13 / 20", res.ScoreBreakdown.Coherence)
			assert.Equal(t, "11 / 15", res.ScoreBreakdown.Relevance)
			assert.Equal(t, "10 / 15", res.ScoreBreakdown.Vocabulary)
			assert.Equal(t, "8 / 10", res.ScoreBreakdown.OverusedWords)
			assert.Len(t, res.ImprovementSuggestions, minSuggestions)
			assert.Equal(t, sumPoints(t, res.ScoreBreakdown), res.OverallScore)
		})
	}
}

var errBoom = errors.New("boom")

// breakSuite makes one analyzer fail, either by error or by panic.
func breakSuite(cat types.Category, panics bool) Suite {
	fail := func() error {
		if panics {
			panic("analyzer exploded")
		}
		return errBoom
	}
	s := DefaultSuite()
	switch cat {
	case types.CategoryGrammar:
		s.Grammar = func(string) (analysis.GrammarAnalysis, error) { return analysis.GrammarAnalysis{}, fail() }
	case types.CategoryStructure:
		s.Structure = func(string) (analysis.StructureAnalysis, error) { return analysis.StructureAnalysis{}, fail() }
	case types.CategoryCoherence:
		s.Coherence = func(string) (analysis.CoherenceAnalysis, error) { return analysis.CoherenceAnalysis{}, fail() }
	case types.CategoryRelevance:
		s.Relevance = func(string, string) (analysis.RelevanceAnalysis, error) { return analysis.RelevanceAnalysis{}, fail() }
	case types.CategoryVocabulary:
		s.Vocabulary = func(string) (float64, error) { return 0, fail() }
	case types.CategoryOverusedWords:
		s.OverusedWords = func(string) (analysis.OverusedAnalysis, error) { return analysis.OverusedAnalysis{}, fail() }
	}
	return s
}

var fallbackRaw = map[types.Category]float64{
	types.CategoryGrammar:       types.FallbackGrammar,
	types.CategoryStructure:     types.FallbackStructure,
	types.CategoryCoherence:     types.FallbackCoherence,
	types.CategoryRelevance:     types.FallbackRelevance,
	types.CategoryVocabulary:    types.FallbackVocabulary,
	types.CategoryOverusedWords: types.FallbackOverusedWords,
}

func TestScoreEssay_AnalyzerFailureIsIsolated(t *testing.T) {
	baseline := newTestService().ScoreEssay(sampleSubmission())

	for _, cat := range types.Categories {
		for _, panics := range []bool{false, true} {
			name := string(cat) + "/error"
			if panics {
				name = string(cat) + "/panic"
			}
			t.Run(name, func(t *testing.T) {
				core, logs := observer.New(zapcore.ErrorLevel)
				svc := newTestService(WithSuite(breakSuite(cat, panics)), WithLogger(zap.New(core)))

				res := svc.ScoreEssay(sampleSubmission())

				wantPoints := scoring.WeightedPoints(fallbackRaw[cat], cat)
				assert.Equal(t, scoring.FormatWeighted(wantPoints, cat.Weight()), res.ScoreBreakdown.Get(cat))
				for _, other := range types.Categories {
					if other != cat {
						assert.Equal(t, baseline.ScoreBreakdown.Get(other), res.ScoreBreakdown.Get(other), "category %s", other)
					}
				}
				assert.Equal(t, sumPoints(t, res.ScoreBreakdown), res.OverallScore)

				entries := logs.FilterField(zap.String("category", string(cat))).All()
				require.Len(t, entries, 1)
				assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
			})
		}
	}
}

func TestScoreEssay_NilAnalyzerFallsBack(t *testing.T) {
	suite := DefaultSuite()
	suite.Vocabulary = nil
	res := newTestService(WithSuite(suite)).ScoreEssay(sampleSubmission())

	assert.Equal(t, "11 / 15", res.ScoreBreakdown.Vocabulary)
}

func TestScoreEssay_OutOfRangeScoresAreClamped(t *testing.T) {
	suite := DefaultSuite()
	suite.Grammar = func(string) (analysis.GrammarAnalysis, error) {
		return analysis.GrammarAnalysis{Score: 250}, nil
	}
	suite.Structure = func(string) (analysis.StructureAnalysis, error) {
		return analysis.StructureAnalysis{Score: -30}, nil
	}
	res := newTestService(WithSuite(suite)).ScoreEssay(sampleSubmission())

	assert.Equal(t, "20 / 20", res.ScoreBreakdown.Grammar)
	assert.Equal(t, "0 / 20", res.ScoreBreakdown.Structure)
}

func TestScoreEssay_PathologicalInputs(t *testing.T) {
	inputs := map[string]string{
		"punctuation only": strings.Repeat("!?.", 30),
		"one long token":   strings.Repeat("a", 500),
		"repeated filler":  strings.Repeat("very really good thing stuff ", 40),
		"digits":           strings.Repeat("1234567890 ", 10),
		"unicode":          strings.Repeat("Élan vital über café naïve. ", 5),
		"no punctuation":   strings.Repeat("the quick brown fox jumps over the lazy dog ", 5),
	}

	svc := newTestService()
	for name, content := range inputs {
		t.Run(name, func(t *testing.T) {
			res := svc.ScoreEssay(Submission{Topic: "Anything at all", Content: content})

			assert.Equal(t, sumPoints(t, res.ScoreBreakdown), res.OverallScore)
			assert.GreaterOrEqual(t, len(res.ImprovementSuggestions), minSuggestions)
			assert.LessOrEqual(t, len(res.ImprovementSuggestions), maxSuggestions)
		})
	}
}

func TestBuildSuggestions(t *testing.T) {
	t.Run("strong essay is padded with generic advice", func(t *testing.T) {
		points := map[types.Category]int{}
		for _, cat := range types.Categories {
			points[cat] = cat.Weight()
		}
		got := buildSuggestions(points)
		assert.Equal(t, genericSuggestions[:minSuggestions], got)
	})

	t.Run("weak essay is capped in priority order", func(t *testing.T) {
		got := buildSuggestions(map[types.Category]int{})
		require.Len(t, got, maxSuggestions)
		for i, cat := range suggestionOrder[:maxSuggestions] {
			assert.Equal(t, categorySuggestions[cat], got[i])
		}
		assert.NotContains(t, got, categorySuggestions[types.CategoryRelevance])
	})

	t.Run("threshold is strict", func(t *testing.T) {
		points := map[types.Category]int{}
		for _, cat := range types.Categories {
			points[cat] = cat.SuggestionThreshold()
		}
		points[types.CategoryCoherence] = types.CategoryCoherence.SuggestionThreshold() - 1
		got := buildSuggestions(points)
		require.Len(t, got, minSuggestions)
		assert.Equal(t, categorySuggestions[types.CategoryCoherence], got[0])
	})
}

func TestDetailedAnalysis(t *testing.T) {
	calc := scoring.NewCalculator(scoring.WithSeed(1))
	res := newTestService().DetailedAnalysis(sampleSubmission())

	assert.Equal(t, calc.Total(res.ScoreBreakdown), res.OverallScore)
	assert.Equal(t, calc.WeightedScores(res.ScoreBreakdown), res.WeightedScores)
	assert.Equal(t, calc.Feedback(res.OverallScore), res.Feedback)
	assert.Len(t, res.Metrics, len(types.Categories))
	assert.NotEmpty(t, res.ImprovementSuggestions)
	assert.Nil(t, res.Debug)
}

func TestDetailedAnalysis_Debug(t *testing.T) {
	sub := sampleSubmission()
	sub.Debug = true
	res := newTestService().DetailedAnalysis(sub)

	require.NotNil(t, res.Debug)
	assert.Len(t, res.Debug.SentenceScores, 5)
	assert.Equal(t, 3, res.Debug.Structure.ParagraphCount)
	assert.Contains(t, res.Debug.TopicKeywords, "technology")
	last := res.Debug.SentenceScores[len(res.Debug.SentenceScores)-1]
	assert.Equal(t, 100.0, last.Coherence)
}

func TestDetailedAnalysis_FallsBackAsAWhole(t *testing.T) {
	want := scoring.ScoreBreakdown{
		Grammar:       types.FallbackGrammar,
		Structure:     types.FallbackStructure,
		Coherence:     types.FallbackCoherence,
		Relevance:     types.FallbackRelevance,
		Vocabulary:    types.FallbackVocabulary,
		OverusedWords: types.FallbackOverusedWords,
	}

	t.Run("content below detailed minimum", func(t *testing.T) {
		content := strings.Repeat("Cats are great pets. ", 4)
		require.Less(t, len(strings.TrimSpace(content)), types.MinDetailedContentLength)
		require.GreaterOrEqual(t, len(strings.TrimSpace(content)), types.MinContentLength)

		res := newTestService().DetailedAnalysis(Submission{Topic: "Cats", Content: content})
		assert.Equal(t, want, res.ScoreBreakdown)
		assert.Len(t, res.ImprovementSuggestions, minSuggestions)
	})

	t.Run("one analyzer errors", func(t *testing.T) {
		res := newTestService(WithSuite(breakSuite(types.CategoryCoherence, false))).DetailedAnalysis(sampleSubmission())
		assert.Equal(t, want, res.ScoreBreakdown)
	})

	t.Run("one analyzer panics", func(t *testing.T) {
		res := newTestService(WithSuite(breakSuite(types.CategoryGrammar, true))).DetailedAnalysis(sampleSubmission())
		assert.Equal(t, want, res.ScoreBreakdown)
		assert.Equal(t, scoring.NewCalculator().Total(want), res.OverallScore)
	})
}

func TestValidate(t *testing.T) {
	err := Validate(Submission{Topic: "Cats", Content: "short"}, 50)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "content", verr.Field)

	err = Validate(Submission{Content: sampleEssay}, 50)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "topic", verr.Field)

	assert.NoError(t, Validate(sampleSubmission(), 50))
}
