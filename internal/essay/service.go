// Package essay orchestrates the analyzers into a single essay score.
//
// Both entry points always return a well-formed result. ScoreEssay isolates
// each analyzer so that one failing category falls back to a fixed score
// while the others keep their real values. DetailedAnalysis is coarser: any
// failure replaces the whole result with a fallback score.
package essay

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dotcommander/essayscore/internal/analysis"
	"github.com/dotcommander/essayscore/internal/scoring"
	"github.com/dotcommander/essayscore/internal/textutil"
	"github.com/dotcommander/essayscore/internal/types"
)

const untitledEssay = "Untitled Essay"

// Suite is the set of analyzers a Service runs. Tests replace individual
// members to inject failures.
type Suite struct {
	Grammar       func(content string) (analysis.GrammarAnalysis, error)
	Structure     func(content string) (analysis.StructureAnalysis, error)
	Coherence     func(content string) (analysis.CoherenceAnalysis, error)
	Relevance     func(topic, content string) (analysis.RelevanceAnalysis, error)
	Vocabulary    func(content string) (float64, error)
	OverusedWords func(content string) (analysis.OverusedAnalysis, error)
}

// DefaultSuite wires the built-in analyzers.
func DefaultSuite() Suite {
	return Suite{
		Grammar:       analysis.AnalyzeGrammar,
		Structure:     analysis.AnalyzeStructure,
		Coherence:     analysis.AnalyzeCoherence,
		Relevance:     analysis.AnalyzeRelevance,
		Vocabulary:    analysis.AnalyzeVocabulary,
		OverusedWords: analysis.AnalyzeOverusedWords,
	}
}

// Service scores essays. It is safe for concurrent use.
type Service struct {
	suite              Suite
	calc               *scoring.Calculator
	logger             *zap.Logger
	now                func() time.Time
	minContent         int
	minDetailedContent int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used to report analyzer failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSuite replaces the analyzers.
func WithSuite(suite Suite) Option {
	return func(s *Service) {
		s.suite = suite
	}
}

// WithCalculator sets the calculator used by DetailedAnalysis.
func WithCalculator(c *scoring.Calculator) Option {
	return func(s *Service) {
		if c != nil {
			s.calc = c
		}
	}
}

// WithClock sets the time source for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMinContentLength overrides the minimum content length of ScoreEssay.
func WithMinContentLength(n int) Option {
	return func(s *Service) {
		s.minContent = n
	}
}

// WithMinDetailedContentLength overrides the minimum content length of
// DetailedAnalysis.
func WithMinDetailedContentLength(n int) Option {
	return func(s *Service) {
		s.minDetailedContent = n
	}
}

// NewService creates a Service with the default analyzers and a no-op logger.
func NewService(opts ...Option) *Service {
	s := &Service{
		suite:              DefaultSuite(),
		logger:             zap.NewNop(),
		now:                time.Now,
		minContent:         types.MinContentLength,
		minDetailedContent: types.MinDetailedContentLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.calc == nil {
		s.calc = scoring.NewCalculator()
	}
	return s
}

// ScoreEssay scores a submission. It never fails: invalid submissions and
// unexpected panics yield a fixed fallback score, and a failing analyzer only
// replaces its own category.
func (s *Service) ScoreEssay(sub Submission) (result CleanEssayScore) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("essay scoring failed, using fallback score", zap.Any("panic", r))
			result = s.fallbackScore(sub.Topic)
		}
	}()

	if err := Validate(sub, s.minContent); err != nil {
		s.logger.Warn("essay submission rejected, using fallback score", zap.Error(err))
		return s.fallbackScore(sub.Topic)
	}

	raw := s.rawScores(sub)

	var breakdown scoring.WeightedScores
	points := make(map[types.Category]int, len(types.Categories))
	overall := 0
	for _, cat := range types.Categories {
		p := scoring.WeightedPoints(raw.Get(cat), cat)
		points[cat] = p
		overall += p
		breakdown.Set(cat, scoring.FormatWeighted(p, cat.Weight()))
	}

	return CleanEssayScore{
		EssayTitle:             title(sub.Topic),
		OverallScore:           overall,
		ScoreBreakdown:         breakdown,
		ImprovementSuggestions: buildSuggestions(points),
		Timestamp:              s.timestamp(),
	}
}

// rawScores runs every analyzer under its own guard.
func (s *Service) rawScores(sub Submission) scoring.ScoreBreakdown {
	content := sub.Content
	return scoring.ScoreBreakdown{
		Grammar: s.guard(types.CategoryGrammar, types.FallbackGrammar, func() (float64, error) {
			r, err := s.suite.Grammar(content)
			return r.Score, err
		}),
		Structure: s.guard(types.CategoryStructure, types.FallbackStructure, func() (float64, error) {
			r, err := s.suite.Structure(content)
			return r.Score, err
		}),
		Coherence: s.guard(types.CategoryCoherence, types.FallbackCoherence, func() (float64, error) {
			r, err := s.suite.Coherence(content)
			return r.Score, err
		}),
		Relevance: s.guard(types.CategoryRelevance, types.FallbackRelevance, func() (float64, error) {
			r, err := s.suite.Relevance(sub.Topic, content)
			return r.Score, err
		}),
		Vocabulary: s.guard(types.CategoryVocabulary, types.FallbackVocabulary, func() (float64, error) {
			return s.suite.Vocabulary(content)
		}),
		OverusedWords: s.guard(types.CategoryOverusedWords, types.FallbackOverusedWords, func() (float64, error) {
			r, err := s.suite.OverusedWords(content)
			return r.Score, err
		}),
	}
}

// guard runs one analyzer and substitutes fallback on error, panic or a
// non-finite score.
func (s *Service) guard(cat types.Category, fallback float64, run func() (float64, error)) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("analyzer panicked",
				zap.String("category", string(cat)),
				zap.Float64("fallback", fallback),
				zap.Any("panic", r))
			score = fallback
		}
	}()

	v, err := run()
	if err != nil {
		s.logger.Error("analyzer failed",
			zap.String("category", string(cat)),
			zap.Float64("fallback", fallback),
			zap.Error(err))
		return fallback
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		s.logger.Error("analyzer returned a non-finite score",
			zap.String("category", string(cat)),
			zap.Float64("fallback", fallback))
		return fallback
	}
	return textutil.Clamp(v, 0, 100)
}

// fallbackPoints are the weighted points reported when scoring cannot run.
var fallbackPoints = map[types.Category]int{
	types.CategoryGrammar:       15,
	types.CategoryStructure:     14,
	types.CategoryCoherence:     13,
	types.CategoryRelevance:     11,
	types.CategoryVocabulary:    10,
	types.CategoryOverusedWords: 8,
}

func (s *Service) fallbackScore(topic string) CleanEssayScore {
	var breakdown scoring.WeightedScores
	overall := 0
	for _, cat := range types.Categories {
		p := fallbackPoints[cat]
		overall += p
		breakdown.Set(cat, scoring.FormatWeighted(p, cat.Weight()))
	}
	return CleanEssayScore{
		EssayTitle:             title(topic),
		OverallScore:           overall,
		ScoreBreakdown:         breakdown,
		ImprovementSuggestions: fallbackSuggestions(),
		Timestamp:              s.timestamp(),
	}
}

// DetailedAnalysis produces the richer legacy report. Any analyzer failure
// replaces the whole result with a fallback score.
func (s *Service) DetailedAnalysis(sub Submission) (result EssayScore) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("detailed analysis failed, using fallback score", zap.Any("panic", r))
			result = s.fallbackDetailed(sub.Topic)
		}
	}()

	res, err := s.analyze(sub)
	if err != nil {
		level := s.logger.Error
		if errors.Is(err, ErrValidation) {
			level = s.logger.Warn
		}
		level("detailed analysis failed, using fallback score", zap.Error(err))
		return s.fallbackDetailed(sub.Topic)
	}
	return res
}

func (s *Service) analyze(sub Submission) (EssayScore, error) {
	if err := Validate(sub, s.minDetailedContent); err != nil {
		return EssayScore{}, err
	}
	content := sub.Content

	grammar, err := s.suite.Grammar(content)
	if err != nil {
		return EssayScore{}, fmt.Errorf("grammar analysis: %w", err)
	}
	structure, err := s.suite.Structure(content)
	if err != nil {
		return EssayScore{}, fmt.Errorf("structure analysis: %w", err)
	}
	coherence, err := s.suite.Coherence(content)
	if err != nil {
		return EssayScore{}, fmt.Errorf("coherence analysis: %w", err)
	}
	relevance, err := s.suite.Relevance(sub.Topic, content)
	if err != nil {
		return EssayScore{}, fmt.Errorf("relevance analysis: %w", err)
	}
	vocabulary, err := s.suite.Vocabulary(content)
	if err != nil {
		return EssayScore{}, fmt.Errorf("vocabulary analysis: %w", err)
	}
	overused, err := s.suite.OverusedWords(content)
	if err != nil {
		return EssayScore{}, fmt.Errorf("overused words analysis: %w", err)
	}

	breakdown := scoring.ScoreBreakdown{
		Grammar:       grammar.Score,
		Structure:     structure.Score,
		Coherence:     coherence.Score,
		Relevance:     relevance.Score,
		Vocabulary:    vocabulary,
		OverusedWords: overused.Score,
	}

	res := s.detailedFrom(sub.Topic, breakdown)
	res.ImprovementSuggestions = s.calc.Suggestions(breakdown)
	if sub.Debug {
		res.Debug = &DebugInfo{
			SentenceScores: mergeSentences(relevance, coherence),
			OverusedWords:  overused.Words,
			GrammarIssues:  grammar.Issues,
			Structure:      structure,
			TopicKeywords:  relevance.TopicKeywords,
		}
	}
	return res, nil
}

func (s *Service) detailedFrom(topic string, b scoring.ScoreBreakdown) EssayScore {
	total := s.calc.Total(b)
	return EssayScore{
		EssayTitle:     title(topic),
		OverallScore:   total,
		ScoreBreakdown: b,
		WeightedScores: s.calc.WeightedScores(b),
		Metrics:        s.calc.Metrics(b),
		Feedback:       s.calc.Feedback(total),
		Timestamp:      s.timestamp(),
	}
}

func (s *Service) fallbackDetailed(topic string) EssayScore {
	b := scoring.ScoreBreakdown{
		Grammar:       types.FallbackGrammar,
		Structure:     types.FallbackStructure,
		Coherence:     types.FallbackCoherence,
		Relevance:     types.FallbackRelevance,
		Vocabulary:    types.FallbackVocabulary,
		OverusedWords: types.FallbackOverusedWords,
	}
	res := s.detailedFrom(topic, b)
	res.ImprovementSuggestions = fallbackSuggestions()
	return res
}

// mergeSentences pairs relevance and coherence by sentence index. Both
// analyzers split the same content, so the lists line up.
func mergeSentences(rel analysis.RelevanceAnalysis, coh analysis.CoherenceAnalysis) []SentenceScore {
	out := make([]SentenceScore, len(rel.Sentences))
	for i, r := range rel.Sentences {
		out[i] = SentenceScore{Sentence: r.Sentence, Relevance: r.Relevance}
		if i < len(coh.Sentences) {
			out[i].Coherence = coh.Sentences[i].Coherence
		}
	}
	return out
}

func (s *Service) timestamp() string {
	return s.now().Format(TimestampLayout)
}

func title(topic string) string {
	if t := strings.TrimSpace(topic); t != "" {
		return t
	}
	return untitledEssay
}
