package analysis

import (
	"fmt"

	"github.com/dotcommander/essayscore/internal/textutil"
)

// SentenceCoherence is one sentence's flow score against its successor.
type SentenceCoherence struct {
	Sentence  string  `json:"sentence"`
	Coherence float64 `json:"coherence"`
}

// CoherenceAnalysis is the result of AnalyzeCoherence.
type CoherenceAnalysis struct {
	Score     float64             `json:"score"`
	Sentences []SentenceCoherence `json:"sentences"`
}

// Raw Jaccard overlap is tiny for short sentences, so it is scaled up.
const similarityBoost = 3.0

const (
	coherenceFloor      = 30.0
	connectiveBonus     = 50.0
	continuityNeutral   = 50.0
	continuityNoOverlap = 25.0
	continuityBase      = 50.0
	continuityPerShared = 25.0
	lastSentenceScore   = 100.0
	singleSentenceScore = 100.0
)

// AnalyzeCoherence scores how well each sentence flows into the next.
func AnalyzeCoherence(text string) (CoherenceAnalysis, error) {
	sentences := textutil.SplitSentences(text)
	if len(sentences) == 0 {
		return CoherenceAnalysis{}, fmt.Errorf("coherence: %w", ErrNoWords)
	}

	result := CoherenceAnalysis{
		Sentences: make([]SentenceCoherence, len(sentences)),
	}
	if len(sentences) == 1 {
		result.Score = singleSentenceScore
		result.Sentences[0] = SentenceCoherence{Sentence: sentences[0], Coherence: lastSentenceScore}
		return result, nil
	}

	pairScores := make([]float64, 0, len(sentences)-1)
	for i := 0; i < len(sentences)-1; i++ {
		s := PairCoherence(sentences[i], sentences[i+1])
		pairScores = append(pairScores, s)
		result.Sentences[i] = SentenceCoherence{Sentence: sentences[i], Coherence: s}
	}
	last := len(sentences) - 1
	result.Sentences[last] = SentenceCoherence{Sentence: sentences[last], Coherence: lastSentenceScore}

	result.Score = textutil.Clamp(textutil.Mean(pairScores), coherenceFloor, 100)
	return result, nil
}

// PairCoherence scores the transition from sentence a to sentence b in [30, 100].
func PairCoherence(a, b string) float64 {
	similarity := keywordSimilarity(a, b)
	transition := connectiveScore(b)
	continuity := topicContinuity(a, b)
	score := 0.4*similarity + 0.3*transition + 0.3*continuity
	return textutil.Clamp(score, coherenceFloor, 100)
}

func keywordSimilarity(a, b string) float64 {
	ka := textutil.NewWordSet(textutil.Keywords(a)...)
	kb := textutil.NewWordSet(textutil.Keywords(b)...)
	if len(ka) == 0 || len(kb) == 0 {
		return 0
	}
	shared := 0
	for k := range ka {
		if kb.Has(k) {
			shared++
		}
	}
	union := len(ka) + len(kb) - shared
	jaccard := float64(shared) / float64(union)
	return min(100, jaccard*100*similarityBoost)
}

func connectiveScore(sentence string) float64 {
	pt := textutil.PhraseText(sentence)
	found := 0
	for _, c := range connectives {
		if textutil.ContainsPhrase(pt, c) {
			found++
		}
	}
	return min(100, float64(found)*connectiveBonus)
}

func topicContinuity(a, b string) float64 {
	ca := textutil.CapitalizedTokens(a)
	cb := textutil.CapitalizedTokens(b)
	if len(ca) == 0 && len(cb) == 0 {
		return continuityNeutral
	}
	shared := 0
	for t := range ca {
		if cb.Has(t) {
			shared++
		}
	}
	if shared == 0 {
		return continuityNoOverlap
	}
	return min(100, continuityBase+continuityPerShared*float64(shared))
}
