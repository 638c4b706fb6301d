package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dotcommander/essayscore/internal/textutil"
)

// SentenceRelevance is one sentence's relevance to the topic.
type SentenceRelevance struct {
	Sentence  string  `json:"sentence"`
	Relevance float64 `json:"relevance"`
}

// RelevanceAnalysis is the result of AnalyzeRelevance.
type RelevanceAnalysis struct {
	Score         float64             `json:"score"`
	TopicKeywords []string            `json:"topicKeywords"`
	Sentences     []SentenceRelevance `json:"sentences"`
}

// Topic words are a small share of any sentence, so their frequency is scaled up.
const frequencyBoost = 5.0

const (
	neutralRelevance = 50.0
	semanticPerHit   = 34.0
	conceptStemLen   = 6
	minConceptStem   = 5
	minReverseMatch  = 4
)

// AnalyzeRelevance scores every sentence of text against the topic and
// averages the result.
func AnalyzeRelevance(topic, text string) (RelevanceAnalysis, error) {
	sentences := textutil.SplitSentences(text)
	if len(sentences) == 0 {
		return RelevanceAnalysis{}, fmt.Errorf("relevance: %w", ErrNoWords)
	}

	topicKeywords := textutil.UniqueKeywords(topic)
	result := RelevanceAnalysis{
		TopicKeywords: topicKeywords,
		Sentences:     make([]SentenceRelevance, len(sentences)),
	}

	if len(topicKeywords) == 0 {
		for i, s := range sentences {
			result.Sentences[i] = SentenceRelevance{Sentence: s, Relevance: neutralRelevance}
		}
		result.Score = neutralRelevance
		return result, nil
	}

	related := relatedTerms(topicKeywords)
	scores := make([]float64, len(sentences))
	for i, s := range sentences {
		scores[i] = SentenceRelevanceScore(s, topicKeywords, related)
		result.Sentences[i] = SentenceRelevance{Sentence: s, Relevance: scores[i]}
	}
	result.Score = textutil.Clamp(textutil.Mean(scores), 0, 100)
	return result, nil
}

// SentenceRelevanceScore combines keyword overlap, concept similarity and
// topic-word frequency for one sentence.
func SentenceRelevanceScore(sentence string, topicKeywords, related []string) float64 {
	overlap := keywordOverlap(sentence, topicKeywords)
	semantic := overlap
	if len(related) > 0 {
		semantic = conceptSimilarity(sentence, related)
	}
	frequency := topicFrequency(sentence, topicKeywords)
	score := 0.4*overlap + 0.4*semantic + 0.2*frequency
	return textutil.Clamp(score, 0, 100)
}

func keywordOverlap(sentence string, topicKeywords []string) float64 {
	sentenceKeywords := textutil.Keywords(sentence)
	matched := 0
	for _, tk := range topicKeywords {
		for _, sk := range sentenceKeywords {
			if looselyMatches(sk, tk) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(topicKeywords)) * 100
}

func conceptSimilarity(sentence string, related []string) float64 {
	lower := strings.ToLower(sentence)
	hits := 0
	for _, term := range related {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	return min(100, float64(hits)*semanticPerHit)
}

func topicFrequency(sentence string, topicKeywords []string) float64 {
	words := textutil.Words(sentence)
	if len(words) == 0 {
		return 0
	}
	count := 0
	for _, w := range words {
		if len(w) < textutil.MinKeywordLength || textutil.Stopwords.Has(w) {
			continue
		}
		for _, tk := range topicKeywords {
			if looselyMatches(w, tk) {
				count++
				break
			}
		}
	}
	return min(100, float64(count)/float64(len(words))*100*frequencyBoost)
}

// looselyMatches tolerates inflection by accepting substring matches either
// way. Very short words are only matched when they contain the keyword.
func looselyMatches(word, keyword string) bool {
	if strings.Contains(word, keyword) {
		return true
	}
	return len(word) >= minReverseMatch && strings.Contains(keyword, word)
}

// relatedTerms expands topic keywords through conceptExpansions. The result is
// sorted and free of duplicates.
func relatedTerms(topicKeywords []string) []string {
	seen := make(map[string]struct{})
	for _, tk := range topicKeywords {
		for concept, terms := range conceptExpansions {
			if !matchesConcept(tk, concept) {
				continue
			}
			for _, t := range terms {
				seen[t] = struct{}{}
			}
		}
	}
	terms := make([]string, 0, len(seen))
	for t := range seen {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// matchesConcept accepts the concept itself, its plural, or any keyword sharing
// its stem ("technological" shares "techno" with "technology").
func matchesConcept(keyword, concept string) bool {
	if keyword == concept || keyword == concept+"s" {
		return true
	}
	if len(concept) < minConceptStem || len(keyword) < minConceptStem {
		return false
	}
	stem := concept[:min(conceptStemLen, len(concept))]
	return strings.HasPrefix(keyword, stem)
}
