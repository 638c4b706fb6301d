// Package textutil holds the tokenization helpers shared by the analyzers.
// All heuristics are intentionally naive: sentences end at terminal punctuation,
// paragraphs end at blank lines, and keywords are stopword-filtered tokens.
package textutil

import (
	"math"
	"regexp"
	"strings"
)

var (
	sentencePattern  = regexp.MustCompile(`[^.!?]+[.!?]*`)
	paragraphPattern = regexp.MustCompile(`\n[ \t\r]*\n`)
	wordPattern      = regexp.MustCompile(`[A-Za-z]+(?:'[A-Za-z]+)*`)
)

// MinSentenceLength is the length at or below which a trimmed fragment is
// not treated as a sentence.
const MinSentenceLength = 5

// MinKeywordLength is the shortest token kept by Keywords.
const MinKeywordLength = 3

// WordSet is an immutable-by-convention set of lowercase words.
type WordSet map[string]struct{}

// NewWordSet builds a WordSet from the given words.
func NewWordSet(words ...string) WordSet {
	set := make(WordSet, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// Has reports whether word is in the set.
func (s WordSet) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// SplitSentences splits text at terminal punctuation, keeping the punctuation
// with its sentence. Fragments of MinSentenceLength characters or fewer are dropped.
func SplitSentences(text string) []string {
	matches := sentencePattern.FindAllString(text, -1)
	sentences := make([]string, 0, len(matches))
	for _, m := range matches {
		s := strings.TrimSpace(m)
		if len(s) <= MinSentenceLength {
			continue
		}
		sentences = append(sentences, s)
	}
	return sentences
}

// SplitParagraphs splits text on blank lines and drops empty paragraphs.
func SplitParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	parts := paragraphPattern.Split(normalized, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		paragraphs = append(paragraphs, p)
	}
	return paragraphs
}

// Words returns every word token in text, lowercased, in order.
func Words(text string) []string {
	tokens := wordPattern.FindAllString(text, -1)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}
	return tokens
}

// Keywords returns the stopword-filtered tokens of text that are at least
// MinKeywordLength characters long, in order and with repeats.
func Keywords(text string) []string {
	words := Words(text)
	keywords := words[:0]
	for _, w := range words {
		if len(w) < MinKeywordLength || Stopwords.Has(w) {
			continue
		}
		keywords = append(keywords, w)
	}
	return keywords
}

// UniqueKeywords returns Keywords(text) with duplicates removed, keeping the
// first-occurrence order.
func UniqueKeywords(text string) []string {
	seen := make(map[string]struct{})
	var unique []string
	for _, k := range Keywords(text) {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}
	return unique
}

// CapitalizedTokens returns the lowercased set of capitalized words in a
// sentence, ignoring the sentence-initial word and the pronoun "I".
func CapitalizedTokens(sentence string) WordSet {
	tokens := wordPattern.FindAllString(sentence, -1)
	set := make(WordSet)
	for i, t := range tokens {
		if i == 0 || t == "I" {
			continue
		}
		if t[0] >= 'A' && t[0] <= 'Z' {
			set[strings.ToLower(t)] = struct{}{}
		}
	}
	return set
}

// PhraseText normalizes text for whole-word phrase lookups: lowercased words
// joined by single spaces and padded with a space on both ends.
func PhraseText(text string) string {
	return " " + strings.Join(Words(text), " ") + " "
}

// CountPhrase counts whole-word occurrences of phrase in text produced by PhraseText.
// Adjacent repeats share their separating space, so the scan resumes on it.
func CountPhrase(phraseText, phrase string) int {
	needle := " " + phrase + " "
	count := 0
	for i := 0; ; {
		j := strings.Index(phraseText[i:], needle)
		if j < 0 {
			return count
		}
		count++
		i += j + len(needle) - 1
	}
}

// ContainsPhrase reports whether phrase occurs as whole words in text produced by PhraseText.
func ContainsPhrase(phraseText, phrase string) bool {
	return strings.Contains(phraseText, " "+phrase+" ")
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round rounds half away from zero to an int.
func Round(v float64) int {
	return int(math.Round(v))
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
