package analysis

import (
	"fmt"

	"github.com/dotcommander/essayscore/internal/textutil"
)

const (
	diversityWeight      = 40.0
	wordLengthWeight     = 30.0
	sophisticationWeight = 30.0
)

// Average keyword length and advanced-word share that earn full contributions.
const (
	targetWordLength    = 8.0
	targetAdvancedRatio = 0.1
)

// AnalyzeVocabulary scores lexical diversity, average word length and the
// share of advanced words over the stopword-filtered words of text.
func AnalyzeVocabulary(text string) (float64, error) {
	words := textutil.Keywords(text)
	if len(words) == 0 {
		return 0, fmt.Errorf("vocabulary: %w", ErrNoWords)
	}

	unique := make(map[string]struct{}, len(words))
	totalLength := 0
	advanced := 0
	for _, w := range words {
		unique[w] = struct{}{}
		totalLength += len(w)
		if advancedWords.Has(w) {
			advanced++
		}
	}

	n := float64(len(words))
	diversity := float64(len(unique)) / n * diversityWeight
	avgLength := float64(totalLength) / n
	lengthScore := min(wordLengthWeight, avgLength/targetWordLength*wordLengthWeight)
	advancedRatio := float64(advanced) / n
	sophistication := min(sophisticationWeight, advancedRatio/targetAdvancedRatio*sophisticationWeight)

	return textutil.Clamp(diversity+lengthScore+sophistication, 0, 100), nil
}
