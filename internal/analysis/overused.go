package analysis

import (
	"fmt"

	"github.com/dotcommander/essayscore/internal/textutil"
)

// OverusedWord is a weak-vocabulary word found in the essay.
type OverusedWord struct {
	Word         string   `json:"word"`
	Count        int      `json:"count"`
	Replacements []string `json:"replacements"`
}

// OverusedAnalysis is the result of AnalyzeOverusedWords.
type OverusedAnalysis struct {
	Score float64        `json:"score"`
	Words []OverusedWord `json:"words"`
}

const (
	overuseThreshold   = 3
	overusePenalty     = 8.0
	varietyThreshold   = 3
	varietyPenalty     = 4.0
	sparseUseThreshold = 1
	sparseUseBonus     = 5.0
)

// AnalyzeOverusedWords counts whole-word occurrences of every weak-vocabulary
// entry and penalizes heavy and varied use.
func AnalyzeOverusedWords(text string) (OverusedAnalysis, error) {
	if len(textutil.Words(text)) == 0 {
		return OverusedAnalysis{}, fmt.Errorf("overused words: %w", ErrNoWords)
	}

	pt := textutil.PhraseText(text)
	found := []OverusedWord{}
	total := 0
	for _, entry := range weakWords {
		count := textutil.CountPhrase(pt, entry.word)
		if count == 0 {
			continue
		}
		total += count
		found = append(found, OverusedWord{
			Word:         entry.word,
			Count:        count,
			Replacements: append([]string(nil), entry.replacements...),
		})
	}

	score := 100.0
	if total > overuseThreshold {
		score -= float64(total-overuseThreshold) * overusePenalty
	}
	if len(found) > varietyThreshold {
		score -= float64(len(found)-varietyThreshold) * varietyPenalty
	}
	if total <= sparseUseThreshold {
		score += sparseUseBonus
	}

	return OverusedAnalysis{
		Score: textutil.Clamp(score, 0, 100),
		Words: found,
	}, nil
}
