package analysis

import (
	"fmt"
	"strings"

	"github.com/dotcommander/essayscore/internal/textutil"
)

// StructureAnalysis holds the structural facts of an essay and its sub-score.
type StructureAnalysis struct {
	ParagraphCount  int      `json:"paragraphCount"`
	HasIntroduction bool     `json:"hasIntroduction"`
	HasConclusion   bool     `json:"hasConclusion"`
	TransitionWords []string `json:"transitionWords"`
	Score           float64  `json:"score"`
}

const (
	minIdealParagraphs = 3
	maxIdealParagraphs = 8

	paragraphStepPenalty = 20.0
	paragraphFloor       = 40.0

	transitionFloor = 30.0

	multiParagraphCredit  = 40.0
	singleParagraphCredit = 20.0
	introCredit           = 30.0
	introPartialCredit    = 15.0
	conclusionCredit      = 30.0
	conclusionPartial     = 10.0
)

// AnalyzeStructure scores paragraphing, transition use and the presence of an
// introduction and a conclusion.
func AnalyzeStructure(text string) (StructureAnalysis, error) {
	paragraphs := textutil.SplitParagraphs(text)
	if len(paragraphs) == 0 {
		return StructureAnalysis{}, fmt.Errorf("structure: %w", ErrNoWords)
	}

	transitions := FindTransitions(text)
	hasIntro := containsAnySignal(paragraphs[0], introductionSignals)
	hasConclusion := containsAnySignal(paragraphs[len(paragraphs)-1], conclusionSignals)

	paragraphScore := scoreParagraphCount(len(paragraphs))
	transitionScore := scoreTransitionCount(len(transitions))
	structureScore := scoreIntroConclusion(len(paragraphs), hasIntro, hasConclusion)

	score := 0.3*paragraphScore + 0.3*transitionScore + 0.4*structureScore

	return StructureAnalysis{
		ParagraphCount:  len(paragraphs),
		HasIntroduction: hasIntro,
		HasConclusion:   hasConclusion,
		TransitionWords: transitions,
		Score:           textutil.Clamp(score, 0, 100),
	}, nil
}

// FindTransitions returns the distinct transition phrases present in text,
// grouped by category in dictionary order.
func FindTransitions(text string) []string {
	pt := textutil.PhraseText(text)
	found := []string{}
	for _, group := range transitionGroups {
		for _, phrase := range group.phrases {
			if textutil.ContainsPhrase(pt, phrase) {
				found = append(found, phrase)
			}
		}
	}
	return found
}

func scoreParagraphCount(n int) float64 {
	var distance int
	switch {
	case n < minIdealParagraphs:
		distance = minIdealParagraphs - n
	case n > maxIdealParagraphs:
		distance = n - maxIdealParagraphs
	}
	return max(paragraphFloor, 100-paragraphStepPenalty*float64(distance))
}

func scoreTransitionCount(distinct int) float64 {
	switch {
	case distinct >= 3:
		return 100
	case distinct == 2:
		return 75
	case distinct == 1:
		return 50
	default:
		return transitionFloor
	}
}

// scoreIntroConclusion never returns zero: a missing signal still earns partial credit.
func scoreIntroConclusion(paragraphs int, hasIntro, hasConclusion bool) float64 {
	score := singleParagraphCredit
	if paragraphs >= 2 {
		score = multiParagraphCredit
	}
	if hasIntro {
		score += introCredit
	} else {
		score += introPartialCredit
	}
	if hasConclusion {
		score += conclusionCredit
	} else {
		score += conclusionPartial
	}
	return score
}

func containsAnySignal(paragraph string, signals []string) bool {
	pt := textutil.PhraseText(paragraph)
	for _, s := range signals {
		if textutil.ContainsPhrase(pt, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
