package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dotcommander/essayscore/internal/textutil"
	"github.com/dotcommander/essayscore/internal/types"
)

// GrammarIssue is a single pattern match found in a sentence.
type GrammarIssue struct {
	Type        types.IssueType `json:"type"`
	Description string          `json:"description"`
	Sentence    string          `json:"sentence"`
	Position    int             `json:"position"`
}

// GrammarAnalysis is the result of AnalyzeGrammar.
type GrammarAnalysis struct {
	Score  float64        `json:"score"`
	Issues []GrammarIssue `json:"issues"`
}

// cleanGrammarBonus is added when no issue is found at all.
const cleanGrammarBonus = 5.0

type patternRule struct {
	re          *regexp.Regexp
	issue       types.IssueType
	description string
}

var agreementRules = []patternRule{
	{regexp.MustCompile(`(?i)\b(he|she|it)\s+(are|were|have|do|don't)\b`), types.IssueAgreement,
		"Singular subject %q needs a singular verb"},
	{regexp.MustCompile(`(?i)\b(they|we|you)\s+(is|was|has|does|doesn't)\b`), types.IssueAgreement,
		"Plural subject %q needs a plural verb"},
	{regexp.MustCompile(`\bI\s+(is|are|has|does|doesn't)\b`), types.IssueAgreement,
		"Subject %q does not agree with its verb"},
}

var pronounRules = []patternRule{
	{regexp.MustCompile(`(?i)^(me|him|her|them|us)\s+and\s+(i|me|he|him|she|her|they|them|we|us)\b`), types.IssuePronoun,
		"Object pronoun used as subject in %q"},
	{regexp.MustCompile(`(?i)\bbetween\s+(you|him|her|them)\s+and\s+i\b`), types.IssuePronoun,
		"Use \"me\" after a preposition in %q"},
}

var (
	anBeforeVowel     = regexp.MustCompile(`(?i)\ba\s+([aeiou][a-z]*)`)
	aBeforeConsonant  = regexp.MustCompile(`(?i)\ban\s+([bcdfgjklmnpqrstvwxyz][a-z]*)`)
	doubleWhitespace  = regexp.MustCompile(`\S[ \t]{2,}\S`)
	terminalPunctRule = regexp.MustCompile(`[.!?]["')\]]*$`)
)

// Words where the written vowel is pronounced as a consonant sound, or the
// written consonant is silent.
var (
	consonantSoundVowels = []string{"uni", "use", "usu", "uti", "eu", "one", "once", "ubiq", "ura"}
	silentConsonants     = []string{"hour", "honest", "honor", "honour", "heir"}
)

// commonMisspellings maps misspelled words to their correction.
var commonMisspellings = map[string]string{
	"recieve":     "receive",
	"recieved":    "received",
	"definately":  "definitely",
	"seperate":    "separate",
	"occured":     "occurred",
	"occurence":   "occurrence",
	"untill":      "until",
	"wich":        "which",
	"alot":        "a lot",
	"teh":         "the",
	"thier":       "their",
	"beleive":     "believe",
	"goverment":   "government",
	"enviroment":  "environment",
	"arguement":   "argument",
	"begining":    "beginning",
	"existance":   "existence",
	"neccessary":  "necessary",
	"occassion":   "occasion",
	"acheive":     "achieve",
	"tommorow":    "tomorrow",
	"truely":      "truly",
	"wierd":       "weird",
	"calender":    "calendar",
	"accomodate":  "accommodate",
	"independant": "independent",
	"publically":  "publicly",
	"refered":     "referred",
	"succesful":   "successful",
	"tounge":      "tongue",
}

// AnalyzeGrammar runs the four sentence-level pattern checks over text and
// scores it by subtracting a fixed penalty per issue from 100.
func AnalyzeGrammar(text string) (GrammarAnalysis, error) {
	sentences := textutil.SplitSentences(text)
	if len(sentences) == 0 {
		return GrammarAnalysis{}, fmt.Errorf("grammar: %w", ErrNoWords)
	}

	var issues []GrammarIssue
	for i, sentence := range sentences {
		issues = append(issues, checkAgreement(sentence, i)...)
		issues = append(issues, checkArticles(sentence, i)...)
		issues = append(issues, checkSpelling(sentence, i)...)
		issues = append(issues, checkPunctuation(sentence, i)...)
	}

	score := 100.0
	for _, issue := range issues {
		score -= issue.Type.Penalty()
	}
	if len(issues) == 0 {
		score += cleanGrammarBonus
	}

	return GrammarAnalysis{
		Score:  textutil.Clamp(score, 0, 100),
		Issues: issues,
	}, nil
}

// checkAgreement covers subject-verb agreement and pronoun case.
func checkAgreement(sentence string, position int) []GrammarIssue {
	var issues []GrammarIssue
	for _, rules := range [][]patternRule{agreementRules, pronounRules} {
		for _, rule := range rules {
			for _, m := range rule.re.FindAllString(sentence, -1) {
				issues = append(issues, GrammarIssue{
					Type:        rule.issue,
					Description: fmt.Sprintf(rule.description, m),
					Sentence:    sentence,
					Position:    position,
				})
			}
		}
	}
	return issues
}

func checkArticles(sentence string, position int) []GrammarIssue {
	var issues []GrammarIssue
	for _, m := range anBeforeVowel.FindAllStringSubmatch(sentence, -1) {
		if hasAnyPrefix(strings.ToLower(m[1]), consonantSoundVowels) {
			continue
		}
		issues = append(issues, GrammarIssue{
			Type:        types.IssueArticle,
			Description: fmt.Sprintf("Use \"an\" before %q", m[1]),
			Sentence:    sentence,
			Position:    position,
		})
	}
	for _, m := range aBeforeConsonant.FindAllStringSubmatch(sentence, -1) {
		if hasAnyPrefix(strings.ToLower(m[1]), silentConsonants) {
			continue
		}
		issues = append(issues, GrammarIssue{
			Type:        types.IssueArticle,
			Description: fmt.Sprintf("Use \"a\" before %q", m[1]),
			Sentence:    sentence,
			Position:    position,
		})
	}
	return issues
}

func checkSpelling(sentence string, position int) []GrammarIssue {
	var issues []GrammarIssue
	for _, word := range textutil.Words(sentence) {
		correct, ok := commonMisspellings[word]
		if !ok {
			continue
		}
		issues = append(issues, GrammarIssue{
			Type:        types.IssueSpelling,
			Description: fmt.Sprintf("%q is misspelled; use %q", word, correct),
			Sentence:    sentence,
			Position:    position,
		})
	}
	return issues
}

func checkPunctuation(sentence string, position int) []GrammarIssue {
	var issues []GrammarIssue
	if !terminalPunctRule.MatchString(sentence) {
		issues = append(issues, GrammarIssue{
			Type:        types.IssuePunctuation,
			Description: "Sentence is missing terminal punctuation",
			Sentence:    sentence,
			Position:    position,
		})
	}
	if doubleWhitespace.MatchString(sentence) {
		issues = append(issues, GrammarIssue{
			Type:        types.IssuePunctuation,
			Description: "Sentence contains repeated spaces",
			Sentence:    sentence,
			Position:    position,
		})
	}
	return issues
}

func hasAnyPrefix(word string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(word, p) {
			return true
		}
	}
	return false
}
