package analysis

import "github.com/dotcommander/essayscore/internal/textutil"

// TransitionCategory groups connective phrases by their rhetorical role.
type TransitionCategory string

const (
	TransitionIntroduction TransitionCategory = "introduction"
	TransitionAddition     TransitionCategory = "addition"
	TransitionContrast     TransitionCategory = "contrast"
	TransitionCause        TransitionCategory = "cause"
	TransitionConclusion   TransitionCategory = "conclusion"
)

type transitionGroup struct {
	category TransitionCategory
	phrases  []string
}

// transitionGroups is ordered so that lookups and reports are deterministic.
var transitionGroups = []transitionGroup{
	{TransitionIntroduction, []string{
		"first", "firstly", "to begin with", "initially", "in the first place", "to start with",
	}},
	{TransitionAddition, []string{
		"furthermore", "moreover", "additionally", "in addition", "also", "besides",
		"similarly", "likewise", "for example", "for instance", "secondly", "next",
	}},
	{TransitionContrast, []string{
		"however", "nevertheless", "nonetheless", "on the other hand", "in contrast",
		"conversely", "although", "whereas", "despite", "yet", "instead",
	}},
	{TransitionCause, []string{
		"therefore", "consequently", "as a result", "thus", "hence", "because",
		"accordingly", "due to", "since", "so that",
	}},
	{TransitionConclusion, []string{
		"in conclusion", "to conclude", "in summary", "to summarize", "finally",
		"ultimately", "overall", "to sum up", "in short", "lastly",
	}},
}

// introductionSignals mark an opening paragraph.
var introductionSignals = []string{
	"this essay", "in this essay", "will discuss", "will explore", "will examine",
	"will argue", "introduce", "in recent years", "nowadays", "today", "many people",
	"it is often said", "has become",
}

// conclusionSignals mark a closing paragraph.
var conclusionSignals = []string{
	"in conclusion", "to conclude", "in summary", "to summarize", "to sum up",
	"overall", "ultimately", "therefore", "thus", "all in all", "in the end",
	"finally",
}

// connectives are the words that earn the coherence transition bonus.
var connectives = []string{
	"however", "therefore", "furthermore", "moreover", "additionally", "consequently",
	"thus", "hence", "also", "similarly", "likewise", "meanwhile", "nevertheless",
	"instead", "for example", "for instance", "in addition", "as a result",
	"in contrast", "on the other hand", "this", "these", "because", "so",
}

// conceptExpansions maps a topic concept to related terms looked up in sentence text.
var conceptExpansions = map[string][]string{
	"technology":  {"digital", "computer", "software", "internet", "online", "device", "innovation", "automation", "data"},
	"education":   {"school", "student", "teacher", "learning", "classroom", "university", "study", "knowledge", "curriculum"},
	"environment": {"climate", "pollution", "nature", "ecosystem", "carbon", "emission", "sustainable", "wildlife", "recycling"},
	"climate":     {"warming", "temperature", "carbon", "emission", "weather", "greenhouse", "fossil", "renewable"},
	"health":      {"medical", "doctor", "disease", "wellness", "hospital", "fitness", "nutrition", "mental", "patient"},
	"economy":     {"market", "money", "business", "trade", "employment", "job", "income", "finance", "growth"},
	"society":     {"community", "people", "culture", "social", "public", "citizen", "family", "population"},
	"government":  {"policy", "law", "state", "politics", "election", "democracy", "regulation", "leader"},
	"science":     {"research", "experiment", "theory", "evidence", "scientist", "discovery", "laboratory"},
	"media":       {"news", "television", "newspaper", "journalism", "platform", "social", "advertising"},
	"sport":       {"athlete", "team", "competition", "game", "exercise", "olympic", "coach"},
	"art":         {"music", "painting", "creative", "artist", "culture", "literature", "museum"},
}

// advancedWords is the curated sophistication lexicon.
var advancedWords = textutil.NewWordSet(
	"significant", "substantial", "comprehensive", "fundamental", "paradigm",
	"ubiquitous", "nuanced", "profound", "facilitate", "demonstrate", "illustrate",
	"analyze", "analyse", "evaluate", "perspective", "implication", "implications",
	"phenomenon", "inherent", "intrinsic", "empirical", "hypothesis", "prevalent",
	"detrimental", "beneficial", "sustainable", "innovative", "unprecedented",
	"meticulous", "elucidate", "juxtapose", "mitigate", "exacerbate", "advocate",
	"contemporary", "discourse", "predominantly", "consequently", "furthermore",
	"nevertheless", "notwithstanding", "ambiguous", "coherent", "compelling",
	"crucial", "diverse", "eloquent", "feasible", "inevitable", "integral",
	"meticulously", "paramount", "pragmatic", "rigorous", "scrutinize", "skeptical",
	"subsequent", "tangible", "ramification", "ramifications", "dichotomy",
	"proliferation", "infrastructure", "methodology", "articulate", "synthesize",
)

// weakWord is one dictionary entry for the overused-word scan.
type weakWord struct {
	word         string
	replacements []string
}

// weakWords is ordered so that reported entries are deterministic.
var weakWords = []weakWord{
	{"very", []string{"extremely", "highly", "remarkably", "exceptionally"}},
	{"really", []string{"genuinely", "truly", "indeed", "significantly"}},
	{"good", []string{"excellent", "beneficial", "favorable", "effective"}},
	{"bad", []string{"harmful", "detrimental", "poor", "adverse"}},
	{"thing", []string{"aspect", "element", "factor", "issue"}},
	{"things", []string{"aspects", "elements", "factors", "issues"}},
	{"stuff", []string{"material", "content", "items", "belongings"}},
	{"a lot", []string{"many", "numerous", "considerable", "a great deal"}},
	{"lots", []string{"many", "numerous", "plenty", "abundant"}},
	{"big", []string{"significant", "substantial", "considerable", "major"}},
	{"nice", []string{"pleasant", "agreeable", "delightful", "admirable"}},
	{"great", []string{"outstanding", "remarkable", "impressive", "notable"}},
	{"get", []string{"obtain", "acquire", "receive", "gain"}},
	{"got", []string{"obtained", "acquired", "received", "gained"}},
	{"basically", []string{"essentially", "fundamentally", "primarily"}},
	{"actually", []string{"in fact", "indeed", "genuinely"}},
	{"totally", []string{"completely", "entirely", "wholly"}},
	{"literally", []string{"exactly", "precisely", "truly"}},
	{"pretty", []string{"fairly", "rather", "somewhat", "moderately"}},
	{"huge", []string{"enormous", "immense", "vast", "massive"}},
	{"amazing", []string{"astonishing", "extraordinary", "impressive"}},
	{"awesome", []string{"impressive", "formidable", "excellent"}},
	{"kind of", []string{"somewhat", "rather", "to some extent"}},
	{"sort of", []string{"somewhat", "rather", "partly"}},
}
