// Package scoring classifies brand mentions in LLM response text and maps
// the classification to a rubric score. This is the only package that holds
// discoverability business rules; everything here is a pure function of its
// inputs so results can be cached and recomputed safely.
package scoring

import (
	"regexp"
	"strings"
	"sync"

	"github.com/aeobooster/aeobooster/internal/models"
)

// Rubric scores per mention kind. Primary supersedes the plain top-3
// score, the two are never additive.
const (
	ScoreNone           = 0
	ScoreVague          = 1
	ScoreTop3           = 3
	ScorePrimary        = 4
	ScoreCompetitorOnly = -2
)

// topSentenceWindow is how many leading sentences count as "prominent".
const topSentenceWindow = 3

// primaryPhrases mark a mention as the explicit top recommendation.
var primaryPhrases = []string{
	"#1",
	"number one",
	"number-one",
	"top pick",
	"top choice",
	"top choices",
	"first choice",
	"best choice",
	"best option",
	"top recommendation",
	"most recommended",
	"go-to choice",
	"go-to option",
}

// hedgePhrases mark a mention as incidental. A hedged sentence never claims
// the prominence window, however early it appears.
var hedgePhrases = []string{
	"among others",
	"might also consider",
	"could also consider",
	"also worth",
	"other options include",
	"honorable mention",
	"to name a few",
}

// Result is one classified response.
type Result struct {
	MentionKind models.MentionKind `json:"mention_kind"`
	Score       int                `json:"score"`
}

// Scorer applies the rubric with a fixed competitor and alias
// configuration. The zero value scores with no competitors and no aliases.
type Scorer struct {
	// Competitors are terms that, when present without any target, flag
	// the response as promoting someone else.
	Competitors []string
	// Aliases maps an entity value to alternate spellings that count as
	// mentions of it.
	Aliases map[string][]string
}

// Score classifies one response against the given target entities.
func (s *Scorer) Score(responseText string, targets []string) Result {
	expanded := make([]string, 0, len(targets))
	for _, t := range targets {
		expanded = append(expanded, t)
		expanded = append(expanded, s.Aliases[t]...)
	}
	return classify(responseText, expanded, s.Competitors)
}

// ScoreResponse applies the rubric with no alias configuration. It exists
// for callers that hold plain term lists rather than a Scorer.
func ScoreResponse(responseText string, targetEntities, competitorTerms []string) Result {
	return classify(responseText, targetEntities, competitorTerms)
}

func classify(text string, targets, competitors []string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{MentionKind: models.MentionNone, Score: ScoreNone}
	}

	if !anyTermPresent(text, targets) {
		if anyTermPresent(text, competitors) {
			return Result{MentionKind: models.MentionCompetitorOnly, Score: ScoreCompetitorOnly}
		}
		return Result{MentionKind: models.MentionNone, Score: ScoreNone}
	}

	sentences := SplitSentences(text)

	for i, sentence := range sentences {
		if i >= topSentenceWindow {
			break
		}
		if !anyTermPresent(sentence, targets) {
			continue
		}
		if containsAnyPhrase(sentence, hedgePhrases) {
			// A hedged mention does not claim the window, but a later
			// unhedged sentence inside it still can.
			continue
		}
		if containsAnyPhrase(sentence, primaryPhrases) || firstListedItem(text, targets) {
			return Result{MentionKind: models.MentionTop3, Score: ScorePrimary}
		}
		return Result{MentionKind: models.MentionTop3, Score: ScoreTop3}
	}

	return Result{MentionKind: models.MentionVague, Score: ScoreVague}
}

var (
	termPatternsMu sync.Mutex
	termPatterns   = map[string]*regexp.Regexp{}
)

// termPattern returns a cached case-insensitive word-boundary matcher for
// term. Terms that start or end with a non-word rune (like "#1") fall back
// to whitespace-or-edge boundaries.
func termPattern(term string) *regexp.Regexp {
	termPatternsMu.Lock()
	defer termPatternsMu.Unlock()

	if re, ok := termPatterns[term]; ok {
		return re
	}

	quoted := regexp.QuoteMeta(term)
	expr := `(?i)\b` + quoted + `\b`
	if !startsWordRune(term) || !endsWordRune(term) {
		expr = `(?i)(^|\s)` + quoted + `($|[\s.,;:!?)])`
	}
	re := regexp.MustCompile(expr)
	termPatterns[term] = re
	return re
}

func anyTermPresent(text string, terms []string) bool {
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if termPattern(term).MatchString(text) {
			return true
		}
	}
	return false
}

func containsAnyPhrase(sentence string, phrases []string) bool {
	lower := strings.ToLower(sentence)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

var firstItemPattern = regexp.MustCompile(`(?m)^\s*(?:1[.)]|[-*])\s+(.+)$`)

// firstListedItem reports whether any target appears in the first item of
// an enumerated or bulleted list in the response.
func firstListedItem(text string, targets []string) bool {
	m := firstItemPattern.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	return anyTermPresent(m[1], targets)
}

func startsWordRune(s string) bool {
	for _, r := range s {
		return isWordRune(r)
	}
	return false
}

func endsWordRune(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	return isWordRune(runes[len(runes)-1])
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
