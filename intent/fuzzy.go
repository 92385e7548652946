package intent

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// FuzzyMatcher scores the utterance against the canonical phrase catalogs
// using token-set similarity: word order and repeated words do not matter,
// so "complaint file a want to I" still matches "i want to file a complaint".
type FuzzyMatcher struct {
	catalog   *Catalog
	threshold float64
}

func NewFuzzyMatcher(catalog *Catalog, threshold float64) *FuzzyMatcher {
	return &FuzzyMatcher{catalog: catalog, threshold: threshold}
}

func (m *FuzzyMatcher) Threshold() float64 { return m.threshold }

// Match returns the best-scoring catalog phrase across both intents. The
// caller gates on Threshold; Match itself always reports the best candidate.
//
// Token-set similarity is 1.0 whenever one token set contains the other, so
// fragments like "i want to" would otherwise match every catalog phrase
// outright. Candidacy therefore requires at least two tokens and a
// complaint-domain keyword in the utterance itself.
func (m *FuzzyMatcher) Match(utterance string) FuzzyResult {
	tokens := tokenize(utterance)
	if len(tokens) < 2 || !m.hasDomainKeyword(tokens) {
		return FuzzyResult{Intent: Unknown}
	}

	best := FuzzyResult{Intent: Unknown}
	for _, phrase := range m.catalog.FilingPhrases {
		if score := TokenSetRatio(utterance, phrase); score > best.Score {
			best = FuzzyResult{Intent: FileComplaint, Phrase: phrase, Score: score}
		}
	}
	for _, phrase := range m.catalog.RetrievalPhrases {
		if score := TokenSetRatio(utterance, phrase); score > best.Score {
			best = FuzzyResult{Intent: RetrieveComplaint, Phrase: phrase, Score: score}
		}
	}

	return best
}

func (m *FuzzyMatcher) hasDomainKeyword(tokens []string) bool {
	for _, tok := range tokens {
		for _, kw := range m.catalog.FilingKeywords {
			if matchesInflected(tok, kw) {
				return true
			}
		}
		for _, kw := range m.catalog.RetrievalKeywords {
			if matchesInflected(tok, kw) {
				return true
			}
		}
	}
	return false
}

// TokenSetRatio computes the token-set similarity of two strings in [0,1]:
// both are reduced to sorted unique lowercase tokens, then the intersection
// and the two intersection+remainder strings are compared pairwise by
// normalized edit distance and the best pairing wins. A shared core of words
// scores high even when one side carries extra words.
func TokenSetRatio(a, b string) float64 {
	ta, tb := tokenize(a), tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	inTB := make(map[string]bool, len(tb))
	for _, t := range tb {
		inTB[t] = true
	}
	inTA := make(map[string]bool, len(ta))
	for _, t := range ta {
		inTA[t] = true
	}

	var common, restA, restB []string
	for _, t := range ta {
		if inTB[t] {
			common = append(common, t)
		} else {
			restA = append(restA, t)
		}
	}
	for _, t := range tb {
		if !inTA[t] {
			restB = append(restB, t)
		}
	}

	core := strings.Join(common, " ")
	left := strings.TrimSpace(core + " " + strings.Join(restA, " "))
	right := strings.TrimSpace(core + " " + strings.Join(restB, " "))

	score := editRatio(core, left)
	if r := editRatio(core, right); r > score {
		score = r
	}
	if r := editRatio(left, right); r > score {
		score = r
	}
	return score
}

// tokenize lowercases, splits on non-alphanumeric runes, and returns the
// sorted unique tokens.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			tokens = append(tokens, f)
		}
	}
	sort.Strings(tokens)
	return tokens
}

func editRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
