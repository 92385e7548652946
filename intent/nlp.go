package intent

import (
	"strings"
	"unicode"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"
)

// NLPExtractor performs lightweight linguistic extraction: complaint-domain
// keyword/verb detection and slot value candidates (email, phone, complaint
// ID, person name). It never decides an intent on keyword evidence alone; a
// keyword must be paired with an action verb to count as a signal.
type NLPExtractor struct {
	catalog *Catalog
}

func NewNLPExtractor(catalog *Catalog) *NLPExtractor {
	return &NLPExtractor{catalog: catalog}
}

func (e *NLPExtractor) Extract(utterance string) NLPResult {
	res := NLPResult{Intent: Unknown}
	res.Slots = SlotValues{
		Email:       FindEmail(utterance),
		Phone:       FindPhone(utterance),
		ComplaintID: FindComplaintID(utterance),
	}

	tokens, person := parseTokens(utterance)
	res.Slots.PersonName = person
	if res.Slots.PersonName == "" {
		res.Slots.PersonName = bareNameCandidate(utterance)
	}

	filingKeyword := containsAnyKeyword(tokens, e.catalog.FilingKeywords)
	retrievalKeyword := containsAnyKeyword(tokens, e.catalog.RetrievalKeywords)
	res.DomainKeyword = filingKeyword || retrievalKeyword

	switch {
	case filingKeyword && containsAnyVerb(tokens, e.catalog.FilingVerbs):
		res.Intent = FileComplaint
		res.PairDetected = true
	case retrievalKeyword && containsAnyVerb(tokens, e.catalog.RetrievalVerbs):
		res.Intent = RetrieveComplaint
		res.PairDetected = true
	}

	return res
}

// parseTokens tokenizes with prose and pulls the first PERSON entity. Falls
// back to whitespace tokens if the model cannot process the text.
func parseTokens(utterance string) ([]string, string) {
	doc, err := prose.NewDocument(utterance, prose.WithSegmentation(false))
	if err != nil {
		logger.Error("prose tokenization failed", zap.Error(err))
		return lowerFields(utterance), ""
	}

	var tokens []string
	for _, tok := range doc.Tokens() {
		tokens = append(tokens, strings.ToLower(tok.Text))
	}

	for _, ent := range doc.Entities() {
		if ent.Label == "PERSON" {
			return tokens, ent.Text
		}
	}
	return tokens, ""
}

func lowerFields(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// bareNameCandidate treats a short, letters-only utterance as a possible
// person name: one to three words, no digits, no "@". This is how a plain
// "Rahul Sharma" reply to the name prompt is picked up.
func bareNameCandidate(utterance string) string {
	trimmed := strings.TrimSpace(utterance)
	if trimmed == "" || strings.ContainsAny(trimmed, "@0123456789") {
		return ""
	}

	words := strings.Fields(trimmed)
	if len(words) < 1 || len(words) > 3 {
		return ""
	}
	for _, w := range words {
		for _, r := range w {
			if !unicode.IsLetter(r) && r != '\'' && r != '-' && r != '.' {
				return ""
			}
		}
	}
	return trimmed
}

func containsAnyKeyword(tokens, keywords []string) bool {
	for _, tok := range tokens {
		for _, kw := range keywords {
			if matchesInflected(tok, kw) {
				return true
			}
		}
	}
	return false
}

func containsAnyVerb(tokens, verbs []string) bool {
	for _, tok := range tokens {
		for _, v := range verbs {
			if matchesInflected(tok, v) {
				return true
			}
		}
	}
	return false
}

var irregularForms = map[string]string{
	"made":  "make",
	"had":   "have",
	"has":   "have",
	"saw":   "see",
	"seen":  "see",
	"got":   "get",
	"found": "find",
	"shown": "show",
}

// matchesInflected reports whether token is word or a common inflection of
// it (plural, past, progressive, doubled-consonant forms).
func matchesInflected(token, word string) bool {
	if token == word {
		return true
	}
	if base, ok := irregularForms[token]; ok && base == word {
		return true
	}

	switch token {
	case word + "s", word + "es", word + "d", word + "ed", word + "ing":
		return true
	}

	if strings.HasSuffix(word, "e") {
		if token == strings.TrimSuffix(word, "e")+"ing" {
			return true
		}
	}
	if n := len(word); n > 0 {
		doubled := word + string(word[n-1])
		if token == doubled+"ed" || token == doubled+"ing" {
			return true
		}
	}
	return false
}
