package intent

import "regexp"

// Catalog holds the per-intent templates every extractor scores against:
// regex patterns for the pattern matcher, canonical phrases for the fuzzy
// matcher, and keyword/verb vocabularies for the NLP extractor.
type Catalog struct {
	FilingPatterns    []*regexp.Regexp
	RetrievalPatterns []*regexp.Regexp

	FilingPhrases    []string
	RetrievalPhrases []string

	FilingKeywords    []string
	RetrievalKeywords []string
	FilingVerbs       []string
	RetrievalVerbs    []string
}

var (
	defaultFilingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bfile\s+a\s+complaint\b`),
		regexp.MustCompile(`(?i)\bmake\s+a\s+complaint\b`),
		regexp.MustCompile(`(?i)\bsubmit\s+a\s+complaint\b`),
		regexp.MustCompile(`(?i)\bregister\s+a\s+complaint\b`),
		regexp.MustCompile(`(?i)\blodge\s+a\s+complaint\b`),
		regexp.MustCompile(`(?i)\braise\s+a\s+complaint\b`),
		regexp.MustCompile(`(?i)\bi\s+(?:want|need|would\s+like)\s+to\s+(?:file|make|submit|register|lodge|raise)\b.*\bcomplaint\b`),
		regexp.MustCompile(`(?i)\bi\s+have\s+a\s+complaint\b`),
		regexp.MustCompile(`(?i)\breport\s+(?:an?\s+)?(?:issue|problem)\b`),
	}

	defaultRetrievalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:check|show|view|track|see|find|get)\b[^?.!]*\bcomplaint\b`),
		regexp.MustCompile(`(?i)\bcomplaint\s+status\b`),
		regexp.MustCompile(`(?i)\bstatus\s+of\s+my\s+complaint\b`),
	}
)

// DefaultCatalog returns the built-in complaint-domain catalog. Callers may
// replace or extend any field before handing it to the extractors.
func DefaultCatalog() *Catalog {
	return &Catalog{
		FilingPatterns:    defaultFilingPatterns,
		RetrievalPatterns: defaultRetrievalPatterns,

		FilingPhrases: []string{
			"i want to file a complaint",
			"i would like to file a complaint",
			"i need to file a complaint",
			"i want to make a complaint",
			"i want to register a complaint",
			"i want to lodge a complaint",
			"i want to submit a complaint",
			"i have a complaint",
			"i have a complaint about my order",
			"i need to report an issue",
			"i want to report a problem",
			"i want to complain about the service",
			"there is a problem with my order",
			"something is wrong with my order",
			"i am unhappy with the service",
		},
		RetrievalPhrases: []string{
			"check my complaint status",
			"what is the status of my complaint",
			"show me my complaint",
			"show my complaint details",
			"track my complaint",
			"find my complaint",
			"get my complaint status",
			"i want to see my complaint",
			"i want to check on my complaint",
			"view my complaint",
			"retrieve my complaint",
			"where is my complaint",
		},

		FilingKeywords:    []string{"complaint", "report", "issue", "problem", "concern"},
		RetrievalKeywords: []string{"complaint", "ticket", "case", "issue", "status"},
		FilingVerbs:       []string{"file", "submit", "make", "register", "lodge", "raise", "have"},
		RetrievalVerbs:    []string{"show", "see", "find", "get", "check", "track", "view", "retrieve"},
	}
}
