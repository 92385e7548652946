package intent

// PatternMatcher evaluates the fixed regex catalog. It is the highest
// precedence signal: a hit is treated as certain.
type PatternMatcher struct {
	catalog *Catalog
}

func NewPatternMatcher(catalog *Catalog) *PatternMatcher {
	return &PatternMatcher{catalog: catalog}
}

// Match returns the first matching template. Filing patterns are tried before
// retrieval patterns so "file a complaint about my ticket" lands on filing.
func (m *PatternMatcher) Match(utterance string) PatternResult {
	for _, re := range m.catalog.FilingPatterns {
		if re.MatchString(utterance) {
			return PatternResult{Matched: true, Intent: FileComplaint, Template: re.String()}
		}
	}

	for _, re := range m.catalog.RetrievalPatterns {
		if re.MatchString(utterance) {
			return PatternResult{Matched: true, Intent: RetrieveComplaint, Template: re.String()}
		}
	}

	return PatternResult{}
}
