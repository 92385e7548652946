package intent

// IntentLabel is the closed set of intents the classifier can assign.
type IntentLabel string

const (
	FileComplaint     IntentLabel = "file_complaint"
	RetrieveComplaint IntentLabel = "retrieve_complaint"
	ProvideSlotValue  IntentLabel = "provide_slot_value"
	DocumentQuery     IntentLabel = "document_query"
	Unknown           IntentLabel = "unknown"
)

// Confidence levels assigned by the fusion policy. Exact patterns are
// certain; everything else is ranked below them.
const (
	PatternConfidence   = 1.0
	SlotValueConfidence = 0.9
	QuestionConfidence  = 0.9
	NLPPairConfidence   = 0.75
	StatementConfidence = 0.5
	UnknownConfidence   = 0.3
)

// Default tuning for the classifier. Fuzzy matches below the fuzzy threshold
// are discarded; an intent switch during a complaint flow needs at least the
// topic-switch confidence to win over slot collection.
const (
	DefaultFuzzyThreshold       = 0.7
	DefaultTopicSwitchThreshold = 0.8
)

// SlotValues carries entity candidates extracted from a single utterance,
// independent of which intent wins.
type SlotValues struct {
	Email       string
	Phone       string
	ComplaintID string
	PersonName  string
}

// Classification is the fused result for one utterance.
type Classification struct {
	Label      IntentLabel
	Confidence float64
	Slots      SlotValues

	// Matched names the pattern template or catalog phrase that decided the
	// label, for logging and tests. Empty for fallback labels.
	Matched string
}

// Context is the read-only dialogue view the classifier consults. The full
// dialogue state lives elsewhere; classification only needs to know whether a
// complaint slot is being collected this turn.
type Context struct {
	AwaitingSlot bool
}

// PatternResult is the pattern matcher's verdict for one utterance.
type PatternResult struct {
	Matched  bool
	Intent   IntentLabel
	Template string
}

// FuzzyResult is the fuzzy matcher's best catalog hit for one utterance.
type FuzzyResult struct {
	Intent IntentLabel
	Phrase string
	Score  float64
}

// NLPResult is the NLP extractor's output: a keyword+verb intent signal (if
// any), a domain-keyword hint, and slot value candidates.
type NLPResult struct {
	Intent        IntentLabel
	PairDetected  bool
	DomainKeyword bool
	Slots         SlotValues
}
