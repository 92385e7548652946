package intent

import (
	"strings"

	"github.com/SaiNageswarS/go-collection-boot/async"
)

// Classifier fuses the three extractor signals into a single labeled intent.
// It is a pure decision function over (utterance, dialogue context); the only
// state it holds is the catalog and the two thresholds.
type Classifier struct {
	pattern *PatternMatcher
	fuzzy   *FuzzyMatcher
	nlp     *NLPExtractor

	topicSwitch float64
}

func NewClassifier(catalog *Catalog, fuzzyThreshold, topicSwitchThreshold float64) *Classifier {
	return &Classifier{
		pattern:     NewPatternMatcher(catalog),
		fuzzy:       NewFuzzyMatcher(catalog, fuzzyThreshold),
		nlp:         NewNLPExtractor(catalog),
		topicSwitch: topicSwitchThreshold,
	}
}

func (c *Classifier) TopicSwitchThreshold() float64 { return c.topicSwitch }

// Classify runs the extractors in parallel and applies the fusion policy:
//
//  1. an exact pattern match wins outright with confidence 1.0
//  2. mid slot collection, plausible free text is a slot value unless a
//     competing actionable signal reaches the topic-switch threshold
//  3. a fuzzy score at or above the threshold selects that intent with
//     confidence equal to the score
//  4. an NLP keyword+verb pair selects that intent at fixed confidence
//  5. a bare domain keyword yields Unknown (clarification)
//  6. everything else is a DocumentQuery, scored by question shape
//
// Ties among non-exact signals break pattern > fuzzy > NLP.
func (c *Classifier) Classify(utterance string, dctx Context) Classification {
	patTask := async.Go(func() (PatternResult, error) { return c.pattern.Match(utterance), nil })
	fuzTask := async.Go(func() (FuzzyResult, error) { return c.fuzzy.Match(utterance), nil })
	nlpTask := async.Go(func() (NLPResult, error) { return c.nlp.Extract(utterance), nil })

	pat, _ := async.Await(patTask)
	fuz, _ := async.Await(fuzTask)
	nlp, _ := async.Await(nlpTask)

	signal := c.fuse(utterance, pat, fuz, nlp)

	if dctx.AwaitingSlot && strings.TrimSpace(utterance) != "" {
		if !c.switchesTopic(signal) {
			return Classification{
				Label:      ProvideSlotValue,
				Confidence: SlotValueConfidence,
				Slots:      nlp.Slots,
			}
		}
	}

	return signal
}

func (c *Classifier) fuse(utterance string, pat PatternResult, fuz FuzzyResult, nlp NLPResult) Classification {
	if pat.Matched {
		return Classification{Label: pat.Intent, Confidence: PatternConfidence, Slots: nlp.Slots, Matched: pat.Template}
	}

	if fuz.Score >= c.fuzzy.Threshold() && fuz.Intent != Unknown {
		return Classification{Label: fuz.Intent, Confidence: fuz.Score, Slots: nlp.Slots, Matched: fuz.Phrase}
	}

	if nlp.PairDetected {
		return Classification{Label: nlp.Intent, Confidence: NLPPairConfidence, Slots: nlp.Slots}
	}

	if nlp.DomainKeyword {
		return Classification{Label: Unknown, Confidence: UnknownConfidence, Slots: nlp.Slots}
	}

	confidence := StatementConfidence
	if questionShaped(utterance) {
		confidence = QuestionConfidence
	}
	return Classification{Label: DocumentQuery, Confidence: confidence, Slots: nlp.Slots}
}

// switchesTopic reports whether a competing signal is strong enough to
// abandon an in-progress slot collection. Unknown never switches.
func (c *Classifier) switchesTopic(signal Classification) bool {
	switch signal.Label {
	case FileComplaint, RetrieveComplaint, DocumentQuery:
		return signal.Confidence >= c.topicSwitch
	default:
		return false
	}
}

var interrogativeLeads = []string{
	"what", "how", "why", "where", "when", "who", "which",
	"can", "could", "would", "do", "does", "did", "is", "are",
	"tell", "explain", "describe",
}

func questionShaped(utterance string) bool {
	trimmed := strings.TrimSpace(utterance)
	if strings.HasSuffix(trimmed, "?") {
		return true
	}

	fields := strings.Fields(strings.ToLower(trimmed))
	if len(fields) == 0 {
		return false
	}
	for _, lead := range interrogativeLeads {
		if fields[0] == lead {
			return true
		}
	}
	return false
}
