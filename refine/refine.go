package refine

import (
	"regexp"
	"strings"

	"github.com/SaiNageswarS/dialog-boot/intent"
	"github.com/SaiNageswarS/dialog-boot/memory"
)

// Refiner rewrites elliptical follow-up questions into standalone retrieval
// queries using the most recent document-query turn as the anchor. It is
// purely lexical: the same utterance and history always produce the same
// query, and an utterance with nothing to resolve passes through unchanged.
type Refiner struct {
	enabled bool
}

func NewRefiner(enabled bool) *Refiner {
	return &Refiner{enabled: enabled}
}

func (r *Refiner) Enabled() bool { return r.enabled }

var (
	aboutFollowupRe = regexp.MustCompile(`(?i)^(?:and\s+)?(?:what|how)\s+about\s+(.+?)[?.!\s]*$`)
	leadingArticle  = regexp.MustCompile(`(?i)^(?:the|a|an)\s+`)
)

// pronounTokens are the references resolved against the anchor query.
var pronounTokens = map[string]bool{
	"it": true, "that": true, "this": true,
	"they": true, "them": true, "those": true, "these": true,
}

// scaffoldTokens are leading question-scaffolding words stripped when
// recovering the subject phrase of an anchor query.
var scaffoldTokens = map[string]bool{
	"what": true, "how": true, "why": true, "when": true, "where": true,
	"who": true, "which": true, "does": true, "do": true, "did": true,
	"is": true, "are": true, "was": true, "were": true, "can": true,
	"could": true, "should": true, "would": true, "will": true,
	"i": true, "you": true, "we": true, "my": true, "me": true,
	"the": true, "a": true, "an": true, "to": true, "tell": true,
	"show": true, "explain": true, "about": true, "long": true,
	"much": true, "many": true, "please": true,
}

// Refine resolves the utterance's references against the session history.
// It is a no-op when refinement is disabled or when the history holds no
// document-query turn to anchor on.
func (r *Refiner) Refine(utterance string, history []memory.Turn) string {
	if !r.enabled {
		return utterance
	}

	anchor, ok := lastDocumentQuery(history)
	if !ok {
		return utterance
	}

	topic := subjectPhrase(anchor.User)
	if topic == "" {
		return utterance
	}

	// "what about X?" re-asks the anchor question with a new subject.
	if m := aboutFollowupRe.FindStringSubmatch(utterance); m != nil {
		replacement := leadingArticle.ReplaceAllString(strings.TrimSpace(m[1]), "")
		if pronounTokens[strings.ToLower(replacement)] {
			// "what about that?" is just the anchor question re-asked.
			return strings.TrimSpace(anchor.User)
		}
		if anchorHasAboutTail(anchor.User) {
			if spliced, ok := spliceSubject(anchor.User, topic, replacement); ok {
				return spliced
			}
		}
		return appendTopic(utterance, topic)
	}

	// A standalone pronoun is replaced in place by the anchor subject.
	if refined, ok := substitutePronoun(utterance, topic); ok {
		return refined
	}

	// Short elliptical fragments keep their wording but carry the subject.
	if len(tokenize(utterance)) <= 3 {
		return appendTopic(utterance, topic)
	}

	return utterance
}

// lastDocumentQuery walks the history backwards for the newest turn that was
// classified as a document query. Complaint-flow turns never match.
func lastDocumentQuery(history []memory.Turn) (memory.Turn, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Intent == string(intent.DocumentQuery) {
			return history[i], true
		}
	}
	return memory.Turn{}, false
}

// subjectPhrase recovers the topical core of a query: the tail after the
// last " about " when present, otherwise everything left after stripping the
// leading question scaffolding.
func subjectPhrase(query string) string {
	cleaned := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(query), "?.!"))
	lowered := strings.ToLower(cleaned)

	if idx := strings.LastIndex(lowered, " about "); idx >= 0 {
		tail := strings.TrimSpace(cleaned[idx+len(" about "):])
		return leadingArticle.ReplaceAllString(tail, "")
	}

	tokens := strings.Fields(cleaned)
	start := 0
	for start < len(tokens) && scaffoldTokens[normalizeToken(tokens[start])] {
		start++
	}
	if start >= len(tokens) {
		return ""
	}
	return strings.Join(tokens[start:], " ")
}

func anchorHasAboutTail(query string) bool {
	return strings.Contains(strings.ToLower(query), " about ")
}

// spliceSubject swaps the anchor's subject for a new one, keeping the rest
// of the anchor question intact.
func spliceSubject(anchorQuery, topic, replacement string) (string, bool) {
	cleaned := strings.TrimSpace(anchorQuery)
	idx := strings.Index(strings.ToLower(cleaned), strings.ToLower(topic))
	if idx < 0 || replacement == "" {
		return "", false
	}
	return cleaned[:idx] + replacement + cleaned[idx+len(topic):], true
}

func substitutePronoun(utterance, topic string) (string, bool) {
	fields := strings.Fields(utterance)
	for i, field := range fields {
		if pronounTokens[normalizeToken(field)] {
			trailing := field[len(strings.TrimRight(field, "?.!,")):]
			fields[i] = topic + trailing
			return strings.Join(fields, " "), true
		}
	}
	return "", false
}

func appendTopic(utterance, topic string) string {
	return strings.TrimSpace(utterance) + " (" + topic + ")"
}

func normalizeToken(token string) string {
	return strings.ToLower(strings.Trim(token, "?.!,;:"))
}

func tokenize(s string) []string {
	return strings.Fields(strings.TrimSpace(s))
}

// Transcript renders the history as alternating Human/Bot lines for the
// answer-generation prompt.
func Transcript(history []memory.Turn) string {
	var b strings.Builder
	for _, turn := range history {
		b.WriteString("Human: ")
		b.WriteString(turn.User)
		b.WriteString("\nBot: ")
		b.WriteString(turn.Bot)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
