package dialogue

import (
	"fmt"
	"strings"

	"github.com/SaiNageswarS/dialog-boot/intent"
)

// Machine drives the complaint dialogue. Step is a pure transition function
// over (state, draft, classification, utterance); it never talks to a
// backend and never mutates its inputs. The engine owns persistence.
type Machine struct {
	slots       []SlotSpec
	topicSwitch float64
}

func NewMachine(slots []SlotSpec, topicSwitchThreshold float64) *Machine {
	return &Machine{slots: slots, topicSwitch: topicSwitchThreshold}
}

func (m *Machine) Slots() []SlotSpec { return m.slots }

// Outcome is the result of one transition: the next state, the surviving
// draft (nil when discarded), and the single action to perform.
type Outcome struct {
	State  State
	Draft  *Draft
	Action Action
}

func (m *Machine) Step(st State, draft *Draft, cls intent.Classification, utterance string) Outcome {
	switch st.Kind {
	case CollectingComplaint:
		return m.stepCollecting(st, draft, cls, utterance)
	case ConfirmPending:
		return m.stepConfirm(draft, cls, utterance)
	case AwaitingComplaintID:
		return m.stepAwaitingID(cls, utterance)
	default:
		return m.stepIdle(cls, utterance)
	}
}

func (m *Machine) stepIdle(cls intent.Classification, utterance string) Outcome {
	switch cls.Label {
	case intent.FileComplaint:
		return m.startFiling(cls)

	case intent.RetrieveComplaint:
		if cls.Slots.ComplaintID != "" {
			// The ID is already in the utterance; skip the waiting state.
			return Outcome{State: IdleState(), Action: FetchComplaint{ID: cls.Slots.ComplaintID}}
		}
		return Outcome{
			State:  AwaitingID(),
			Action: Reply{Text: "Sure — could you share your complaint ID? It usually looks like ABC-123."},
		}

	case intent.DocumentQuery:
		return Outcome{State: IdleState(), Action: RetrieveDocuments{Query: utterance}}

	default:
		return Outcome{State: IdleState(), Action: Reply{Text: clarificationText}}
	}
}

// startFiling creates a draft, seeds it with contact values already present
// in the triggering utterance, and asks for the first unfilled slot.
func (m *Machine) startFiling(cls intent.Classification) Outcome {
	draft := NewDraft()
	for _, slot := range m.slots {
		switch slot.Kind {
		case Phone:
			if cls.Slots.Phone != "" {
				draft.Fill(slot.Name, cls.Slots.Phone)
			}
		case Email:
			if cls.Slots.Email != "" {
				draft.Fill(slot.Name, cls.Slots.Email)
			}
		}
	}

	cursor := m.nextUnfilled(draft, 0)
	if cursor >= len(m.slots) {
		return Outcome{State: Confirming(), Draft: draft, Action: Reply{Text: m.confirmationText(draft)}}
	}
	return Outcome{
		State:  Collecting(cursor),
		Draft:  draft,
		Action: Reply{Text: m.slots[cursor].Prompt},
	}
}

func (m *Machine) stepCollecting(st State, draft *Draft, cls intent.Classification, utterance string) Outcome {
	// A filing intent mid-flow is the same conversation, not a topic switch:
	// "I want to file a complaint about my heater" while the details slot is
	// open is the detail text itself. Everything that is not a strong
	// competing intent is treated as input for the open slot.
	if m.switchesTopic(cls) && cls.Label != intent.FileComplaint {
		abandoned := m.stepIdle(cls, utterance)
		abandoned.Draft = nil
		return abandoned
	}

	slot := m.slots[st.Cursor]
	value, err := slot.ExtractValue(utterance, cls.Slots)
	if err != nil {
		return Outcome{State: st, Draft: draft, Action: Reply{Text: slot.Reprompt}}
	}

	draft.Fill(slot.Name, value)
	cursor := m.nextUnfilled(draft, st.Cursor+1)
	if cursor >= len(m.slots) {
		return Outcome{State: Confirming(), Draft: draft, Action: Reply{Text: m.confirmationText(draft)}}
	}
	return Outcome{State: Collecting(cursor), Draft: draft, Action: Reply{Text: m.slots[cursor].Prompt}}
}

func (m *Machine) stepConfirm(draft *Draft, cls intent.Classification, utterance string) Outcome {
	switch {
	case isNegative(utterance):
		return Outcome{
			State:  IdleState(),
			Action: Reply{Text: "No problem — I've discarded that complaint draft. Anything else I can help with?"},
		}

	case isAffirmative(utterance):
		// Stay in ConfirmPending until the submission is acknowledged, so a
		// backend failure leaves the draft intact for a retry.
		return Outcome{State: Confirming(), Draft: draft, Action: SubmitComplaint{Fields: draft.Fields()}}

	case m.switchesTopic(cls):
		abandoned := m.stepIdle(cls, utterance)
		abandoned.Draft = nil
		return abandoned

	default:
		return Outcome{
			State:  Confirming(),
			Draft:  draft,
			Action: Reply{Text: "Shall I go ahead and submit this complaint? Please answer yes or no."},
		}
	}
}

func (m *Machine) stepAwaitingID(cls intent.Classification, utterance string) Outcome {
	if isNegative(utterance) {
		return Outcome{State: IdleState(), Action: Reply{Text: "Okay, I won't look anything up. Anything else I can help with?"}}
	}

	id := cls.Slots.ComplaintID
	if id == "" {
		id = intent.FindComplaintID(utterance)
	}
	if id != "" {
		return Outcome{State: IdleState(), Action: FetchComplaint{ID: id}}
	}

	if m.switchesTopic(cls) && cls.Label != intent.RetrieveComplaint {
		return m.stepIdle(cls, utterance)
	}

	return Outcome{
		State:  AwaitingID(),
		Action: Reply{Text: "That doesn't look like a valid complaint ID. It usually looks like ABC-123 — could you check and resend it?"},
	}
}

func (m *Machine) switchesTopic(cls intent.Classification) bool {
	switch cls.Label {
	case intent.FileComplaint, intent.RetrieveComplaint, intent.DocumentQuery:
		return cls.Confidence >= m.topicSwitch
	default:
		return false
	}
}

// nextUnfilled returns the first slot index at or after from whose value is
// still missing. Seeded values from the triggering utterance are skipped.
func (m *Machine) nextUnfilled(draft *Draft, from int) int {
	for i := from; i < len(m.slots); i++ {
		if !draft.Filled(m.slots[i].Name) {
			return i
		}
	}
	return len(m.slots)
}

func (m *Machine) confirmationText(draft *Draft) string {
	var b strings.Builder
	b.WriteString("Here's what I have:\n")
	for _, slot := range m.slots {
		b.WriteString(fmt.Sprintf("- %s: %s\n", titleCase(slot.Name), draft.Values[slot.Name]))
	}
	b.WriteString("Shall I submit this complaint? (yes/no)")
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const clarificationText = "I'm not quite sure what you need. You can ask a question about our documents, file a new complaint, or check an existing one."

var affirmativeWords = []string{"yes", "y", "yeah", "yep", "sure", "ok", "okay", "confirm", "correct", "right", "submit"}

var negativeWords = []string{"no", "n", "nope", "cancel", "stop", "discard", "don't", "dont"}

var affirmativePhrases = []string{"go ahead", "please do", "sounds good"}

var negativePhrases = []string{"never mind", "forget it", "hold off"}

func isAffirmative(utterance string) bool {
	normalized := strings.ToLower(strings.TrimSpace(utterance))
	for _, p := range negativePhrases {
		if strings.Contains(normalized, p) {
			return false
		}
	}
	for _, p := range affirmativePhrases {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return containsWord(normalized, affirmativeWords) && !containsWord(normalized, negativeWords)
}

func isNegative(utterance string) bool {
	normalized := strings.ToLower(strings.TrimSpace(utterance))
	for _, p := range negativePhrases {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return containsWord(normalized, negativeWords)
}

func containsWord(normalized string, words []string) bool {
	for _, field := range strings.FieldsFunc(normalized, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '!' || r == '?'
	}) {
		for _, w := range words {
			if field == w {
				return true
			}
		}
	}
	return false
}
