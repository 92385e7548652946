package dialogue

import (
	"strings"

	"github.com/SaiNageswarS/dialog-boot/intent"
	"github.com/google/uuid"
)

// SlotKind selects the validation rule applied to a collected value.
type SlotKind string

const (
	FreeText   SlotKind = "free_text"
	PersonName SlotKind = "person_name"
	Phone      SlotKind = "phone"
	Email      SlotKind = "email"
	Identifier SlotKind = "identifier"
)

// SlotSpec is one required field of a complaint: its name, how it is
// validated, and the prompts used to ask for it.
type SlotSpec struct {
	Name     string   `json:"name" bson:"name"`
	Kind     SlotKind `json:"kind" bson:"kind"`
	Prompt   string   `json:"prompt" bson:"prompt"`
	Reprompt string   `json:"reprompt" bson:"reprompt"`
}

// DefaultComplaintSlots returns the built-in required-slot list, in
// collection order.
func DefaultComplaintSlots() []SlotSpec {
	return []SlotSpec{
		{
			Name:     "name",
			Kind:     PersonName,
			Prompt:   "Sure — I can help you file a complaint. Could I have your full name, please?",
			Reprompt: "That doesn't look like a name. Could you tell me your full name?",
		},
		{
			Name:     "phone",
			Kind:     Phone,
			Prompt:   "What is the best phone number to reach you on?",
			Reprompt: "Oops! The number you entered is not a valid phone number. Please provide a valid 10-digit phone number.",
		},
		{
			Name:     "email",
			Kind:     Email,
			Prompt:   "Got it. What email address should we use for updates?",
			Reprompt: "Oops! That email address doesn't look right. Please provide a valid email (e.g. name@example.com).",
		},
		{
			Name:     "details",
			Kind:     FreeText,
			Prompt:   "Please describe the issue you're facing in a few words.",
			Reprompt: "Could you add a bit more detail about the issue so we can file it properly?",
		},
	}
}

// ExtractValue pulls the slot's value out of an utterance, preferring the
// classifier's entity candidates over the raw text, and validates it.
func (s SlotSpec) ExtractValue(utterance string, slots intent.SlotValues) (string, error) {
	raw := strings.TrimSpace(utterance)

	switch s.Kind {
	case PersonName:
		candidate := slots.PersonName
		if candidate == "" {
			candidate = raw
		}
		return s.validateName(candidate)

	case Phone:
		if slots.Phone != "" {
			return slots.Phone, nil
		}
		if normalized, ok := intent.NormalizePhone(raw); ok {
			return normalized, nil
		}
		return "", &ValidationError{Slot: s.Name, Reason: "malformed phone number"}

	case Email:
		if slots.Email != "" {
			return slots.Email, nil
		}
		if intent.ValidEmail(raw) {
			return raw, nil
		}
		return "", &ValidationError{Slot: s.Name, Reason: "malformed email address"}

	case Identifier:
		if slots.ComplaintID != "" {
			return slots.ComplaintID, nil
		}
		if id := intent.FindComplaintID(raw); id != "" {
			return id, nil
		}
		return "", &ValidationError{Slot: s.Name, Reason: "malformed identifier"}

	default:
		if len(raw) < 5 {
			return "", &ValidationError{Slot: s.Name, Reason: "value too short"}
		}
		return raw, nil
	}
}

func (s SlotSpec) validateName(candidate string) (string, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || strings.ContainsAny(candidate, "@0123456789") {
		return "", &ValidationError{Slot: s.Name, Reason: "not a person name"}
	}
	if words := len(strings.Fields(candidate)); words < 1 || words > 3 {
		return "", &ValidationError{Slot: s.Name, Reason: "not a person name"}
	}
	return candidate, nil
}

// Draft is the in-progress complaint: the collected values keyed by slot
// name. It exists only while the dialogue is in the complaint-filing path.
type Draft struct {
	ID     string            `json:"id" bson:"id"`
	Values map[string]string `json:"values" bson:"values"`
}

func NewDraft() *Draft {
	return &Draft{
		ID:     uuid.New().String(),
		Values: map[string]string{},
	}
}

func (d *Draft) Fill(name, value string) {
	if d.Values == nil {
		d.Values = map[string]string{}
	}
	d.Values[name] = value
}

func (d *Draft) Filled(name string) bool {
	_, ok := d.Values[name]
	return ok
}

// Fields returns a copy of the collected values for submission.
func (d *Draft) Fields() map[string]string {
	out := make(map[string]string, len(d.Values))
	for k, v := range d.Values {
		out[k] = v
	}
	return out
}
