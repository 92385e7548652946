package dialogue

import (
	"testing"

	"github.com/SaiNageswarS/dialog-boot/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine() *Machine {
	return NewMachine(DefaultComplaintSlots(), 0.8)
}

func classified(label intent.IntentLabel, confidence float64) intent.Classification {
	return intent.Classification{Label: label, Confidence: confidence}
}

func TestMachineStartFiling(t *testing.T) {
	m := newTestMachine()

	t.Run("filing intent opens the flow at the first slot", func(t *testing.T) {
		out := m.Step(IdleState(), nil, classified(intent.FileComplaint, 1.0), "I want to file a complaint")

		assert.Equal(t, CollectingComplaint, out.State.Kind)
		assert.Equal(t, 0, out.State.Cursor)
		require.NotNil(t, out.Draft)
		reply, ok := out.Action.(Reply)
		require.True(t, ok)
		assert.Equal(t, DefaultComplaintSlots()[0].Prompt, reply.Text)
	})

	t.Run("contact details in the opening utterance are seeded", func(t *testing.T) {
		cls := intent.Classification{
			Label:      intent.FileComplaint,
			Confidence: 1.0,
			Slots:      intent.SlotValues{Email: "ana@example.com"},
		}
		out := m.Step(IdleState(), nil, cls, "I want to file a complaint, my email is ana@example.com")

		require.NotNil(t, out.Draft)
		assert.Equal(t, "ana@example.com", out.Draft.Values["email"])
		// Still asks for the first unfilled slot, which is the name.
		assert.Equal(t, 0, out.State.Cursor)
	})
}

func TestMachineCollecting(t *testing.T) {
	m := newTestMachine()

	t.Run("valid value advances the cursor", func(t *testing.T) {
		draft := NewDraft()
		out := m.Step(Collecting(0), draft, classified(intent.ProvideSlotValue, 0.9), "Ana Martins")

		assert.Equal(t, CollectingComplaint, out.State.Kind)
		assert.Equal(t, 1, out.State.Cursor)
		assert.Equal(t, "Ana Martins", out.Draft.Values["name"])
		reply := out.Action.(Reply)
		assert.Equal(t, DefaultComplaintSlots()[1].Prompt, reply.Text)
	})

	t.Run("invalid phone re-prompts without advancing", func(t *testing.T) {
		draft := NewDraft()
		draft.Fill("name", "Ana Martins")
		out := m.Step(Collecting(1), draft, classified(intent.ProvideSlotValue, 0.9), "not a number")

		assert.Equal(t, 1, out.State.Cursor)
		assert.Empty(t, out.Draft.Values["phone"])
		reply := out.Action.(Reply)
		assert.Equal(t, DefaultComplaintSlots()[1].Reprompt, reply.Text)
	})

	t.Run("seeded slots are skipped when advancing", func(t *testing.T) {
		draft := NewDraft()
		draft.Fill("phone", "9876543210")
		out := m.Step(Collecting(0), draft, classified(intent.ProvideSlotValue, 0.9), "Ana Martins")

		// Phone is already present, so the machine jumps to email.
		assert.Equal(t, 2, out.State.Cursor)
		reply := out.Action.(Reply)
		assert.Equal(t, DefaultComplaintSlots()[2].Prompt, reply.Text)
	})

	t.Run("last slot moves to confirmation with a summary", func(t *testing.T) {
		draft := NewDraft()
		draft.Fill("name", "Ana Martins")
		draft.Fill("phone", "9876543210")
		draft.Fill("email", "ana@example.com")
		out := m.Step(Collecting(3), draft, classified(intent.ProvideSlotValue, 0.9), "My order #12345 never arrived and nobody responds")

		assert.Equal(t, ConfirmPending, out.State.Kind)
		reply := out.Action.(Reply)
		assert.Contains(t, reply.Text, "Ana Martins")
		assert.Contains(t, reply.Text, "(yes/no)")
	})

	t.Run("confident document question abandons the draft", func(t *testing.T) {
		draft := NewDraft()
		draft.Fill("name", "Ana Martins")
		draft.Fill("phone", "9876543210")
		out := m.Step(Collecting(2), draft, classified(intent.DocumentQuery, 0.9), "what does the warranty cover?")

		assert.Equal(t, Idle, out.State.Kind)
		assert.Nil(t, out.Draft)
		retrieve, ok := out.Action.(RetrieveDocuments)
		require.True(t, ok)
		assert.Equal(t, "what does the warranty cover?", retrieve.Query)
	})

	t.Run("low-confidence chatter stays in the flow", func(t *testing.T) {
		draft := NewDraft()
		out := m.Step(Collecting(0), draft, classified(intent.DocumentQuery, 0.5), "hmm let me think")

		assert.Equal(t, CollectingComplaint, out.State.Kind)
		assert.Equal(t, 0, out.State.Cursor)
		assert.NotNil(t, out.Draft)
	})

	t.Run("filing intent mid-flow is treated as slot input", func(t *testing.T) {
		draft := NewDraft()
		draft.Fill("name", "Ana Martins")
		draft.Fill("phone", "9876543210")
		draft.Fill("email", "ana@example.com")
		out := m.Step(Collecting(3), draft, classified(intent.FileComplaint, 1.0), "I want to file a complaint about my broken heater")

		// The utterance lands in the details slot instead of restarting.
		assert.Equal(t, ConfirmPending, out.State.Kind)
		assert.Contains(t, out.Draft.Values["details"], "broken heater")
	})
}

func TestMachineCustomSlotOrder(t *testing.T) {
	// A deployment that asks for the issue first and contact details after.
	slots := []SlotSpec{
		{
			Name:     "issue",
			Kind:     FreeText,
			Prompt:   "What went wrong?",
			Reprompt: "Could you describe the problem in a bit more detail?",
		},
		{
			Name:     "phone",
			Kind:     Phone,
			Prompt:   "What number can we reach you on?",
			Reprompt: "That doesn't look like a valid 10-digit phone number.",
		},
	}
	m := NewMachine(slots, 0.8)

	out := m.Step(Collecting(0), NewDraft(), classified(intent.ProvideSlotValue, 0.9), "my order #12345 never arrived")

	assert.Equal(t, CollectingComplaint, out.State.Kind)
	assert.Equal(t, 1, out.State.Cursor)
	assert.Equal(t, "my order #12345 never arrived", out.Draft.Values["issue"])
	reply := out.Action.(Reply)
	assert.Equal(t, slots[1].Prompt, reply.Text)
}

func TestMachineConfirm(t *testing.T) {
	m := newTestMachine()

	fullDraft := func() *Draft {
		draft := NewDraft()
		draft.Fill("name", "Ana Martins")
		draft.Fill("phone", "9876543210")
		draft.Fill("email", "ana@example.com")
		draft.Fill("details", "Order #12345 never arrived")
		return draft
	}

	t.Run("affirmative submits and keeps the draft until acknowledged", func(t *testing.T) {
		draft := fullDraft()
		out := m.Step(Confirming(), draft, classified(intent.Unknown, 0.3), "yes please")

		assert.Equal(t, ConfirmPending, out.State.Kind)
		require.NotNil(t, out.Draft)
		submit, ok := out.Action.(SubmitComplaint)
		require.True(t, ok)
		assert.Equal(t, "Ana Martins", submit.Fields["name"])
		assert.Equal(t, "Order #12345 never arrived", submit.Fields["details"])
	})

	t.Run("negative discards the draft", func(t *testing.T) {
		out := m.Step(Confirming(), fullDraft(), classified(intent.Unknown, 0.3), "no, cancel it")

		assert.Equal(t, Idle, out.State.Kind)
		assert.Nil(t, out.Draft)
		_, ok := out.Action.(Reply)
		assert.True(t, ok)
	})

	t.Run("don't submit is not an affirmative", func(t *testing.T) {
		out := m.Step(Confirming(), fullDraft(), classified(intent.Unknown, 0.3), "don't submit it yet")

		assert.Equal(t, Idle, out.State.Kind)
		assert.Nil(t, out.Draft)
	})

	t.Run("ambiguous answer re-asks", func(t *testing.T) {
		out := m.Step(Confirming(), fullDraft(), classified(intent.Unknown, 0.3), "maybe later")

		assert.Equal(t, ConfirmPending, out.State.Kind)
		require.NotNil(t, out.Draft)
		reply := out.Action.(Reply)
		assert.Contains(t, reply.Text, "yes or no")
	})

	t.Run("confident topic switch abandons the confirmation", func(t *testing.T) {
		out := m.Step(Confirming(), fullDraft(), classified(intent.DocumentQuery, 0.9), "what is the return window?")

		assert.Equal(t, Idle, out.State.Kind)
		assert.Nil(t, out.Draft)
		_, ok := out.Action.(RetrieveDocuments)
		assert.True(t, ok)
	})
}

func TestMachineRetrieval(t *testing.T) {
	m := newTestMachine()

	t.Run("direct ID skips the waiting state", func(t *testing.T) {
		cls := intent.Classification{
			Label:      intent.RetrieveComplaint,
			Confidence: 1.0,
			Slots:      intent.SlotValues{ComplaintID: "ABC-999"},
		}
		out := m.Step(IdleState(), nil, cls, "check complaint ABC-999")

		assert.Equal(t, Idle, out.State.Kind)
		fetch, ok := out.Action.(FetchComplaint)
		require.True(t, ok)
		assert.Equal(t, "ABC-999", fetch.ID)
	})

	t.Run("missing ID asks for one", func(t *testing.T) {
		out := m.Step(IdleState(), nil, classified(intent.RetrieveComplaint, 1.0), "check my complaint status")

		assert.Equal(t, AwaitingComplaintID, out.State.Kind)
		_, ok := out.Action.(Reply)
		assert.True(t, ok)
	})

	t.Run("ID supplied while waiting triggers the fetch", func(t *testing.T) {
		cls := intent.Classification{
			Label:      intent.ProvideSlotValue,
			Confidence: 0.9,
			Slots:      intent.SlotValues{ComplaintID: "XYZ-42"},
		}
		out := m.Step(AwaitingID(), nil, cls, "it's XYZ-42")

		assert.Equal(t, Idle, out.State.Kind)
		fetch := out.Action.(FetchComplaint)
		assert.Equal(t, "XYZ-42", fetch.ID)
	})

	t.Run("garbage while waiting re-prompts", func(t *testing.T) {
		out := m.Step(AwaitingID(), nil, classified(intent.Unknown, 0.3), "ummm I lost it")

		assert.Equal(t, AwaitingComplaintID, out.State.Kind)
		reply := out.Action.(Reply)
		assert.Contains(t, reply.Text, "ABC-123")
	})

	t.Run("cancel while waiting returns to idle", func(t *testing.T) {
		out := m.Step(AwaitingID(), nil, classified(intent.Unknown, 0.3), "never mind")

		assert.Equal(t, Idle, out.State.Kind)
		_, ok := out.Action.(Reply)
		assert.True(t, ok)
	})

	t.Run("question while waiting switches topic", func(t *testing.T) {
		out := m.Step(AwaitingID(), nil, classified(intent.DocumentQuery, 0.9), "how long do refunds take?")

		assert.Equal(t, Idle, out.State.Kind)
		_, ok := out.Action.(RetrieveDocuments)
		assert.True(t, ok)
	})
}

func TestMachineIdleFallbacks(t *testing.T) {
	m := newTestMachine()

	t.Run("document question retrieves", func(t *testing.T) {
		out := m.Step(IdleState(), nil, classified(intent.DocumentQuery, 0.9), "what does the manual say about returns?")

		assert.Equal(t, Idle, out.State.Kind)
		retrieve := out.Action.(RetrieveDocuments)
		assert.Equal(t, "what does the manual say about returns?", retrieve.Query)
	})

	t.Run("unknown asks for clarification", func(t *testing.T) {
		out := m.Step(IdleState(), nil, classified(intent.Unknown, 0.3), "the complaint")

		assert.Equal(t, Idle, out.State.Kind)
		reply := out.Action.(Reply)
		assert.Contains(t, reply.Text, "file a new complaint")
	})
}
