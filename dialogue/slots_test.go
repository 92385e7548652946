package dialogue

import (
	"testing"

	"github.com/SaiNageswarS/dialog-boot/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractValue(t *testing.T) {
	slots := DefaultComplaintSlots()
	byName := map[string]SlotSpec{}
	for _, s := range slots {
		byName[s.Name] = s
	}

	t.Run("name accepts plain words", func(t *testing.T) {
		got, err := byName["name"].ExtractValue("Ana Martins", intent.SlotValues{})
		require.NoError(t, err)
		assert.Equal(t, "Ana Martins", got)
	})

	t.Run("name prefers the recognized entity", func(t *testing.T) {
		got, err := byName["name"].ExtractValue("my name is Ana Martins", intent.SlotValues{PersonName: "Ana Martins"})
		require.NoError(t, err)
		assert.Equal(t, "Ana Martins", got)
	})

	t.Run("name rejects digits and long phrases", func(t *testing.T) {
		for _, utterance := range []string{"call me at 12345", "I would rather not say my name"} {
			_, err := byName["name"].ExtractValue(utterance, intent.SlotValues{})
			assert.Error(t, err, utterance)
		}
	})

	t.Run("phone normalizes separators", func(t *testing.T) {
		got, err := byName["phone"].ExtractValue("987-654-3210", intent.SlotValues{Phone: "9876543210"})
		require.NoError(t, err)
		assert.Equal(t, "9876543210", got)
	})

	t.Run("phone rejects short numbers", func(t *testing.T) {
		_, err := byName["phone"].ExtractValue("12345", intent.SlotValues{})
		require.Error(t, err)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "phone", verr.Slot)
	})

	t.Run("email falls back to the raw text", func(t *testing.T) {
		got, err := byName["email"].ExtractValue("ana@example.com", intent.SlotValues{})
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", got)
	})

	t.Run("email rejects malformed addresses", func(t *testing.T) {
		_, err := byName["email"].ExtractValue("ana at example dot com", intent.SlotValues{})
		assert.Error(t, err)
	})

	t.Run("details need a minimum length", func(t *testing.T) {
		_, err := byName["details"].ExtractValue("bad", intent.SlotValues{})
		assert.Error(t, err)

		got, err := byName["details"].ExtractValue("my order #12345 never arrived", intent.SlotValues{})
		require.NoError(t, err)
		assert.Equal(t, "my order #12345 never arrived", got)
	})
}

func TestDraft(t *testing.T) {
	t.Run("fill and read back", func(t *testing.T) {
		draft := NewDraft()
		assert.NotEmpty(t, draft.ID)

		draft.Fill("name", "Ana Martins")
		assert.True(t, draft.Filled("name"))
		assert.False(t, draft.Filled("phone"))
	})

	t.Run("fields returns a copy", func(t *testing.T) {
		draft := NewDraft()
		draft.Fill("name", "Ana Martins")

		fields := draft.Fields()
		fields["name"] = "overwritten"
		assert.Equal(t, "Ana Martins", draft.Values["name"])
	})

	t.Run("fill tolerates a zero-value draft", func(t *testing.T) {
		var draft Draft
		draft.Fill("name", "Ana Martins")
		assert.Equal(t, "Ana Martins", draft.Values["name"])
	})
}
