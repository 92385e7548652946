package memory

import (
	"context"
	"os"
	"testing"

	"github.com/SaiNageswarS/dialog-boot/dialogue"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisContextStoreIntegration(t *testing.T) {
	if os.Getenv("REDIS_URL") == "" {
		t.Skip("REDIS_URL not set; skipping Redis store integration test")
	}

	ctx := context.Background()
	store, err := ProvideRedisContextStore(ctx)
	require.NoError(t, err)
	defer store.Close()

	sessionID := "it-" + uuid.New().String()
	defer store.Delete(ctx, sessionID)

	t.Run("load of an unknown session is a fresh idle context", func(t *testing.T) {
		conversation, err := store.Load(ctx, sessionID)

		require.NoError(t, err)
		assert.Equal(t, sessionID, conversation.ID)
		assert.Equal(t, dialogue.Idle, conversation.State.Kind)
		assert.Empty(t, conversation.Turns)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		conversation := NewConversationContext(sessionID)
		conversation.SetState(dialogue.Collecting(1))
		conversation.UpdateSlot("name", "Ana Martins")
		conversation.AppendTurn("I want to file a complaint", "Could I have your full name, please?", "file_complaint")
		require.NoError(t, store.Save(ctx, conversation))

		reloaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, dialogue.CollectingComplaint, reloaded.State.Kind)
		assert.Equal(t, 1, reloaded.State.Cursor)
		require.NotNil(t, reloaded.Draft)
		assert.Equal(t, "Ana Martins", reloaded.Draft.Values["name"])
		require.Len(t, reloaded.Turns, 1)
		assert.Equal(t, "file_complaint", reloaded.Turns[0].Intent)
	})

	t.Run("delete clears the session", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, sessionID))

		reloaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, dialogue.Idle, reloaded.State.Kind)
		assert.Empty(t, reloaded.Turns)
	})
}
