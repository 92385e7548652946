package memory

import (
	"context"

	"github.com/SaiNageswarS/dialog-boot/dialogue"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// ContextManager handles loading, saving, and bounding conversation contexts
type ContextManager struct {
	store    ContextStore
	maxTurns int
}

// NewContextManager creates a new context manager
func NewContextManager(store ContextStore, maxTurns int) *ContextManager {
	return &ContextManager{
		store:    store,
		maxTurns: maxTurns,
	}
}

// LoadSession loads the conversation context for a session
func (cm *ContextManager) LoadSession(ctx context.Context, sessionID string) *ConversationContext {
	if cm.store == nil {
		return NewConversationContext(sessionID)
	}

	conversation, err := cm.store.Load(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to load session", zap.String("sessionId", sessionID), zap.Error(err))
		return NewConversationContext(sessionID) // Return a fresh context to allow the conversation to continue
	}

	if conversation.State.Kind == "" {
		conversation.State = dialogue.IdleState()
	}
	return conversation
}

// SaveSession saves the conversation context for a session
func (cm *ContextManager) SaveSession(ctx context.Context, conversation *ConversationContext) error {
	if cm.store == nil {
		return nil
	}

	// Trim turns to respect the session history bound
	conversation.Turns = cm.trimTurns(conversation.Turns)

	if err := cm.store.Save(ctx, conversation); err != nil {
		logger.Error("Failed to save session", zap.String("sessionId", conversation.ID), zap.Error(err))
		return err
	}
	return nil
}

// ResetSession clears a session. Resetting an unknown session is a no-op.
func (cm *ContextManager) ResetSession(ctx context.Context, sessionID string) error {
	if cm.store == nil {
		return nil
	}

	if err := cm.store.Delete(ctx, sessionID); err != nil {
		logger.Error("Failed to reset session", zap.String("sessionId", sessionID), zap.Error(err))
		return err
	}
	return nil
}

// trimTurns keeps the last maxTurns turns, evicting the oldest first. If
// there are fewer than maxTurns turns total, it returns turns unchanged.
func (cm *ContextManager) trimTurns(turns []Turn) []Turn {
	if cm.maxTurns <= 0 || len(turns) == 0 {
		return []Turn{}
	}
	if len(turns) <= cm.maxTurns {
		return turns
	}
	return turns[len(turns)-cm.maxTurns:]
}

// GetMaxTurns returns the maximum number of turns kept per session
func (cm *ContextManager) GetMaxTurns() int {
	return cm.maxTurns
}

// SetMaxTurns sets the maximum number of turns kept per session
func (cm *ContextManager) SetMaxTurns(max int) {
	cm.maxTurns = max
}
