package memory

import (
	"context"
	"sync"
)

// ContextStore persists conversation contexts keyed by session ID. Load
// returns a fresh idle context for a session it has never seen; an error
// means the backing store itself failed.
type ContextStore interface {
	Load(ctx context.Context, sessionID string) (*ConversationContext, error)
	Save(ctx context.Context, conversation *ConversationContext) error
	Delete(ctx context.Context, sessionID string) error
}

// InMemoryContextStore keeps contexts in a process-local map. It is the
// default store and is safe for concurrent sessions.
type InMemoryContextStore struct {
	mu       sync.RWMutex
	sessions map[string]*ConversationContext
}

func NewInMemoryContextStore() *InMemoryContextStore {
	return &InMemoryContextStore{sessions: map[string]*ConversationContext{}}
}

func (s *InMemoryContextStore) Load(_ context.Context, sessionID string) (*ConversationContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if conversation, ok := s.sessions[sessionID]; ok {
		return conversation.Clone(), nil
	}
	return NewConversationContext(sessionID), nil
}

func (s *InMemoryContextStore) Save(_ context.Context, conversation *ConversationContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[conversation.ID] = conversation.Clone()
	return nil
}

func (s *InMemoryContextStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}
