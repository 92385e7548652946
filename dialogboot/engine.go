package dialogboot

import (
	"context"
	"sync"

	"github.com/SaiNageswarS/dialog-boot/dialogue"
	"github.com/SaiNageswarS/dialog-boot/intent"
	"github.com/SaiNageswarS/dialog-boot/memory"
	"github.com/SaiNageswarS/dialog-boot/refine"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// Engine turns user utterances into dialogue actions. Each turn is
// classified, run through the state machine, and persisted, yielding
// exactly one action for the caller to execute.
//
// Turns within a session are serialized; different sessions may be
// handled concurrently.
type Engine struct {
	classifier    *intent.Classifier
	machine       *dialogue.Machine
	refiner       *refine.Refiner
	contexts      *memory.ContextManager
	historyWindow int

	mu       sync.Mutex
	sessions map[string]*sessionHandle
}

type sessionHandle struct {
	mu sync.Mutex
}

func (e *Engine) handleFor(sessionID string) *sessionHandle {
	e.mu.Lock()
	defer e.mu.Unlock()

	handle, ok := e.sessions[sessionID]
	if !ok {
		handle = &sessionHandle{}
		e.sessions[sessionID] = handle
	}
	return handle
}

// HandleTurn processes one user utterance for a session and returns the
// action the caller should execute. The session's state, draft, and turn
// history are updated and saved before the action is returned.
func (e *Engine) HandleTurn(ctx context.Context, sessionID, utterance string) (dialogue.Action, error) {
	handle := e.handleFor(sessionID)
	handle.mu.Lock()
	defer handle.mu.Unlock()

	conversation := e.contexts.LoadSession(ctx, sessionID)

	cls := e.classifier.Classify(utterance, intent.Context{
		AwaitingSlot: conversation.State.Kind == dialogue.CollectingComplaint,
	})

	out := e.machine.Step(conversation.State, conversation.Draft, cls, utterance)

	action := out.Action
	if retrieve, ok := action.(dialogue.RetrieveDocuments); ok {
		// Refine before appending this turn so a follow-up anchors on the
		// previous document query, not on itself.
		refined := e.refiner.Refine(retrieve.Query, conversation.History(e.historyWindow))
		if refined != retrieve.Query {
			logger.Info("refined follow-up query",
				zap.String("session", sessionID),
				zap.String("raw", retrieve.Query),
				zap.String("refined", refined))
		}
		retrieve.Query = refined
		action = retrieve
	}

	conversation.SetState(out.State)
	conversation.Draft = out.Draft
	conversation.AppendTurn(utterance, previewText(action), string(cls.Label))

	if err := e.contexts.SaveSession(ctx, conversation); err != nil {
		return nil, err
	}

	logger.Info("handled turn",
		zap.String("session", sessionID),
		zap.String("intent", string(cls.Label)),
		zap.Float64("confidence", cls.Confidence),
		zap.String("state", out.State.String()))

	return action, nil
}

// previewText is the bot text recorded for a turn whose action has not run
// yet. Reply actions are final; the others are overwritten via
// RecordBotReply once the collaborator has produced the real reply.
func previewText(action dialogue.Action) string {
	switch a := action.(type) {
	case dialogue.Reply:
		return a.Text
	case dialogue.SubmitComplaint:
		return "Submitting your complaint now."
	case dialogue.FetchComplaint:
		return "Let me pull up complaint " + a.ID + "."
	case dialogue.RetrieveDocuments:
		return "Let me check the documents."
	default:
		return ""
	}
}

// CompleteSubmit moves a session out of the confirmation state after its
// complaint was accepted by the backend. Calling it when no submission is
// pending is a no-op, so retries are safe.
func (e *Engine) CompleteSubmit(ctx context.Context, sessionID string) error {
	handle := e.handleFor(sessionID)
	handle.mu.Lock()
	defer handle.mu.Unlock()

	conversation := e.contexts.LoadSession(ctx, sessionID)
	if conversation.State.Kind != dialogue.ConfirmPending {
		return nil
	}

	conversation.SetState(dialogue.IdleState())
	return e.contexts.SaveSession(ctx, conversation)
}

// RecordBotReply rewrites the bot text of the session's latest turn with
// the final reply produced by executing its action.
func (e *Engine) RecordBotReply(ctx context.Context, sessionID, text string) error {
	handle := e.handleFor(sessionID)
	handle.mu.Lock()
	defer handle.mu.Unlock()

	conversation := e.contexts.LoadSession(ctx, sessionID)
	conversation.SetLastBotReply(text)
	return e.contexts.SaveSession(ctx, conversation)
}

// History returns the session's recent turns, oldest first, bounded by the
// engine's history window.
func (e *Engine) History(ctx context.Context, sessionID string) []memory.Turn {
	handle := e.handleFor(sessionID)
	handle.mu.Lock()
	defer handle.mu.Unlock()

	conversation := e.contexts.LoadSession(ctx, sessionID)
	return conversation.History(e.historyWindow)
}

// Reset discards the session's history, state, and draft.
func (e *Engine) Reset(ctx context.Context, sessionID string) error {
	handle := e.handleFor(sessionID)
	handle.mu.Lock()
	defer handle.mu.Unlock()

	return e.contexts.ResetSession(ctx, sessionID)
}
