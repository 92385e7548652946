package memory

import (
	"time"

	"github.com/SaiNageswarS/dialog-boot/dialogue"
)

// Turn is one completed user/bot exchange, annotated with the intent label
// the classifier settled on for the user utterance.
type Turn struct {
	User   string    `bson:"user" json:"user"`
	Bot    string    `bson:"bot" json:"bot"`
	Intent string    `bson:"intent" json:"intent"`
	At     time.Time `bson:"at" json:"at"`
}

// ConversationContext is the per-session dialogue record: the bounded turn
// history, the current dialogue state, and the complaint draft while one is
// being collected. A draft is present only while the state is inside the
// complaint flow.
type ConversationContext struct {
	ID    string          `bson:"_id" json:"id"`
	Turns []Turn          `bson:"turns" json:"turns"`
	State dialogue.State  `bson:"state" json:"state"`
	Draft *dialogue.Draft `bson:"draft,omitempty" json:"draft,omitempty"`
}

func NewConversationContext(sessionID string) *ConversationContext {
	return &ConversationContext{ID: sessionID, State: dialogue.IdleState()}
}

func (c ConversationContext) Id() string {
	return c.ID
}

func (c ConversationContext) CollectionName() string {
	return "conversations"
}

func (c *ConversationContext) AppendTurn(user, bot, intentLabel string) {
	c.Turns = append(c.Turns, Turn{User: user, Bot: bot, Intent: intentLabel, At: time.Now()})
}

// SetLastBotReply rewrites the bot text of the most recent turn, once the
// action decided for that turn has produced its final reply.
func (c *ConversationContext) SetLastBotReply(text string) {
	if len(c.Turns) == 0 {
		return
	}
	c.Turns[len(c.Turns)-1].Bot = text
}

// History returns the most recent turns, oldest first. A non-positive limit
// returns the full history.
func (c *ConversationContext) History(limit int) []Turn {
	if limit <= 0 || limit >= len(c.Turns) {
		return c.Turns
	}
	return c.Turns[len(c.Turns)-limit:]
}

// SetState moves the dialogue to a new state. Leaving the complaint flow
// drops the draft so a draft never outlives the flow that created it.
func (c *ConversationContext) SetState(state dialogue.State) {
	c.State = state
	if !state.InComplaintFlow() {
		c.Draft = nil
	}
}

// UpdateSlot writes one collected value into the draft, creating the draft
// if this is the first value.
func (c *ConversationContext) UpdateSlot(name, value string) {
	if c.Draft == nil {
		c.Draft = dialogue.NewDraft()
	}
	c.Draft.Fill(name, value)
}

// Reset returns the session to a blank idle state. Resetting an already
// blank session is a no-op.
func (c *ConversationContext) Reset() {
	c.Turns = nil
	c.State = dialogue.IdleState()
	c.Draft = nil
}

// Clone returns a deep copy so stored contexts never alias live ones.
func (c *ConversationContext) Clone() *ConversationContext {
	out := &ConversationContext{ID: c.ID, State: c.State}
	if len(c.Turns) > 0 {
		out.Turns = append([]Turn(nil), c.Turns...)
	}
	if c.Draft != nil {
		draft := &dialogue.Draft{ID: c.Draft.ID, Values: map[string]string{}}
		for k, v := range c.Draft.Values {
			draft.Values[k] = v
		}
		out.Draft = draft
	}
	return out
}
