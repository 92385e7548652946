package dialogue

import "fmt"

// StateKind tags the dialogue state variants.
type StateKind string

const (
	Idle                StateKind = "idle"
	CollectingComplaint StateKind = "collecting_complaint"
	ConfirmPending      StateKind = "confirm_pending"
	AwaitingComplaintID StateKind = "awaiting_complaint_id"
)

// State is a tagged dialogue state. Cursor is the next-unfilled-slot index
// and is meaningful only while CollectingComplaint.
type State struct {
	Kind   StateKind `json:"kind" bson:"kind"`
	Cursor int       `json:"cursor" bson:"cursor"`
}

func IdleState() State {
	return State{Kind: Idle}
}

func Collecting(cursor int) State {
	return State{Kind: CollectingComplaint, Cursor: cursor}
}

func Confirming() State {
	return State{Kind: ConfirmPending}
}

func AwaitingID() State {
	return State{Kind: AwaitingComplaintID}
}

func (s State) String() string {
	if s.Kind == CollectingComplaint {
		return fmt.Sprintf("%s(%d)", s.Kind, s.Cursor)
	}
	return string(s.Kind)
}

// InComplaintFlow reports whether a draft may exist in this state.
func (s State) InComplaintFlow() bool {
	return s.Kind == CollectingComplaint || s.Kind == ConfirmPending
}
