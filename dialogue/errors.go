package dialogue

import "fmt"

// ValidationError marks a malformed slot value or identifier. It is always
// recovered inside the state machine by re-prompting and never escapes a
// turn.
type ValidationError struct {
	Slot   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for slot %q: %s", e.Slot, e.Reason)
}
