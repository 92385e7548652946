package dialogue

// Action is what the engine decided should happen next. Exactly one action
// is produced per turn. Reply is authored here; the other three are
// addressed to external collaborators and executed by the caller.
type Action interface {
	isAction()
}

// Reply is a prompt, clarification, or confirmation authored by the engine.
type Reply struct {
	Text string
}

// SubmitComplaint asks the complaint backend to create a complaint from the
// collected fields.
type SubmitComplaint struct {
	Fields map[string]string
}

// FetchComplaint asks the complaint backend for an existing record.
type FetchComplaint struct {
	ID string
}

// RetrieveDocuments hands the (already refined) query to document retrieval.
type RetrieveDocuments struct {
	Query string
}

func (Reply) isAction()             {}
func (SubmitComplaint) isAction()   {}
func (FetchComplaint) isAction()    {}
func (RetrieveDocuments) isAction() {}
