package dialogboot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/dialog-boot/complaint"
	"github.com/SaiNageswarS/dialog-boot/dialogue"
	"github.com/SaiNageswarS/dialog-boot/llm"
	"github.com/SaiNageswarS/dialog-boot/prompts"
	"github.com/SaiNageswarS/dialog-boot/refine"
	"github.com/SaiNageswarS/dialog-boot/retrieval"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// maxExcerpts bounds how many retrieved chunks are passed to the answer
// prompt.
const maxExcerpts = 8

// ComplaintBackend files new complaints and fetches existing ones.
type ComplaintBackend interface {
	Submit(ctx context.Context, fields map[string]string) (string, error)
	Fetch(ctx context.Context, id string) (*complaint.Record, error)
}

// DocumentSearcher retrieves support-document chunks relevant to queries.
type DocumentSearcher interface {
	Search(ctx context.Context, queries []string) ([]*retrieval.ChunkModel, error)
}

// Bot executes the actions the engine decides: it runs the conversation
// end to end, talking to the complaint backend, document retrieval, and
// the answer model, and streams progress through a ProgressReporter.
type Bot struct {
	engine     *Engine
	complaints ComplaintBackend
	docs       DocumentSearcher
	llmClient  llm.LLMClient
	reporter   ProgressReporter
}

// NewBot wires an engine to its collaborators. A nil reporter disables
// progress streaming.
func NewBot(engine *Engine, complaints ComplaintBackend, docs DocumentSearcher, llmClient llm.LLMClient, reporter ProgressReporter) *Bot {
	if reporter == nil {
		reporter = &NoOpProgressReporter{}
	}
	return &Bot{
		engine:     engine,
		complaints: complaints,
		docs:       docs,
		llmClient:  llmClient,
		reporter:   reporter,
	}
}

// Respond handles one user utterance and returns the bot's reply text.
// Collaborator failures degrade to an apologetic reply rather than an
// error; a pending complaint draft survives a failed submission.
func (b *Bot) Respond(ctx context.Context, sessionID, utterance string) (string, error) {
	transcript := refine.Transcript(b.engine.History(ctx, sessionID))

	_ = b.reporter.Send(NewStageUpdate(StageUnderstanding, "Reading your message"))

	action, err := b.engine.HandleTurn(ctx, sessionID, utterance)
	if err != nil {
		_ = b.reporter.Send(NewStreamError("failed to process the message", "ENGINE_ERROR"))
		return "", err
	}

	switch a := action.(type) {
	case dialogue.Reply:
		_ = b.reporter.Send(NewActionChunk("reply"))
		return b.finish(ctx, sessionID, a.Text)
	case dialogue.SubmitComplaint:
		return b.submitComplaint(ctx, sessionID, a)
	case dialogue.FetchComplaint:
		return b.fetchComplaint(ctx, sessionID, a)
	case dialogue.RetrieveDocuments:
		return b.answerFromDocuments(ctx, sessionID, transcript, a)
	default:
		return "", fmt.Errorf("unhandled action %T", action)
	}
}

func (b *Bot) submitComplaint(ctx context.Context, sessionID string, action dialogue.SubmitComplaint) (string, error) {
	_ = b.reporter.Send(NewActionChunk("submit_complaint"))
	_ = b.reporter.Send(NewStageUpdate(StageFiling, "Filing your complaint"))

	complaintID, err := b.complaints.Submit(ctx, action.Fields)
	if err != nil {
		// The session stays in confirmation with the draft intact, so the
		// user can answer yes again to retry or no to discard.
		logger.Error("complaint submission failed", zap.String("session", sessionID), zap.Error(err))
		_ = b.reporter.Send(NewStreamError("complaint backend unavailable", "BACKEND_ERROR"))
		text := "I couldn't reach the complaint system just now, so nothing was filed. " +
			"Your details are still saved. Say yes to try again, or no to discard them."
		return b.finish(ctx, sessionID, text)
	}

	if err := b.engine.CompleteSubmit(ctx, sessionID); err != nil {
		logger.Error("failed to close out submission", zap.String("session", sessionID), zap.Error(err))
	}

	text := fmt.Sprintf("Thanks! Your complaint has been filed. Your complaint ID is %s. "+
		"Keep it handy to check on the status later.", complaintID)
	return b.finish(ctx, sessionID, text)
}

func (b *Bot) fetchComplaint(ctx context.Context, sessionID string, action dialogue.FetchComplaint) (string, error) {
	_ = b.reporter.Send(NewActionChunk("fetch_complaint"))
	_ = b.reporter.Send(NewStageUpdate(StageFetching, "Looking up complaint "+action.ID))

	record, err := b.complaints.Fetch(ctx, action.ID)
	switch {
	case errors.Is(err, complaint.ErrNotFound):
		text := fmt.Sprintf("I couldn't find a complaint with ID %s. "+
			"Double-check the ID and share it again.", action.ID)
		return b.finish(ctx, sessionID, text)
	case err != nil:
		logger.Error("complaint lookup failed", zap.String("complaintId", action.ID), zap.Error(err))
		_ = b.reporter.Send(NewStreamError("complaint backend unavailable", "BACKEND_ERROR"))
		text := "I couldn't reach the complaint system just now. Please try again in a moment."
		return b.finish(ctx, sessionID, text)
	}

	return b.finish(ctx, sessionID, complaint.FormatRecord(record))
}

func (b *Bot) answerFromDocuments(ctx context.Context, sessionID, transcript string, action dialogue.RetrieveDocuments) (string, error) {
	_ = b.reporter.Send(NewActionChunk("retrieve_documents"))
	_ = b.reporter.Send(NewStageUpdate(StageSearching, "Searching the documents"))

	chunks, err := b.docs.Search(ctx, []string{action.Query})
	if err != nil {
		logger.Error("document search failed", zap.String("query", action.Query), zap.Error(err))
		_ = b.reporter.Send(NewStreamError("document search failed", "SEARCH_ERROR"))
		text := "I ran into a problem searching the documents. Please try again."
		return b.finish(ctx, sessionID, text)
	}

	if len(chunks) == 0 {
		text := "I couldn't find anything about that in the documents. " +
			"If something isn't working for you, I can file a complaint instead."
		return b.finish(ctx, sessionID, text)
	}

	_ = b.reporter.Send(NewStageUpdate(StageGenerating, "Writing an answer"))

	systemPrompt, userPrompt, err := prompts.RenderAnswerPrompt(action.Query, excerptContext(chunks), transcript)
	if err != nil {
		return "", err
	}

	var answer strings.Builder
	err = b.llmClient.GenerateInference(ctx,
		[]llm.Message{{Role: "user", Content: userPrompt}},
		func(chunk string) error {
			answer.WriteString(chunk)
			return b.reporter.Send(NewAnswerChunk(chunk))
		},
		llm.WithSystemPrompt(systemPrompt),
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(1024))
	if err != nil {
		logger.Error("answer generation failed", zap.String("query", action.Query), zap.Error(err))
		_ = b.reporter.Send(NewStreamError("answer generation failed", "LLM_ERROR"))
		text := "I found a relevant section but couldn't compose an answer right now:\n\n" +
			chunkExcerpt(chunks[0])
		return b.finish(ctx, sessionID, text)
	}

	text := strings.TrimSpace(answer.String())
	if text == "" {
		text = "I couldn't put together an answer from the documents. Try rephrasing the question."
		return b.finish(ctx, sessionID, text)
	}

	// Answer chunks were already streamed; only record and close.
	if err := b.engine.RecordBotReply(ctx, sessionID, text); err != nil {
		logger.Error("failed to record bot reply", zap.String("session", sessionID), zap.Error(err))
	}
	_ = b.reporter.Send(NewStreamComplete())
	return text, nil
}

// finish records the final reply on the session's latest turn and closes
// the progress stream.
func (b *Bot) finish(ctx context.Context, sessionID, text string) (string, error) {
	if err := b.engine.RecordBotReply(ctx, sessionID, text); err != nil {
		logger.Error("failed to record bot reply", zap.String("session", sessionID), zap.Error(err))
	}
	_ = b.reporter.Send(NewAnswerChunk(text))
	_ = b.reporter.Send(NewStreamComplete())
	return text, nil
}

func excerptContext(chunks []*retrieval.ChunkModel) string {
	limit := len(chunks)
	if limit > maxExcerpts {
		limit = maxExcerpts
	}

	parts := make([]string, 0, limit)
	for i, chunk := range chunks[:limit] {
		parts = append(parts, fmt.Sprintf("[%d] %s", i+1, chunkExcerpt(chunk)))
	}
	return strings.Join(parts, "\n\n")
}

func chunkExcerpt(chunk *retrieval.ChunkModel) string {
	header := chunk.SectionPath
	if header == "" {
		header = chunk.Title
	}
	if header == "" {
		return chunk.Body()
	}
	return header + "\n" + chunk.Body()
}
