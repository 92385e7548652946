package dialogboot

import (
	"time"

	"google.golang.org/grpc"
)

// Dialogue pipeline stages reported while a turn is being handled.
const (
	StageUnderstanding = "understanding"
	StageSearching     = "searching"
	StageGenerating    = "generating"
	StageFiling        = "filing"
	StageFetching      = "fetching"
)

// Chunk types carried by a DialogueStreamChunk.
const (
	ChunkStage    = "stage"
	ChunkAction   = "action"
	ChunkAnswer   = "answer"
	ChunkError    = "error"
	ChunkComplete = "complete"
)

// DialogueStreamChunk is one streamed event of a handled turn: stage
// updates while the engine works, the decided action, answer text chunks,
// and a final complete or error marker.
type DialogueStreamChunk struct {
	Type      string `json:"type"`
	Stage     string `json:"stage,omitempty"`
	Message   string `json:"message,omitempty"`
	Action    string `json:"action,omitempty"`
	Answer    string `json:"answer,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// ProgressReporter is an interface for reporting turn-handling progress
type ProgressReporter interface {
	// Send sends a progress update
	Send(event *DialogueStreamChunk) error
}

// NoOpProgressReporter implements ProgressReporter with no-op operations
type NoOpProgressReporter struct{}

// Send does nothing
func (r *NoOpProgressReporter) Send(event *DialogueStreamChunk) error {
	// No-op
	return nil
}

// GrpcProgressReporter implements ProgressReporter for gRPC streaming
type GrpcProgressReporter struct {
	Stream grpc.ServerStreamingServer[DialogueStreamChunk]
}

func (r *GrpcProgressReporter) Send(event *DialogueStreamChunk) error {
	return r.Stream.Send(event)
}

// Helper functions for creating progress events
func NewStageUpdate(stage, message string) *DialogueStreamChunk {
	return &DialogueStreamChunk{
		Type:      ChunkStage,
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewActionChunk reports the action the engine decided for the turn
func NewActionChunk(action string) *DialogueStreamChunk {
	return &DialogueStreamChunk{
		Type:      ChunkAction,
		Action:    action,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewAnswerChunk creates an answer text chunk
func NewAnswerChunk(text string) *DialogueStreamChunk {
	return &DialogueStreamChunk{
		Type:      ChunkAnswer,
		Answer:    text,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewStreamError creates an error chunk
func NewStreamError(message, code string) *DialogueStreamChunk {
	return &DialogueStreamChunk{
		Type:      ChunkError,
		Message:   message,
		ErrorCode: code,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewStreamComplete marks the end of a handled turn
func NewStreamComplete() *DialogueStreamChunk {
	return &DialogueStreamChunk{
		Type:      ChunkComplete,
		Timestamp: time.Now().UnixMilli(),
	}
}
