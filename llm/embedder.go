package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-collection-boot/async"
)

// Embedder turns text into a vector for similarity search.
type Embedder interface {
	GetEmbedding(ctx context.Context, text string, opts ...EmbeddingOption) <-chan async.Result[[]float32]
}

type EmbeddingSettings struct {
	task string // retrieval.query or retrieval.passage
}

type EmbeddingOption func(*EmbeddingSettings)

func WithTask(task string) EmbeddingOption {
	return func(s *EmbeddingSettings) { s.task = task }
}

// OllamaEmbedder computes embeddings with a local Ollama model. The task
// option is accepted for interface parity; Ollama embedding models do not
// take one.
type OllamaEmbedder struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaEmbedder(model string) *OllamaEmbedder {
	baseURL := os.Getenv("OLLAMA_HOST")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}

	return &OllamaEmbedder{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (e *OllamaEmbedder) GetEmbedding(ctx context.Context, text string, opts ...EmbeddingOption) <-chan async.Result[[]float32] {
	settings := &EmbeddingSettings{}
	for _, opt := range opts {
		opt(settings)
	}

	return async.Go(func() ([]float32, error) {
		body, err := json.Marshal(ollamaEmbedRequest{Model: e.model, Prompt: text})
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/api/embeddings", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := e.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("ollama embedding request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			msg, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf("ollama embedding API returned status %d: %s", resp.StatusCode, string(msg))
		}

		var embedResp ollamaEmbedResponse
		if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
			return nil, fmt.Errorf("failed to decode embedding response: %w", err)
		}

		if len(embedResp.Embedding) == 0 {
			return nil, fmt.Errorf("ollama returned an empty embedding")
		}
		return embedResp.Embedding, nil
	})
}
