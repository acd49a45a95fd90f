package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-embedding-001"

// Encoder wraps the Google GenAI client to provide sentence embeddings.
type Encoder struct {
	client    *genai.Client
	modelName string
}

// NewEncoder creates an Encoder configured for the Gemini API backend. A
// construction failure means the semantic matcher stays unavailable for the
// process lifetime; there is no per-call probing.
func NewEncoder(ctx context.Context, apiKey, model string) (*Encoder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Encoder{client: client, modelName: model}, nil
}

// Embed returns the embedding vector for the given text.
func (e *Encoder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e == nil || e.client == nil {
		return nil, errors.New("gemini encoder is not initialized")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text must not be empty")
	}

	resp, err := e.client.Models.EmbedContent(ctx, e.modelName, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, errors.New("gemini api returned no embeddings")
	}

	values := resp.Embeddings[0].Values
	if len(values) == 0 {
		return nil, errors.New("gemini api returned an empty embedding vector")
	}

	return values, nil
}

func (e *Encoder) Model() string {
	if e == nil {
		return ""
	}
	return e.modelName
}
