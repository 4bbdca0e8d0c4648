package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	GeminiName         = "gemini"
	DefaultGeminiModel = "gemini-embedding-001"
	geminiBatchLimit   = 100
	semanticTaskType   = "SEMANTIC_SIMILARITY"
)

// Gemini embeds text through the Gemini API.
type Gemini struct {
	client     *genai.Client
	modelName  string
	dimensions int32
}

// NewGemini creates an embedder configured for the Gemini API backend.
// dims of zero keeps the model's native dimensionality.
func NewGemini(ctx context.Context, apiKey, model string, dims int) (*Gemini, error) {
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
		model = DefaultGeminiModel
	}

	return &Gemini{client: client, modelName: model, dimensions: int32(dims)}, nil
}

func (g *Gemini) Name() string { return GeminiName }

// Model returns the embedding model identifier.
func (g *Gemini) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

// Embed sends texts in batches and returns vectors in input order.
func (g *Gemini) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if g == nil || g.client == nil {
		return nil, errors.New("gemini embedder is not initialized")
	}

	cfg := &genai.EmbedContentConfig{TaskType: semanticTaskType}
	if g.dimensions > 0 {
		dims := g.dimensions
		cfg.OutputDimensionality = &dims
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += geminiBatchLimit {
		end := min(start+geminiBatchLimit, len(texts))

		contents := make([]*genai.Content, 0, end-start)
		for _, text := range texts[start:end] {
			if strings.TrimSpace(text) == "" {
				// the API rejects empty parts
				text = " "
			}
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: text}},
			})
		}

		resp, err := g.client.Models.EmbedContent(ctx, g.modelName, contents, cfg)
		if err != nil {
			return nil, fmt.Errorf("embed content: %w", err)
		}
		if resp == nil || len(resp.Embeddings) != end-start {
			return nil, fmt.Errorf("gemini api returned %d embeddings for %d texts", embeddingsLen(resp), end-start)
		}

		for _, e := range resp.Embeddings {
			if e == nil || len(e.Values) == 0 {
				return nil, errors.New("gemini api returned empty embedding")
			}
			out = append(out, e.Values)
		}
	}

	return out, nil
}

func embeddingsLen(resp *genai.EmbedContentResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Embeddings)
}
