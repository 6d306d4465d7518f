package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	DefaultEmbedModel = "text-embedding-004"
	maxEmbedChars     = 40000
)

// Embedder produces a vector for a piece of text.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type GeminiService interface {
	Embedder
	Model() string
}

type geminiService struct {
	client     *genai.Client
	embedModel string
	logger     *zap.Logger
}

func NewGeminiService(ctx context.Context, apiKey, embedModel string, logger *zap.Logger) (GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if embedModel == "" {
		embedModel = DefaultEmbedModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		embedModel: embedModel,
		logger:     logger.With(zap.String("ai_model", embedModel)),
	}, nil
}

func (g *geminiService) Model() string {
	return g.embedModel
}

// GenerateEmbedding implements Embedder.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = truncateRunes(text, maxEmbedChars)

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	g.logger.Debug("embedding generated",
		zap.Int("characters", len(text)),
		zap.Int("dimensions", len(result.Embeddings[0].Values)),
	)

	return result.Embeddings[0].Values, nil
}

// truncateRunes keeps at most limit characters of text without splitting a
// multi-byte character.
func truncateRunes(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}
	return text
}
