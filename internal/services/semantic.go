package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// EmbeddingScorer rates a candidate by the cosine similarity between the
// resume embedding and the job description embedding.
type EmbeddingScorer struct {
	embedder Embedder
	chunker  TextChunker
	logger   *zap.Logger

	mu   sync.Mutex
	jobs map[string][]float32
}

func NewEmbeddingScorer(embedder Embedder, chunker TextChunker, logger *zap.Logger) *EmbeddingScorer {
	if chunker == nil {
		chunker = NewTextChunker(DefaultChunkSize, DefaultChunkOverlap)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmbeddingScorer{
		embedder: embedder,
		chunker:  chunker,
		logger:   logger,
		jobs:     make(map[string][]float32),
	}
}

func (s *EmbeddingScorer) Score(ctx context.Context, candidateText, jobDescription string) (float64, error) {
	if strings.TrimSpace(candidateText) == "" || strings.TrimSpace(jobDescription) == "" {
		return 0, nil
	}

	jobVector, err := s.jobVector(ctx, jobDescription)
	if err != nil {
		return 0, err
	}

	candidateVector, err := embedDocument(ctx, s.embedder, s.chunker, candidateText)
	if err != nil {
		return 0, err
	}

	similarity := CosineSimilarity(candidateVector, jobVector)
	s.logger.Debug("semantic similarity computed", zap.Float64("similarity", similarity))

	return ScaleSimilarity(similarity), nil
}

func (s *EmbeddingScorer) jobVector(ctx context.Context, description string) ([]float32, error) {
	s.mu.Lock()
	cached, ok := s.jobs[description]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	vector, err := s.embedder.GenerateEmbedding(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	s.mu.Lock()
	s.jobs[description] = vector
	s.mu.Unlock()

	return vector, nil
}

// embedDocument embeds every chunk of text and mean-pools the vectors.
func embedDocument(ctx context.Context, embedder Embedder, chunker TextChunker, text string) ([]float32, error) {
	chunks := chunker.ChunkText(text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no content to embed")
	}

	vectors := make([][]float32, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %d: %w", i+1, err)
		}
		vectors = append(vectors, vector)
	}

	return meanVector(vectors), nil
}

func meanVector(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}

	mean := make([]float32, len(vectors[0]))
	for _, vector := range vectors {
		for i := range mean {
			if i < len(vector) {
				mean[i] += vector[i]
			}
		}
	}
	for i := range mean {
		mean[i] /= float32(len(vectors))
	}
	return mean
}

// CosineSimilarity returns 0 for empty, zero or mismatched vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// ScaleSimilarity maps a similarity onto the [0, 100] fit score range.
// Negative similarity counts as no fit at all.
func ScaleSimilarity(similarity float64) float64 {
	switch {
	case math.IsNaN(similarity) || similarity <= 0:
		return 0
	case similarity >= 1:
		return 100
	}
	return similarity * 100
}
