package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// VectorIndexScorer keeps job description embeddings in the vector index
// and lets the index compute the similarity to a resume.
type VectorIndexScorer struct {
	embedder Embedder
	chunker  TextChunker
	index    QdrantService
	logger   *zap.Logger

	mu      sync.Mutex
	indexed map[string]bool
}

func NewVectorIndexScorer(embedder Embedder, chunker TextChunker, index QdrantService, logger *zap.Logger) *VectorIndexScorer {
	if chunker == nil {
		chunker = NewTextChunker(DefaultChunkSize, DefaultChunkOverlap)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VectorIndexScorer{
		embedder: embedder,
		chunker:  chunker,
		index:    index,
		logger:   logger,
		indexed:  make(map[string]bool),
	}
}

// IndexJob stores the embedding of a job description unless this scorer
// already did so. It returns the key the description is stored under.
func (v *VectorIndexScorer) IndexJob(ctx context.Context, jobID, description string) (string, error) {
	key := JobKey(description)

	v.mu.Lock()
	done := v.indexed[key]
	v.mu.Unlock()
	if done {
		return key, nil
	}

	vector, err := v.embedder.GenerateEmbedding(ctx, description)
	if err != nil {
		return "", fmt.Errorf("failed to embed job description: %w", err)
	}
	if err := v.index.UpsertJob(ctx, key, jobID, vector); err != nil {
		return "", err
	}

	v.mu.Lock()
	v.indexed[key] = true
	v.mu.Unlock()

	v.logger.Info("job description indexed", zap.String("job_id", jobID))
	return key, nil
}

func (v *VectorIndexScorer) Score(ctx context.Context, candidateText, jobDescription string) (float64, error) {
	if strings.TrimSpace(candidateText) == "" || strings.TrimSpace(jobDescription) == "" {
		return 0, nil
	}

	key, err := v.IndexJob(ctx, "", jobDescription)
	if err != nil {
		return 0, err
	}

	vector, err := embedDocument(ctx, v.embedder, v.chunker, candidateText)
	if err != nil {
		return 0, err
	}

	hits, err := v.index.ScoreAgainstJob(ctx, vector, key)
	if err != nil {
		return 0, err
	}
	if len(hits) == 0 {
		v.logger.Warn("job description missing from vector index")
		return 0, nil
	}

	return ScaleSimilarity(float64(hits[0].Score)), nil
}
