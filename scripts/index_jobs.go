package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/murtezataher/AgenticAIFYP/internal/config"
	"github.com/murtezataher/AgenticAIFYP/internal/logger"
	"github.com/murtezataher/AgenticAIFYP/internal/services"
)

// Indexes the job catalog into Qdrant so the vector scorer does not have to
// embed descriptions on the first submission.
func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("❌ Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	jobs, err := config.LoadJobs(cfg.JobsFile)
	if err != nil {
		zlog.Fatal("failed to load job catalog", zap.Error(err))
	}

	gemini, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.EmbedModel, zlog.Named("gemini"))
	if err != nil {
		zlog.Fatal("failed to initialize gemini", zap.Error(err))
	}

	index, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, cfg.Qdrant.VectorSize, zlog.Named("qdrant"))
	if err != nil {
		zlog.Fatal("failed to initialize qdrant", zap.Error(err))
	}
	if err := index.InitCollection(ctx); err != nil {
		zlog.Fatal("failed to initialize collection", zap.Error(err))
	}

	scorer := services.NewVectorIndexScorer(gemini, nil, index, zlog.Named("scorer"))

	successCount, failCount := 0, 0
	for _, job := range jobs {
		key, err := scorer.IndexJob(ctx, job.ID, job.Description)
		if err != nil {
			zlog.Error("failed to index job", zap.String("job_id", job.ID), zap.Error(err))
			failCount++
			continue
		}
		zlog.Info("job indexed", zap.String("job_id", job.ID), zap.String("job_key", key[:12]))
		successCount++
	}

	zlog.Info("indexing finished",
		zap.Int("indexed", successCount),
		zap.Int("failed", failCount),
		zap.String("collection", cfg.Qdrant.Collection),
	)
}
