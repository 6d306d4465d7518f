package recruiter

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/murtezataher/AgenticAIFYP/internal/config"
	"github.com/murtezataher/AgenticAIFYP/internal/logger"
	"github.com/murtezataher/AgenticAIFYP/internal/models"
	"github.com/murtezataher/AgenticAIFYP/internal/repositories"
	"github.com/murtezataher/AgenticAIFYP/internal/services"
	"github.com/murtezataher/AgenticAIFYP/internal/workflow"
)

// Recruiter holds the collaborators shared by every session and builds
// fresh workflow states for the front ends.
type Recruiter struct {
	jobs      []models.JobPosting
	extractor workflow.TextExtractor
	scorer    workflow.Scorer
	archive   repositories.ResultRepository
	logger    *zap.Logger

	baseSeed uint64
	sessions atomic.Uint64
}

type Option func(*Recruiter)

// WithScorer shares one scorer across sessions instead of giving every
// session its own lexical scorer.
func WithScorer(scorer workflow.Scorer) Option {
	return func(r *Recruiter) { r.scorer = scorer }
}

func WithArchive(archive repositories.ResultRepository) Option {
	return func(r *Recruiter) { r.archive = archive }
}

func WithSeed(seed uint64) Option {
	return func(r *Recruiter) { r.baseSeed = seed }
}

func New(jobs []models.JobPosting, extractor workflow.TextExtractor, log *zap.Logger, opts ...Option) *Recruiter {
	r := &Recruiter{
		jobs:      jobs,
		extractor: extractor,
		logger:    logger.WithFields(log),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.baseSeed == 0 {
		r.baseSeed = uint64(time.Now().UnixNano())
	}
	return r
}

// FromConfig wires the scorer, extractor and archive selected by cfg.
func FromConfig(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Recruiter, error) {
	log = logger.WithFields(log)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	jobs, err := config.LoadJobs(cfg.JobsFile)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithSeed(cfg.Scoring.RandomSeed)}

	switch cfg.Scoring.Scorer {
	case config.ScorerSemantic:
		gemini, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.EmbedModel, log.Named("gemini"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithScorer(services.NewEmbeddingScorer(gemini, nil, log.Named("scorer"))))

	case config.ScorerVector:
		scorer, err := newVectorScorer(ctx, cfg, jobs, log)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithScorer(scorer))
	}

	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithArchive(repositories.NewResultRepository(db)))
		log.Info("result archive enabled", zap.String("database", cfg.Database.DBName))
	}

	log.Info("recruiter configured",
		zap.String("scorer", cfg.Scoring.Scorer),
		zap.Int("jobs", len(jobs)),
	)

	return New(jobs, services.NewDocumentExtractor(log.Named("extractor")), log, opts...), nil
}

func newVectorScorer(ctx context.Context, cfg *config.Config, jobs []models.JobPosting, log *zap.Logger) (*services.VectorIndexScorer, error) {
	gemini, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.EmbedModel, log.Named("gemini"))
	if err != nil {
		return nil, err
	}

	index, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, cfg.Qdrant.VectorSize, log.Named("qdrant"))
	if err != nil {
		return nil, err
	}
	if err := index.InitCollection(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize vector index: %w", err)
	}

	scorer := services.NewVectorIndexScorer(gemini, nil, index, log.Named("scorer"))
	for _, job := range jobs {
		if _, err := scorer.IndexJob(ctx, job.ID, job.Description); err != nil {
			log.Warn("job not indexed, it will be indexed on first use",
				zap.String("job_id", job.ID),
				zap.Error(err),
			)
		}
	}

	return scorer, nil
}

func (r *Recruiter) Jobs() []models.JobPosting {
	jobs := make([]models.JobPosting, len(r.jobs))
	copy(jobs, r.jobs)
	return jobs
}

// NewState builds the workflow state of a new session. Every session gets
// its own random stream derived from the base seed.
func (r *Recruiter) NewState() *workflow.State {
	n := r.sessions.Add(1)
	seed := r.baseSeed + n*0x9e3779b97f4a7c15

	scorer := r.scorer
	if scorer == nil {
		scorer = services.NewLexicalScorer(rand.New(rand.NewPCG(seed, ^seed)))
	}

	return workflow.NewState(r.jobs, r.extractor, scorer,
		workflow.WithSeed(seed),
		workflow.WithLogger(r.logger.Named("workflow")),
	)
}

// ArchiveResult stores a completed interview when an archive is configured.
func (r *Recruiter) ArchiveResult(sessionID string, result models.Result) error {
	if r.archive == nil {
		return nil
	}

	err := r.archive.Create(&models.ArchivedResult{
		SessionID: sessionID,
		Candidate: result.Candidate,
		JobID:     result.JobID,
		Score:     result.Score,
		Feedback:  result.Feedback,
	})
	if err != nil {
		r.logger.Error("failed to archive interview result",
			append(logger.ApplicationFields(result.Candidate, result.JobID), zap.Error(err))...,
		)
		return err
	}
	return nil
}

// ArchivedShortlist reads the archive, best scores first.
func (r *Recruiter) ArchivedShortlist(jobID string, limit int) ([]models.ArchivedResult, bool, error) {
	if r.archive == nil {
		return nil, false, nil
	}
	results, err := r.archive.FindByJob(jobID, limit)
	return results, true, err
}
