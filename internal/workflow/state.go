package workflow

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/murtezataher/AgenticAIFYP/internal/models"
)

// TextExtractor turns an uploaded document into plain text. It never fails:
// unreadable input yields an empty string.
type TextExtractor interface {
	ExtractText(data []byte) string
}

// Scorer rates how well a candidate text fits a job description, in [0, 100].
type Scorer interface {
	Score(ctx context.Context, candidateText, jobDescription string) (float64, error)
}

// State holds everything one recruiter session knows about: submitted
// applications, the interview in progress and the completed results.
// Methods are safe for concurrent use but the workflow itself is turn based.
type State struct {
	mu sync.Mutex

	jobs    []models.JobPosting
	catalog map[string]models.JobPosting

	applications map[string][]*models.Application
	jobOrder     []string

	session *Session
	results []models.Result

	extractor TextExtractor
	scorer    Scorer
	rng       *rand.Rand
	logger    *zap.Logger
}

type Option func(*State)

func WithLogger(logger *zap.Logger) Option {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRand sets the random source used for interview scoring and feedback.
func WithRand(rng *rand.Rand) Option {
	return func(s *State) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithSeed is a shorthand for WithRand with a PCG source.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func NewState(catalog []models.JobPosting, extractor TextExtractor, scorer Scorer, opts ...Option) *State {
	s := &State{
		catalog:      make(map[string]models.JobPosting, len(catalog)),
		applications: make(map[string][]*models.Application),
		extractor:    extractor,
		scorer:       scorer,
		logger:       zap.NewNop(),
	}

	for _, job := range catalog {
		if _, dup := s.catalog[job.ID]; dup {
			continue
		}
		s.catalog[job.ID] = job
		s.jobs = append(s.jobs, job)
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	return s
}

// Jobs returns the catalog in its configured order.
func (s *State) Jobs() []models.JobPosting {
	jobs := make([]models.JobPosting, len(s.jobs))
	copy(jobs, s.jobs)
	return jobs
}

func (s *State) Job(jobID string) (models.JobPosting, bool) {
	job, ok := s.catalog[jobID]
	return job, ok
}
